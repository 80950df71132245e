// Package symtab implements the process-wide symbol interner. SYMBOL values
// are stored in columns as int64 ids; the interner is the single authority
// mapping strings to ids and back, owned outside the computational core
// (§3.2 invariant 3) but handed to the core as a plain handle so the engine
// can host more than one independent runtime (per the teacher's pattern of
// threading a *sql.Context handle through calls instead of relying on
// package-level globals).
package symtab

import (
	"sync"

	"github.com/cespare/xxhash"
)

// Table interns strings to stable int64 ids and back.
type Table struct {
	mu     sync.RWMutex
	byHash map[uint64][]int64
	byID   []string
}

// New returns an empty interner.
func New() *Table {
	return &Table{byHash: make(map[uint64][]int64)}
}

// Intern returns the id for s, allocating a new one if s was never seen.
func (t *Table) Intern(s string) int64 {
	h := xxhash.Sum64String(s)

	t.mu.RLock()
	for _, id := range t.byHash[h] {
		if t.byID[id] == s {
			t.mu.RUnlock()
			return id
		}
	}
	t.mu.RUnlock()

	t.mu.Lock()
	defer t.mu.Unlock()
	for _, id := range t.byHash[h] {
		if t.byID[id] == s {
			return id
		}
	}
	id := int64(len(t.byID))
	t.byID = append(t.byID, s)
	t.byHash[h] = append(t.byHash[h], id)
	return id
}

// String returns the string for an interned id. Panics if id is out of
// range: a SYMBOL column holding an id this table never minted is an
// invariant violation, not a recoverable error.
func (t *Table) String(id int64) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.byID[id]
}

// Len returns the number of interned strings.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.byID)
}
