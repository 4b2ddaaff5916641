package mcp

import (
	"sync"

	"github.com/quarrylabs/quarry/internal/callgraph"
	"github.com/quarrylabs/quarry/internal/codeql"
)

// session accumulates the functions a triage session has already resolved.
// Every function returned by a line, caller or search lookup is remembered
// here, and get_function_by_name iterates over exactly this set. The core
// lookups stay stateless; session state lives only in this layer.
type session struct {
	mu    sync.Mutex
	known []codeql.FunctionRow
	seen  map[string]bool
}

func newSession() *session {
	return &session{seen: make(map[string]bool)}
}

// remember records a resolved function, deduplicated by function_id.
func (s *session) remember(fn codeql.FunctionRow) {
	id := codeql.StripQuotes(fn.FunctionID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if id != "" && s.seen[id] {
		return
	}
	s.seen[id] = true
	s.known = append(s.known, fn)
}

// knownFunctions returns a copy of the remembered functions in resolution
// order.
func (s *session) knownFunctions() []codeql.FunctionRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]codeql.FunctionRow, len(s.known))
	copy(out, s.known)
	return out
}

// walkerRef swaps the caller graph atomically on reload while tool handlers
// keep a stable reference to fetch through.
type walkerRef struct {
	mu     sync.RWMutex
	walker *callgraph.Walker
}

func (r *walkerRef) get() *callgraph.Walker {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.walker
}

func (r *walkerRef) set(w *callgraph.Walker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.walker = w
}
