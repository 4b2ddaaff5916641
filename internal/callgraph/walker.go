// Package callgraph builds a directed caller graph from the function table
// and walks caller chains more than one hop at a time. Single-hop caller
// resolution stays in the codeql package; this is the multi-hop supplement
// for "who ultimately reaches this function" questions.
package callgraph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dominikbraun/graph"

	"github.com/quarrylabs/quarry/internal/codeql"
)

// Walker holds the caller graph for one snapshot of the function table.
// Edges point from a function to its caller. Ids that decode as file:line
// locations instead of function ids get no edge; a CallerResolver can
// bridge those gaps during a chain walk.
type Walker struct {
	g        graph.Graph[string, string]
	byID     map[string]codeql.FunctionRow
	ordinal  map[string]int
	callerOf map[string]string
}

// Build constructs a Walker from function rows in table order. Duplicate
// function ids keep their first occurrence.
func Build(rows []codeql.FunctionRow) (*Walker, error) {
	w := &Walker{
		g:        graph.New(graph.StringHash, graph.Directed()),
		byID:     make(map[string]codeql.FunctionRow, len(rows)),
		ordinal:  make(map[string]int, len(rows)),
		callerOf: make(map[string]string, len(rows)),
	}

	for i, row := range rows {
		id := normalizeID(row.FunctionID)
		if id == "" {
			continue
		}
		if _, seen := w.byID[id]; seen {
			continue
		}
		w.byID[id] = row
		w.ordinal[id] = i
		if err := w.g.AddVertex(id); err != nil {
			return nil, fmt.Errorf("failed to add function %s: %w", id, err)
		}
	}

	for id, row := range w.byID {
		caller := normalizeID(row.CallerID)
		if _, known := w.byID[caller]; !known {
			continue
		}
		w.callerOf[id] = caller
		// Self-calls and duplicate edges are fine to skip.
		_ = w.g.AddEdge(id, caller)
	}

	return w, nil
}

// Size returns the number of functions in the graph.
func (w *Walker) Size() int { return len(w.byID) }

// Function returns the row for a function id, if the graph knows it.
func (w *Walker) Function(functionID string) (codeql.FunctionRow, bool) {
	row, ok := w.byID[normalizeID(functionID)]
	return row, ok
}

// CallerResolver resolves the caller of a function the graph has no edge
// for, typically through the file:line decode fallback. A nil row ends the
// chain there.
type CallerResolver func(fn codeql.FunctionRow) (*codeql.FunctionRow, error)

// Chain walks the caller chain upward from functionID, following at most
// maxDepth caller hops. The starting function is not included. Hops follow
// graph edges where they exist; where the graph has none and resolve is
// non-nil, the resolver gets one chance to bridge the gap before the walk
// stops. A deeper walk never finds less than the single-hop resolver
// would. Cycles terminate the walk.
func (w *Walker) Chain(functionID string, maxDepth int, resolve CallerResolver) ([]codeql.FunctionRow, error) {
	if maxDepth <= 0 {
		maxDepth = 1
	}

	var chain []codeql.FunctionRow
	visited := map[string]bool{}
	id := normalizeID(functionID)

	for len(chain) < maxDepth {
		if visited[id] {
			break
		}
		visited[id] = true

		if caller, ok := w.callerOf[id]; ok {
			chain = append(chain, w.byID[caller])
			id = caller
			continue
		}

		row, ok := w.byID[id]
		if !ok || resolve == nil {
			break
		}
		caller, err := resolve(row)
		if err != nil {
			return nil, err
		}
		if caller == nil {
			break
		}
		chain = append(chain, *caller)
		id = normalizeID(caller.FunctionID)
	}

	return chain, nil
}

// Callees returns the ids of functions whose caller edge points at
// functionID, in other words the functions this one directly calls into
// per the caller relation. Ids come back in first-occurrence table order.
func (w *Walker) Callees(functionID string) ([]string, error) {
	target := normalizeID(functionID)

	pred, err := w.g.PredecessorMap()
	if err != nil {
		return nil, fmt.Errorf("failed to read caller graph: %w", err)
	}

	var callees []string
	for id := range pred[target] {
		callees = append(callees, id)
	}
	sort.Slice(callees, func(i, j int) bool {
		return w.ordinal[callees[i]] < w.ordinal[callees[j]]
	})
	return callees, nil
}

func normalizeID(s string) string {
	return strings.TrimSpace(codeql.StripQuotes(s))
}
