// Package runtime implements the "phase runtime" spec.md §5 refers to but
// never names a package for: the host that fans a wanted-library set out
// over internal/phase.Driver, resolving each library's dependencies by
// recursing back into itself. Grounded on the teacher's
// internal/agent.RunMetricsParallel (an errgroup.Group fan-out over
// independent units of work, results collected under a mutex) generalized
// from "run every metric once" to "run every library, memoized, with
// recursive dependency resolution" -- spec.md §5's "libraries may be
// processed in parallel by the phase runtime" while "each library's
// pipeline executes deterministically start-to-end on one thread".
package runtime

import (
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/tsdecl/tsconv/internal/ident"
	"github.com/tsdecl/tsconv/internal/phase"
	"github.com/tsdecl/tsconv/internal/phaseerr"
	"github.com/tsdecl/tsconv/internal/resolver"
)

// Runtime owns the single memoization table shared by every recursive
// dependency lookup in one run, so a library depended on by several others
// is only ever processed once, however many goroutines first ask for it.
type Runtime struct {
	driver *phase.Driver
	boot   *resolver.Bootstrap

	mu      sync.Mutex
	entries map[string]*entry

	// deps records every "owner requested target" edge seen so far, across
	// every goroutine. It is consulted before each new edge is added so a
	// dependency cycle is caught at the moment it would close, wherever in
	// the concurrent fan-out the two halves of the cycle happen to run.
	deps map[string]map[string]bool
}

type entry struct {
	done chan struct{}
	res  phaseerr.PhaseRes[*phase.Library]
}

// New builds a Runtime over an already-bootstrapped node_modules view and
// a configured phase driver.
func New(driver *phase.Driver, boot *resolver.Bootstrap) *Runtime {
	return &Runtime{
		driver:  driver,
		boot:    boot,
		entries: map[string]*entry{},
		deps:    map[string]map[string]bool{},
	}
}

// RunAll resolves every wanted library and everything it transitively
// depends on, returning one Library per wanted name (dependencies are
// processed but not included in the map). Libraries ignored by config are
// omitted from the map. If any library fails, the map is nil and every
// failure is returned in failures.
func (rt *Runtime) RunAll(wanted []ident.LibraryName) (map[ident.LibraryName]*phase.Library, []phaseerr.Failure) {
	res := rt.resolveAll(wanted, "")
	if res.IsFailure() {
		return nil, res.Failures
	}
	if res.IsIgnore() {
		return map[ident.LibraryName]*phase.Library{}, nil
	}
	return res.Value, nil
}

// resolveAll resolves a batch of library names concurrently via errgroup,
// one goroutine per name, mirroring the teacher's RunMetricsParallel
// fan-out. owner is the key of the library whose own dependency set this
// batch is; it is "" for the top-level set of wanted libraries, which
// isn't itself a node any library depends on.
func (rt *Runtime) resolveAll(names []ident.LibraryName, owner string) phaseerr.PhaseRes[map[ident.LibraryName]*phase.Library] {
	results := make([]phaseerr.PhaseRes[*phase.Library], len(names))

	g := new(errgroup.Group)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			results[i] = rt.resolve(name, owner)
			return nil
		})
	}
	_ = g.Wait()

	out := make(map[ident.LibraryName]*phase.Library, len(names))
	var failures []phaseerr.Failure
	for i, r := range results {
		switch {
		case r.IsFailure():
			failures = append(failures, r.Failures...)
		case r.IsOk():
			out[names[i]] = r.Value
		}
	}
	if len(failures) > 0 {
		return phaseerr.Failed[map[ident.LibraryName]*phase.Library](failures...)
	}
	return phaseerr.Ok(out)
}

// resolve processes one library, consulting (and populating) the shared
// memo table first. Concurrent callers asking for the same library block
// on the same in-flight entry rather than duplicating the work.
//
// Two libraries can legitimately be mutual dependencies (the graph
// spec.md's Driver.Run isCircular parameter anticipates), and the two
// halves of the cycle can surface from two unrelated top-level goroutines
// rather than one call stack, so detecting a cycle has to consult the
// whole owner/target graph built so far, not just the current recursion
// path. Before adding the owner-requests-key edge, addDepEdge checks
// whether key can already reach owner; if so this edge would close a
// loop, so it's refused and the caller gets Ignore instead of blocking
// forever on an entry that is, transitively, waiting on it.
func (rt *Runtime) resolve(name ident.LibraryName, owner string) phaseerr.PhaseRes[*phase.Library] {
	key := name.Unscoped().String()

	rt.mu.Lock()
	if owner == key {
		rt.mu.Unlock()
		return phaseerr.Ignore[*phase.Library]()
	}
	if owner != "" && !rt.addDepEdge(owner, key) {
		rt.mu.Unlock()
		return phaseerr.Ignore[*phase.Library]()
	}
	if e, ok := rt.entries[key]; ok {
		rt.mu.Unlock()
		<-e.done
		return e.res
	}
	e := &entry{done: make(chan struct{})}
	rt.entries[key] = e
	rt.mu.Unlock()

	e.res = rt.resolveOne(name, key)
	close(e.done)
	return e.res
}

// addDepEdge records that owner depends on target, returning false (and
// recording nothing) if target can already reach owner -- called with
// rt.mu held.
func (rt *Runtime) addDepEdge(owner, target string) bool {
	if rt.canReach(target, owner) {
		return false
	}
	if rt.deps[owner] == nil {
		rt.deps[owner] = map[string]bool{}
	}
	rt.deps[owner][target] = true
	return true
}

// canReach is a plain graph reachability search over the edges recorded
// so far -- called with rt.mu held.
func (rt *Runtime) canReach(from, to string) bool {
	if from == to {
		return true
	}
	visited := map[string]bool{from: true}
	queue := []string{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for next := range rt.deps[cur] {
			if next == to {
				return true
			}
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	return false
}

func (rt *Runtime) resolveOne(name ident.LibraryName, key string) phaseerr.PhaseRes[*phase.Library] {
	source, result := rt.boot.Library(name)
	switch result {
	case resolver.Ignored:
		return phaseerr.Ignore[*phase.Library]()
	case resolver.NotAvailable:
		return phaseerr.Failed[*phase.Library](phaseerr.Failure{Source: name.String(), Msg: "library not found"})
	}

	getDeps := func(deps []ident.LibraryName) phaseerr.PhaseRes[map[ident.LibraryName]*phase.Library] {
		return rt.resolveAll(deps, key)
	}
	return rt.driver.Run(source, getDeps, false)
}
