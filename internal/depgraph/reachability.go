package depgraph

// ForwardReachable computes the set of vertices reachable from start
// (inclusive) by following the graph's directed edges, via the DFS
// worklist in strategy.go. memo, when non-nil, caches per-single-seed
// reachable sets keyed by vertex id and is both consulted and updated,
// letting repeated cone-of-influence queries over the same graph reuse
// work across properties that share seed state variables.
func ForwardReachable(g *Graph, start []string, memo map[string]map[string]bool) map[string]bool {
	reached := make(map[string]bool)
	for _, s := range start {
		if memo != nil {
			if cached, ok := memo[s]; ok {
				for v := range cached {
					reached[v] = true
				}
				continue
			}
		}
		one := forwardReachableOne(g, s)
		if memo != nil {
			memo[s] = one
		}
		for v := range one {
			reached[v] = true
		}
	}
	return reached
}

func forwardReachableOne(g *Graph, seed string) map[string]bool {
	visited := map[string]bool{seed: true}
	worklist := NewDFS()
	_ = worklist.Push(seed)
	for worklist.HasNext() {
		v, err := worklist.Pop()
		if err != nil {
			break
		}
		for _, succ := range g.Successors(v) {
			if !visited[succ] {
				visited[succ] = true
				_ = worklist.Push(succ)
			}
		}
	}
	return visited
}

// ConeOfInfluence computes, for each property's seed state variables,
// the forward-reachable set in g, and returns the union across every
// property (spec.md §4.6 "Cone of influence").
func ConeOfInfluence(g *Graph, properties map[string][]string) map[string]bool {
	memo := make(map[string]map[string]bool)
	union := make(map[string]bool)
	for _, seeds := range properties {
		for v := range ForwardReachable(g, seeds, memo) {
			union[v] = true
		}
	}
	return union
}
