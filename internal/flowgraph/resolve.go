package flowgraph

// ShortestPath returns the chain of edges with the fewest hops from start to
// end, or nil when end is unreachable. Outgoing edges are explored in
// insertion order, so among equally short chains the one found first in file
// order wins. Vertices are marked visited when enqueued, which both bounds the
// search on cyclic graphs and keeps every vertex's first predecessor.
func (g *SourceGraph) ShortestPath(start, end NodeID) Path {
	if start == end {
		return Path{}
	}

	visited := map[NodeID]bool{start: true}
	pred := make(map[NodeID]*Edge)
	queue := []NodeID{start}

	found := false
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]

		if v == end {
			found = true
			break
		}

		for _, e := range g.adj[v] {
			to := e.Target()
			if visited[to] {
				continue
			}
			visited[to] = true
			pred[to] = e
			queue = append(queue, to)
		}
	}

	if !found {
		return nil
	}

	var path Path
	for cur := end; cur != start; {
		e := pred[cur]
		path = append(path, e)
		cur = e.Origin()
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// PathSearch returns the first path found from start to end. This is a depth
// first search, so the path may not be the shortest one.
//
// To find the shortest path, use ShortestPath.
func (g *SourceGraph) PathSearch(start, end NodeID) Path {
	var (
		stack = make(Path, 0, 32)
		seen  = make(map[NodeID]bool)

		search func(n NodeID) bool
	)

	search = func(n NodeID) bool {
		if seen[n] {
			return false
		}
		if n == end {
			return true
		}
		seen[n] = true
		for _, e := range g.adj[n] {
			stack = append(stack, e) // push
			if search(e.Target()) {
				return true
			}
			stack = stack[:len(stack)-1] // pop
		}
		return false
	}

	if !search(start) {
		return nil
	}
	return stack
}

// Strategy resolves a path inside one graph.
type Strategy func(g *SourceGraph, start, end NodeID) Path

// BreadthFirst is the strategy used for reports.
func BreadthFirst(g *SourceGraph, start, end NodeID) Path {
	return g.ShortestPath(start, end)
}

// DepthFirst is a debugging strategy; see PathSearch.
func DepthFirst(g *SourceGraph, start, end NodeID) Path {
	return g.PathSearch(start, end)
}
