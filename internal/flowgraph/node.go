package flowgraph

import "fmt"

// NodeID identifies a graph vertex: a value reference qualified by the
// analysis context it lives in. Edges that name the same pair share a vertex.
type NodeID struct {
	Context int
	Ref     string
}

// Node returns the NodeID for ref in context ctx.
func Node(ctx int, ref string) NodeID {
	return NodeID{Context: ctx, Ref: ref}
}

func (n NodeID) String() string {
	return fmt.Sprintf("[%d, %s]", n.Context, n.Ref)
}
