package flowgraph

import "strings"

// Path is a chain of propagation edges in source-to-sink order, e.g.:
// source → local → field → sink argument. A nil Path means no chain exists;
// an empty, non-nil Path means the start vertex already is the end vertex.
type Path []*Edge

// Empty returns true if the path has no edges.
func (p Path) Empty() bool {
	return len(p) == 0
}

// First returns the first edge in the path, or nil if the path is empty.
func (p Path) First() *Edge {
	if len(p) == 0 {
		return nil
	}
	return p[0]
}

// Last returns the last edge in the path, or nil if the path is empty.
func (p Path) Last() *Edge {
	if len(p) == 0 {
		return nil
	}
	return p[len(p)-1]
}

// String returns the vertices of the path separated by " → ".
//
// Intended to be used while debugging.
func (p Path) String() string {
	var sb strings.Builder
	for i, e := range p {
		if i == 0 {
			sb.WriteString(e.Origin().String())
		}
		sb.WriteString(" → ")
		sb.WriteString(e.Target().String())
	}
	return sb.String()
}
