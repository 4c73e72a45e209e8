package flowgraph

import "strings"

// Reason is the propagation-reason tag attached to an edge by the solver.
type Reason string

// Known reasons. Any other tag is a plain transfer reason.
const (
	ReasonCallSourceMethod    Reason = "Call source method"
	ReasonSpringEntryParam    Reason = "Spring entry method param"
	ReasonInstanceFieldStore  Reason = "Instance field store"
	ReasonArrayIndexStore     Reason = "Array index store"
	ReasonTaintObjectTransfer Reason = "Taint object transfer"
)

// Is reports whether r names the same reason as other, ignoring case.
func (r Reason) Is(other Reason) bool {
	return strings.EqualFold(string(r), string(other))
}

// IsStart reports whether an edge with this reason originates a taint flow.
func (r Reason) IsStart() bool {
	return r.Is(ReasonCallSourceMethod) || r.Is(ReasonSpringEntryParam)
}

func (r Reason) String() string {
	return string(r)
}
