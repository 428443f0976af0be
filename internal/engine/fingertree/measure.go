package fingertree

// Measurer defines the monoid measure for a tree: Identity is the measure
// of an empty sequence, Measure the measure of a single value, and Sum the
// associative combination of adjacent measures. Sum(Identity(), m) and
// Sum(m, Identity()) must equal m, and Measure must be pure: the tree
// caches measures and never re-derives them from values.
type Measurer[V, M any] interface {
	Identity() M
	Measure(value V) M
	Sum(a, b M) M
}

// measurer is the untyped form used by the spine. The generic facade wraps
// the caller's Measurer once per operation.
type measurer interface {
	identity() any
	measure(v any) any
	sum(a, b any) any
}

// adapted converts a typed Measurer to the untyped spine interface.
type adapted[MS Measurer[V, M], V, M any] struct {
	ms MS
}

func (a adapted[MS, V, M]) identity() any     { return a.ms.Identity() }
func (a adapted[MS, V, M]) measure(v any) any { return a.ms.Measure(v.(V)) }
func (a adapted[MS, V, M]) sum(x, y any) any  { return a.ms.Sum(x.(M), y.(M)) }

// nodeMeasurer reinterprets measurement one spine level down, where the
// elements are interior nodes carrying cached measures.
type nodeMeasurer struct {
	measurer
}

func (nm nodeMeasurer) measure(v any) any { return v.(*node).m }
