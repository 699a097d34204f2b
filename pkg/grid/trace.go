package grid

// PushKind describes why a widget was displaced.
type PushKind string

const (
	// PushDown moves a widget below a dragged widget.
	PushDown PushKind = "push"
	// PushSquash shrinks a widget that cannot move any further.
	PushSquash PushKind = "squash"
	// PullUp lets a widget settle into space a dragged widget vacated.
	PullUp PushKind = "pull-up"
	// RunAway moves a widget away from a growing widget.
	RunAway PushKind = "run-away"
	// RunBack returns a displaced widget toward its pre-gesture rectangle.
	RunBack PushKind = "run-back"
)

// Push is one displacement performed while handling a gesture update.
type Push struct {
	From string   `json:"from"`
	To   string   `json:"to"`
	Kind PushKind `json:"kind"`
	Axis string   `json:"axis,omitempty"`
	Rect Rect     `json:"rect"`
}

// Trace lists the displacements of one update in the order they happened.
type Trace []Push

// Widgets returns every widget ID that appears in the trace, in order of
// first appearance.
func (t Trace) Widgets() []string {
	seen := make(map[string]bool)
	var ids []string
	for _, p := range t {
		for _, id := range []string{p.From, p.To} {
			if id != "" && !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return ids
}

// recorder collects pushes and can roll back to an earlier mark.
type recorder struct {
	pushes Trace
}

func (r *recorder) add(p Push) { r.pushes = append(r.pushes, p) }

func (r *recorder) mark() int { return len(r.pushes) }

func (r *recorder) rollback(mark int) { r.pushes = r.pushes[:mark] }
