package grip

import "fmt"

// syntheticCall is one queued controller entry-point call.
type syntheticCall struct {
	action   string
	target   Target
	ray      Ray
	collided bool
}

// Replay builds a Graph from a Script, attaches every node that declares an
// interaction, and feeds the script's steps to a Controller one call per
// frame.
type Replay struct {
	graph   *Graph
	ctrl    *Controller
	names   map[string]Target
	order   []*Node
	steps   []resolvedStep
	queue   []syntheticCall
	started map[Target]bool // result of the last start per target

	cursor    int
	waitCount int
	frame     int
	done      bool
}

// NewReplay builds the scene described by s. The delegate d, which may be
// nil, is attached to every interactive node.
func NewReplay(s *Script, d Delegate) (*Replay, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	g := NewGraph()
	r := &Replay{
		graph:   g,
		ctrl:    NewController(g),
		names:   make(map[string]Target, len(s.Nodes)),
		started: make(map[Target]bool),
	}

	for _, sn := range s.Nodes {
		t, err := sn.transform()
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", sn.Name, err)
		}
		n := NewNode(sn.Name)
		n.Position = t.position
		n.Orientation = t.orientation
		n.Scale = t.scale
		parent := g.Root()
		if sn.Parent != "" {
			parent = g.Node(r.names[sn.Parent])
		}
		parent.AddChild(n)
		r.names[sn.Name] = n.ID
		r.order = append(r.order, n)

		if sn.Interaction != nil {
			typ, err := sn.Interaction.interactionType()
			if err != nil {
				return nil, fmt.Errorf("node %q: %w", sn.Name, err)
			}
			r.ctrl.Attach(n.ID, typ, d)
		}
	}

	r.steps = make([]resolvedStep, 0, len(s.Steps))
	for i, st := range s.Steps {
		rs, err := st.resolve(r.Target)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		r.steps = append(r.steps, rs)
	}
	return r, nil
}

// Graph returns the scene graph the replay drives.
func (r *Replay) Graph() *Graph { return r.graph }

// Controller returns the controller the replay drives.
func (r *Replay) Controller() *Controller { return r.ctrl }

// Nodes returns the script's nodes in declaration order.
func (r *Replay) Nodes() []*Node { return r.order }

// Target resolves a node name.
func (r *Replay) Target(name string) (Target, bool) {
	t, ok := r.names[name]
	return t, ok
}

// Started reports whether the most recent start step on target was accepted.
func (r *Replay) Started(target Target) bool { return r.started[target] }

// Frame returns the number of frames stepped so far.
func (r *Replay) Frame() int { return r.frame }

// Done reports whether every step has been executed.
func (r *Replay) Done() bool { return r.done }

// Run steps until done and returns the number of frames taken.
func (r *Replay) Run() int {
	for !r.done {
		r.Step()
	}
	return r.frame
}

// Step advances the replay by one frame, issuing at most one controller call.
func (r *Replay) Step() {
	if r.done {
		return
	}
	r.frame++

	if len(r.queue) == 0 && r.waitCount == 0 {
		if r.cursor >= len(r.steps) {
			r.done = true
			return
		}
		r.enqueue(r.steps[r.cursor])
		r.cursor++
	}

	switch {
	case r.waitCount > 0:
		r.waitCount--
	case len(r.queue) > 0:
		call := r.queue[0]
		copy(r.queue, r.queue[1:])
		r.queue = r.queue[:len(r.queue)-1]
		r.exec(call)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(r.queue) == 0 {
		r.done = true
	}
}

// enqueue expands a step into synthetic calls or wait frames.
func (r *Replay) enqueue(st resolvedStep) {
	switch st.action {
	case "wait":
		r.waitCount = st.frames
	case "drag":
		r.queue = append(r.queue, syntheticCall{action: "start", target: st.target, ray: st.from})
		steps := st.frames - 2
		for i := 1; i <= steps; i++ {
			t := float32(i) / float32(steps)
			r.queue = append(r.queue, syntheticCall{
				action:   "update",
				target:   st.target,
				ray:      lerpRay(st.from, st.to, t),
				collided: st.collided,
			})
		}
		r.queue = append(r.queue, syntheticCall{action: "end", target: st.target, ray: st.to})
	default:
		r.queue = append(r.queue, syntheticCall{
			action:   st.action,
			target:   st.target,
			ray:      st.ray,
			collided: st.collided,
		})
	}
}

func (r *Replay) exec(call syntheticCall) {
	switch call.action {
	case "start":
		r.started[call.target] = r.ctrl.DragStarted(call.target, call.ray)
	case "update":
		r.ctrl.DragUpdated(call.target, call.ray, call.collided)
	case "end":
		r.ctrl.DragEnded(call.target, call.ray)
	case "cancel":
		r.ctrl.DragCancelled(call.target)
	}
}

func lerpRay(a, b Ray, t float32) Ray {
	return Ray{
		Origin:    a.Origin.Add(b.Origin.Sub(a.Origin).Mul(t)),
		Direction: a.Direction.Add(b.Direction.Sub(a.Direction).Mul(t)),
	}
}
