package grip

import "github.com/go-gl/mathgl/mgl32"

// --- ID counter ---

// nodeIDCounter is a plain counter (no atomic; grip is single-threaded).
var nodeIDCounter uint64

func nextNodeID() Target {
	nodeIDCounter++
	return Target(nodeIDCounter)
}

// --- Node ---

// Node is an element of the in-memory transform tree that Graph exposes as
// a Host. Its ID doubles as the interaction Target.
type Node struct {
	// Identity
	ID   Target
	Name string

	// Hierarchy
	Parent   *Node
	children []*Node
	graph    *Graph

	// Transform (parent space). Use the setters, or call MarkDirty after
	// writing fields directly.
	Position    mgl32.Vec3
	Orientation mgl32.Quat
	Scale       mgl32.Vec3

	// Computed, refreshed lazily by worldMatrix.
	localMatrix    mgl32.Mat4
	worldMatrix    mgl32.Mat4
	transformDirty bool

	// Metadata
	UserData any

	disposed bool
}

// NewNode creates a detached node with an identity transform.
func NewNode(name string) *Node {
	return &Node{
		ID:             nextNodeID(),
		Name:           name,
		Orientation:    mgl32.QuatIdent(),
		Scale:          mgl32.Vec3{1, 1, 1},
		transformDirty: true,
	}
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("grip: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("grip: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	markSubtreeDirty(child)
	if n.graph != nil {
		n.graph.register(child)
	}
	if globalDebug {
		debugCheckTreeDepth(child)
	}
}

// RemoveChild detaches child from this node and from the graph index.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("grip: child's parent is not this node")
	}
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			break
		}
	}
	child.Parent = nil
	if child.graph != nil {
		child.graph.unregister(child)
	}
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// FindChild returns the first descendant named name (depth-first), or nil.
func (n *Node) FindChild(name string) *Node {
	for _, c := range n.children {
		if c.Name == name {
			return c
		}
		if found := c.FindChild(name); found != nil {
			return found
		}
	}
	return nil
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.graph = nil
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node (or node itself).
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}

// --- Graph ---

// Graph is an in-memory Host: a transform tree rooted at Root plus an index
// from Target to Node. Nodes become reachable as targets once added under
// the root.
type Graph struct {
	root  *Node
	nodes map[Target]*Node
}

// NewGraph creates a graph with an empty root node.
func NewGraph() *Graph {
	g := &Graph{nodes: make(map[Target]*Node)}
	g.root = NewNode("root")
	g.root.graph = g
	g.nodes[g.root.ID] = g.root
	return g
}

// Root returns the graph's root node.
func (g *Graph) Root() *Node {
	return g.root
}

// Node returns the node for target, or nil.
func (g *Graph) Node(target Target) *Node {
	return g.nodes[target]
}

// Len returns the number of indexed nodes, including the root.
func (g *Graph) Len() int {
	return len(g.nodes)
}

func (g *Graph) register(n *Node) {
	n.graph = g
	g.nodes[n.ID] = n
	for _, c := range n.children {
		g.register(c)
	}
}

func (g *Graph) unregister(n *Node) {
	n.graph = nil
	delete(g.nodes, n.ID)
	for _, c := range n.children {
		g.unregister(c)
	}
}

// --- Host ---

// Convert maps p between target's spaces. Unknown targets use identity
// frames.
func (g *Graph) Convert(target Target, p mgl32.Vec3, from, to Space) mgl32.Vec3 {
	if from == to {
		return p
	}
	n := g.nodes[target]
	if n == nil {
		return p
	}
	world := transformPoint(n.spaceMatrix(from), p)
	return transformPoint(invertMatrix(n.spaceMatrix(to)), world)
}

// Position returns target's position in parent space.
func (g *Graph) Position(target Target) mgl32.Vec3 {
	if n := g.nodes[target]; n != nil {
		return n.Position
	}
	return mgl32.Vec3{}
}

// SetPosition moves target within its parent space.
func (g *Graph) SetPosition(target Target, p mgl32.Vec3) {
	if n := g.nodes[target]; n != nil {
		n.SetPosition(p)
	}
}

// Orientation returns target's orientation relative to its parent.
func (g *Graph) Orientation(target Target) mgl32.Quat {
	if n := g.nodes[target]; n != nil {
		return n.Orientation
	}
	return mgl32.QuatIdent()
}

// SetOrientation sets target's orientation relative to its parent.
func (g *Graph) SetOrientation(target Target, q mgl32.Quat) {
	if n := g.nodes[target]; n != nil {
		n.SetOrientation(q)
	}
}
