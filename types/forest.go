package types

// NodeID indexes a node in an AccountUpdateForest.
type NodeID int

// NoParent marks a root when adding nodes.
const NoParent NodeID = -1

type forestNode struct {
	update   *AccountUpdate
	parent   NodeID
	children []NodeID
}

// AccountUpdateForest stores a forest of account updates in one arena.
// Roots and children keep insertion order, which is the application order.
type AccountUpdateForest struct {
	nodes []forestNode
	roots []NodeID
}

func NewAccountUpdateForest() *AccountUpdateForest {
	return &AccountUpdateForest{}
}

// Add appends u under parent, or as a new root when parent is NoParent.
func (f *AccountUpdateForest) Add(parent NodeID, u *AccountUpdate) NodeID {
	id := NodeID(len(f.nodes))
	f.nodes = append(f.nodes, forestNode{update: u, parent: parent})
	if parent == NoParent {
		f.roots = append(f.roots, id)
	} else {
		f.nodes[parent].children = append(f.nodes[parent].children, id)
	}
	return id
}

func (f *AccountUpdateForest) AddRoot(u *AccountUpdate) NodeID {
	return f.Add(NoParent, u)
}

// AddTree appends a whole tree under parent and returns its root id.
func (f *AccountUpdateForest) AddTree(parent NodeID, t *AccountUpdateTree) NodeID {
	id := f.Add(parent, t.Update)
	for _, c := range t.Children {
		f.AddTree(id, c)
	}
	return id
}

func (f *AccountUpdateForest) Len() int {
	return len(f.nodes)
}

func (f *AccountUpdateForest) Roots() []NodeID {
	return f.roots
}

func (f *AccountUpdateForest) Children(id NodeID) []NodeID {
	return f.nodes[id].children
}

func (f *AccountUpdateForest) Parent(id NodeID) NodeID {
	return f.nodes[id].parent
}

func (f *AccountUpdateForest) Update(id NodeID) *AccountUpdate {
	return f.nodes[id].update
}

// ForEachNode visits every node parent-first, left to right.
func (f *AccountUpdateForest) ForEachNode(fn func(id NodeID, depth int)) {
	var visit func(id NodeID, depth int)
	visit = func(id NodeID, depth int) {
		fn(id, depth)
		for _, c := range f.nodes[id].children {
			visit(c, depth+1)
		}
	}
	for _, r := range f.roots {
		visit(r, 0)
	}
}

// ForEachNodeInverted visits every node children-first, left to right.
func (f *AccountUpdateForest) ForEachNodeInverted(fn func(id NodeID, depth int)) {
	var visit func(id NodeID, depth int)
	visit = func(id NodeID, depth int) {
		for _, c := range f.nodes[id].children {
			visit(c, depth+1)
		}
		fn(id, depth)
	}
	for _, r := range f.roots {
		visit(r, 0)
	}
}

// Reduce folds the subtree at id bottom-up: children are reduced left to
// right before fn sees their results.
func Reduce[R any](f *AccountUpdateForest, id NodeID, fn func(id NodeID, children []R) R) R {
	kids := f.nodes[id].children
	results := make([]R, len(kids))
	for i, c := range kids {
		results[i] = Reduce(f, c, fn)
	}
	return fn(id, results)
}

// Tree copies the subtree at id out of the arena.
func (f *AccountUpdateForest) Tree(id NodeID) *AccountUpdateTree {
	return Reduce(f, id, func(id NodeID, children []*AccountUpdateTree) *AccountUpdateTree {
		return &AccountUpdateTree{Update: f.nodes[id].update, Children: children}
	})
}

// Clone deep-copies the forest and its updates.
func (f *AccountUpdateForest) Clone() *AccountUpdateForest {
	c := &AccountUpdateForest{
		nodes: make([]forestNode, len(f.nodes)),
		roots: append([]NodeID(nil), f.roots...),
	}
	for i, n := range f.nodes {
		c.nodes[i] = forestNode{
			update:   n.update.Clone(),
			parent:   n.parent,
			children: append([]NodeID(nil), n.children...),
		}
	}
	return c
}

// AccountUpdateTree is the pointer form used to build a tree before it is
// added to a forest.
type AccountUpdateTree struct {
	Update   *AccountUpdate
	Children []*AccountUpdateTree
}

func NewAccountUpdateTree(u *AccountUpdate, children ...*AccountUpdateTree) *AccountUpdateTree {
	return &AccountUpdateTree{Update: u, Children: children}
}

// Forest wraps the tree in a one-root forest.
func (t *AccountUpdateTree) Forest() *AccountUpdateForest {
	f := NewAccountUpdateForest()
	f.AddTree(NoParent, t)
	return f
}
