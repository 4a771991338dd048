package outliner

// Observer receives registry notifications. NodeAdded fires after the node is
// linked into its container (also when an already registered node is
// re-added elsewhere); NodeRemoved fires after it has been unlinked.
type Observer interface {
	NodeAdded(n *Node)
	NodeRemoved(n *Node)
}

// Registry owns the root-level node list and every node reachable from it.
// Observers are notified synchronously in subscription order.
//
// Registry is not safe for concurrent use; all calls must come from the
// thread that drives the editor's Update/Draw loop.
type Registry struct {
	roots     List
	observers []Observer
	nextID    uint32
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Subscribe appends an observer.
func (r *Registry) Subscribe(o Observer) {
	if o == nil {
		panic("outliner: cannot subscribe nil observer")
	}
	r.observers = append(r.observers, o)
}

// Unsubscribe removes a previously subscribed observer. No-op if absent.
func (r *Registry) Unsubscribe(o Observer) {
	for i, obs := range r.observers {
		if obs == o {
			r.observers = append(r.observers[:i], r.observers[i+1:]...)
			return
		}
	}
}

// Create makes a new root-level node and registers it.
func (r *Registry) Create(name string) *Node {
	return r.Add(r.newNode(name))
}

// CreateChild makes a new node and registers it as the last child of parent.
func (r *Registry) CreateChild(name string, parent *Node) *Node {
	return r.AddChild(r.newNode(name), parent)
}

func (r *Registry) newNode(name string) *Node {
	r.nextID++
	return &Node{ID: r.nextID, Name: name}
}

// Add appends n to the root list. If n is already registered it is detached
// from its current container first. Panics if n is nil.
func (r *Registry) Add(n *Node) *Node {
	if n == nil {
		panic("outliner: cannot add nil node")
	}
	n.detach()
	n.parent = nil
	r.roots.pushBack(n)
	r.notifyAdded(n)
	return n
}

// AddChild appends n to parent's children. If n is already registered it is
// detached first. Panics if either node is nil, if parent is not registered,
// or if parent is n or one of its descendants (cycle).
func (r *Registry) AddChild(n, parent *Node) *Node {
	if n == nil || parent == nil {
		panic("outliner: cannot add nil node")
	}
	if parent == n || isAncestor(n, parent) {
		panic("outliner: adding child would create a cycle")
	}
	if !r.Contains(parent) {
		panic("outliner: parent " + parent.Name + " is not registered")
	}
	n.detach()
	n.parent = parent
	parent.children.pushBack(n)
	r.notifyAdded(n)
	return n
}

// Remove unlinks n from its container. The subtree stays attached to n, but
// NodeRemoved is raised for n and every descendant (children first) so no
// per-node state outlives its registration. Panics if n is not registered.
func (r *Registry) Remove(n *Node) {
	if !r.Contains(n) {
		panic("outliner: remove of unregistered node")
	}
	n.detach()
	n.parent = nil
	r.notifyRemovedSubtree(n)
}

// Contains reports whether n is reachable from the root list. Descendants of
// a removed node are still linked to it but are not contained.
func (r *Registry) Contains(n *Node) bool {
	if n == nil {
		return false
	}
	for n.parent != nil {
		n = n.parent
	}
	return n.list == &r.roots
}

// Roots returns the live root-level list.
func (r *Registry) Roots() *List {
	return &r.roots
}

// Len returns the total number of registered nodes.
func (r *Registry) Len() int {
	count := 0
	for n := r.roots.first; n != nil; n = n.next {
		count++
		walkSubtree(n, func(*Node) { count++ })
	}
	return count
}

// Find returns the first node in pre-order with the given name.
func (r *Registry) Find(name string) (*Node, bool) {
	var found *Node
	var search func(l *List) bool
	search = func(l *List) bool {
		for n := l.first; n != nil; n = n.next {
			if n.Name == name {
				found = n
				return true
			}
			if search(&n.children) {
				return true
			}
		}
		return false
	}
	search(&r.roots)
	return found, found != nil
}

func (r *Registry) notifyAdded(n *Node) {
	for _, o := range r.observers {
		o.NodeAdded(n)
	}
}

func (r *Registry) notifyRemovedSubtree(n *Node) {
	for c := n.children.first; c != nil; c = c.next {
		r.notifyRemovedSubtree(c)
	}
	for _, o := range r.observers {
		o.NodeRemoved(n)
	}
}
