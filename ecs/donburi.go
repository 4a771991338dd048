package ecs

import (
	"github.com/phanxgames/outliner"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// HierarchyEventKind identifies a HierarchyEvent.
type HierarchyEventKind uint8

const (
	EventNodeAdded   HierarchyEventKind = iota // node registered or re-registered
	EventNodeRemoved                           // node unregistered
	EventNodeMoved                             // a move was applied to the selection
)

// HierarchyEvent describes one change to the outliner tree.
type HierarchyEvent struct {
	Kind   HierarchyEventKind
	NodeID uint32
	Name   string
	// Entity is the node's mirror entity. For EventNodeRemoved it is no
	// longer valid when the event is processed.
	Entity donburi.Entity
	// Move is set for EventNodeMoved; NodeID, Name and Entity then describe
	// the move target (zero for a promote).
	Move outliner.Move
}

// HierarchyEventType is the Donburi event type for outliner changes.
var HierarchyEventType = events.NewEventType[HierarchyEvent]()

// NodeData is the component attached to every mirror entity.
type NodeData struct {
	ID   uint32
	Name string
	Node *outliner.Node
}

// NodeComponent is the component type holding NodeData.
var NodeComponent = donburi.NewComponentType[NodeData]()

// Bridge is an outliner.Observer that mirrors nodes as Donburi entities.
type Bridge struct {
	world    donburi.World
	entities map[*outliner.Node]donburi.Entity
}

// NewBridge creates a Bridge publishing into world.
func NewBridge(world donburi.World) *Bridge {
	return &Bridge{
		world:    world,
		entities: make(map[*outliner.Node]donburi.Entity),
	}
}

// Attach subscribes the bridge to h's registry, creates entities for the
// nodes already registered, and chains h.OnMove so applied moves are
// published.
func (b *Bridge) Attach(h *outliner.Hierarchy) {
	reg := h.Registry()
	for n := range reg.Roots().All() {
		b.mirror(n, nil)
	}
	reg.Subscribe(b)

	prev := h.OnMove
	h.OnMove = func(m outliner.Move) {
		if prev != nil {
			prev(m)
		}
		b.publishMove(m)
	}
}

// Entity returns the mirror entity for n.
func (b *Bridge) Entity(n *outliner.Node) (donburi.Entity, bool) {
	e, ok := b.entities[n]
	return e, ok
}

// Len returns the number of mirrored nodes.
func (b *Bridge) Len() int {
	return len(b.entities)
}

// NodeAdded implements outliner.Observer. A re-registered subtree whose
// descendants were removed earlier gets its mirrors back, with one
// EventNodeAdded per recreated entity in pre-order. A node re-added while
// still mirrored (reparented through the registry) publishes one event for
// itself.
func (b *Bridge) NodeAdded(n *outliner.Node) {
	if e, ok := b.entities[n]; ok {
		b.publishAdded(n, e)
	}
	b.mirror(n, b.publishAdded)
}

func (b *Bridge) publishAdded(n *outliner.Node, e donburi.Entity) {
	HierarchyEventType.Publish(b.world, HierarchyEvent{
		Kind:   EventNodeAdded,
		NodeID: n.ID,
		Name:   n.Name,
		Entity: e,
	})
}

// NodeRemoved implements outliner.Observer.
func (b *Bridge) NodeRemoved(n *outliner.Node) {
	e, ok := b.entities[n]
	if !ok {
		return
	}
	delete(b.entities, n)
	if b.world.Valid(e) {
		b.world.Remove(e)
	}
	HierarchyEventType.Publish(b.world, HierarchyEvent{
		Kind:   EventNodeRemoved,
		NodeID: n.ID,
		Name:   n.Name,
		Entity: e,
	})
}

// mirror creates missing entities for n and its subtree, calling created
// (if non-nil) for each new one.
func (b *Bridge) mirror(n *outliner.Node, created func(*outliner.Node, donburi.Entity)) {
	if _, ok := b.entities[n]; !ok {
		e := b.world.Create(NodeComponent)
		NodeComponent.SetValue(b.world.Entry(e), NodeData{ID: n.ID, Name: n.Name, Node: n})
		b.entities[n] = e
		if created != nil {
			created(n, e)
		}
	}
	for c := range n.Children().All() {
		b.mirror(c, created)
	}
}

func (b *Bridge) publishMove(m outliner.Move) {
	ev := HierarchyEvent{Kind: EventNodeMoved, Move: m}
	if m.Target != nil {
		ev.NodeID = m.Target.ID
		ev.Name = m.Target.Name
		ev.Entity = b.entities[m.Target]
	}
	HierarchyEventType.Publish(b.world, ev)
}
