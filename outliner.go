package outliner

// Relation classifies how a node returned by Previous or Next relates to the
// node the query started from.
type Relation uint8

const (
	RelationNone    Relation = iota // no row in that direction
	RelationChild                   // a descendant (first child, or deepest last child)
	RelationSibling                 // the adjacent node in the same container
	RelationParent                  // an ancestor (Previous) or an ancestor's next sibling (Next)
)

// String returns the relation name.
func (r Relation) String() string {
	switch r {
	case RelationNone:
		return "none"
	case RelationChild:
		return "child"
	case RelationSibling:
		return "sibling"
	case RelationParent:
		return "parent"
	default:
		return "unknown"
	}
}

// MoveKind selects a reparenting operation.
type MoveKind uint8

const (
	MovePlaceAbove    MoveKind = iota + 1 // splice the selection before Target
	MovePlaceBelow                        // splice the selection after Target
	MoveFirstChild                        // prepend the selection into Target's children
	MovePromoteToRoot                     // prepend the selection into the root list (Target unused)
)

// String returns the move kind name.
func (k MoveKind) String() string {
	switch k {
	case MovePlaceAbove:
		return "place_above"
	case MovePlaceBelow:
		return "place_below"
	case MoveFirstChild:
		return "first_child"
	case MovePromoteToRoot:
		return "promote"
	default:
		return "unknown"
	}
}

// Move is a recorded reparenting request applied to the current selection.
type Move struct {
	Kind   MoveKind
	Target *Node
}

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// DropZone identifies which part of a row the pointer is over during a drag.
type DropZone uint8

const (
	DropInto  DropZone = iota // middle band: become the row's first child
	DropAbove                 // upper band: insert before the row
	DropBelow                 // lower band: insert after the row
)
