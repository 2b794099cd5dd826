package menu

// Item represents a single flat menu item as handed over by the data source.
// Items reference their parent by id; BuildTree turns them into Nodes.
type Item struct {
	// ID is the unique identifier of the menu item.
	ID int64 `json:"id" validate:"gt=0"`

	// Order is the sort key provided by the source. It is carried through
	// but never used to reorder siblings.
	Order int `json:"order"`

	// ParentID is the id of the parent item, 0 for top-level items.
	ParentID int64 `json:"parent" validate:"gte=0"`

	// Title is the label of the menu item.
	Title string `json:"title"`

	// URL is the link target of the menu item.
	URL string `json:"url"`

	// Attr is the title attribute of the link.
	Attr string `json:"attr"`

	// Target is the link target (e.g. _blank).
	Target string `json:"target"`

	// Classes holds the space separated CSS classes.
	Classes string `json:"classes"`

	// XFN is the link relationship.
	XFN string `json:"xfn"`

	// Description is an optional description of the menu item.
	Description string `json:"description"`

	// ObjectID is the id of the object the item points to.
	ObjectID int64 `json:"object_id"`

	// Object is the kind of object the item points to (page, category, custom, ...).
	Object string `json:"object"`

	// ObjectSlug is the slug of the linked object.
	ObjectSlug string `json:"object_slug"`

	// Type is the item type (post_type, taxonomy, custom).
	Type string `json:"type"`

	// TypeLabel is the human readable item type.
	TypeLabel string `json:"type_label"`
}

// Node is a menu item placed in the tree.
type Node struct {
	Item

	// Children are the nested items in input order. Never nil.
	Children []*Node `json:"children"`

	// pos is the index of the item in the input sequence.
	pos int
}

func newNode(item Item, pos int) *Node {
	return &Node{
		Item:     item,
		Children: []*Node{},
		pos:      pos,
	}
}
