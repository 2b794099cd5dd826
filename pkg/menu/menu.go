package menu

// Menu represents a navigation menu.
type Menu struct {
	// ID is the menu (term) id.
	ID int64 `json:"ID"`

	// Name of the menu
	Name string `json:"name"`

	// Slug of the menu
	Slug string `json:"slug"`

	// Description of the menu
	Description string `json:"description"`

	// Count is the number of items in the menu
	Count int `json:"count"`

	// Meta holds the resource links
	Meta Meta `json:"meta"`
}

// Detail is a menu together with its nested item tree.
type Detail struct {
	Menu
	Items []*Node `json:"items"`
}

// Location is a theme menu location and the menu assigned to it.
type Location struct {
	// Slug identifies the location (e.g. header-menu).
	Slug string `json:"-"`

	// MenuID is the id of the menu assigned to the location.
	MenuID int64 `json:"ID"`

	// Label is the human readable location name.
	Label string `json:"label"`

	// Meta holds the resource links
	Meta Meta `json:"meta"`
}

// Meta wraps the links of a resource.
type Meta struct {
	Links Links `json:"links"`
}

// Links points to the collection and to the resource itself.
type Links struct {
	Collection string `json:"collection"`
	Self       string `json:"self"`
}
