package category

import "context"

// MainCategory is a top-level node of the catalog taxonomy.
type MainCategory struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Visible     bool   `json:"visible"`
	Order       int    `json:"order"`
}

// SubCategory is a second-level node referencing its parent category.
type SubCategory struct {
	ID          string `json:"id"`
	ParentID    string `json:"parentId"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Visible     bool   `json:"visible"`
	Order       int    `json:"order"`
}

// Sections is the whole taxonomy as stored and transferred.
type Sections struct {
	Main []MainCategory `json:"main"`
	Sub  []SubCategory  `json:"sub"`
}

// Children returns the sub-categories whose parent is id.
func (s Sections) Children(id string) []SubCategory {
	var out []SubCategory
	for _, c := range s.Sub {
		if c.ParentID == id {
			out = append(out, c)
		}
	}
	return out
}

// Repository is the capability set shared by the remote and local
// taxonomy stores.
type Repository interface {
	Get(ctx context.Context) (*Sections, error)
	Save(ctx context.Context, s Sections) (*Sections, error)
}
