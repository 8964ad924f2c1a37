package mapper

import (
	"strings"

	"github.com/meetjaka/voltherm-sub000/internal/domain/category"
	"github.com/meetjaka/voltherm-sub000/internal/remote"
)

// SectionsFromWire converts the backend taxonomy setting.
func SectionsFromWire(w remote.Sections) category.Sections {
	s := category.Sections{
		Main: make([]category.MainCategory, len(w.MainCategories)),
		Sub:  make([]category.SubCategory, len(w.SubCategories)),
	}
	for i, c := range w.MainCategories {
		s.Main[i] = category.MainCategory{
			ID:          c.CategoryID,
			Name:        c.CategoryName,
			Slug:        c.Slug,
			Description: c.Description,
			Icon:        c.Icon,
			Visible:     c.IsVisible,
			Order:       c.DisplayOrder,
		}
	}
	for i, c := range w.SubCategories {
		s.Sub[i] = category.SubCategory{
			ID:          c.SubCategoryID,
			ParentID:    c.ParentCategory,
			Name:        c.SubCategoryName,
			Slug:        c.Slug,
			Description: c.Description,
			Icon:        c.Icon,
			Visible:     c.IsVisible,
			Order:       c.DisplayOrder,
		}
	}
	return s
}

// SectionsPayload builds the wire form of the taxonomy setting.
func SectionsPayload(s category.Sections) (remote.Sections, error) {
	w := remote.Sections{
		MainCategories: make([]remote.MainCategory, len(s.Main)),
		SubCategories:  make([]remote.SubCategory, len(s.Sub)),
	}
	for i, c := range s.Main {
		w.MainCategories[i] = remote.MainCategory{
			CategoryID:   strings.TrimSpace(c.ID),
			CategoryName: strings.TrimSpace(c.Name),
			Slug:         strings.TrimSpace(c.Slug),
			Description:  strings.TrimSpace(c.Description),
			Icon:         strings.TrimSpace(c.Icon),
			IsVisible:    c.Visible,
			DisplayOrder: max(c.Order, 0),
		}
	}
	for i, c := range s.Sub {
		w.SubCategories[i] = remote.SubCategory{
			SubCategoryID:   strings.TrimSpace(c.ID),
			ParentCategory:  strings.TrimSpace(c.ParentID),
			SubCategoryName: strings.TrimSpace(c.Name),
			Slug:            strings.TrimSpace(c.Slug),
			Description:     strings.TrimSpace(c.Description),
			Icon:            strings.TrimSpace(c.Icon),
			IsVisible:       c.Visible,
			DisplayOrder:    max(c.Order, 0),
		}
	}
	return gate(w)
}
