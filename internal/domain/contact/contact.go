package contact

import (
	"context"

	"github.com/go-faster/errors"
)

// ErrOfficeNotFound is returned when a branch office id is unknown.
var ErrOfficeNotFound = errors.New("office not found")

// Info is the company contact block rendered in the footer and contact page.
type Info struct {
	Sales       ContactPerson `json:"sales"`
	Business    ContactPerson `json:"business"`
	Support     ContactPerson `json:"support"`
	Social      *SocialLinks  `json:"social,omitempty"`
	MainAddress *Address      `json:"mainAddress,omitempty"`
	Offices     []Office      `json:"offices"`
}

// ContactPerson is a department contact line.
type ContactPerson struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// SocialLinks holds the optional social media profile URLs.
type SocialLinks struct {
	Facebook  string `json:"facebook,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	YouTube   string `json:"youtube,omitempty"`
}

// Address is a postal address.
type Address struct {
	Line1   string `json:"line1"`
	Line2   string `json:"line2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

// Office is a branch office record.
type Office struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city"`
	State        string `json:"state"`
	Pincode      string `json:"pincode"`
	Phone        string `json:"phone"`
	MapURL       string `json:"mapUrl"`
}

// IndexOffice returns the position of the office with id, or -1.
func (i Info) IndexOffice(id string) int {
	for n, o := range i.Offices {
		if o.ID == id {
			return n
		}
	}
	return -1
}

// Repository is the capability set shared by the remote and local contact
// stores.
type Repository interface {
	Get(ctx context.Context) (*Info, error)
	Update(ctx context.Context, info Info) (*Info, error)
	CreateOffice(ctx context.Context, o Office) (*Office, error)
	UpdateOffice(ctx context.Context, o Office) (*Office, error)
	DeleteOffice(ctx context.Context, id string) error
}
