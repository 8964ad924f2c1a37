package inquiry

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// Status is the processing state of an inquiry.
type Status string

const (
	StatusNew        Status = "new"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusRejected   Status = "rejected"
)

var (
	// ErrNotFound is returned when a requested inquiry does not exist.
	ErrNotFound = errors.New("inquiry not found")
	// ErrInvalidStatus is returned for a status outside the known set.
	ErrInvalidStatus = errors.New("invalid inquiry status")
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusInProgress, StatusCompleted, StatusRejected:
		return true
	default:
		return false
	}
}

// CanTransition reports whether an inquiry may move from one status to
// another. Transitions are admin-triggered and unordered: any known status
// may follow any other.
func CanTransition(from, to Status) error {
	if !from.Valid() && from != "" {
		return errors.Wrapf(ErrInvalidStatus, "from %q", from)
	}
	if !to.Valid() {
		return errors.Wrapf(ErrInvalidStatus, "to %q", to)
	}
	return nil
}

// Inquiry is a customer request submitted through the contact form.
type Inquiry struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone"`
	Company      string       `json:"company,omitempty"`
	Requirements string       `json:"requirements"`
	Status       Status       `json:"status"`
	Products     []ProductRef `json:"products,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
	Notes        string       `json:"notes,omitempty"`
}

// Submission is the anonymous visitor input of the inquiry form.
type Submission struct {
	Name         string       `json:"name" validate:"required"`
	Email        string       `json:"email" validate:"required,email"`
	Phone        string       `json:"phone" validate:"required"`
	Company      string       `json:"company"`
	Requirements string       `json:"requirements" validate:"required"`
	Products     []ProductRef `json:"products"`
}

// ProductRef references a product an inquiry is about. Stored data may hold
// either a bare id or a product object; both decode into a ProductRef.
type ProductRef struct {
	ID    string `json:"id"`
	Title string `json:"title,omitempty"`
}

// ProductIDs returns the bare ids of refs, skipping empty ones.
func ProductIDs(refs []ProductRef) []string {
	ids := make([]string, 0, len(refs))
	for _, r := range refs {
		if r.ID != "" {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

// UnmarshalJSON accepts a string id, a numeric id or an object with an id.
func (r *ProductRef) UnmarshalJSON(data []byte) error {
	d := jx.DecodeBytes(data)
	switch d.Next() {
	case jx.String:
		s, err := d.Str()
		if err != nil {
			return err
		}
		*r = ProductRef{ID: s}
		return nil
	case jx.Number:
		n, err := d.Num()
		if err != nil {
			return err
		}
		*r = ProductRef{ID: n.String()}
		return nil
	case jx.Null:
		*r = ProductRef{}
		return d.Null()
	case jx.Object:
		var ref ProductRef
		err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
			switch string(key) {
			case "id", "backendId":
				v, err := decodeScalar(d)
				if err != nil {
					return err
				}
				if ref.ID == "" || string(key) == "backendId" {
					ref.ID = v
				}
				return nil
			case "title":
				v, err := decodeScalar(d)
				if err != nil {
					return err
				}
				ref.Title = v
				return nil
			default:
				return d.Skip()
			}
		})
		if err != nil {
			return errors.Wrap(err, "decode product ref")
		}
		*r = ref
		return nil
	default:
		return errors.Errorf("unexpected product ref type %s", d.Next())
	}
}

func decodeScalar(d *jx.Decoder) (string, error) {
	switch d.Next() {
	case jx.String:
		return d.Str()
	case jx.Number:
		n, err := d.Num()
		if err != nil {
			return "", err
		}
		return n.String(), nil
	case jx.Null:
		return "", d.Null()
	default:
		return "", d.Skip()
	}
}

// Repository is the capability set shared by the remote and local inquiry
// stores.
type Repository interface {
	List(ctx context.Context) ([]Inquiry, error)
	Create(ctx context.Context, in Inquiry) (*Inquiry, error)
	UpdateStatus(ctx context.Context, id string, status Status, notes string) (*Inquiry, error)
	Delete(ctx context.Context, id string) error
}

// New builds an inquiry in status new from a visitor submission.
func New(s Submission, id string, now time.Time) Inquiry {
	return Inquiry{
		ID:           id,
		Name:         s.Name,
		Email:        s.Email,
		Phone:        s.Phone,
		Company:      s.Company,
		Requirements: s.Requirements,
		Status:       StatusNew,
		Products:     s.Products,
		CreatedAt:    now,
	}
}
