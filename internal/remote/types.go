package remote

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"
)

// Product is the backend's product schema.
type Product struct {
	ProductID           string     `json:"productId,omitempty"`
	ProductName         string     `json:"productName"`
	Description         string     `json:"description"`
	Image               string     `json:"image,omitempty"`
	QuickSpecs          StringList `json:"quickSpecs"`
	SpecificationFields []string   `json:"specificationFields"`
	SpecificationValues []string   `json:"specificationValues"`
	Price               *Number    `json:"price,omitempty"`
	Capacity            string     `json:"capacity,omitempty"`
	Voltage             string     `json:"voltage,omitempty"`
	Category            string     `json:"category,omitempty"`
	SubCategory         string     `json:"subCategory,omitempty"`
	Featured            bool       `json:"featured"`
	IsAvailable         *bool      `json:"isAvailable,omitempty"`
	PDFURL              string     `json:"pdfUrl,omitempty"`
}

// Certificate is the backend's certificate schema.
type Certificate struct {
	CertificateID string `json:"certificateId,omitempty"`
	ImageURL      string `json:"imageUrl,omitempty"`
	AltText       string `json:"altText"`
	Title         string `json:"title"`
}

// Inquiry is the backend's inquiry schema.
type Inquiry struct {
	InquiryID          string     `json:"inquiryId,omitempty"`
	CustomerName       string     `json:"customerName"`
	Email              string     `json:"email"`
	Phone              string     `json:"phone"`
	CompanyName        string     `json:"companyName,omitempty"`
	Requirements       string     `json:"requirements"`
	Status             string     `json:"status,omitempty"`
	InterestedProducts []string   `json:"interestedProducts"`
	CreatedAt          *time.Time `json:"createdAt,omitempty"`
	AdminNotes         string     `json:"adminNotes,omitempty"`
}

// StatusUpdate is the body of an inquiry status transition.
type StatusUpdate struct {
	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`
}

// ContactInfo is the backend's contact information schema.
type ContactInfo struct {
	SalesContact    Contact  `json:"salesContact"`
	BusinessContact Contact  `json:"businessContact"`
	SupportContact  Contact  `json:"supportContact"`
	SocialMedia     *Social  `json:"socialMedia,omitempty"`
	MainAddress     *Address `json:"mainAddress,omitempty"`
	BranchOffices   []Office `json:"branchOffices"`
}

// Contact is a department contact line.
type Contact struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Social holds social media URLs.
type Social struct {
	Facebook  string `json:"facebook,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	YouTube   string `json:"youtube,omitempty"`
}

// Address is a postal address.
type Address struct {
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	Pincode      string `json:"pincode"`
}

// Office is a branch office.
type Office struct {
	OfficeID     string `json:"officeId,omitempty"`
	OfficeName   string `json:"officeName"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city"`
	State        string `json:"state"`
	Pincode      string `json:"pincode"`
	Phone        string `json:"phone"`
	MapEmbedURL  string `json:"mapEmbedUrl"`
}

// Sections is the backend's catalog taxonomy setting.
type Sections struct {
	MainCategories []MainCategory `json:"mainCategories"`
	SubCategories  []SubCategory  `json:"subCategories"`
}

// MainCategory is a top-level taxonomy node.
type MainCategory struct {
	CategoryID   string `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	Slug         string `json:"slug"`
	Description  string `json:"description,omitempty"`
	Icon         string `json:"icon,omitempty"`
	IsVisible    bool   `json:"isVisible"`
	DisplayOrder int    `json:"displayOrder"`
}

// SubCategory is a second-level taxonomy node.
type SubCategory struct {
	SubCategoryID   string `json:"subCategoryId"`
	ParentCategory  string `json:"parentCategory"`
	SubCategoryName string `json:"subCategoryName"`
	Slug            string `json:"slug"`
	Description     string `json:"description,omitempty"`
	Icon            string `json:"icon,omitempty"`
	IsVisible       bool   `json:"isVisible"`
	DisplayOrder    int    `json:"displayOrder"`
}

// Credentials is the login request body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Profile is the authenticated admin profile.
type Profile struct {
	Username string `json:"username"`
	Role     string `json:"role,omitempty"`
}

// StringList is a list of strings on the wire. Older backend records carry
// the list as one comma separated string; that shape is accepted here and
// flagged as Legacy, and is never written back.
type StringList struct {
	Values []string
	Legacy bool
}

// MarshalJSON always writes an array.
func (l StringList) MarshalJSON() ([]byte, error) {
	if l.Values == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.Values)
}

// UnmarshalJSON accepts an array of strings, a CSV string or null.
func (l *StringList) UnmarshalJSON(data []byte) error {
	d := jx.DecodeBytes(data)
	switch d.Next() {
	case jx.Null:
		*l = StringList{}
		return d.Null()
	case jx.String:
		s, err := d.Str()
		if err != nil {
			return err
		}
		*l = StringList{Values: splitCSV(s), Legacy: true}
		return nil
	case jx.Array:
		var values []string
		err := d.Arr(func(d *jx.Decoder) error {
			s, err := d.Str()
			if err != nil {
				return err
			}
			values = append(values, s)
			return nil
		})
		if err != nil {
			return errors.Wrap(err, "decode string list")
		}
		*l = StringList{Values: values}
		return nil
	default:
		return errors.Errorf("unexpected string list type %s", d.Next())
	}
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Number is a decimal JSON number. Numeric strings are accepted on decode.
type Number struct {
	decimal.Decimal
}

// NewNumber wraps d.
func NewNumber(d decimal.Decimal) *Number {
	return &Number{Decimal: d}
}

// MarshalJSON writes a bare JSON number.
func (n Number) MarshalJSON() ([]byte, error) {
	return []byte(n.Decimal.String()), nil
}

// UnmarshalJSON accepts a JSON number or a string holding one.
func (n *Number) UnmarshalJSON(data []byte) error {
	d := jx.DecodeBytes(data)
	var text string
	switch d.Next() {
	case jx.Number:
		v, err := d.Num()
		if err != nil {
			return err
		}
		text = v.String()
	case jx.String:
		v, err := d.Str()
		if err != nil {
			return err
		}
		text = strings.TrimSpace(v)
	case jx.Null:
		*n = Number{}
		return d.Null()
	default:
		return errors.Errorf("unexpected number type %s", d.Next())
	}
	if text == "" {
		*n = Number{}
		return nil
	}
	v, err := decimal.NewFromString(text)
	if err != nil {
		return errors.Wrapf(err, "parse number %q", text)
	}
	n.Decimal = v
	return nil
}
