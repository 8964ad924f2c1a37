package mapper

import (
	"strings"

	"github.com/meetjaka/voltherm-sub000/internal/domain/inquiry"
	"github.com/meetjaka/voltherm-sub000/internal/remote"
)

// InquiryFromWire converts a backend inquiry. A missing status reads as new.
func InquiryFromWire(w remote.Inquiry) inquiry.Inquiry {
	in := inquiry.Inquiry{
		ID:           w.InquiryID,
		Name:         w.CustomerName,
		Email:        w.Email,
		Phone:        w.Phone,
		Company:      w.CompanyName,
		Requirements: w.Requirements,
		Status:       inquiry.Status(w.Status),
		Notes:        w.AdminNotes,
	}
	if in.Status == "" {
		in.Status = inquiry.StatusNew
	}
	if w.CreatedAt != nil {
		in.CreatedAt = *w.CreatedAt
	}
	for _, id := range w.InterestedProducts {
		in.Products = append(in.Products, inquiry.ProductRef{ID: id})
	}
	return in
}

// InquiriesFromWire converts a list of backend inquiries.
func InquiriesFromWire(ws []remote.Inquiry) []inquiry.Inquiry {
	out := make([]inquiry.Inquiry, len(ws))
	for i, w := range ws {
		out[i] = InquiryFromWire(w)
	}
	return out
}

// InquiryPayload builds the create body of an inquiry. Referenced products
// travel as bare ids.
func InquiryPayload(in inquiry.Inquiry) (remote.Inquiry, error) {
	refs := make([]inquiry.ProductRef, len(in.Products))
	for i, r := range in.Products {
		refs[i] = inquiry.ProductRef{ID: strings.TrimSpace(r.ID)}
	}
	return gate(remote.Inquiry{
		CustomerName:       strings.TrimSpace(in.Name),
		Email:              strings.TrimSpace(in.Email),
		Phone:              strings.TrimSpace(in.Phone),
		CompanyName:        strings.TrimSpace(in.Company),
		Requirements:       strings.TrimSpace(in.Requirements),
		Status:             string(in.Status),
		InterestedProducts: inquiry.ProductIDs(refs),
	})
}

// StatusPayload builds the body of an inquiry status transition.
func StatusPayload(status inquiry.Status, notes string) (remote.StatusUpdate, error) {
	return gate(remote.StatusUpdate{
		Status: string(status),
		Notes:  strings.TrimSpace(notes),
	})
}
