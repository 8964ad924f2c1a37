package mapper

import (
	"strings"

	"github.com/meetjaka/voltherm-sub000/internal/domain/contact"
	"github.com/meetjaka/voltherm-sub000/internal/remote"
)

// ContactInfoFromWire converts the backend contact block.
func ContactInfoFromWire(w remote.ContactInfo) contact.Info {
	info := contact.Info{
		Sales:    contact.ContactPerson(w.SalesContact),
		Business: contact.ContactPerson(w.BusinessContact),
		Support:  contact.ContactPerson(w.SupportContact),
		Offices:  make([]contact.Office, len(w.BranchOffices)),
	}
	if w.SocialMedia != nil {
		s := contact.SocialLinks(*w.SocialMedia)
		info.Social = &s
	}
	if w.MainAddress != nil {
		info.MainAddress = &contact.Address{
			Line1:   w.MainAddress.AddressLine1,
			Line2:   w.MainAddress.AddressLine2,
			City:    w.MainAddress.City,
			State:   w.MainAddress.State,
			Pincode: w.MainAddress.Pincode,
		}
	}
	for i, o := range w.BranchOffices {
		info.Offices[i] = OfficeFromWire(o)
	}
	return info
}

// ContactInfoPayload builds the wire form of the contact block.
func ContactInfoPayload(info contact.Info) (remote.ContactInfo, error) {
	w := remote.ContactInfo{
		SalesContact:    contactToWire(info.Sales),
		BusinessContact: contactToWire(info.Business),
		SupportContact:  contactToWire(info.Support),
		BranchOffices:   make([]remote.Office, len(info.Offices)),
	}
	if s := info.Social; s != nil {
		w.SocialMedia = &remote.Social{
			Facebook:  strings.TrimSpace(s.Facebook),
			Twitter:   strings.TrimSpace(s.Twitter),
			LinkedIn:  strings.TrimSpace(s.LinkedIn),
			Instagram: strings.TrimSpace(s.Instagram),
			YouTube:   strings.TrimSpace(s.YouTube),
		}
	}
	if a := info.MainAddress; a != nil {
		w.MainAddress = &remote.Address{
			AddressLine1: strings.TrimSpace(a.Line1),
			AddressLine2: strings.TrimSpace(a.Line2),
			City:         strings.TrimSpace(a.City),
			State:        strings.TrimSpace(a.State),
			Pincode:      strings.TrimSpace(a.Pincode),
		}
	}
	for i, o := range info.Offices {
		w.BranchOffices[i] = officeToWire(o)
	}
	return gate(w)
}

// OfficeFromWire converts a branch office.
func OfficeFromWire(o remote.Office) contact.Office {
	return contact.Office{
		ID:           o.OfficeID,
		Name:         o.OfficeName,
		AddressLine1: o.AddressLine1,
		AddressLine2: o.AddressLine2,
		City:         o.City,
		State:        o.State,
		Pincode:      o.Pincode,
		Phone:        o.Phone,
		MapURL:       o.MapEmbedURL,
	}
}

// OfficePayload builds the wire form of a branch office.
func OfficePayload(o contact.Office) (remote.Office, error) {
	return gate(officeToWire(o))
}

func officeToWire(o contact.Office) remote.Office {
	return remote.Office{
		OfficeID:     strings.TrimSpace(o.ID),
		OfficeName:   strings.TrimSpace(o.Name),
		AddressLine1: strings.TrimSpace(o.AddressLine1),
		AddressLine2: strings.TrimSpace(o.AddressLine2),
		City:         strings.TrimSpace(o.City),
		State:        strings.TrimSpace(o.State),
		Pincode:      strings.TrimSpace(o.Pincode),
		Phone:        strings.TrimSpace(o.Phone),
		MapEmbedURL:  strings.TrimSpace(o.MapURL),
	}
}

func contactToWire(c contact.ContactPerson) remote.Contact {
	return remote.Contact{
		Name:  strings.TrimSpace(c.Name),
		Email: strings.TrimSpace(c.Email),
		Phone: strings.TrimSpace(c.Phone),
	}
}
