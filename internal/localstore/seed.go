package localstore

import (
	"github.com/shopspring/decimal"

	"github.com/meetjaka/voltherm-sub000/internal/domain/category"
	"github.com/meetjaka/voltherm-sub000/internal/domain/certificate"
	"github.com/meetjaka/voltherm-sub000/internal/domain/contact"
	"github.com/meetjaka/voltherm-sub000/internal/domain/product"
)

func inr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func specRows(kv ...string) []product.TechnicalSpec {
	rows := make([]product.TechnicalSpec, 0, product.MinTechnicalSpecRows)
	for i := 0; i+1 < len(kv); i += 2 {
		rows = append(rows, product.TechnicalSpec{Key: kv[i], Value: kv[i+1]})
	}
	for len(rows) < product.MinTechnicalSpecRows {
		rows = append(rows, product.TechnicalSpec{})
	}
	return rows
}

// SeedProducts returns the default catalog shown before any data is stored.
func SeedProducts() []product.Product {
	return []product.Product{
		{
			ID:          1,
			Title:       "VT-LFP 12.8V 100Ah",
			Description: "Lithium iron phosphate battery for solar and backup systems.",
			Image:       "/images/products/lfp-12v-100ah.jpg",
			Specs:       []string{"12.8V", "100Ah", "6000 cycles", "Built-in BMS"},
			TechnicalSpecs: specRows(
				"Chemistry", "LiFePO4",
				"Nominal Voltage", "12.8V",
				"Capacity", "100Ah",
				"Cycle Life", "6000 @ 80% DoD",
			),
			Price:         inr(28500),
			Capacity:      "100Ah",
			Voltage:       "12.8V",
			Category:      "lithium-ion",
			SubCategoryID: "lfp-modules",
			Featured:      true,
			Available:     true,
		},
		{
			ID:          2,
			Title:       "VT-LFP 48V 200Ah Rack",
			Description: "Rack mounted storage module for telecom and commercial loads.",
			Image:       "/images/products/lfp-48v-200ah.jpg",
			Specs:       []string{"48V", "200Ah", "19-inch rack", "CAN/RS485"},
			TechnicalSpecs: specRows(
				"Chemistry", "LiFePO4",
				"Nominal Voltage", "51.2V",
				"Capacity", "200Ah",
				"Communication", "CAN, RS485",
				"Weight", "88kg",
			),
			Price:         inr(245000),
			Capacity:      "200Ah",
			Voltage:       "48V",
			Category:      "energy-storage",
			SubCategoryID: "rack-systems",
			Featured:      true,
			Available:     true,
		},
		{
			ID:             3,
			Title:          "VT-Home 5kWh Wall Pack",
			Description:    "Wall mounted home energy storage with hybrid inverter support.",
			Image:          "/images/products/home-5kwh.jpg",
			Specs:          []string{"5.12kWh", "IP65", "Wall mount"},
			TechnicalSpecs: specRows("Energy", "5.12kWh", "Ingress", "IP65"),
			Price:          inr(189000),
			Capacity:       "100Ah",
			Voltage:        "51.2V",
			Category:       "energy-storage",
			SubCategoryID:  "residential",
			Featured:       true,
			Available:      true,
		},
		{
			ID:             4,
			Title:          "VT-EV 72V 60Ah Traction",
			Description:    "Traction pack for electric two and three wheelers.",
			Image:          "/images/products/ev-72v-60ah.jpg",
			Specs:          []string{"72V", "60Ah", "Fast charge"},
			TechnicalSpecs: specRows("Chemistry", "NMC", "Peak Discharge", "3C"),
			Price:          inr(96000),
			Capacity:       "60Ah",
			Voltage:        "72V",
			Category:       "lithium-ion",
			SubCategoryID:  "ev-packs",
			Available:      true,
		},
		{
			ID:             5,
			Title:          "VT-Tubular 150Ah Inverter Battery",
			Description:    "Tall tubular lead acid battery for long outages.",
			Image:          "/images/products/tubular-150ah.jpg",
			Specs:          []string{"12V", "150Ah", "Low maintenance"},
			TechnicalSpecs: specRows("Chemistry", "Lead acid", "Warranty", "36 months"),
			Price:          inr(14800),
			Capacity:       "150Ah",
			Voltage:        "12V",
			Category:       "lead-acid",
			SubCategoryID:  "tubular",
			Available:      true,
		},
		{
			ID:             6,
			Title:          "VT-Custom Pack",
			Description:    "Battery packs engineered to your voltage, capacity and enclosure.",
			Image:          "/images/products/custom-pack.jpg",
			Specs:          []string{"Custom voltage", "Custom capacity"},
			TechnicalSpecs: specRows(),
			Category:       "lithium-ion",
			SubCategoryID:  "lfp-modules",
			Available:      true,
		},
	}
}

// SeedCertificates returns the default certificates.
func SeedCertificates() []certificate.Certificate {
	return []certificate.Certificate{
		{ID: "cert-iso-9001", Image: "/images/certificates/iso-9001.jpg", Alt: "ISO 9001:2015 certificate", Title: "ISO 9001:2015"},
		{ID: "cert-bis", Image: "/images/certificates/bis.jpg", Alt: "BIS registration certificate", Title: "BIS Certified"},
		{ID: "cert-ce", Image: "/images/certificates/ce.jpg", Alt: "CE conformity declaration", Title: "CE Marking"},
	}
}

// SeedContactInfo returns the default contact block.
func SeedContactInfo() contact.Info {
	return contact.Info{
		Sales:    contact.ContactPerson{Name: "Sales", Email: "sales@voltherm.in", Phone: "+91 20 4000 1000"},
		Business: contact.ContactPerson{Name: "Business Development", Email: "business@voltherm.in", Phone: "+91 20 4000 2000"},
		Support:  contact.ContactPerson{Name: "Support", Email: "support@voltherm.in", Phone: "+91 20 4000 3000"},
		Social: &contact.SocialLinks{
			LinkedIn: "https://www.linkedin.com/company/voltherm",
			YouTube:  "https://www.youtube.com/@voltherm",
		},
		MainAddress: &contact.Address{
			Line1:   "Plot 14, MIDC Bhosari",
			City:    "Pune",
			State:   "Maharashtra",
			Pincode: "411026",
		},
		Offices: []contact.Office{
			{
				ID:           "office-delhi",
				Name:         "Delhi NCR",
				AddressLine1: "Sector 63",
				City:         "Noida",
				State:        "Uttar Pradesh",
				Pincode:      "201301",
				Phone:        "+91 120 400 5000",
			},
		},
	}
}

// SeedSections returns the default catalog taxonomy.
func SeedSections() category.Sections {
	return category.Sections{
		Main: []category.MainCategory{
			{ID: "lithium-ion", Name: "Lithium-ion", Slug: "lithium-ion", Visible: true, Order: 1},
			{ID: "energy-storage", Name: "Energy Storage", Slug: "energy-storage", Visible: true, Order: 2},
			{ID: "lead-acid", Name: "Lead Acid", Slug: "lead-acid", Visible: true, Order: 3},
		},
		Sub: []category.SubCategory{
			{ID: "lfp-modules", ParentID: "lithium-ion", Name: "LFP Modules", Slug: "lfp-modules", Visible: true, Order: 1},
			{ID: "ev-packs", ParentID: "lithium-ion", Name: "EV Packs", Slug: "ev-packs", Visible: true, Order: 2},
			{ID: "rack-systems", ParentID: "energy-storage", Name: "Rack Systems", Slug: "rack-systems", Visible: true, Order: 1},
			{ID: "residential", ParentID: "energy-storage", Name: "Residential", Slug: "residential", Visible: true, Order: 2},
			{ID: "tubular", ParentID: "lead-acid", Name: "Tubular", Slug: "tubular", Visible: true, Order: 1},
		},
	}
}
