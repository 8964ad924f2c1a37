package handler

import (
	"net/http"

	"github.com/meetjaka/voltherm-sub000/internal/domain/cart"
	"github.com/meetjaka/voltherm-sub000/internal/domain/inquiry"
)

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	list, src := h.catalog.Products(r.Context())
	writeData(w, r, http.StatusOK, list, src)
}

func (h *Handler) listFeatured(w http.ResponseWriter, r *http.Request) {
	list, src := h.catalog.FeaturedProducts(r.Context())
	writeData(w, r, http.StatusOK, list, src)
}

func (h *Handler) listCertificates(w http.ResponseWriter, r *http.Request) {
	list, src := h.catalog.Certificates(r.Context())
	writeData(w, r, http.StatusOK, list, src)
}

func (h *Handler) contactInfo(w http.ResponseWriter, r *http.Request) {
	info, src := h.catalog.ContactInfo(r.Context())
	writeData(w, r, http.StatusOK, info, src)
}

func (h *Handler) sections(w http.ResponseWriter, r *http.Request) {
	s, src := h.catalog.Sections(r.Context())
	writeData(w, r, http.StatusOK, s, src)
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	writeData(w, r, http.StatusOK, h.catalog.Cart(r.Context()), "")
}

func (h *Handler) putCart(w http.ResponseWriter, r *http.Request) {
	var items []cart.Item
	if err := h.decodeJSON(w, r, &items); err != nil {
		writeErr(w, r, err)
		return
	}
	for _, it := range items {
		if it.ProductID == "" || it.Quantity <= 0 {
			writeErr(w, r, invalid("cart items need a product id and a positive quantity", nil))
			return
		}
	}
	if err := h.catalog.SaveCart(r.Context(), items); err != nil {
		writeErr(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, items, "")
}

func (h *Handler) submitInquiry(w http.ResponseWriter, r *http.Request) {
	var sub inquiry.Submission
	if err := h.decodeJSON(w, r, &sub); err != nil {
		writeErr(w, r, err)
		return
	}
	in, src, err := h.catalog.SubmitInquiry(r.Context(), sub)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeData(w, r, http.StatusCreated, in, src)
}
