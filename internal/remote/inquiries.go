package remote

import (
	"context"
	"net/http"
	"net/url"
)

// ListInquiries returns all inquiries. Requires an admin session.
func (c *Client) ListInquiries(ctx context.Context) ([]Inquiry, error) {
	var out []Inquiry
	if err := c.doJSON(ctx, http.MethodGet, "/api/inquiries", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateInquiry submits a visitor inquiry.
func (c *Client) CreateInquiry(ctx context.Context, in Inquiry) (*Inquiry, error) {
	var out Inquiry
	if err := c.doJSON(ctx, http.MethodPost, "/api/inquiries", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateInquiryStatus moves an inquiry to a new status.
func (c *Client) UpdateInquiryStatus(ctx context.Context, id string, upd StatusUpdate) (*Inquiry, error) {
	var out Inquiry
	path := "/api/inquiries/" + url.PathEscape(id) + "/status"
	if err := c.doJSON(ctx, http.MethodPatch, path, upd, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteInquiry removes an inquiry.
func (c *Client) DeleteInquiry(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/inquiries/"+url.PathEscape(id), nil, nil)
}
