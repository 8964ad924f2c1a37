package remote

import (
	"context"
	"net/http"
	"net/url"
)

// ContactInfo returns the company contact block.
func (c *Client) ContactInfo(ctx context.Context) (*ContactInfo, error) {
	var out ContactInfo
	if err := c.doJSON(ctx, http.MethodGet, "/api/contact-info", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateContactInfo replaces the contact block.
func (c *Client) UpdateContactInfo(ctx context.Context, info ContactInfo) (*ContactInfo, error) {
	var out ContactInfo
	if err := c.doJSON(ctx, http.MethodPut, "/api/contact-info", info, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateOffice adds a branch office.
func (c *Client) CreateOffice(ctx context.Context, o Office) (*Office, error) {
	var out Office
	if err := c.doJSON(ctx, http.MethodPost, "/api/contact-info/offices", o, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateOffice updates a branch office.
func (c *Client) UpdateOffice(ctx context.Context, o Office) (*Office, error) {
	var out Office
	path := "/api/contact-info/offices/" + url.PathEscape(o.OfficeID)
	if err := c.doJSON(ctx, http.MethodPut, path, o, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteOffice removes a branch office.
func (c *Client) DeleteOffice(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/contact-info/offices/"+url.PathEscape(id), nil, nil)
}
