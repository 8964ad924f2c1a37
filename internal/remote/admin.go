package remote

import (
	"context"
	"net/http"
)

// Login authenticates the admin. The backend answers with a session cookie
// kept in the client's jar.
func (c *Client) Login(ctx context.Context, creds Credentials) (*Profile, error) {
	var out Profile
	if err := c.doJSON(ctx, http.MethodPost, "/api/admin/login", creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout ends the backend session.
func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/api/admin/logout", nil, nil)
}

// Profile is the lightweight authenticated probe.
func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	var out Profile
	if err := c.doJSON(ctx, http.MethodGet, "/api/admin/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Sections returns the catalog taxonomy setting.
func (c *Client) Sections(ctx context.Context) (*Sections, error) {
	var out Sections
	if err := c.doJSON(ctx, http.MethodGet, "/api/settings/sections", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SaveSections replaces the catalog taxonomy setting.
func (c *Client) SaveSections(ctx context.Context, s Sections) (*Sections, error) {
	var out Sections
	if err := c.doJSON(ctx, http.MethodPut, "/api/settings/sections", s, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
