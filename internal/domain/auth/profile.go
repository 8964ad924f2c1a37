package auth

// Profile is the identity of the logged in admin.
type Profile struct {
	Username string `json:"username"`
	Role     string `json:"role,omitempty"`
}
