package model

// Role is a coarse permission label carried inside access tokens.
type Role string

const (
	RoleUser  Role = "ROLE_USER"
	RoleAdmin Role = "ROLE_ADMIN"
)

// Valid reports whether r is one of the known role labels.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Identity is the authenticated principal resolved from credentials or from
// a verified access token. UserID is the string form of the numeric user key.
type Identity struct {
	UserID string
	Role   Role
}
