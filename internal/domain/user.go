package domain

type ContextKey string

const UserContextKey ContextKey = "user"

const RoleAdmin = "admin"

// User is the authenticated caller built from token claims.
type User struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
