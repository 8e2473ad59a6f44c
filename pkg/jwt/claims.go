package jwt

import "github.com/golang-jwt/jwt/v5"

// LadderClaims are the bearer-token claims the ladder API trusts.
// Subject carries the opaque actor ID from the identity provider.
type LadderClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

type Role string

const (
	RolePlayer Role = "player"
	RoleAdmin  Role = "admin"
)

// IsAdmin reports whether the token grants ladder administration.
func (c *LadderClaims) IsAdmin() bool {
	return Role(c.Role) == RoleAdmin
}
