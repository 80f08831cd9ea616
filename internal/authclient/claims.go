package authclient

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload of a session token.
type Claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Grant builds the grant for token carrying these claims.
func (c *Claims) Grant(token string) Grant {
	g := Grant{
		Token:  token,
		UserID: c.Subject,
		Name:   c.Name,
		Email:  c.Email,
		Role:   c.Role,
	}
	if c.ExpiresAt != nil {
		g.ExpiresAt = c.ExpiresAt.Time
	}
	return g
}
