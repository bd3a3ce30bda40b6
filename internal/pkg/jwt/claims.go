package jwt

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by tokens minted by the identity provider. The subject is
// the stable identity id used as the local user primary key.
type Claims struct {
	Email string   `json:"email,omitempty"`
	Name  string   `json:"name,omitempty"`
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// IdentityID returns the token subject.
func (c *Claims) IdentityID() string {
	return c.Subject
}

// HasAudience reports whether aud appears in the token audience list.
func (c *Claims) HasAudience(aud string) bool {
	for _, a := range c.Audience {
		if a == aud {
			return true
		}
	}
	return false
}

// HasRole checks if the claims contain a specific role.
func (c *Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}
