package middleware

import "github.com/gin-gonic/gin"

// GetIdentityID gets the caller identity id from context
func GetIdentityID(c *gin.Context) (string, bool) {
	v, exists := c.Get("identity_id")
	if !exists {
		return "", false
	}

	id, ok := v.(string)
	return id, ok && id != ""
}

// MustGetIdentityID gets identity ID from context or panics
func MustGetIdentityID(c *gin.Context) string {
	id, exists := GetIdentityID(c)
	if !exists {
		panic("identity_id not found in context")
	}
	return id
}

// GetRoles gets user roles from context
func GetRoles(c *gin.Context) []string {
	roles, exists := c.Get("roles")
	if !exists {
		return []string{}
	}

	rolesList, ok := roles.([]string)
	if !ok {
		return []string{}
	}

	return rolesList
}

// HasRole checks if the caller holds a specific role
func HasRole(c *gin.Context, role string) bool {
	for _, r := range GetRoles(c) {
		if r == role {
			return true
		}
	}
	return false
}

// IsAuthenticated checks if request is authenticated
func IsAuthenticated(c *gin.Context) bool {
	_, exists := c.Get("identity_id")
	return exists
}
