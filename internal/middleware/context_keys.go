package middleware

import "github.com/gin-gonic/gin"

// accountIDKey is the key used to store the authenticated account's id.
const accountIDKey = contextKey("accountID")

// GetAccountIDFromContext retrieves the authenticated account id from the Gin
// context. It returns the id and a boolean indicating if it was found.
func GetAccountIDFromContext(c *gin.Context) (int64, bool) {
	if v, exists := c.Get(string(accountIDKey)); exists {
		if id, ok := v.(int64); ok {
			return id, true
		}
		return 0, false
	}
	// Check the request context as well; the auth middleware stores it there.
	if v := c.Request.Context().Value(accountIDKey); v != nil {
		if id, ok := v.(int64); ok {
			return id, true
		}
	}
	return 0, false
}
