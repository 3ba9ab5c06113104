package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserIDKey is the context key holding the authenticated user ID
const UserIDKey = "user_id"

// UserIDHeader is the header carrying the caller's user ID.
// Authentication happens upstream; the gateway forwards the verified
// identity in this header.
const UserIDHeader = "X-User-ID"

// Identity extracts the caller's user ID from the request and stores it
// in the gin context for handlers that stamp audit fields.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := c.GetHeader(UserIDHeader); raw != "" {
			if id, err := uuid.Parse(raw); err == nil {
				c.Set(UserIDKey, id)
			}
		}
		c.Next()
	}
}

// GetUserID returns the caller's user ID from the gin context.
// Returns uuid.Nil and false when no identity was provided.
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
