package middleware

import "github.com/gin-gonic/gin"

// actorKey is the key used to store the authenticated caller's ID in the Gin context.
const actorKey = contextKey("actor")

// GetActorFromContext retrieves the authenticated caller ID from the Gin context.
// It returns the actor and a boolean indicating if it was found.
func GetActorFromContext(c *gin.Context) (string, bool) {
	actorVal, exists := c.Get(string(actorKey))
	if !exists {
		// check the request context as well
		if v := c.Request.Context().Value(actorKey); v != nil {
			if actor, ok := v.(string); ok {
				return actor, true
			}
		}
		return "", false
	}

	actor, ok := actorVal.(string)
	if !ok {
		return "", false
	}

	return actor, true
}
