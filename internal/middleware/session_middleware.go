package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	profileIDKey        = "profile_id"
	profileCookie       = "taladsod_profile"
	profileCookieMaxAge = 60 * 60 * 24 * 365
)

// SessionMiddleware assigns every browser a stable anonymous profile ID via
// a cookie. The profile ID keys all per-browser state: listing selections
// and the persisted cart slot.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID, err := c.Cookie(profileCookie)
		if err != nil || !isValidProfileID(profileID) {
			profileID = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(profileCookie, profileID, profileCookieMaxAge, "/", "", false, true)
		}

		c.Set(profileIDKey, profileID)
		c.Next()
	}
}

// GetProfileID retrieves the profile ID assigned by SessionMiddleware.
func GetProfileID(c *gin.Context) string {
	return c.GetString(profileIDKey)
}

func isValidProfileID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
