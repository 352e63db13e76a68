package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSessionTest() *gin.Engine {
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(SessionMiddleware())
	engine.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"profile_id": GetProfileID(c)})
	})
	return engine
}

func TestSessionMiddlewareAssignsProfile(t *testing.T) {
	engine := setupSessionTest()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/whoami", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, profileCookie, cookies[0].Name)
	_, err := uuid.Parse(cookies[0].Value)
	assert.NoError(t, err, "profile cookie is a UUID")
	assert.True(t, cookies[0].HttpOnly)
}

func TestSessionMiddlewareKeepsExistingProfile(t *testing.T) {
	engine := setupSessionTest()

	profileID := uuid.NewString()
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: profileCookie, Value: profileID})
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), profileID)
	assert.Empty(t, w.Result().Cookies(), "a valid profile is not reissued")
}

func TestSessionMiddlewareRejectsForgedProfile(t *testing.T) {
	engine := setupSessionTest()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: profileCookie, Value: "not-a-uuid"})
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1, "a fresh profile is issued")
	assert.NotEqual(t, "not-a-uuid", cookies[0].Value)
}
