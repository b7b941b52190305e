package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/callscope/core/internal/pkg/token"
)

func TestNormalizeToken(t *testing.T) {
	cases := map[string]string{
		"abc":            "abc",
		"  abc  ":        "abc",
		"Bearer abc":     "abc",
		"bearer   abc":   "abc",
		"BEARER abc":     "abc",
		"":               "",
		"   ":            "",
		"Bearer ":        "",
		"Bearerabc":      "Bearerabc",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeToken(in), "input %q", in)
	}
}

func TestExtractTokenPrefersCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.AddCookie(&http.Cookie{Name: CookieName, Value: "from-cookie"})
	c.Request.Header.Set("Authorization", "Bearer from-header")

	assert.Equal(t, "from-cookie", ExtractToken(c))
}

func TestExtractTokenFallsBackToHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("Authorization", "Bearer from-header")

	assert.Equal(t, "from-header", ExtractToken(c))
}

func TestAuthMiddlewareStatusSplit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	issuer := token.NewIssuer("middleware-test-secret", time.Hour)

	r := gin.New()
	r.GET("/protected", Auth(issuer), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": CurrentUserID(c)})
	})

	// No token at all.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Unverifiable token.
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "nonsense"})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Valid token.
	tok, err := issuer.Issue("user-1", "a@b.c", "A")
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: tok})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
}

func TestOptionalAuthNeverBlocks(t *testing.T) {
	gin.SetMode(gin.TestMode)
	issuer := token.NewIssuer("middleware-test-secret", time.Hour)

	r := gin.New()
	r.GET("/open", OptionalAuth(issuer), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"authed": IsAuthenticated(c)})
	})

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "nonsense"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "false")

	tok, err := issuer.Issue("user-1", "a@b.c", "A")
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/open", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: tok})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Contains(t, w.Body.String(), "true")
}
