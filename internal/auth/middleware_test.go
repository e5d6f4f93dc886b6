package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestEngine(svc *Service) *gin.Engine {
	r := gin.New()
	r.Use(Session(svc))
	r.GET("/public", func(c *gin.Context) {
		if user := UserFromContext(c.Request.Context()); user != nil {
			c.String(http.StatusOK, user.Username)
			return
		}
		c.String(http.StatusOK, "anonymous")
	})
	r.GET("/private", RequireLogin("/auth/login/"), func(c *gin.Context) {
		c.String(http.StatusOK, "secret")
	})
	return r
}

func TestSessionMiddleware(t *testing.T) {
	svc := newTestService(t, false)
	user := signup(t, svc, "leo")
	token, err := svc.IssueToken(user)
	require.NoError(t, err)

	r := newTestEngine(svc)

	tests := []struct {
		name   string
		cookie string
		want   string
	}{
		{"no cookie", "", "anonymous"},
		{"valid cookie", token, "leo"},
		{"garbage cookie", "garbage", "anonymous"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/public", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: CookieName, Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, w.Body.String())
		})
	}
}

func TestRequireLogin(t *testing.T) {
	svc := newTestService(t, false)
	r := newTestEngine(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private?x=1", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login/?next=%2Fprivate%3Fx%3D1", w.Header().Get("Location"))

	user := signup(t, svc, "leo")
	token, err := svc.IssueToken(user)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "secret", w.Body.String())
}

func TestSetSessionCookie(t *testing.T) {
	svc := newTestService(t, false)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	SetSessionCookie(c, svc, "tok", false)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Equal(t, "tok", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
}
