package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "interview-booking-api/internal/errors"
	"interview-booking-api/internal/models"
)

type fakeAuthenticator map[string]*models.User

func (f fakeAuthenticator) Authenticate(_ context.Context, token string) (*models.User, error) {
	if user, ok := f[token]; ok {
		return user, nil
	}
	return nil, apperrors.Unauthorized("unknown token")
}

func protectedRouter() *gin.Engine {
	authn := fakeAuthenticator{
		"user-token":  {ID: primitive.NewObjectID(), Role: models.RoleUser},
		"admin-token": {ID: primitive.NewObjectID(), Role: models.RoleAdmin},
	}
	r := gin.New()
	r.Use(ErrorHandler(), CookieParser())
	r.GET("/me", Protect(authn), func(c *gin.Context) {
		c.String(http.StatusOK, CurrentUser(c).Role)
	})
	r.GET("/admin", Protect(authn), Authorize(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestProtect(t *testing.T) {
	r := protectedRouter()

	tests := []struct {
		name   string
		header string
		cookie string
		status int
	}{
		{name: "no token", status: http.StatusUnauthorized},
		{name: "bearer header", header: "Bearer user-token", status: http.StatusOK},
		{name: "cookie", cookie: "user-token", status: http.StatusOK},
		{name: "logged out cookie", cookie: "none", status: http.StatusUnauthorized},
		{name: "unknown token", header: "Bearer nope", status: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "token", Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestAuthorize(t *testing.T) {
	r := protectedRouter()

	for token, status := range map[string]int{
		"user-token":  http.StatusForbidden,
		"admin-token": http.StatusOK,
	} {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, status, w.Code, token)
	}
}
