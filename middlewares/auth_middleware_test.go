package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nutrilog/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var secret = []byte("test-secret")

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthMiddleware(secret), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("userID"))
	})
	return r
}

func TestAuthMiddlewareAcceptsBearerToken(t *testing.T) {
	token, err := utils.GenerateJWT("user-1", "a@example.com", secret)
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || rec.Body.String() != "user-1" {
		t.Fatalf("expected 200 user-1, got %d %q", rec.Code, rec.Body.String())
	}
}

func TestAuthMiddlewareAcceptsQueryToken(t *testing.T) {
	token, _ := utils.GenerateJWT("user-2", "b@example.com", secret)
	req := httptest.NewRequest(http.MethodGet, "/me?token="+token, nil)
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || rec.Body.String() != "user-2" {
		t.Fatalf("expected 200 user-2, got %d %q", rec.Code, rec.Body.String())
	}
}

func TestAuthMiddlewareRejects(t *testing.T) {
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": "user-1",
		"exp":    time.Now().Add(-time.Hour).Unix(),
	})
	expiredToken, _ := expired.SignedString(secret)
	foreign, _ := utils.GenerateJWT("user-1", "a@example.com", []byte("other"))
	emailOnly, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "a@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString(secret)

	cases := map[string]string{
		"missing": "",
		"expired": "Bearer " + expiredToken,
		"foreign": "Bearer " + foreign,
		"garbage": "Bearer abc.def",
		"no id":   "Bearer " + emailOnly,
	}
	for name, header := range cases {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		newRouter().ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", name, rec.Code)
		}
	}
}
