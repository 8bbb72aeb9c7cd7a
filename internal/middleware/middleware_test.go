package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"luxurystay/internal/domain"
	"luxurystay/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func protectedRouter(jwtService *jwt.Service, extra ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(JWTAuth(jwtService))
	router.Use(extra...)
	router.GET("/protected", func(c *gin.Context) {
		p := CurrentPrincipal(c)
		c.JSON(http.StatusOK, gin.H{"user_id": p.UserID, "role": p.Role})
	})
	return router
}

func TestJWTAuth_ValidToken(t *testing.T) {
	jwtService := jwt.New("test-secret-123", time.Hour)
	token, err := jwtService.GenerateToken("user-42", "receptionist")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	protectedRouter(jwtService).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "user-42", body["user_id"])
	assert.Equal(t, "receptionist", body["role"])
}

func TestJWTAuth_Rejections(t *testing.T) {
	jwtService := jwt.New("secret", time.Hour)
	unknownRole, err := jwtService.GenerateToken("u1", "overlord")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		code   string
	}{
		{"no header", "", "AUTH_HEADER_MISSING"},
		{"basic auth", "Basic dGVzdA==", "INVALID_AUTH_FORMAT"},
		{"garbage token", "Bearer invalid-jwt-here", "INVALID_TOKEN"},
		{"unknown role", "Bearer " + unknownRole, "INVALID_TOKEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(JWTAuth(jwtService))
			router.GET("/protected", func(c *gin.Context) {
				t.Fatal("handler should not be reached")
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), tt.code)
		})
	}
}

func TestRequireRole(t *testing.T) {
	jwtService := jwt.New("secret", time.Hour)

	tests := []struct {
		role   domain.UserRole
		guard  gin.HandlerFunc
		status int
	}{
		{domain.RoleAdmin, AdminOnly(), http.StatusOK},
		{domain.RoleManager, AdminOnly(), http.StatusForbidden},
		{domain.RoleHousekeeping, StaffOnly(), http.StatusOK},
		{domain.RoleGuest, StaffOnly(), http.StatusForbidden},
		{domain.RoleManager, ManagerOnly(), http.StatusOK},
		{domain.RoleReceptionist, ManagerOnly(), http.StatusForbidden},
	}

	for _, tt := range tests {
		token, err := jwtService.GenerateToken("u1", string(tt.role))
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		protectedRouter(jwtService, tt.guard).ServeHTTP(w, req)

		assert.Equal(t, tt.status, w.Code, tt.role)
	}
}

func TestCORS(t *testing.T) {
	router := gin.New()
	router.Use(CORS([]string{"https://hotel.example"}))
	router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://hotel.example")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://hotel.example", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCheckOrigin(t *testing.T) {
	check := CheckOrigin(nil)

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	assert.True(t, check(req))

	req.Header.Set("Origin", "http://localhost:5173")
	assert.True(t, check(req))

	req.Header.Set("Origin", "https://evil.example")
	assert.False(t, check(req))
}

func TestErrorLogger_RecoversPanic(t *testing.T) {
	router := gin.New()
	router.Use(ErrorLogger())
	router.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/boom?token=secret", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
	assert.NotContains(t, w.Body.String(), "boom")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
