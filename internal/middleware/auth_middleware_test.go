package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-elms/internal/employee"
	"go-elms/internal/middleware"
	"go-elms/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func signTestToken(t *testing.T, employeeID, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"employee_id": employeeID,
		"role":        role,
		"exp":         time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	assert.NoError(t, err)
	return signed
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("valid token propagates employee id to gin and context", func(t *testing.T) {
		employeeID := uuid.New().String()

		var keyedID, ctxID, keyedRole string

		r := gin.New()
		r.Use(middleware.AuthMiddleware())
		r.GET("/me", func(c *gin.Context) {
			keyedID = c.GetString("employee_id")
			keyedRole = c.GetString("role")
			ctxID = contextutil.GetEmployeeID(c.Request.Context())
			c.Status(http.StatusNoContent)
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+signTestToken(t, employeeID, employee.RoleManager))
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, employeeID, keyedID)
		assert.Equal(t, employeeID, ctxID)
		assert.Equal(t, employee.RoleManager, keyedRole)
	})

	t.Run("negative missing token", func(t *testing.T) {
		r := gin.New()
		r.Use(middleware.AuthMiddleware())
		r.GET("/me", func(c *gin.Context) { c.Status(http.StatusNoContent) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("negative role not allowed", func(t *testing.T) {
		r := gin.New()
		r.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(employee.RoleAdmin))
		r.GET("/admin", func(c *gin.Context) { c.Status(http.StatusNoContent) })

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+signTestToken(t, uuid.New().String(), employee.RoleEmployee))
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
