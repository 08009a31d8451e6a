package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/D4V1DYL/HydroSenseAPI/internal/apierr"
	"github.com/D4V1DYL/HydroSenseAPI/internal/logger"
	"github.com/D4V1DYL/HydroSenseAPI/internal/requestdata"
	"github.com/D4V1DYL/HydroSenseAPI/internal/services"
	"github.com/D4V1DYL/HydroSenseAPI/internal/types"
)

type stubAuthService struct {
	rd  *requestdata.RequestData
	err error
}

func (s *stubAuthService) RegisterUser(ctx context.Context, in services.RegisterInput) (*types.User, error) {
	return nil, nil
}

func (s *stubAuthService) LoginUser(ctx context.Context, email, password string) (string, error) {
	return "", nil
}

func (s *stubAuthService) ParseToken(tokenString string) (*requestdata.RequestData, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.rd, nil
}

func newTestRouter(auth services.AuthService, roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	am := NewAuthMiddleware(logger.Nop(), auth)
	router := gin.New()
	group := router.Group("/", am.RequireAuth())
	if len(roles) > 0 {
		group.Use(am.RequireRole(roles...))
	}
	group.GET("/ping", func(c *gin.Context) {
		rd := requestdata.GetRequestData(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"email": rd.Email})
	})
	return router
}

func doGet(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuthRejectsMissingToken(t *testing.T) {
	router := newTestRouter(&stubAuthService{})
	rec := doGet(router, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: want=%d got=%d", http.StatusUnauthorized, rec.Code)
	}
}

func TestRequireAuthRejectsBadToken(t *testing.T) {
	router := newTestRouter(&stubAuthService{
		err: fmt.Errorf("%w: could not validate credentials", apierr.ErrUnauthorized),
	})
	rec := doGet(router, "garbage")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: want=%d got=%d", http.StatusUnauthorized, rec.Code)
	}
}

func TestRequireAuthStashesIdentity(t *testing.T) {
	router := newTestRouter(&stubAuthService{
		rd: &requestdata.RequestData{UserID: uuid.New(), Email: "ada@example.com", Role: types.RoleUser},
	})
	rec := doGet(router, "ok-token")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: want=%d got=%d body=%s", http.StatusOK, rec.Code, rec.Body.String())
	}
}

func TestRequireRoleGatesByRole(t *testing.T) {
	admin := &requestdata.RequestData{UserID: uuid.New(), Email: "boss@example.com", Role: types.RoleAdmin}
	regular := &requestdata.RequestData{UserID: uuid.New(), Email: "ada@example.com", Role: types.RoleUser}

	adminOnly := newTestRouter(&stubAuthService{rd: admin}, types.RoleAdmin, types.RoleSuperadmin)
	if rec := doGet(adminOnly, "ok-token"); rec.Code != http.StatusOK {
		t.Fatalf("admin status: want=%d got=%d", http.StatusOK, rec.Code)
	}

	userBlocked := newTestRouter(&stubAuthService{rd: regular}, types.RoleAdmin, types.RoleSuperadmin)
	if rec := doGet(userBlocked, "ok-token"); rec.Code != http.StatusForbidden {
		t.Fatalf("user status: want=%d got=%d", http.StatusForbidden, rec.Code)
	}
}
