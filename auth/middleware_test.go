package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"MediConsult/models"
	"MediConsult/role"
	"MediConsult/utils"
)

func newTestGuard(t *testing.T, users map[string]*models.User) (*Guard, *TokenManager) {
	t.Helper()
	tm, err := NewTokenManager("middleware-test-secret")
	require.NoError(t, err)
	guard := &Guard{
		Tokens: tm,
		LoadUser: func(_ context.Context, id string) (*models.User, error) {
			user, ok := users[id]
			if !ok {
				return nil, errors.New("not found")
			}
			return user, nil
		},
	}
	return guard, tm
}

func testUser(r string) *models.User {
	return &models.User{ID: primitive.NewObjectID(), Role: r, IsActive: true, Email: r + "@example.com"}
}

func perform(r *gin.Engine, method, path, token string, asCookie bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		if asCookie {
			req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
		} else {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticateRejectsMissingAndBadTokens(t *testing.T) {
	gin.SetMode(gin.TestMode)
	patient := testUser(role.Patient)
	guard, _ := newTestGuard(t, map[string]*models.User{patient.ID.Hex(): patient})

	r := gin.New()
	r.GET("/me", guard.Authenticate(), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusUnauthorized, perform(r, "GET", "/me", "", false).Code)
	assert.Equal(t, http.StatusUnauthorized, perform(r, "GET", "/me", "garbage", false).Code)
}

func TestAuthenticateAcceptsCookieAndBearer(t *testing.T) {
	gin.SetMode(gin.TestMode)
	patient := testUser(role.Patient)
	guard, tm := newTestGuard(t, map[string]*models.User{patient.ID.Hex(): patient})
	token, err := tm.Generate(patient.ID.Hex(), patient.Role, patient.Email)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/me", guard.Authenticate(), func(c *gin.Context) {
		user, ok := CurrentUser(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"id": user.ID.Hex()})
	})

	assert.Equal(t, http.StatusOK, perform(r, "GET", "/me", token, true).Code)
	assert.Equal(t, http.StatusOK, perform(r, "GET", "/me", token, false).Code)
}

func TestAuthenticateRejectsInactiveUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	disabled := testUser(role.Patient)
	disabled.IsActive = false
	guard, tm := newTestGuard(t, map[string]*models.User{disabled.ID.Hex(): disabled})
	token, _ := tm.Generate(disabled.ID.Hex(), disabled.Role, disabled.Email)

	r := gin.New()
	r.GET("/me", guard.Authenticate(), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusUnauthorized, perform(r, "GET", "/me", token, false).Code)
}

func TestRequireRoles(t *testing.T) {
	gin.SetMode(gin.TestMode)
	patient := testUser(role.Patient)
	doctor := testUser(role.Doctor)
	guard, tm := newTestGuard(t, map[string]*models.User{
		patient.ID.Hex(): patient,
		doctor.ID.Hex():  doctor,
	})

	r := gin.New()
	r.GET("/doctor-only", guard.Authenticate(), RequireRoles(role.Doctor), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	patientToken, _ := tm.Generate(patient.ID.Hex(), patient.Role, patient.Email)
	doctorToken, _ := tm.Generate(doctor.ID.Hex(), doctor.Role, doctor.Email)

	// a patient is 403 regardless of anything else
	assert.Equal(t, http.StatusForbidden, perform(r, "GET", "/doctor-only", patientToken, false).Code)
	assert.Equal(t, http.StatusOK, perform(r, "GET", "/doctor-only", doctorToken, false).Code)
}

func TestRequireOwner(t *testing.T) {
	gin.SetMode(gin.TestMode)
	owner := testUser(role.Patient)
	stranger := testUser(role.Patient)
	admin := testUser(role.Admin)
	guard, tm := newTestGuard(t, map[string]*models.User{
		owner.ID.Hex():    owner,
		stranger.ID.Hex(): stranger,
		admin.ID.Hex():    admin,
	})

	lookups := map[string]OwnerLookup{
		"owned":    func(c *gin.Context) ([]string, error) { return []string{owner.ID.Hex()}, nil },
		"orphaned": func(c *gin.Context) ([]string, error) { return []string{}, nil },
		"missing":  func(c *gin.Context) ([]string, error) { return nil, ErrOwnerNotFound },
	}

	r := gin.New()
	for name, lookup := range lookups {
		r.GET("/"+name, guard.Authenticate(), RequireOwner(lookup), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
	}

	ownerToken, _ := tm.Generate(owner.ID.Hex(), owner.Role, owner.Email)
	strangerToken, _ := tm.Generate(stranger.ID.Hex(), stranger.Role, stranger.Email)
	adminToken, _ := tm.Generate(admin.ID.Hex(), admin.Role, admin.Email)

	assert.Equal(t, http.StatusOK, perform(r, "GET", "/owned", ownerToken, false).Code)
	assert.Equal(t, http.StatusForbidden, perform(r, "GET", "/owned", strangerToken, false).Code)
	assert.Equal(t, http.StatusOK, perform(r, "GET", "/owned", adminToken, false).Code)

	// resource exists but has no resolvable owner: admin only
	assert.Equal(t, http.StatusForbidden, perform(r, "GET", "/orphaned", ownerToken, false).Code)
	assert.Equal(t, http.StatusOK, perform(r, "GET", "/orphaned", adminToken, false).Code)

	// missing resource: 404 for non-admins, with a not-found body to match
	missing := perform(r, "GET", "/missing", strangerToken, false)
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.Contains(t, missing.Body.String(), utils.RESOURCE_NOT_FOUND)
	assert.NotContains(t, missing.Body.String(), utils.ACCESS_DENIED)

	// admins fall through to the controller
	assert.Equal(t, http.StatusOK, perform(r, "GET", "/missing", adminToken, false).Code)
}
