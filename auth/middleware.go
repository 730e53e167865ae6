package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"MediConsult/models"
	"MediConsult/role"
	"MediConsult/utils"
)

// Context keys set by Authenticate.
const (
	CtxUser   = "currentUser"
	CtxUserID = "userId"
	CtxRole   = "userRole"
)

const CookieName = "authToken"

// ErrOwnerNotFound is returned by an OwnerLookup when the resource itself
// does not exist.
var ErrOwnerNotFound = errors.New("resource not found")

// OwnerLookup resolves the owner identity ids of the resource addressed by
// the request. An empty slice means the resource exists but has no resolvable
// owner.
type OwnerLookup func(c *gin.Context) ([]string, error)

// Guard bundles the token manager with the identity loader so the middleware
// has no package level state.
type Guard struct {
	Tokens   *TokenManager
	LoadUser func(ctx context.Context, id string) (*models.User, error)
}

/*
* Pull the token from the cookie or the bearer header
* Verify it, then load the full identity for downstream handlers
* Order matters, role and ownership checks depend on the resolved identity
 */
func (g *Guard) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			abortWith(c, http.StatusUnauthorized, utils.TOKEN_NOT_PROVIDED)
			return
		}
		claims, err := g.Tokens.Validate(token)
		if err != nil {
			abortWith(c, http.StatusUnauthorized, utils.TOKEN_INVALID_OR_EXPIRED)
			return
		}
		user, err := g.LoadUser(c.Request.Context(), claims.ID)
		if err != nil || user == nil || !user.IsActive {
			abortWith(c, http.StatusUnauthorized, utils.TOKEN_INVALID_OR_EXPIRED)
			return
		}
		c.Set(CtxUser, user)
		c.Set(CtxUserID, user.ID.Hex())
		c.Set(CtxRole, user.Role)
		c.Next()
	}
}

// RequireRoles rejects callers whose resolved role is not in the allowed set.
// Must run after Authenticate.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			abortWith(c, http.StatusUnauthorized, utils.TOKEN_NOT_PROVIDED)
			return
		}
		if !allowed[user.Role] {
			abortWith(c, http.StatusForbidden, utils.ACCESS_DENIED)
			return
		}
		c.Next()
	}
}

/*
* RequireOwner passes callers who own the addressed resource, admins always pass
* A missing resource is 404 for everyone but admins, who fall through to the
* controller and get its own not-found handling
 */
func RequireOwner(lookup OwnerLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			abortWith(c, http.StatusUnauthorized, utils.TOKEN_NOT_PROVIDED)
			return
		}
		if user.Role == role.Admin {
			c.Next()
			return
		}
		owners, err := lookup(c)
		if err != nil {
			if errors.Is(err, ErrOwnerNotFound) {
				abortWith(c, http.StatusNotFound, utils.RESOURCE_NOT_FOUND)
				return
			}
			log.Error().Err(err).Msg("owner lookup failed")
			abortWith(c, http.StatusInternalServerError, utils.ACCESS_DENIED)
			return
		}
		callerID := user.ID.Hex()
		for _, owner := range owners {
			if owner == callerID {
				c.Next()
				return
			}
		}
		abortWith(c, http.StatusForbidden, utils.ACCESS_DENIED)
	}
}

// CurrentUser returns the identity attached by Authenticate.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	raw, ok := c.Get(CtxUser)
	if !ok {
		return nil, false
	}
	user, ok := raw.(*models.User)
	return user, ok
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(CookieName); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}

func abortWith(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
}
