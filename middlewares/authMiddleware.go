package middlewares

import (
	"context"
	"strings"

	"bitbucket.org/mmdatafocus/daily_report_backend/appctx"
	"bitbucket.org/mmdatafocus/daily_report_backend/models"
	"bitbucket.org/mmdatafocus/daily_report_backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const AccessTokenCookie = "access_token"

type authString string

const claimsKey = authString("auth")

// TokenResolver turns a raw token into its user.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (*models.User, *utils.JwtCustomClaim, error)
}

// AuthMiddleware resolves the caller from the access_token cookie or a Bearer header.
// A request without a usable token continues anonymously; handlers decide whether a caller is required.
func AuthMiddleware(resolver TokenResolver, logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		user, claims, err := resolver.ResolveToken(ctx, token)
		if err != nil {
			if !utils.IsErrorKind(err, utils.ErrorKindUnauthorized) && logger != nil {
				logger.WithError(err).Warn("token resolution failed")
			}
			c.Next()
			return
		}

		ctx = appctx.Set(ctx, appctx.ContextKeyCurrentUser, user)
		ctx = context.WithValue(ctx, claimsKey, claims)
		ctx = utils.SetTokenInContext(ctx, token)
		ctx = utils.SetTokenIdInContext(ctx, claims.Id)
		ctx = utils.SetUserIdInContext(ctx, user.ID)
		ctx = utils.SetUserRoleInContext(ctx, string(user.Role))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie != "" {
		return cookie
	}
	auth := c.Request.Header.Get("Authorization")
	bearer := "Bearer "
	if len(auth) > len(bearer) && strings.EqualFold(auth[:len(bearer)], bearer) {
		return strings.TrimSpace(auth[len(bearer):])
	}
	return ""
}

// CurrentUser is nil for anonymous requests.
func CurrentUser(ctx context.Context) *models.User {
	user, _ := appctx.Get(ctx, appctx.ContextKeyCurrentUser).(*models.User)
	return user
}

func CtxValue(ctx context.Context) *utils.JwtCustomClaim {
	raw, _ := ctx.Value(claimsKey).(*utils.JwtCustomClaim)
	return raw
}
