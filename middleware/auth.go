package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cleanblog/cleanblog/config"
	"github.com/cleanblog/cleanblog/utils"
)

const (
	// ContextUserIDKey stores the authenticated user ID in the Gin context.
	ContextUserIDKey = "user_id"
	// ContextUserNameKey stores the display name in the Gin context.
	ContextUserNameKey = "user_name"
)

// Decision is the outcome of an authorization check. Guards evaluate it
// explicitly instead of reading identity fields that may not exist for an
// anonymous request.
type Decision struct {
	Allowed bool
	Reason  string
}

// Allow grants access.
func Allow() Decision { return Decision{Allowed: true} }

// Deny refuses access with a reason for the log.
func Deny(reason string) Decision { return Decision{Reason: reason} }

// CurrentUser resolves the session cookie into a user identity on every
// request. It never aborts: anonymous requests simply carry no identity.
func CurrentUser() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, err := ctx.Cookie(utils.SessionCookieName)
		if err != nil || token == "" {
			ctx.Next()
			return
		}
		claims, err := utils.ParseSessionToken(token)
		if err != nil {
			// Stale or tampered cookie; drop it so the client stops sending it.
			utils.ClearSessionCookie(ctx)
			ctx.Next()
			return
		}
		if utils.IsSessionRevoked(claims.ID) {
			utils.ClearSessionCookie(ctx)
			ctx.Next()
			return
		}
		ctx.Set(ContextUserIDKey, claims.UserID)
		ctx.Set(ContextUserNameKey, claims.Name)
		ctx.Next()
	}
}

// UserID returns the authenticated user's identity, if any.
func UserID(ctx *gin.Context) (uint, bool) {
	v, ok := ctx.Get(ContextUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// IsAuthenticated reports whether the request carries a valid session.
func IsAuthenticated(ctx *gin.Context) bool {
	_, ok := UserID(ctx)
	return ok
}

// AuthorizeUser decides whether the request may act as a logged-in user.
func AuthorizeUser(ctx *gin.Context) Decision {
	if !IsAuthenticated(ctx) {
		return Deny("authentication required")
	}
	return Allow()
}

// AuthorizeAdmin decides whether the request may act as the administrator.
// Anonymous requests are denied, never faulted.
func AuthorizeAdmin(ctx *gin.Context) Decision {
	id, ok := UserID(ctx)
	if !ok {
		return Deny("authentication required")
	}
	if id != config.Get().AdminUserID {
		return Deny("administrator only")
	}
	return Allow()
}

// AuthRequired guards routes that need any authenticated user.
func AuthRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if d := AuthorizeUser(ctx); !d.Allowed {
			forbid(ctx, d)
			return
		}
		ctx.Next()
	}
}

// AdminOnly guards routes reserved for the administrator.
func AdminOnly() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if d := AuthorizeAdmin(ctx); !d.Allowed {
			forbid(ctx, d)
			return
		}
		ctx.Next()
	}
}

func forbid(ctx *gin.Context, d Decision) {
	if utils.Sugar != nil {
		utils.Sugar.Infow("request forbidden",
			"path", ctx.Request.URL.Path,
			"reason", d.Reason,
		)
	}
	ctx.String(http.StatusForbidden, "403 Forbidden")
	ctx.Abort()
}
