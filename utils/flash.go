package utils

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

const FlashCookieName = "blog_flash"

// SetFlash stores a one-shot notice surfaced on the next rendered page.
func SetFlash(ctx *gin.Context, message string) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(FlashCookieName, url.QueryEscape(message), 300, "/", "", false, true)
}

// TakeFlash returns the pending flash message, if any, and clears it.
func TakeFlash(ctx *gin.Context) string {
	raw, err := ctx.Cookie(FlashCookieName)
	if err != nil || raw == "" {
		return ""
	}
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(FlashCookieName, "", -1, "/", "", false, true)
	message, err := url.QueryUnescape(raw)
	if err != nil {
		return ""
	}
	return message
}
