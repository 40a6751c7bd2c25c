package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cleanblog/cleanblog/middleware"
	"github.com/cleanblog/cleanblog/utils"
)

// render fills in the fields every view expects (authentication flag, pending
// flash) before handing data to the template.
func render(ctx *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data["LoggedIn"]; !ok {
		data["LoggedIn"] = middleware.IsAuthenticated(ctx)
	}
	if _, ok := data["IsAdmin"]; !ok {
		data["IsAdmin"] = middleware.AuthorizeAdmin(ctx).Allowed
	}
	if _, ok := data["Flash"]; !ok {
		data["Flash"] = utils.TakeFlash(ctx)
	}
	ctx.HTML(status, name, data)
}

func notFound(ctx *gin.Context) {
	ctx.String(http.StatusNotFound, "404 Not Found")
}

func serverError(ctx *gin.Context, err error) {
	if utils.Sugar != nil {
		utils.Sugar.Errorw("request failed", "path", ctx.Request.URL.Path, "err", err)
	}
	ctx.String(http.StatusInternalServerError, "500 Internal Server Error")
}
