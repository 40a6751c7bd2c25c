package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PageController serves the static about and contact pages.
type PageController struct{}

// NewPageController creates a PageController.
func NewPageController() *PageController {
	return &PageController{}
}

// About renders the about page.
func (p *PageController) About(ctx *gin.Context) {
	render(ctx, http.StatusOK, "about.html", nil)
}

// Contact renders the contact page.
func (p *PageController) Contact(ctx *gin.Context) {
	render(ctx, http.StatusOK, "contact.html", nil)
}
