package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cleanblog/cleanblog/forms"
	"github.com/cleanblog/cleanblog/models"
	"github.com/cleanblog/cleanblog/utils"
)

// AuthController handles registration, login and logout.
type AuthController struct {
	db *gorm.DB
}

// NewAuthController creates an AuthController.
func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{db: db}
}

// RegisterPage renders the empty registration form.
func (a *AuthController) RegisterPage(ctx *gin.Context) {
	render(ctx, http.StatusOK, "register.html", gin.H{
		"Form": forms.RegisterForm{},
	})
}

// Register creates an account and logs the new user in. Re-registering an
// existing email is not an error: it flashes and redirects to login instead.
func (a *AuthController) Register(ctx *gin.Context) {
	var form forms.RegisterForm
	if err := ctx.ShouldBind(&form); err != nil {
		render(ctx, http.StatusOK, "register.html", gin.H{
			"Form":   form,
			"Errors": forms.FieldErrors(err),
		})
		return
	}

	email := strings.TrimSpace(form.Email)
	if _, err := models.UserByEmail(a.db, email); err == nil {
		utils.SetFlash(ctx, "You have already signed up with that email. Please log in instead.")
		ctx.Redirect(http.StatusFound, "/login")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		serverError(ctx, err)
		return
	}

	hash, err := utils.HashPassword(form.Password)
	if err != nil {
		serverError(ctx, err)
		return
	}

	user := models.User{
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(form.Name),
	}
	if err := a.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a race against a concurrent registration of the same email.
			utils.SetFlash(ctx, "You have already signed up with that email. Please log in instead.")
			ctx.Redirect(http.StatusFound, "/login")
			return
		}
		serverError(ctx, err)
		return
	}

	if err := a.startSession(ctx, user); err != nil {
		serverError(ctx, err)
		return
	}
	ctx.Redirect(http.StatusFound, "/")
}

// LoginPage renders the empty login form.
func (a *AuthController) LoginPage(ctx *gin.Context) {
	render(ctx, http.StatusOK, "login.html", gin.H{
		"Form": forms.LoginForm{},
	})
}

// Login verifies credentials and establishes a session. Unknown accounts and
// wrong passwords get distinct messages, matching the historical behavior.
func (a *AuthController) Login(ctx *gin.Context) {
	var form forms.LoginForm
	if err := ctx.ShouldBind(&form); err != nil {
		render(ctx, http.StatusOK, "login.html", gin.H{
			"Form":   form,
			"Errors": forms.FieldErrors(err),
		})
		return
	}

	user, err := models.UserByEmail(a.db, strings.TrimSpace(form.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			render(ctx, http.StatusOK, "login.html", gin.H{
				"Form":  form,
				"Flash": "User does not exist. Please try again.",
			})
			return
		}
		serverError(ctx, err)
		return
	}

	if !utils.CheckPassword(user.PasswordHash, form.Password) {
		render(ctx, http.StatusOK, "login.html", gin.H{
			"Form":  form,
			"Flash": "Invalid credentials. Try again.",
		})
		return
	}

	if err := a.startSession(ctx, *user); err != nil {
		serverError(ctx, err)
		return
	}
	ctx.Redirect(http.StatusFound, "/")
}

// Logout revokes the current session and clears the cookie.
func (a *AuthController) Logout(ctx *gin.Context) {
	if token, err := ctx.Cookie(utils.SessionCookieName); err == nil && token != "" {
		if claims, err := utils.ParseSessionToken(token); err == nil {
			utils.RevokeSession(claims.ID, claims.ExpiresAt.Time)
		}
	}
	utils.ClearSessionCookie(ctx)
	ctx.Redirect(http.StatusFound, "/")
}

func (a *AuthController) startSession(ctx *gin.Context, user models.User) error {
	token, err := utils.IssueSessionToken(user.ID, user.Name)
	if err != nil {
		return err
	}
	utils.SetSessionCookie(ctx, token)
	return nil
}
