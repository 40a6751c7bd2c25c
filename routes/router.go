package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cleanblog/cleanblog/config"
	"github.com/cleanblog/cleanblog/controllers"
	"github.com/cleanblog/cleanblog/middleware"
	"github.com/cleanblog/cleanblog/utils"
	"github.com/cleanblog/cleanblog/views"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Access log and recovery go through zap instead of gin's console logger.
	al, err := utils.NewRollingFileLogger(cfg.AccessLogPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(al, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(al, false))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	// Every request resolves its session cookie once, up front.
	r.Use(middleware.CurrentUser())

	r.SetHTMLTemplate(views.Templates())
	r.Static("/static", "./static")

	authController := controllers.NewAuthController(db)
	postController := controllers.NewPostController(db)
	pageController := controllers.NewPageController()

	r.GET("/", postController.Index)
	r.GET("/about", pageController.About)
	r.GET("/contact", pageController.Contact)

	r.GET("/register", authController.RegisterPage)
	r.POST("/register", middleware.RateLimit(), authController.Register)
	r.GET("/login", authController.LoginPage)
	r.POST("/login", middleware.RateLimit(), authController.Login)
	r.GET("/logout", authController.Logout)

	r.GET("/post/:id", postController.Show)
	r.POST("/post/:id", middleware.AuthRequired(), postController.CreateComment)

	// Authoring is the administrator's alone.
	admin := r.Group("", middleware.AuthRequired(), middleware.AdminOnly())
	admin.GET("/new-post", postController.NewPostPage)
	admin.POST("/new-post", postController.CreatePost)
	admin.GET("/edit-post/:id", postController.EditPostPage)
	admin.POST("/edit-post/:id", postController.UpdatePost)
	admin.GET("/delete/:id", postController.DeletePost)

	r.NoRoute(func(ctx *gin.Context) {
		ctx.String(http.StatusNotFound, "404 Not Found")
	})

	return r
}
