package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"github.com/cppla/postboard/config"
	"github.com/cppla/postboard/controllers"
	"github.com/cppla/postboard/middleware"
	"github.com/cppla/postboard/utils"
	"github.com/cppla/postboard/views"
)

// SessionCookieName names the cookie holding flashed values.
const SessionCookieName = "postboard_session"

// NewHandler returns the router wrapped with form method spoofing, ready for http.Server.
func NewHandler(db *gorm.DB) http.Handler {
	return middleware.MethodOverride(SetupRouter(db))
}

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
	r.Use(middleware.RequestID())

	// Access log goes to its own rolling file when GIN_PATH is set, else to the app logger.
	gl := utils.Logger
	if cfg.GinPath != "" {
		fl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
		if err != nil {
			utils.Sugar.Warnf("gin access log disabled: %v", err)
		} else {
			gl = fl
		}
	}
	r.Use(ginzap.GinzapWithConfig(gl, &ginzap.Config{
		TimeFormat: time.RFC3339,
		UTC:        true,
		SkipPaths:  []string{"/health"},
		Context: func(c *gin.Context) []zapcore.Field {
			return []zapcore.Field{zap.String("request_id", c.GetString(middleware.ContextRequestIDKey))}
		},
	}))
	r.Use(ginzap.RecoveryWithZap(gl, true))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
		// Credentials cannot be combined with a wildcard origin.
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.Use(sessions.Sessions(SessionCookieName, sessionStore(cfg)))
	r.SetHTMLTemplate(views.MustLoad())

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})
	r.GET("/", func(ctx *gin.Context) {
		ctx.Redirect(http.StatusFound, "/posts")
	})

	postController := controllers.NewPostController(db)
	commentController := controllers.NewCommentController(db)
	apiController := controllers.NewPostAPIController(db)
	statsController := controllers.NewStatsController(db)

	web := r.Group("")
	web.Use(middleware.PageViewRecorder(db))
	web.GET("/posts", postController.Index)
	web.GET("/posts/create", postController.Create)
	web.POST("/posts", postController.Store)
	web.GET("/posts/:id", postController.Show)
	web.GET("/posts/:id/edit", postController.Edit)
	web.PUT("/posts/:id", postController.Update)
	web.PATCH("/posts/:id", postController.Update)
	web.DELETE("/posts/:id", postController.Destroy)
	web.POST("/posts/:id/comments", commentController.Store)
	web.DELETE("/posts/:id/comments/:comment", commentController.Destroy)

	api := r.Group("/api/v1")
	api.GET("/posts", apiController.ListPosts)
	api.GET("/posts/:id", apiController.GetPost)
	api.GET("/posts/:id/comments", apiController.ListComments)
	api.GET("/stats", statsController.GetStats)
	api.GET("/posts/:id/stats", statsController.GetPostStats)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired(), middleware.RateLimitMiddleware())
	protected.POST("/posts", apiController.CreatePost)
	protected.PUT("/posts/:id", apiController.UpdatePost)
	protected.PATCH("/posts/:id", apiController.UpdatePost)
	protected.DELETE("/posts/:id", apiController.DeletePost)
	protected.POST("/posts/:id/comments", apiController.CreateComment)
	protected.DELETE("/comments/:commentId", apiController.DeleteComment)

	r.NoRoute(func(ctx *gin.Context) {
		if strings.HasPrefix(ctx.Request.URL.Path, "/api/") {
			utils.Error(ctx, http.StatusNotFound, 40400, "api route not found")
			return
		}
		controllers.NotFound(ctx)
	})

	return r
}

func sessionStore(cfg config.AppConfig) sessions.Store {
	key := cfg.AppKey
	if key == "" {
		utils.Sugar.Warn("APP_KEY is empty, flashed messages will not survive a restart; run `postboard key:generate`")
		key = uuid.NewString()
	}
	store := cookie.NewStore([]byte(key))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int((2 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return store
}
