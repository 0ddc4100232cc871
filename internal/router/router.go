package router

import (
	"time"

	"SafeCampus/internal/config"
	"SafeCampus/internal/handler"
	"SafeCampus/internal/middleware"
	"SafeCampus/internal/repository/redis"
	"SafeCampus/internal/service"

	"github.com/gin-gonic/gin"
)

func InitRouter(cfg *config.Config) *gin.Engine {
	r := gin.Default()

	emailSvc := service.NewEmailService(cfg.SMTP)

	user := handler.NewUserHandler(service.NewUserService(emailSvc))
	email := handler.NewEmailHandler(emailSvc)
	follow := handler.NewFollowHandler(service.NewFollowService())
	post := handler.NewPostHandler(service.NewPostService())
	report := handler.NewReportHandler(service.NewReportService())
	tip := handler.NewTipHandler(service.NewTipService())
	upload := handler.NewUploadHandler(cfg.Upload)

	// uploaded media
	r.Static(cfg.Upload.BaseURL, cfg.Upload.Dir)

	// verification codes
	emailGroup := r.Group("/api/email")
	{
		emailGroup.POST("/:scope/code", email.SendCode)
	}

	loginLimiter := middleware.LoginLimiter(&redis.LimiterRepository{}, 5, 5*time.Minute)

	// account lifecycle, no login required
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", user.Register)
		authGroup.POST("/verify", user.VerifyEmail)
		authGroup.POST("/login", loginLimiter, user.Login)
		authGroup.POST("/forgot-password", user.ForgotPassword)
		authGroup.POST("/new-password", user.SetNewPassword)
	}

	tokenGroup := r.Group("/api/token")
	{
		tokenGroup.POST("/refresh", user.TokenRefresh)
	}

	// user account and profile
	userGroup := r.Group("/api/user")
	userGroup.Use(middleware.AuthMiddleware())
	{
		userGroup.POST("/logout", user.Logout)
		userGroup.POST("/change-password", user.ChangePassword)
		userGroup.GET("/list", user.List)
		userGroup.GET("/some/:ids", user.Some)
		userGroup.GET("/recommended", user.Recommended)
		userGroup.GET("/:id", user.Get)
		userGroup.POST("/update", user.Update)
		userGroup.POST("/profile-photo", user.ProfilePhoto)
		userGroup.POST("/cover-photo", user.CoverPhoto)
		userGroup.DELETE("/", user.Delete)
	}

	// follow graph
	followGroup := r.Group("/api/follow")
	followGroup.Use(middleware.AuthMiddleware())
	{
		followGroup.POST("/", follow.Follow)
		followGroup.GET("/followers/:id", follow.ListFollowers)
		followGroup.GET("/following/:id", follow.ListFollowing)
		followGroup.GET("/relation", follow.Relation)
	}

	// posts and feeds
	postGroup := r.Group("/api/post")
	postGroup.Use(middleware.AuthMiddleware())
	{
		postGroup.POST("/create", post.Create)
		postGroup.POST("/update", post.Update)
		postGroup.DELETE("/:id", post.Delete)
		postGroup.GET("/feed", post.Feed)
		postGroup.GET("/profile/:id", post.ProfileFeed)
		postGroup.GET("/timeline", post.Timeline)
		postGroup.POST("/hide", post.Hide)
		postGroup.POST("/react", post.React)
		postGroup.POST("/comment", post.Comment)
		postGroup.GET("/comments/:id", post.Comments)
		postGroup.POST("/reply", post.Reply)
		postGroup.POST("/comment/react", post.ReactToComment)
		postGroup.POST("/reply/react", post.ReactToReply)
	}

	// incident reports
	reportGroup := r.Group("/api/report")
	reportGroup.Use(middleware.AuthMiddleware())
	{
		reportGroup.POST("/create", report.Create)
		reportGroup.GET("/mine", report.Mine)
	}

	// safety tips
	tipGroup := r.Group("/api/tips")
	tipGroup.Use(middleware.AuthMiddleware())
	{
		tipGroup.GET("/", tip.List)
	}

	// media upload
	uploadGroup := r.Group("/api/upload")
	uploadGroup.Use(middleware.AuthMiddleware())
	{
		uploadGroup.POST("/", upload.Upload)
	}

	// staff-only operations
	adminGroup := r.Group("/api/admin")
	adminGroup.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		adminGroup.GET("/report/all", report.All)
		adminGroup.POST("/report/acknowledge", report.Acknowledge)
		adminGroup.POST("/tips/create", tip.Create)
	}

	return r
}
