package app

import (
	"studylog_backend/internal/config"
	"studylog_backend/internal/middleware"
	"studylog_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))
	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")

	// 公開ルート。フィードと閲覧系はゲストでも見られるが、
	// ログイン済みならフォロー関係でフィルタされる。
	api.GET("/health", c.health.HealthCheck)
	api.POST("/auth/register", c.auth.Register)
	api.POST("/auth/login", c.auth.Login)
	api.GET("/feed", middleware.TryAuthMiddleware(cfg), c.feed.GetFeed)
	api.GET("/records/:id", middleware.TryAuthMiddleware(cfg), c.record.GetDetail)
	api.GET("/materials", c.material.List)
	api.GET("/materials/search", c.material.Search)
	api.GET("/achievements", c.achievement.List)
	api.GET("/users/search", c.profile.SearchUsers)
	api.GET("/users/:id", middleware.TryAuthMiddleware(cfg), c.profile.GetUserPage)

	// 要ログイン
	auth := api.Group("")
	auth.Use(middleware.AuthMiddleware(cfg))
	{
		auth.GET("/auth/me", c.auth.Me)

		auth.POST("/records", c.record.Create)
		auth.GET("/records", c.record.ListMine)
		auth.DELETE("/records/:id", c.record.Delete)
		auth.POST("/records/:id/comments", c.record.AddComment)

		auth.POST("/goals", c.goal.Create)
		auth.GET("/goals", c.goal.ListMine)
		auth.PUT("/goals/:id", c.goal.Update)
		auth.DELETE("/goals/:id", c.goal.Delete)

		auth.POST("/materials", c.material.Create)
		auth.DELETE("/materials/:id", c.material.Delete)

		auth.GET("/profile", c.profile.GetOwn)
		auth.PUT("/profile", c.profile.Update)
		auth.POST("/profile/avatar", c.profile.UploadAvatar)
		auth.GET("/profile/target-schools", c.profile.ListTargetSchools)
		auth.POST("/profile/target-schools", c.profile.AddTargetSchool)
		auth.DELETE("/profile/target-schools/:id", c.profile.DeleteTargetSchool)

		auth.POST("/users/:id/follow", c.follow.Follow)
		auth.DELETE("/users/:id/follow", c.follow.Unfollow)
		auth.GET("/users/:id/follow", c.follow.Status)
		auth.GET("/follows", c.follow.Following)

		auth.POST("/achievements", c.achievement.Create)
		auth.DELETE("/achievements/:id", c.achievement.Delete)

		auth.GET("/report/summary", c.report.GetSummary)
		auth.GET("/report/calendar", c.report.GetCalendar)

		auth.POST("/chat", c.chat.Chat)
		auth.GET("/chat/feedback", c.chat.Feedback)
	}
}
