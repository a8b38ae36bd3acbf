package app

import (
	"surveyhub_backend/docs"
	"surveyhub_backend/internal/config"
	"surveyhub_backend/internal/middleware"
	"surveyhub_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")

	// 公共路由（无需登录）
	api.GET("/health", c.health.HealthCheck)
	api.POST("/auth/register", c.auth.Register)
	api.POST("/auth/login", c.auth.Login)

	// 问卷列表允许匿名访问，登录后才做"排除自己的和答过的"过滤
	api.GET("/surveys", middleware.TryAuthMiddleware(cfg, repos.user), c.survey.ListSurveys)
	api.GET("/surveys/:id", c.survey.GetSurvey)

	// 需要授权的路由
	authGroup := api.Group("")
	authGroup.Use(middleware.AuthMiddleware(cfg, repos.user))
	{
		authGroup.GET("/auth/me", c.auth.Me)
		authGroup.PUT("/auth/me", c.auth.UpdateMe)

		authGroup.POST("/surveys", c.survey.CreateSurvey)
		authGroup.GET("/surveys/my-surveys", c.survey.MySurveys)
		authGroup.GET("/surveys/my-responses", c.survey.MyResponses)
		authGroup.GET("/surveys/:id/my-response", c.survey.MyResponse)
		authGroup.POST("/surveys/:id/submit", c.survey.SubmitResponse)
		authGroup.PUT("/surveys/:id/response", c.survey.UpdateResponse)
		authGroup.DELETE("/surveys/:id/response", c.survey.DeleteResponse)
		authGroup.DELETE("/surveys/:id", c.survey.DeleteSurvey)
		authGroup.GET("/surveys/:id/stats", c.survey.Stats)
	}

	// 管理员相关接口
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg, repos.user), middleware.AdminMiddleware())
	{
		admin.GET("/users", c.admin.GetUsers)
		admin.PUT("/users/:id/role", c.admin.UpdateUserRole)
		admin.DELETE("/users/:id", c.admin.DeleteUser)
		admin.GET("/stats", c.admin.Stats)
		admin.PUT("/users/:id/info", c.admin.UpdateUserInfo)
	}
}
