package app

import (
	"english_edu_backend/docs"
	"english_edu_backend/internal/config"
	"english_edu_backend/internal/middleware"
	"english_edu_backend/internal/model"
	"english_edu_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.GET("/settings", c.settings.Get)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
	}

	// 学生/通用 授权接口
	authed := router.Group("/api")
	authed.Use(middleware.AuthMiddleware(cfg))
	{
		authed.GET("/auth/me", c.auth.Me)

		authed.GET("/courses", c.course.List)
		authed.GET("/courses/:id", c.course.Get)
		authed.POST("/courses/activate", c.activation.Activate)

		authed.POST("/lectures/:lectureId/toggle", c.user.ToggleLecture)
		authed.GET("/me/progress", c.user.Progress)
		authed.GET("/me/certificates", c.user.Certificates)
		authed.GET("/me/exam-results", c.exam.MyResults)

		authed.POST("/exams/start", c.exam.Start)
		authed.GET("/exams/session", c.exam.View)
		authed.DELETE("/exams/session", c.exam.Abandon)
		authed.POST("/exams/session/answer", c.exam.Answer)
		authed.POST("/exams/session/navigate", c.exam.Navigate)
		authed.POST("/exams/session/submit", c.exam.Submit)

		authed.GET("/forum/:grade", c.forum.List)
		authed.POST("/forum", c.forum.Post)
		authed.DELETE("/forum/messages/:id", c.forum.Delete)

		authed.POST("/chat", c.chat.Chat)
	}

	// 管理端接口
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/students", c.user.ListStudents)
		admin.GET("/students/:id/progress", c.user.StudentProgress)
		admin.PUT("/students/:id/block", c.user.SetBlocked)
		admin.PUT("/students/:id/level", c.user.SetLevel)
		admin.POST("/students/:id/certificates", c.user.IssueCertificate)

		admin.POST("/courses", c.course.Create)
		admin.PUT("/courses/:id", c.course.Update)
		admin.DELETE("/courses/:id", c.course.Delete)
		admin.POST("/courses/:id/lectures", c.course.UploadLecture)

		admin.GET("/activation-codes", c.activation.List)
		admin.POST("/activation-codes", c.activation.Issue)
		admin.DELETE("/activation-codes/:code", c.activation.Revoke)

		admin.GET("/exams/:examId/results", c.exam.ExamResults)

		admin.PUT("/settings", c.settings.Save)
		admin.PUT("/settings/forum-lock", c.settings.SetForumLock)
	}
}
