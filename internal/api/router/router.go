package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bneller/littlesteps2/config"
	"github.com/bneller/littlesteps2/internal/api/handler"
	"github.com/bneller/littlesteps2/internal/api/middleware"
	"github.com/bneller/littlesteps2/pkg/jwt"
	"github.com/bneller/littlesteps2/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API ──
	api := r.Group("/api")
	{
		// 认证模块（无需认证）
		auth := api.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由（auth.enabled=false 时注入内置管理员放行）
		authorized := api.Group("")
		authorized.Use(middleware.Auth(&cfg.Auth, jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)

			// 班级模块
			classrooms := authorized.Group("/classrooms")
			{
				classrooms.GET("", h.Classroom.ListClassrooms)
				classrooms.GET("/:id", h.Classroom.GetClassroom)
				classrooms.POST("", h.Classroom.CreateClassroom)
				classrooms.PATCH("/:id", h.Classroom.UpdateClassroom)
				classrooms.DELETE("/:id", h.Classroom.DeleteClassroom)
			}

			// 幼儿模块
			children := authorized.Group("/children")
			{
				children.GET("", h.Child.ListChildren)
				children.GET("/:id", h.Child.GetChild)
				children.POST("", h.Child.CreateChild)
				children.PATCH("/:id", h.Child.UpdateChild)
				children.DELETE("/:id", h.Child.DeleteChild)
			}

			// 仪表盘模块
			authorized.GET("/dashboard", h.Dashboard.GetDashboard)

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/occupancy", h.Export.ExportOccupancy)
				export.GET("/transitions", h.Export.ExportTransitions)
			}
		}
	}

	return r
}
