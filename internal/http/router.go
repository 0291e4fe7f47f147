package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Zuckmantra/dashboard-Camila/internal/config"
	"github.com/Zuckmantra/dashboard-Camila/internal/http/handler"
	"github.com/Zuckmantra/dashboard-Camila/internal/http/middleware"
)

// NewRouter wires Gin routes and middleware.
func NewRouter(
	cfg config.Config,
	authHandler *handler.AuthHandler,
	dashboardHandler *handler.DashboardHandler,
	clientHandler *handler.ClientHandler,
	chatHandler *handler.ChatHandler,
	authMiddleware *middleware.Auth,
	rateLimiter *middleware.RateLimiter,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(nil))
	if rateLimiter != nil {
		r.Use(rateLimiter.Handler())
	}
	r.Use(middleware.CORS(cfg))
	r.Use(otelgin.Middleware(cfg.ServiceName))

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
			auth.POST("/logout", authHandler.Logout)
		}

		dashboard := api.Group("/dashboard")
		dashboard.Use(authMiddleware.RequireAuth, authMiddleware.RequireArea("TI", "ADMIN"))
		{
			dashboard.GET("/stats", dashboardHandler.Stats)
			dashboard.GET("/charts", dashboardHandler.Charts)
		}

		protected := api.Group("")
		protected.Use(authMiddleware.RequireAuth)
		{
			protected.GET("/clientes", clientHandler.List)
			protected.POST("/clientes", clientHandler.Create)
			protected.GET("/clientes/:id", clientHandler.Get)

			protected.GET("/whatsapp", chatHandler.Whatsapp)
			protected.GET("/chats/:session_id", chatHandler.History)
			protected.GET("/n8n_chats", chatHandler.Sessions)
		}
	}

	return r
}
