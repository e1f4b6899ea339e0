package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"

	"github.com/venuslabs/venus-backend/internal/session"
	"github.com/venuslabs/venus-backend/internal/transport/http/handler"
	"github.com/venuslabs/venus-backend/internal/transport/http/middleware"
)

func NewRouter(
	logger *slog.Logger,
	authHandler *handler.AuthHandler,
	savingsHandler *handler.SavingsHandler,
	sessions *session.Manager,
	clientURL string,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	// The browser client sends the session cookie cross-origin, so CORS must
	// allow credentials for exactly that origin.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{clientURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type"},
		AllowCredentials: true,
	}))

	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "auth backend is running.",
		})
	})

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)

	// Protected savings routes
	savings := api.Group("/savings", middleware.Auth(sessions))
	savings.GET("", savingsHandler.List)
	savings.POST("", savingsHandler.Create)
	savings.POST("/:id/emergency-withdraw", savingsHandler.Withdraw)

	return r
}
