package httpapi

import (
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Router builds the gin engine with every account route registered.
func (s *HTTPServer) Router() *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(gin.Recovery(), s.requestLogger())
	if c, ok := corsConfig(s.corsOrigins); ok {
		router.Use(cors.New(c))
	}

	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"detail": fmt.Sprintf("Method %q not allowed.", c.Request.Method)})
	})
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"detail": msgNotFound})
	})

	router.GET("/healthz", s.healthCheck)

	router.POST("/register", s.register)
	router.POST("/verify-email", s.verifyEmail)
	router.POST("/accounts/confirm-email/:key/", s.confirmEmail)
	router.POST("/resend-verification", s.resendVerification)
	router.POST("/login", s.login)
	router.POST("/change-password", s.changePassword)

	router.GET("/users", s.listUsers)

	router.GET("/profile", s.getProfile)
	router.PATCH("/profile", s.updateProfile(true))
	router.PUT("/profile", s.updateProfile(false))

	return router
}

func corsConfig(origins []string) (cors.Config, bool) {
	if len(origins) == 0 {
		return cors.Config{}, false
	}

	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Content-Length"},
		ExposeHeaders:    []string{"Content-Type", "Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if slices.Contains(origins, "*") {
		c.AllowAllOrigins = true
		c.AllowCredentials = false
	} else {
		c.AllowOrigins = origins
	}
	return c, true
}

func (s *HTTPServer) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.logger.Info(c.Request.Context(), "http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
