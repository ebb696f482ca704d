package server

import (
	"time"

	"classbook-svc/src/clients"
	"classbook-svc/src/internal/dependency"
	"classbook-svc/src/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func SetupRoutes(deps *dependency.Manager) {
	router := deps.Router
	router.Use(enableCORS)

	setupHealthEndpoint(deps)
	setupAPIRoutes(router, deps)
}

func setupHealthEndpoint(deps *dependency.Manager) {
	router := deps.Router
	mongodb := deps.Mongodb
	redisClient := deps.Redis
	cfg := deps.Config

	router.GET("/health", func(c *gin.Context) {
		log.Info("Health check endpoint requested")

		mongoStatus := "ok"
		if err := mongodb.Client.Ping(c.Request.Context(), nil); err != nil {
			mongoStatus = "error: " + err.Error()
		}

		redisStatus := "ok"
		if err := redisClient.Client.Ping(c.Request.Context()).Err(); err != nil {
			redisStatus = "error: " + err.Error()
		}

		c.JSON(200, gin.H{
			"status":    "ok",
			"service":   cfg.App.Name,
			"version":   cfg.App.Version,
			"mongodb":   mongoStatus,
			"redis":     redisStatus,
			"timestamp": time.Now().UTC().Format("2006-01-02T15:04:05Z07:00"),
		})
	})

	router.GET("/health/detailed", func(c *gin.Context) {
		log.Info("Detailed health check endpoint requested")

		c.JSON(200, gin.H{
			"status":  "operational",
			"service": cfg.App.Name,
			"version": cfg.App.Version,
			"components": gin.H{
				"database": gin.H{
					"mongodb": getStatus(isMongoConnected(mongodb, c)),
					"redis":   getStatus(isRedisConnected(redisClient.Client, c)),
				},
				"services": gin.H{
					"auth":    "operational",
					"session": "operational",
					"teacher": "operational",
				},
			},
		})
	})
}

func setupAPIRoutes(router *gin.Engine, deps *dependency.Manager) {
	authMiddleware := middleware.NewAuthMiddleware(deps.TokenCodec, deps.UserService)

	// The gate runs on every /api request and binds identity when a valid
	// token is presented; it never rejects. Protected groups reject via
	// RequireAuth.
	api := router.Group("/api", authMiddleware.Authenticate())

	api.POST("/auth/login", deps.AuthHandler.Login)
	api.POST("/auth/register", deps.AuthHandler.Register)

	protected := api.Group("", authMiddleware.RequireAuth())
	{
		protected.GET("/session", deps.SessionHandler.GetAllSessions)
		protected.GET("/session/:id", deps.SessionHandler.GetSession)
		protected.POST("/session", deps.SessionHandler.CreateSession)
		protected.PUT("/session/:id", deps.SessionHandler.UpdateSession)
		protected.DELETE("/session/:id", deps.SessionHandler.DeleteSession)
		protected.POST("/session/:id/participate/:userId", deps.SessionHandler.Participate)
		protected.DELETE("/session/:id/participate/:userId", deps.SessionHandler.Unparticipate)

		protected.GET("/teacher", deps.TeacherHandler.GetAllTeachers)
		protected.GET("/teacher/:id", deps.TeacherHandler.GetTeacher)

		protected.GET("/user/:id", deps.UserHandler.GetUser)
		protected.DELETE("/user/:id", deps.UserHandler.DeleteUser)
	}
}

func isMongoConnected(mongodb *clients.MongoDB, c *gin.Context) bool {
	if err := mongodb.Client.Ping(c.Request.Context(), nil); err != nil {
		return false
	}
	return true
}

func isRedisConnected(redisClient *redis.Client, c *gin.Context) bool {
	if err := redisClient.Ping(c.Request.Context()).Err(); err != nil {
		return false
	}
	return true
}

func enableCORS(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
	c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

	if c.Request.Method == "OPTIONS" {
		c.AbortWithStatus(204)
		return
	}

	c.Next()
}

func getStatus(b bool) string {
	if b {
		return "connected"
	}
	return "disconnected"
}
