package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yogastudio/yoga-app/internal/app/controllers"
	"github.com/yogastudio/yoga-app/internal/middleware"
)

// Controllers groups every HTTP handler set
type Controllers struct {
	Auth    *controllers.AuthController
	User    *controllers.UserController
	Teacher *controllers.TeacherController
	Session *controllers.SessionController
}

// SetupRouter configures all application routes. The authentication filter runs on every
// request; only the protected group rejects anonymous callers.
func SetupRouter(router *gin.Engine, ctrl Controllers, authMiddleware *middleware.AuthMiddleware) {
	router.Use(authMiddleware.Authenticate())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	api := router.Group("/api")

	// --- Public Auth routes ---
	auth := api.Group("/auth")
	{
		auth.POST("/login", ctrl.Auth.Login)
		auth.POST("/register", ctrl.Auth.Register)
	}

	// --- Authenticated Routes Group ---
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())

	users := protected.Group("/user")
	{
		users.GET("/:id", ctrl.User.FindByID)
		users.DELETE("/:id", ctrl.User.Delete)
	}

	teachers := protected.Group("/teacher")
	{
		teachers.GET("", ctrl.Teacher.FindAll)
		teachers.GET("/:id", ctrl.Teacher.FindByID)
	}

	sessions := protected.Group("/session")
	{
		sessions.GET("", ctrl.Session.FindAll)
		sessions.GET("/:id", ctrl.Session.FindByID)
		sessions.POST("", ctrl.Session.Create)
		sessions.PUT("/:id", ctrl.Session.Update)
		sessions.DELETE("/:id", ctrl.Session.Delete)
		sessions.POST("/:id/participate/:userId", ctrl.Session.Participate)
		sessions.DELETE("/:id/participate/:userId", ctrl.Session.Unparticipate)
	}

	// Anything else under /api answers 401 to anonymous callers and 404 otherwise
	router.NoRoute(authMiddleware.RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found", "path": c.Request.URL.Path})
	})
}
