package routes

import (
	"github.com/emilycheera/nourish/controllers"
	"github.com/emilycheera/nourish/middlewares"

	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/dietitian/register", controllers.RegisterDietitian)
		auth.POST("/dietitian/login", controllers.DietitianLogin)
		auth.POST("/patient/login", controllers.PatientLogin)
	}

	api := r.Group("/")
	api.Use(middlewares.AuthMiddleware())
	{
		// Dietitian account
		diet := api.Group("/dietitian", middlewares.RequireDietitian())
		{
			diet.PUT("/account", controllers.UpdateDietitian)
			diet.POST("/account/reset-password", controllers.ResetDietitianPassword)
			diet.GET("/patients", controllers.ListPatients)
			diet.POST("/patients", controllers.CreatePatient)
			diet.GET("/posts/feed", controllers.DietitianFeed)
		}

		// Patient accounts (dietitian-owned or self)
		api.PUT("/patients/:id", controllers.UpdatePatient)
		api.POST("/patients/:id/reset-password", controllers.ResetPatientPassword)
		api.PUT("/patients/:id/post-form", middlewares.RequireDietitian(), controllers.UpdatePostForm)

		// Posts and comments
		api.GET("/patients/:id/posts", controllers.PatientPosts)
		api.POST("/posts", controllers.CreatePost)
		api.PUT("/posts/:id", controllers.UpdatePost)
		api.DELETE("/posts/:id", controllers.DeletePost)
		api.POST("/posts/:id/comments", controllers.AddComment)
		api.PUT("/comments/:id", controllers.EditComment)
		api.DELETE("/comments/:id", controllers.DeleteComment)

		// Goals (written by the dietitian)
		api.GET("/patients/:id/goals", controllers.PatientGoals)
		api.POST("/patients/:id/goals", middlewares.RequireDietitian(), controllers.AddGoal)
		api.PUT("/goals/:id", middlewares.RequireDietitian(), controllers.EditGoal)
		api.DELETE("/goals/:id", middlewares.RequireDietitian(), controllers.DeleteGoal)

		// Ratings charts
		api.GET("/patients/:id/ratings/recent", controllers.RecentRatings)
		api.GET("/patients/:id/ratings/past", controllers.PastRatings)
		api.GET("/patients/:id/chart-post", controllers.ChartPost)
	}

	return r
}
