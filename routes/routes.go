package routes

import (
	"omi-stitch-api/controllers"
	"omi-stitch-api/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	controllers.RegisterValidators()

	// Form endpoints share one per-IP limiter so a burst on the pitch
	// form also throttles the contact form.
	formLimiter := middleware.NewRateLimiterFromEnv()

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/auth/login", controllers.Login)

			// Site content
			public.GET("/pillars", controllers.GetPillars)
			public.GET("/settings", controllers.GetPublicSettings)

			// Project intake and general contact, rate limited per IP
			forms := public.Group("")
			forms.Use(formLimiter.Middleware())
			{
				forms.POST("/submissions", controllers.SubmitProject)
				forms.POST("/contact", controllers.SubmitContactMessage)
				forms.POST("/newsletter", controllers.SubscribeNewsletter)
			}

			// Tracking by token; the token is the only credential
			public.GET("/track/:token", controllers.TrackSubmission)
			public.POST("/track/:token/comments", formLimiter.Middleware(), controllers.AddTrackedComment)
		}

		// Admin routes (require authentication)
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware())
		{
			// Account
			admin.GET("/profile", controllers.GetProfile)
			admin.PUT("/change-password", controllers.ChangePassword)

			// Project submissions
			submissions := admin.Group("/submissions")
			{
				submissions.GET("", controllers.ListSubmissions)
				submissions.GET("/stats", controllers.GetSubmissionStats)
				submissions.GET("/:id", controllers.GetSubmission)
				submissions.PUT("/:id/status", controllers.UpdateSubmissionStatus)
				submissions.DELETE("/:id", controllers.DeleteSubmission)

				submissions.GET("/:id/comments", controllers.ListSubmissionComments)
				submissions.POST("/:id/comments", controllers.AddAdminComment)
			}

			// Comment read state
			admin.PUT("/comments/:id/read", controllers.MarkCommentRead)

			// Email audit log
			emails := admin.Group("/emails")
			{
				emails.GET("", controllers.ListEmailRecords)
				emails.GET("/:id", controllers.GetEmailRecord)
				emails.POST("/:id/retry", controllers.RetryEmail)
				emails.POST("/retry-failed", controllers.RetryFailedEmails)
			}

			// Site settings
			settings := admin.Group("/settings")
			{
				settings.GET("/:key", controllers.GetSetting)
				settings.PUT("/:key", controllers.UpsertSetting)
				settings.DELETE("/:key", controllers.DeleteSetting)
			}

			// Contact inbox and newsletter roster
			admin.GET("/contact", controllers.ListContactMessages)
			admin.GET("/newsletter", controllers.ListNewsletterSubscribers)
		}
	}

	// Health check outside the versioned group, mirroring the public site
	router.GET("/health", controllers.HealthCheck)
}
