package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/winrydberg/alumni-backend/internal/app/controllers"
	"github.com/winrydberg/alumni-backend/internal/app/models"
	"github.com/winrydberg/alumni-backend/internal/app/models/dto"
	"github.com/winrydberg/alumni-backend/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	memberChapterController *controllers.MemberChapterController,
	chapterManagementController *controllers.ChapterManagementController,
	configurationController *controllers.CountryConfigurationController,
	approvalController *controllers.ApprovalController,
	memberDonationController *controllers.MemberDonationController,
	donationManagementController *controllers.DonationManagementController,
	hallController *controllers.HallController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/alumni/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
		auth.POST("/logout", authController.Logout)
		auth.POST("/verify-email", authController.VerifyEmail)
		auth.GET("/verify-email", authController.VerifyEmail)
		auth.POST("/resend-verification", authController.ResendVerification)
		auth.POST("/forgot-password", authController.ForgotPassword)
		auth.POST("/reset-password", authController.ResetPassword)
	}

	// Public directories, used by the registration form
	v1.GET("/public/chapters", memberChapterController.BrowseChapters)
	v1.GET("/public/halls", hallController.ListHalls)

	// --- Authenticated alumni routes ---
	alumni := v1.Group("/alumni")
	alumni.Use(authMiddleware.JWTAuth())
	{
		alumni.POST("/auth/change-password", authController.ChangePassword)

		users := alumni.Group("/users")
		{
			users.GET("/me", userController.GetProfile)
			users.PUT("/me", userController.UpdateProfile)
		}

		chapters := alumni.Group("/chapters")
		{
			chapters.GET("", memberChapterController.BrowseChapters)
			chapters.GET("/suggested", memberChapterController.GetSuggestedChapter)
			chapters.GET("/available", memberChapterController.GetAvailableChapters)
			chapters.GET("/mine", memberChapterController.GetMyChapter)
			chapters.GET("/memberships", memberChapterController.GetMyMemberships)
			chapters.POST("/join", memberChapterController.JoinChapter)
			chapters.POST("/leave", memberChapterController.LeaveChapter)
			chapters.GET("/:chapterUuid", memberChapterController.GetChapter)
		}

		donations := alumni.Group("/donations")
		{
			donations.GET("", memberDonationController.ListDonations)
			donations.GET("/featured", memberDonationController.ListFeaturedDonations)
			donations.GET("/categories", memberDonationController.GetCategories)
			donations.GET("/payments/mine", memberDonationController.GetMyPayments)
			donations.GET("/:donationUuid", memberDonationController.GetDonation)
			donations.POST("/:donationUuid/payments", memberDonationController.MakePayment)
		}
	}

	// --- Admin routes ---
	admin := v1.Group("/admin")
	admin.Use(authMiddleware.JWTAuth(), authMiddleware.RoleRequired(models.RoleAdmin))
	{
		adminChapters := admin.Group("/chapters")
		{
			adminChapters.GET("", chapterManagementController.ListChapters)
			adminChapters.GET("/statistics", chapterManagementController.GetStatistics)
			adminChapters.GET("/:id", chapterManagementController.GetChapter)
			adminChapters.POST("", chapterManagementController.CreateChapter)
			adminChapters.PUT("/:id", chapterManagementController.UpdateChapter)
			adminChapters.DELETE("/:id", chapterManagementController.DeleteChapter)
			adminChapters.GET("/:id/members", chapterManagementController.GetChapterMembers)
		}

		adminConfigs := admin.Group("/country-configurations")
		{
			adminConfigs.GET("", configurationController.ListConfigurations)
			adminConfigs.GET("/:id", configurationController.GetConfiguration)
			adminConfigs.GET("/country/:countryCode", configurationController.GetConfigurationByCountry)
			adminConfigs.PUT("", configurationController.UpsertConfiguration)
			adminConfigs.DELETE("/:id", configurationController.DeleteConfiguration)
		}

		adminDonations := admin.Group("/donations")
		{
			adminDonations.GET("", donationManagementController.ListDonations)
			adminDonations.GET("/statistics", donationManagementController.GetStatistics)
			adminDonations.POST("", donationManagementController.CreateDonation)
			adminDonations.PUT("/:id", donationManagementController.UpdateDonation)
			adminDonations.DELETE("/:id", donationManagementController.DeleteDonation)
			adminDonations.POST("/payments/:reference/complete", donationManagementController.CompletePayment)
			adminDonations.POST("/payments/:reference/fail", donationManagementController.FailPayment)
		}

		adminUsers := admin.Group("/users")
		{
			adminUsers.GET("", approvalController.ListUsers)
			adminUsers.GET("/pending", approvalController.GetPendingUsers)
			adminUsers.GET("/:id", approvalController.GetUser)
			adminUsers.POST("/approve", approvalController.ApproveUsers)
			adminUsers.POST("/:id/approve", approvalController.ApproveUser)
			adminUsers.POST("/:id/reject", approvalController.RejectUser)
			adminUsers.PUT("/:id/active", approvalController.SetAccountActive)
			adminUsers.PUT("/:id/chapter", approvalController.AssignChapter)
		}
	}

	// Prometheus scrape endpoint (public)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.NewStructuredResponse(gin.H{"status": "ok"}, "Service healthy"))
	})
}
