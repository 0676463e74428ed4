package routes

import (
	"backend/controllers"
	"backend/middlewares"
	"backend/models"

	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	api := r.Group("/api")

	// Public
	api.POST("/auth/register", controllers.Register)
	api.POST("/auth/login", controllers.Login)
	api.POST("/invitations/:token/accept", controllers.AcceptInvitation)

	// Authenticated
	auth := api.Group("")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.GET("/profile", controllers.GetProfile)
		auth.PUT("/profile", controllers.UpdateProfile)

		auth.GET("/patients/:id", controllers.GetPatient)
		auth.POST("/patients/:id/anamnesis", controllers.SubmitAnamnesis)
		auth.GET("/patients/:id/prescriptions", controllers.ListPrescriptions)
		auth.GET("/patients/:id/latest-prescription", controllers.GetLatestPrescription)
		auth.GET("/patients/:id/subscription", controllers.GetSubscription)
		auth.POST("/patients/:id/subscription", controllers.RequestSubscription)

		auth.GET("/prescriptions/:id", controllers.GetPrescription)
		auth.GET("/prescriptions/:id/export.json", controllers.ExportPrescriptionJSON)
		auth.GET("/prescriptions/:id/pdf", controllers.ExportPrescriptionPDF)
		auth.PUT("/prescriptions/:id/diary/:mealId", controllers.UpsertDiaryEntry)
		auth.GET("/prescriptions/:id/diary", controllers.ListDiaryEntries)
	}

	// Practice management (nutritionist or admin)
	practice := api.Group("")
	practice.Use(middlewares.AuthMiddleware(),
		middlewares.RequireRoles(models.RoleNutritionist, models.RoleAdmin))
	{
		practice.GET("/patients", controllers.ListPatients)
		practice.POST("/patients", controllers.CreatePatient)
		practice.PUT("/patients/:id", controllers.UpdatePatient)
		practice.DELETE("/patients/:id", controllers.DeletePatient)

		practice.POST("/prescriptions", controllers.CreatePrescription)
		practice.PUT("/prescriptions/:id", controllers.UpdatePrescription)
		practice.DELETE("/prescriptions/:id", controllers.DeletePrescription)
		practice.POST("/prescriptions/:id/publish", controllers.PublishPrescription)
		practice.POST("/prescriptions/:id/duplicate", controllers.DuplicatePrescription)
		practice.POST("/prescriptions/:id/import-csv", controllers.ImportPrescriptionCSV)

		practice.POST("/invitations", controllers.CreateInvitation)
		practice.GET("/invitations", controllers.ListInvitations)

		practice.POST("/subscriptions/:id/approve", controllers.ApproveSubscription)
		practice.POST("/subscriptions/:id/confirm-payment", controllers.ConfirmSubscriptionPayment)
		practice.POST("/subscriptions/:id/reject", controllers.RejectSubscription)
		practice.POST("/subscriptions/:id/cancel", controllers.CancelSubscription)

		practice.GET("/reports/patients.xlsx", controllers.PatientReportXLSX)
	}

	return r
}
