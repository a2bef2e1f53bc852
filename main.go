package main

import (
	"log"
	"os"
	"strings"
	"time"

	"leasemaster-server/handlers/activity"
	"leasemaster-server/handlers/auth"
	"leasemaster-server/handlers/enquiries"
	"leasemaster-server/handlers/invoices"
	"leasemaster-server/handlers/messaging"
	"leasemaster-server/handlers/payments"
	"leasemaster-server/handlers/properties"
	"leasemaster-server/handlers/reports"
	"leasemaster-server/handlers/tenants"
	"leasemaster-server/handlers/water"
	"leasemaster-server/migrations"
	"leasemaster-server/seed"
	"leasemaster-server/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading .env file:", err)
	}
}

func main() {
	r := gin.Default()

	allowedOrigins := []string{"http://localhost:5173"}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		allowedOrigins = strings.Split(origins, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	utils.ConnectDatabase()
	migrations.Run()

	if err := seed.SeedAdminUser(); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}
	if err := seed.SeedMessageTemplates(); err != nil {
		log.Fatalf("Failed to seed message templates: %v", err)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	api.POST("/auth/login", auth.Login)
	api.POST("/auth/logout", auth.AuthMiddleware(), auth.Logout)
	api.POST("/enquiries", enquiries.SubmitEnquiry)
	api.POST("/messaging/dlr", messaging.DeliveryReport)

	protected := api.Group("/")
	protected.Use(auth.AuthMiddleware())
	{
		protected.GET("/auth/check", auth.CheckAuth)
		protected.POST("/auth/change-password", auth.ChangePassword)

		protected.GET("/properties", properties.GetProperties)
		protected.GET("/properties/:id", properties.GetProperty)
		protected.POST("/properties", properties.CreateProperty)
		protected.PUT("/properties/:id", properties.UpdateProperty)
		protected.DELETE("/properties/:id", properties.DeleteProperty)
		protected.POST("/properties/:id/enable", properties.EnableProperty)
		protected.POST("/properties/:id/disable", properties.DisableProperty)
		protected.GET("/properties/:id/sms-settings", messaging.GetSmsSettings)
		protected.PUT("/properties/:id/sms-settings", messaging.UpsertSmsSettings)

		protected.GET("/house-types", properties.GetHouseTypes)
		protected.POST("/house-types", properties.CreateHouseType)
		protected.PUT("/house-types/:id", properties.UpdateHouseType)
		protected.DELETE("/house-types/:id", properties.DeleteHouseType)

		protected.GET("/charge-codes", properties.GetChargeCodes)
		protected.POST("/charge-codes", properties.CreateChargeCode)
		protected.PUT("/charge-codes/:id", properties.UpdateChargeCode)
		protected.DELETE("/charge-codes/:id", properties.DeleteChargeCode)

		protected.GET("/units", properties.GetUnits)
		protected.GET("/units/:id", properties.GetUnit)
		protected.POST("/units", properties.CreateUnit)
		protected.PUT("/units/:id", properties.UpdateUnit)
		protected.DELETE("/units/:id", properties.DeleteUnit)
		protected.POST("/units/bulk-delete", properties.BulkDeleteUnits)
		protected.GET("/units/:id/water-readings", water.GetUnitWaterReadings)

		protected.GET("/tenants", tenants.GetTenants)
		protected.GET("/tenants/:id", tenants.GetTenant)
		protected.POST("/tenants", tenants.CreateTenant)
		protected.PUT("/tenants/:id", tenants.UpdateTenant)
		protected.DELETE("/tenants/:id", tenants.DeleteTenant)

		protected.GET("/leases", tenants.GetLeases)
		protected.GET("/leases/:id", tenants.GetLease)
		protected.POST("/leases", tenants.CreateLease)
		protected.PUT("/leases/:id", tenants.UpdateLease)
		protected.DELETE("/leases/:id", tenants.DeleteLease)
		protected.POST("/leases/:id/terminate", tenants.TerminateLease)
		protected.GET("/leases/:id/balance", payments.GetLeaseBalance)

		protected.GET("/invoices", invoices.GetInvoices)
		protected.GET("/invoices/:id", invoices.GetInvoice)
		protected.POST("/invoices", invoices.CreateInvoice)
		protected.PUT("/invoices/:id", invoices.UpdateInvoice)
		protected.DELETE("/invoices/:id", invoices.DeleteInvoice)
		protected.POST("/invoices/generate", invoices.GenerateMonthlyInvoices)
		protected.GET("/invoices/:id/items", invoices.GetInvoiceItems)
		protected.POST("/invoices/:id/items", invoices.AddInvoiceItem)
		protected.PUT("/invoices/:id/items/:item_id", invoices.UpdateInvoiceItem)
		protected.DELETE("/invoices/:id/items/:item_id", invoices.DeleteInvoiceItem)
		protected.POST("/invoices/:id/send-email", invoices.SendInvoiceEmail)
		protected.POST("/invoices/:id/send-sms", invoices.SendInvoiceSMS)

		protected.GET("/payments", payments.GetPayments)
		protected.POST("/payments", payments.RecordPayment)
		protected.PUT("/payments/:id", payments.UpdatePayment)
		protected.POST("/payments/:id/verify", payments.VerifyPayment)
		protected.POST("/payments/:id/allocate", payments.AllocatePayment)
		protected.DELETE("/payments/:id", payments.DeletePayment)

		protected.GET("/water-readings", water.GetWaterReadings)
		protected.GET("/water-readings/status/:status", water.GetWaterReadingsByStatus)
		protected.POST("/water-readings", water.CreateWaterReading)
		protected.PUT("/water-readings/:id", water.UpdateWaterReading)
		protected.DELETE("/water-readings/:id", water.DeleteWaterReading)
		protected.POST("/water-readings/bulk", water.BulkUpsertWaterReadings)
		protected.POST("/water-readings/autosave", water.AutoSaveInput)
		protected.GET("/water-readings/autosave/:id", water.AutoSaveState)
		protected.GET("/water-readings/bulk/status", water.BulkEntryStatus)
		protected.GET("/water-readings/trend", water.GetWaterTrend)

		protected.GET("/reports/stats", reports.GetDashboardStats)
		protected.GET("/reports/aging", reports.GetAgingReport)
		protected.GET("/reports/statement", reports.GetTenantStatement)

		protected.GET("/messages", messaging.GetMessages)
		protected.POST("/messages", messaging.SendMessage)
		protected.PUT("/messages/:id", messaging.UpdateMessage)
		protected.DELETE("/messages/:id", messaging.DeleteMessage)
		protected.GET("/bulk-messages", messaging.GetBulkMessages)
		protected.POST("/bulk-messages", messaging.SendBulkMessage)
		protected.GET("/bulk-messages/:id/recipients", messaging.GetBulkMessageRecipients)
		protected.GET("/message-recipients", messaging.GetMessageRecipients)
		protected.GET("/message-recipients/:id", messaging.GetMessageRecipient)
		protected.PUT("/message-recipients/:id", messaging.UpdateMessageRecipient)
		protected.DELETE("/message-recipients/:id", messaging.DeleteMessageRecipient)
		protected.GET("/message-templates", messaging.GetTemplates)
		protected.POST("/message-templates", messaging.CreateTemplate)
		protected.PUT("/message-templates/:id", messaging.UpdateTemplate)
		protected.DELETE("/message-templates/:id", messaging.DeleteTemplate)
		protected.GET("/sms-balance", messaging.GetSmsBalance)

		protected.GET("/activity-logs", activity.GetActivityLogs)

		protected.GET("/landlords", auth.GetLandlords)

		admin := protected.Group("/")
		admin.Use(auth.AdminOnly())
		{
			admin.GET("/users", auth.GetUsers)
			admin.POST("/users", auth.CreateUser)
			admin.PUT("/users/:id", auth.UpdateUser)
			admin.DELETE("/users/:id", auth.DeleteUser)
			admin.POST("/users/:id/reset-password", auth.ResetUserPassword)
			admin.GET("/enquiries", enquiries.GetEnquiries)
			admin.PUT("/enquiries/:id", enquiries.UpdateEnquiryStatus)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
