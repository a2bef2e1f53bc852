package migrations

import (
	"log"

	"leasemaster-server/models"
	"leasemaster-server/utils"
)

// Run migrates every table. Safe to call on each startup.
func Run() {
	err := utils.DB.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.HouseType{},
		&models.ChargeCode{},
		&models.Unit{},
		&models.Tenant{},
		&models.Lease{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.WaterReading{},
		&models.Payment{},
		&models.Message{},
		&models.BulkMessage{},
		&models.MessageRecipient{},
		&models.MessageTemplate{},
		&models.PropertySmsSettings{},
		&models.ActivityLog{},
		&models.Enquiry{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
}
