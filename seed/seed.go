package seed

import (
	"log"
	"os"

	"leasemaster-server/models"
	"leasemaster-server/utils"

	"golang.org/x/crypto/bcrypt"
)

// SeedAdminUser creates the initial admin account if no users exist.
// The password comes from ADMIN_PASSWORD and must be changed on first
// login.
func SeedAdminUser() error {
	var count int64
	if err := utils.DB.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "changeme"
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Username:           "admin",
		Password:           string(hashed),
		FullName:           "System Administrator",
		Role:               models.RoleSuperAdmin,
		MustChangePassword: 1,
	}
	if err := utils.DB.Create(&admin).Error; err != nil {
		return err
	}

	log.Println("Seeded initial admin user")
	return nil
}

// SeedMessageTemplates installs the built-in SMS templates once.
func SeedMessageTemplates() error {
	templates := []models.MessageTemplate{
		{
			Name:     "Rent reminder",
			Channel:  models.ChannelSMS,
			Body:     "Dear {name}, your rent is due. Kindly settle your balance to avoid penalties. Thank you.",
			IsSystem: 1,
		},
		{
			Name:     "Payment received",
			Channel:  models.ChannelSMS,
			Body:     "Dear {name}, we have received your payment. Thank you.",
			IsSystem: 1,
		},
		{
			Name:     "Water bill ready",
			Channel:  models.ChannelSMS,
			Body:     "Dear {name}, your water bill for this month is ready. Check your invoice for details.",
			IsSystem: 1,
		},
	}

	for _, t := range templates {
		var existing models.MessageTemplate
		if err := utils.DB.Where("name = ? AND is_system = 1", t.Name).First(&existing).Error; err == nil {
			continue
		}
		if err := utils.DB.Create(&t).Error; err != nil {
			return err
		}
	}

	return nil
}
