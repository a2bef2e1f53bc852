package enquiries

import (
	"log"
	"net/http"

	"leasemaster-server/models"
	"leasemaster-server/utils"

	"github.com/gin-gonic/gin"
)

// SubmitEnquiry records a prospective tenant's interest in a property
// or unit. The endpoint is open so listing pages can post directly.
func SubmitEnquiry(c *gin.Context) {
	var input struct {
		PropertyID string `json:"property_id"`
		UnitID     string `json:"unit_id"`
		FullName   string `json:"full_name"`
		Phone      string `json:"phone"`
		Email      string `json:"email"`
		Note       string `json:"note"`
	}

	if err := c.ShouldBindJSON(&input); err != nil || input.FullName == "" || input.Phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data. Name and phone are required."})
		return
	}

	if input.PropertyID != "" {
		var property models.Property
		if err := utils.DB.Where("id = ?", input.PropertyID).First(&property).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
	}

	enquiry := models.Enquiry{
		PropertyID: input.PropertyID,
		UnitID:     input.UnitID,
		FullName:   input.FullName,
		Phone:      input.Phone,
		Email:      input.Email,
		Note:       input.Note,
		Status:     models.EnquiryOpen,
	}

	if err := utils.DB.Create(&enquiry).Error; err != nil {
		log.Printf("Error creating enquiry: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit enquiry."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Enquiry received. We will get back to you shortly."})
}

func GetEnquiries(c *gin.Context) {
	query := utils.DB.Order("created_at desc")
	if propertyID := c.Query("property_id"); propertyID != "" {
		query = query.Where("property_id = ?", propertyID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var enquiryList []models.Enquiry
	if err := query.Find(&enquiryList).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve enquiries."})
		return
	}

	c.JSON(http.StatusOK, enquiryList)
}

func UpdateEnquiryStatus(c *gin.Context) {
	var enquiry models.Enquiry
	if err := utils.DB.Where("id = ?", c.Param("id")).First(&enquiry).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Enquiry not found"})
		return
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil ||
		(input.Status != models.EnquiryOpen && input.Status != models.EnquiryResolved && input.Status != models.EnquiryClosed) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be open, resolved or closed."})
		return
	}

	if err := utils.DB.Model(&enquiry).Update("status", input.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update enquiry."})
		return
	}

	c.JSON(http.StatusOK, enquiry)
}
