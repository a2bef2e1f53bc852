package properties

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"leasemaster-server/models"
	"leasemaster-server/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Property{},
		&models.HouseType{},
		&models.ChargeCode{},
		&models.Unit{},
	))
	utils.DB = db
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
}

func putJSON(r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPut, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHouseTypeIsActiveBindsAsBool(t *testing.T) {
	setupTestDB(t)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.PUT("/house-types/:id", UpdateHouseType)

	houseType := models.HouseType{PropertyID: "p1", Name: "Bedsitter", IsActive: true}
	require.NoError(t, utils.DB.Create(&houseType).Error)

	w := putJSON(r, "/house-types/"+houseType.ID, gin.H{"is_active": false})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.HouseType
	require.NoError(t, utils.DB.Where("id = ?", houseType.ID).First(&updated).Error)
	assert.False(t, updated.IsActive)
}

func TestChargeCodeIsActiveBindsAsBool(t *testing.T) {
	setupTestDB(t)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.PUT("/charge-codes/:id", UpdateChargeCode)

	code := models.ChargeCode{PropertyID: "p1", Name: "Garbage fee", IsActive: true}
	require.NoError(t, utils.DB.Create(&code).Error)

	w := putJSON(r, "/charge-codes/"+code.ID, gin.H{"is_active": false})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.ChargeCode
	require.NoError(t, utils.DB.Where("id = ?", code.ID).First(&updated).Error)
	assert.False(t, updated.IsActive)
}
