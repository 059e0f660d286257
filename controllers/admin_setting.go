// controllers/admin_setting.go
package controllers

import (
	"net/http"

	"omi-stitch-api/services"

	"github.com/gin-gonic/gin"
)

// ===================== SITE SETTINGS =====================

// GetPublicSettings handles GET /api/v1/settings
//
// Serves the cached key/value map the frontend renders from (hero copy,
// social links, contact details).
func GetPublicSettings(c *gin.Context) {
	settings, err := services.GetAllSettings()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"settings": settings,
	})
}

// GetSetting handles GET /api/v1/admin/settings/:key
func GetSetting(c *gin.Context) {
	key := c.Param("key")
	value, err := services.GetSettingValue(key)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"key":     key,
		"value":   value,
	})
}

type settingForm struct {
	Value string `json:"value"`
}

// UpsertSetting handles PUT /api/v1/admin/settings/:key
func UpsertSetting(c *gin.Context) {
	var form settingForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid setting payload",
			"details": err.Error(),
		})
		return
	}

	key := c.Param("key")
	if _, err := services.UpsertSetting(key, form.Value); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Setting saved",
		"key":     key,
		"value":   form.Value,
	})
}

// DeleteSetting handles DELETE /api/v1/admin/settings/:key
func DeleteSetting(c *gin.Context) {
	key := c.Param("key")
	if err := services.DeleteSetting(key); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Setting removed",
		"key":     key,
	})
}
