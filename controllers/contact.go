// controllers/contact.go
package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"omi-stitch-api/config"
	"omi-stitch-api/models"
	"omi-stitch-api/utils"

	"github.com/gin-gonic/gin"
)

// ===================== CONTACT MESSAGES =====================

type contactForm struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}

// SubmitContactMessage handles POST /api/v1/contact
//
// General enquiries land here; project pitches go through the
// submission form instead.
func SubmitContactMessage(c *gin.Context) {
	var form contactForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid contact payload",
			"details": err.Error(),
		})
		return
	}

	msg := models.ContactMessage{
		Name:    utils.SanitizeInput(form.Name),
		Email:   strings.ToLower(strings.TrimSpace(form.Email)),
		Message: utils.SanitizeInput(form.Message),
	}
	if subject := utils.SanitizeInput(form.Subject); subject != "" {
		msg.Subject = &subject
	}

	if err := config.DB.Create(&msg).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to save message",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Thanks for reaching out. We'll get back to you soon.",
	})
}

// ListContactMessages handles GET /api/v1/admin/contact
func ListContactMessages(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var messages []models.ContactMessage
	var total int64
	if err := config.DB.Model(&models.ContactMessage{}).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to count messages"})
		return
	}
	if err := config.DB.Order("created_at DESC").Limit(limit).Offset(offset).Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"messages": messages,
		"total":    total,
	})
}

// ===================== NEWSLETTER =====================

type newsletterForm struct {
	Email string `json:"email" binding:"required,email"`
}

// SubscribeNewsletter handles POST /api/v1/newsletter
//
// Subscribing twice with the same address is a no-op; the original row
// keeps its subscription date.
func SubscribeNewsletter(c *gin.Context) {
	var form newsletterForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "A valid email address is required",
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(form.Email))
	sub := models.NewsletterSubscriber{Email: email}
	if err := config.DB.Where("email = ?", email).FirstOrCreate(&sub).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to subscribe",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "You're on the list. Welcome to OMI.",
	})
}

// ListNewsletterSubscribers handles GET /api/v1/admin/newsletter
func ListNewsletterSubscribers(c *gin.Context) {
	var subscribers []models.NewsletterSubscriber
	if err := config.DB.Order("subscribed_at DESC").Find(&subscribers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch subscribers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"subscribers": subscribers,
		"total":       len(subscribers),
	})
}
