// controllers/content.go
package controllers

import (
	"net/http"

	"omi-stitch-api/config"

	"github.com/gin-gonic/gin"
)

// pillar is one of the three editorial pillars shown on the landing page.
type pillar struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

var omiPillars = []pillar{
	{
		ID:          "storytelling",
		Title:       "Storytelling",
		Icon:        "movie",
		Description: "Narratives that move the soul and challenge the conventional boundaries of digital media.",
	},
	{
		ID:          "wellness",
		Title:       "Wellness",
		Icon:        "spa",
		Description: "Holistic practices and environments designed to nourish the mind and restore inner balance.",
	},
	{
		ID:          "sustainability",
		Title:       "Sustainability",
		Icon:        "eco",
		Description: "Building a greener future by integrating nature directly into our creative workflows.",
	},
}

// GetPillars handles GET /api/v1/pillars
func GetPillars(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"pillars": omiPillars})
}

// HealthCheck handles GET /health
func HealthCheck(c *gin.Context) {
	dbStatus := "connected"
	if config.DB == nil {
		dbStatus = "disconnected"
	} else if err := config.DB.Exec("SELECT 1").Error; err != nil {
		dbStatus = "disconnected"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": dbStatus,
	})
}
