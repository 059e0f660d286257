package controllers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"omi-stitch-api/config"
	"omi-stitch-api/middleware"
	"omi-stitch-api/models"
	"omi-stitch-api/services"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestEnv swaps config.DB for an in-memory database and returns a
// router carrying the live route layout (without the form rate limiter,
// which has its own tests).
func newTestEnv(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test database: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.ProjectSubmission{},
		&models.SubmissionComment{},
		&models.EmailRecord{},
		&models.AdminUser{},
		&models.SiteSetting{},
		&models.ContactMessage{},
		&models.NewsletterSubscriber{},
	)
	if err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	prev := config.DB
	config.DB = db
	services.ClearSettingsCache()
	t.Cleanup(func() {
		config.DB = prev
		services.ClearSettingsCache()
	})

	t.Setenv("JWT_SECRET", "unit-test-secret")
	t.Setenv("ADMIN_EMAIL", "")
	t.Setenv("SMTP_HOST", "")
	t.Setenv("SMTP_USER", "")

	gin.SetMode(gin.TestMode)
	RegisterValidators()

	router := gin.New()
	v1 := router.Group("/api/v1")

	v1.POST("/auth/login", Login)
	v1.GET("/pillars", GetPillars)
	v1.GET("/settings", GetPublicSettings)
	v1.POST("/submissions", SubmitProject)
	v1.POST("/contact", SubmitContactMessage)
	v1.POST("/newsletter", SubscribeNewsletter)
	v1.GET("/track/:token", TrackSubmission)
	v1.POST("/track/:token/comments", AddTrackedComment)

	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	admin.GET("/profile", GetProfile)
	admin.GET("/submissions", ListSubmissions)
	admin.GET("/submissions/stats", GetSubmissionStats)
	admin.GET("/submissions/:id", GetSubmission)
	admin.PUT("/submissions/:id/status", UpdateSubmissionStatus)
	admin.DELETE("/submissions/:id", DeleteSubmission)
	admin.GET("/submissions/:id/comments", ListSubmissionComments)
	admin.POST("/submissions/:id/comments", AddAdminComment)
	admin.PUT("/comments/:id/read", MarkCommentRead)
	admin.GET("/emails", ListEmailRecords)
	admin.GET("/emails/:id", GetEmailRecord)
	admin.POST("/emails/:id/retry", RetryEmail)
	admin.POST("/emails/retry-failed", RetryFailedEmails)
	admin.PUT("/settings/:key", UpsertSetting)
	admin.GET("/settings/:key", GetSetting)
	admin.DELETE("/settings/:key", DeleteSetting)
	admin.GET("/contact", ListContactMessages)
	admin.GET("/newsletter", ListNewsletterSubscribers)

	router.GET("/health", HealthCheck)

	return db, router
}

// seedAdminToken creates an active admin account and returns a valid
// bearer token for it.
func seedAdminToken(t *testing.T, db *gorm.DB) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("review-room-9"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	admin := models.AdminUser{
		Email:        "jane@omiproductions.com",
		PasswordHash: string(hash),
		DisplayName:  "Jane Okafor",
		IsActive:     true,
	}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	token, err := generateToken(admin)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

// doJSON performs a request with an optional JSON body and bearer token.
func doJSON(router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "203.0.113.50:52100"
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// decodeBody unmarshals the recorded response body into a generic map.
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

// testOutgoing builds a minimal outgoing email for audit endpoints.
func testOutgoing(to string) config.OutgoingEmail {
	return config.OutgoingEmail{
		FromEmail: "studio@omiproductions.com",
		ToEmail:   to,
		Subject:   "Test subject",
		BodyHTML:  "<p>hello</p>",
	}
}

// validProjectForm returns a complete submission payload.
func validProjectForm() map[string]interface{} {
	return map[string]interface{}{
		"title":          "Orbit",
		"logline":        "A gardener rewilds a space station.",
		"synopsis":       "Long-form synopsis.",
		"treatment":      "https://example.com/treatment.pdf",
		"moodboard":      "https://example.com/moodboard",
		"soundtracks":    "ambient, modular synth",
		"writer_bio":     "Debut feature writer.",
		"actor_1":        "First Lead",
		"actor_2":        "Second Lead",
		"budget":         1500000,
		"languages":      "English, Hindi",
		"previous_works": "Two shorts.",
		"terms":          true,
		"contact_name":   "Asha Verma",
		"contact_email":  "asha@example.com",
		"contact_phone":  "9876543210",
	}
}
