package services

import (
	"testing"

	"omi-stitch-api/config"
	"omi-stitch-api/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a throwaway in-memory database with the full schema and
// points config.DB at it for the duration of the test, so code paths that
// fall back to the package global also hit the test database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	// A plain :memory: DSN gives every pool connection its own database.
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
	ClearSettingsCache()
	t.Cleanup(func() {
		config.DB = prev
		ClearSettingsCache()
		sqlDB.Close()
	})
	return db
}

// testMessage builds a minimal outgoing email for audit log tests.
func testMessage(to string) config.OutgoingEmail {
	return config.OutgoingEmail{
		FromEmail: "studio@omiproductions.com",
		FromName:  "OMI Global Productions",
		ToEmail:   to,
		Subject:   "Test subject",
		BodyHTML:  "<p>hello</p>",
		BodyPlain: "hello",
	}
}

// seedSubmission inserts a minimal valid submission and returns it.
func seedSubmission(t *testing.T, db *gorm.DB) *models.ProjectSubmission {
	t.Helper()

	sub, err := NewSubmissionService(db).Create(&SubmissionInput{
		Title:        "Orbit",
		Logline:      "A gardener rewilds a space station.",
		ContactName:  "Asha Verma",
		ContactEmail: "asha@example.com",
		ContactPhone: "9876543210",
	})
	if err != nil {
		t.Fatalf("seed submission: %v", err)
	}
	return sub
}
