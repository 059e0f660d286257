package services

import (
	"testing"

	"omi-stitch-api/models"
)

func TestSettingsUpsertAndLookup(t *testing.T) {
	newTestDB(t)

	if _, err := UpsertSetting("hero_title", "Stories that matter"); err != nil {
		t.Fatalf("UpsertSetting returned error: %v", err)
	}

	value, err := GetSettingValue("hero_title")
	if err != nil {
		t.Fatalf("GetSettingValue returned error: %v", err)
	}
	if value != "Stories that matter" {
		t.Fatalf("value = %q", value)
	}

	// Overwrite through the same path; the snapshot must not serve the
	// old value.
	if _, err := UpsertSetting("hero_title", "New stories"); err != nil {
		t.Fatalf("UpsertSetting returned error: %v", err)
	}
	value, err = GetSettingValue("hero_title")
	if err != nil {
		t.Fatalf("GetSettingValue returned error: %v", err)
	}
	if value != "New stories" {
		t.Fatalf("value after upsert = %q", value)
	}

	all, err := GetAllSettings()
	if err != nil {
		t.Fatalf("GetAllSettings returned error: %v", err)
	}
	if all["hero_title"] != "New stories" {
		t.Fatalf("GetAllSettings map = %v", all)
	}

	if _, err := UpsertSetting("  ", "x"); !IsValidation(err) {
		t.Fatalf("blank key should be a validation error, got %v", err)
	}
}

func TestSettingsSnapshotServedUntilInvalidated(t *testing.T) {
	db := newTestDB(t)

	if _, err := UpsertSetting("tagline", "original"); err != nil {
		t.Fatalf("UpsertSetting returned error: %v", err)
	}
	if _, err := GetAllSettings(); err != nil {
		t.Fatalf("GetAllSettings returned error: %v", err)
	}

	// Mutate behind the cache's back.
	if err := db.Model(&models.SiteSetting{}).Where("key = ?", "tagline").Update("value", "changed").Error; err != nil {
		t.Fatalf("direct update: %v", err)
	}

	all, err := GetAllSettings()
	if err != nil {
		t.Fatalf("GetAllSettings returned error: %v", err)
	}
	if all["tagline"] != "original" {
		t.Fatalf("snapshot should still serve the cached value, got %q", all["tagline"])
	}

	ClearSettingsCache()
	all, err = GetAllSettings()
	if err != nil {
		t.Fatalf("GetAllSettings returned error: %v", err)
	}
	if all["tagline"] != "changed" {
		t.Fatalf("invalidation should expose the new value, got %q", all["tagline"])
	}
}

func TestGetSettingValueRefreshesOnMiss(t *testing.T) {
	db := newTestDB(t)

	// Warm an empty snapshot.
	if _, err := GetAllSettings(); err != nil {
		t.Fatalf("GetAllSettings returned error: %v", err)
	}

	// A key inserted behind the cache is still found: lookup forces one
	// refresh before reporting a miss.
	if err := db.Create(&models.SiteSetting{Key: "contact_email", Value: "hello@omiproductions.com"}).Error; err != nil {
		t.Fatalf("direct insert: %v", err)
	}
	value, err := GetSettingValue("contact_email")
	if err != nil {
		t.Fatalf("GetSettingValue returned error: %v", err)
	}
	if value != "hello@omiproductions.com" {
		t.Fatalf("value = %q", value)
	}

	if _, err := GetSettingValue("never_set"); !IsNotFound(err) {
		t.Fatalf("missing key should be not found, got %v", err)
	}
	if _, err := GetSettingValue("   "); !IsValidation(err) {
		t.Fatalf("blank key should be a validation error, got %v", err)
	}
}

func TestDeleteSetting(t *testing.T) {
	newTestDB(t)

	if _, err := UpsertSetting("instagram_url", "https://instagram.com/omi"); err != nil {
		t.Fatalf("UpsertSetting returned error: %v", err)
	}
	if err := DeleteSetting("instagram_url"); err != nil {
		t.Fatalf("DeleteSetting returned error: %v", err)
	}
	if _, err := GetSettingValue("instagram_url"); !IsNotFound(err) {
		t.Fatalf("deleted key should be not found, got %v", err)
	}
	if err := DeleteSetting("instagram_url"); !IsNotFound(err) {
		t.Fatalf("double delete should be not found, got %v", err)
	}
}
