package services

import (
	"errors"
	"strings"
	"sync"
	"time"

	"omi-stitch-api/config"
	"omi-stitch-api/models"

	"gorm.io/gorm"
)

var (
	settingsCacheMu sync.RWMutex
	settingsCache   *settingsCacheEntry
	settingsTTL     = 5 * time.Minute
)

type settingsCacheEntry struct {
	byKey     map[string]string
	fetchedAt time.Time
}

func loadSettings(force bool) (*settingsCacheEntry, error) {
	settingsCacheMu.RLock()
	cached := settingsCache
	settingsCacheMu.RUnlock()

	if cached != nil && !force && time.Since(cached.fetchedAt) < settingsTTL {
		return cached, nil
	}

	settingsCacheMu.Lock()
	defer settingsCacheMu.Unlock()

	if settingsCache != nil && !force && time.Since(settingsCache.fetchedAt) < settingsTTL {
		return settingsCache, nil
	}

	var rows []models.SiteSetting
	if err := config.DB.Find(&rows).Error; err != nil {
		return nil, persistenceErr("load site settings", err)
	}

	byKey := make(map[string]string, len(rows))
	for _, row := range rows {
		byKey[row.Key] = row.Value
	}

	entry := &settingsCacheEntry{
		byKey:     byKey,
		fetchedAt: time.Now(),
	}
	settingsCache = entry
	return entry, nil
}

// ClearSettingsCache invalidates the in-memory settings snapshot.
func ClearSettingsCache() {
	settingsCacheMu.Lock()
	defer settingsCacheMu.Unlock()
	settingsCache = nil
}

// GetAllSettings returns the current settings map from the cached snapshot.
func GetAllSettings() (map[string]string, error) {
	entry, err := loadSettings(false)
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(entry.byKey))
	for k, v := range entry.byKey {
		out[k] = v
	}
	return out, nil
}

// GetSettingValue resolves one setting, refreshing the snapshot once before
// reporting a miss.
func GetSettingValue(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", validationErr("key", "setting key is required")
	}

	entry, err := loadSettings(false)
	if err != nil {
		return "", err
	}
	if value, ok := entry.byKey[key]; ok {
		return value, nil
	}

	// Force refresh once before giving up
	entry, err = loadSettings(true)
	if err != nil {
		return "", err
	}
	if value, ok := entry.byKey[key]; ok {
		return value, nil
	}

	return "", notFoundErr("setting", key)
}

// UpsertSetting creates or replaces a setting and invalidates the snapshot.
func UpsertSetting(key, value string) (*models.SiteSetting, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, validationErr("key", "setting key is required")
	}

	setting := models.SiteSetting{Key: key, Value: value, UpdatedAt: time.Now()}
	if err := config.DB.Save(&setting).Error; err != nil {
		return nil, persistenceErr("save site setting", err)
	}

	ClearSettingsCache()
	return &setting, nil
}

// DeleteSetting removes a setting and invalidates the snapshot.
func DeleteSetting(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return validationErr("key", "setting key is required")
	}

	var setting models.SiteSetting
	if err := config.DB.Where("key = ?", key).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundErr("setting", key)
		}
		return persistenceErr("load site setting", err)
	}
	if err := config.DB.Delete(&setting).Error; err != nil {
		return persistenceErr("delete site setting", err)
	}

	ClearSettingsCache()
	return nil
}
