package models

import "time"

// SiteSetting represents key-value site configuration such as social links
// and the public contact address.
type SiteSetting struct {
	Key       string    `gorm:"primaryKey;column:key" json:"key"`
	Value     string    `gorm:"column:value" json:"value"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName specifies the table name for SiteSetting.
func (SiteSetting) TableName() string {
	return "site_settings"
}
