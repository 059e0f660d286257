package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactMessage represents the contact_submissions table (the general
// "get in touch" form, separate from project submissions).
type ContactMessage struct {
	ID        string    `gorm:"primaryKey;column:id" json:"id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	Email     string    `gorm:"column:email;not null" json:"email"`
	Subject   *string   `gorm:"column:subject" json:"subject"`
	Message   string    `gorm:"column:message;not null" json:"message"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName specifies the table name for ContactMessage.
func (ContactMessage) TableName() string {
	return "contact_submissions"
}

// BeforeCreate assigns the primary key when the caller has not set it.
func (m *ContactMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// NewsletterSubscriber represents the newsletter_subscribers table.
type NewsletterSubscriber struct {
	ID           string    `gorm:"primaryKey;column:id" json:"id"`
	Email        string    `gorm:"column:email;uniqueIndex;not null" json:"email"`
	SubscribedAt time.Time `gorm:"column:subscribed_at;autoCreateTime" json:"subscribed_at"`
}

// TableName specifies the table name for NewsletterSubscriber.
func (NewsletterSubscriber) TableName() string {
	return "newsletter_subscribers"
}

// BeforeCreate assigns the primary key when the caller has not set it.
func (n *NewsletterSubscriber) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
