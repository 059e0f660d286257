package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment author types.
const (
	AuthorTypeUser  = "user"
	AuthorTypeAdmin = "admin"
)

// SubmissionComment represents the submission_comments table. Comments are
// append-only; after creation only the read state changes. Internal comments
// are visible to admin viewers only.
type SubmissionComment struct {
	ID           string     `gorm:"primaryKey;column:id" json:"id"`
	SubmissionID string     `gorm:"column:submission_id;not null;index" json:"submission_id"`
	AuthorType   string     `gorm:"column:author_type;not null" json:"author_type"`
	AuthorName   *string    `gorm:"column:author_name" json:"author_name"`
	AuthorEmail  *string    `gorm:"column:author_email" json:"author_email"`
	Message      string     `gorm:"column:message;not null" json:"message"`
	IsInternal   bool       `gorm:"column:is_internal" json:"is_internal"`
	IsRead       bool       `gorm:"column:is_read" json:"is_read"`
	ReadAt       *time.Time `gorm:"column:read_at" json:"read_at"`
	CreatedAt    time.Time  `gorm:"column:created_at" json:"created_at"`
}

// TableName specifies the table name for SubmissionComment.
func (SubmissionComment) TableName() string {
	return "submission_comments"
}

// BeforeCreate assigns the primary key when the caller has not set it.
func (c *SubmissionComment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
