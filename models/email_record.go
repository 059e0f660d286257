package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Email delivery statuses. A record is written as pending before the SMTP
// dialog starts and moves to sent or failed afterwards.
const (
	EmailStatusPending = "pending"
	EmailStatusSent    = "sent"
	EmailStatusFailed  = "failed"
)

// Email type discriminators used by the dispatcher. The column itself is
// free text so one-off sends can label themselves.
const (
	EmailTypeSubmissionConfirmation = "submission_confirmation"
	EmailTypeAdminNewSubmission     = "admin_new_submission"
	EmailTypeStatusUpdate           = "status_update"
	EmailTypeCommentReply           = "comment_reply"
	EmailTypeCommentReceived        = "comment_received"
)

// EmailRecord represents the emails_sent table: one row per send attempt
// envelope, carrying the full composed content so failed sends can be
// retried without recomposing.
type EmailRecord struct {
	ID           string  `gorm:"primaryKey;column:id" json:"id"`
	SubmissionID *string `gorm:"column:submission_id;index" json:"submission_id"`

	// Envelope
	FromEmail string  `gorm:"column:from_email;not null" json:"from_email"`
	FromName  *string `gorm:"column:from_name" json:"from_name"`
	ToEmail   string  `gorm:"column:to_email;not null" json:"to_email"`
	ToName    *string `gorm:"column:to_name" json:"to_name"`
	ReplyTo   *string `gorm:"column:reply_to" json:"reply_to"`

	// Content
	Subject   string  `gorm:"column:subject;not null" json:"subject"`
	BodyHTML  string  `gorm:"column:body_html" json:"body_html"`
	BodyPlain *string `gorm:"column:body_plain" json:"body_plain"`

	EmailType string `gorm:"column:email_type" json:"email_type"`
	Status    string `gorm:"column:status" json:"status"`

	// Outcome
	MessageID    *string    `gorm:"column:message_id" json:"message_id"`
	SMTPResponse *string    `gorm:"column:smtp_response" json:"smtp_response"`
	ErrorMessage *string    `gorm:"column:error_message" json:"error_message"`
	RetryCount   int        `gorm:"column:retry_count" json:"retry_count"`
	SentAt       *time.Time `gorm:"column:sent_at" json:"sent_at"`
	FailedAt     *time.Time `gorm:"column:failed_at" json:"failed_at"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName specifies the table name for EmailRecord.
func (EmailRecord) TableName() string {
	return "emails_sent"
}

// BeforeCreate assigns the primary key when the caller has not set it.
func (e *EmailRecord) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
