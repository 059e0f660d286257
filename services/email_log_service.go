package services

import (
	"errors"
	"fmt"
	"time"

	"omi-stitch-api/config"
	"omi-stitch-api/models"

	"gorm.io/gorm"
)

// EmailOutcome carries delivery metadata for RecordOutcome. MessageID and
// SMTPResponse apply to sent outcomes, ErrorMessage to failed ones.
type EmailOutcome struct {
	MessageID    string
	SMTPResponse string
	ErrorMessage string
}

// EmailFilter narrows audit listings.
type EmailFilter struct {
	Status       string
	EmailType    string
	SubmissionID string
	Limit        int
	Offset       int
}

type EmailLogService struct {
	db *gorm.DB
}

func NewEmailLogService(db *gorm.DB) *EmailLogService {
	if db == nil {
		db = config.DB
	}
	return &EmailLogService{db: db}
}

// RecordAttempt writes the pending audit row for a composed message before
// any SMTP dialog starts, so a crash mid-send still leaves a trace.
func (s *EmailLogService) RecordAttempt(submissionID *string, msg config.OutgoingEmail, emailType string) (*models.EmailRecord, error) {
	if msg.ToEmail == "" {
		return nil, validationErr("to_email", "recipient address is required")
	}
	if msg.FromEmail == "" {
		return nil, validationErr("from_email", "sender address is required")
	}
	if msg.Subject == "" {
		return nil, validationErr("subject", "subject is required")
	}
	if emailType == "" {
		emailType = models.EmailTypeSubmissionConfirmation
	}

	if submissionID != nil {
		var count int64
		if err := s.db.Model(&models.ProjectSubmission{}).Where("id = ?", *submissionID).Count(&count).Error; err != nil {
			return nil, persistenceErr("check submission", err)
		}
		if count == 0 {
			return nil, notFoundErr("submission", *submissionID)
		}
	}

	rec := &models.EmailRecord{
		SubmissionID: submissionID,
		FromEmail:    msg.FromEmail,
		FromName:     optionalString(msg.FromName),
		ToEmail:      msg.ToEmail,
		ToName:       optionalString(msg.ToName),
		ReplyTo:      optionalString(msg.ReplyTo),
		Subject:      msg.Subject,
		BodyHTML:     msg.BodyHTML,
		BodyPlain:    optionalString(msg.BodyPlain),
		EmailType:    emailType,
		Status:       models.EmailStatusPending,
	}
	if err := s.db.Create(rec).Error; err != nil {
		return nil, persistenceErr("record email attempt", err)
	}
	return rec, nil
}

// RecordOutcome finalizes an attempt. Recording a failure on a record that
// already failed counts as a retry of that record and bumps retry_count.
func (s *EmailLogService) RecordOutcome(recordID, status string, outcome EmailOutcome) (*models.EmailRecord, error) {
	var rec models.EmailRecord
	if err := s.db.Where("id = ?", recordID).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("email record", recordID)
		}
		return nil, persistenceErr("load email record", err)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": now,
	}

	switch status {
	case models.EmailStatusSent:
		updates["message_id"] = optionalString(outcome.MessageID)
		updates["smtp_response"] = optionalString(outcome.SMTPResponse)
		updates["sent_at"] = now
	case models.EmailStatusFailed:
		updates["error_message"] = optionalString(outcome.ErrorMessage)
		updates["failed_at"] = now
		if rec.Status == models.EmailStatusFailed {
			updates["retry_count"] = gorm.Expr("retry_count + 1")
		}
	default:
		return nil, validationErr("status", fmt.Sprintf("outcome status must be %q or %q", models.EmailStatusSent, models.EmailStatusFailed))
	}

	if err := s.db.Model(&rec).Updates(updates).Error; err != nil {
		return nil, persistenceErr("record email outcome", err)
	}

	var updated models.EmailRecord
	if err := s.db.Where("id = ?", recordID).First(&updated).Error; err != nil {
		return nil, persistenceErr("reload email record", err)
	}
	return &updated, nil
}

// Get fetches one audit record.
func (s *EmailLogService) Get(id string) (*models.EmailRecord, error) {
	var rec models.EmailRecord
	if err := s.db.Where("id = ?", id).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("email record", id)
		}
		return nil, persistenceErr("load email record", err)
	}
	return &rec, nil
}

// List returns a page of the audit log, newest first.
func (s *EmailLogService) List(filter EmailFilter) ([]models.EmailRecord, int64, error) {
	query := s.db.Model(&models.EmailRecord{})

	if filter.Status != "" {
		switch filter.Status {
		case models.EmailStatusPending, models.EmailStatusSent, models.EmailStatusFailed:
			query = query.Where("status = ?", filter.Status)
		default:
			return nil, 0, validationErr("status", fmt.Sprintf("unknown email status %q", filter.Status))
		}
	}
	if filter.EmailType != "" {
		query = query.Where("email_type = ?", filter.EmailType)
	}
	if filter.SubmissionID != "" {
		query = query.Where("submission_id = ?", filter.SubmissionID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, persistenceErr("count email records", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	var recs []models.EmailRecord
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&recs).Error; err != nil {
		return nil, 0, persistenceErr("list email records", err)
	}
	return recs, total, nil
}

// ListRetryable returns failed records still under the retry budget,
// oldest failure first.
func (s *EmailLogService) ListRetryable(maxRetries, limit int) ([]models.EmailRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	var recs []models.EmailRecord
	err := s.db.
		Where("status = ? AND retry_count < ?", models.EmailStatusFailed, maxRetries).
		Order("failed_at ASC").
		Limit(limit).
		Find(&recs).Error
	if err != nil {
		return nil, persistenceErr("list retryable email records", err)
	}
	return recs, nil
}
