package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"omi-stitch-api/config"
	"omi-stitch-api/models"
	"omi-stitch-api/utils"

	"gorm.io/gorm"
)

// CommentInput carries a new thread entry. AuthorName and AuthorEmail are
// optional; admin tooling fills them from the authenticated account.
type CommentInput struct {
	AuthorType  string
	AuthorName  string
	AuthorEmail string
	Message     string
	IsInternal  bool
}

type CommentService struct {
	db *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	if db == nil {
		db = config.DB
	}
	return &CommentService{db: db}
}

// Add appends a comment to a submission's thread.
func (s *CommentService) Add(submissionID string, input *CommentInput) (*models.SubmissionComment, error) {
	if input == nil {
		return nil, validationErr("", "input is nil")
	}

	authorType := strings.ToLower(strings.TrimSpace(input.AuthorType))
	if authorType != models.AuthorTypeUser && authorType != models.AuthorTypeAdmin {
		return nil, validationErr("author_type", fmt.Sprintf("author type must be %q or %q", models.AuthorTypeUser, models.AuthorTypeAdmin))
	}

	message := utils.SanitizeInput(input.Message)
	if message == "" {
		return nil, validationErr("message", "comment message is required")
	}

	authorEmail := utils.SanitizeInput(input.AuthorEmail)
	if authorEmail != "" && !utils.ValidateEmail(authorEmail) {
		return nil, validationErr("author_email", "author email is not a valid address")
	}

	if err := s.ensureSubmission(submissionID); err != nil {
		return nil, err
	}

	comment := &models.SubmissionComment{
		SubmissionID: submissionID,
		AuthorType:   authorType,
		AuthorName:   optionalString(input.AuthorName),
		AuthorEmail:  optionalString(authorEmail),
		Message:      message,
		IsInternal:   input.IsInternal,
	}
	if err := s.db.Create(comment).Error; err != nil {
		return nil, persistenceErr("create comment", err)
	}
	return comment, nil
}

// List returns a submission's thread oldest first. Any viewer other than
// an admin gets the internal entries filtered out.
func (s *CommentService) List(submissionID, viewerRole string) ([]models.SubmissionComment, error) {
	if err := s.ensureSubmission(submissionID); err != nil {
		return nil, err
	}

	query := s.db.Where("submission_id = ?", submissionID)
	if strings.ToLower(strings.TrimSpace(viewerRole)) != models.AuthorTypeAdmin {
		query = query.Where("is_internal = ?", false)
	}

	var comments []models.SubmissionComment
	if err := query.Order("created_at ASC").Find(&comments).Error; err != nil {
		return nil, persistenceErr("list comments", err)
	}
	return comments, nil
}

// MarkRead flags a comment as read. Repeat calls leave the original
// read_at untouched.
func (s *CommentService) MarkRead(commentID string) (*models.SubmissionComment, error) {
	var comment models.SubmissionComment
	if err := s.db.Where("id = ?", commentID).First(&comment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("comment", commentID)
		}
		return nil, persistenceErr("load comment", err)
	}

	if comment.IsRead {
		return &comment, nil
	}

	now := time.Now()
	updates := map[string]interface{}{
		"is_read": true,
		"read_at": now,
	}
	if err := s.db.Model(&comment).Updates(updates).Error; err != nil {
		return nil, persistenceErr("mark comment read", err)
	}
	comment.IsRead = true
	comment.ReadAt = &now
	return &comment, nil
}

func (s *CommentService) ensureSubmission(submissionID string) error {
	var count int64
	if err := s.db.Model(&models.ProjectSubmission{}).Where("id = ?", submissionID).Count(&count).Error; err != nil {
		return persistenceErr("check submission", err)
	}
	if count == 0 {
		return notFoundErr("submission", submissionID)
	}
	return nil
}
