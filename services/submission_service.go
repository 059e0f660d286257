package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"omi-stitch-api/config"
	"omi-stitch-api/models"
	"omi-stitch-api/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// tokenRetryLimit bounds how many fresh tracking tokens Create tries when
// an insert trips the unique constraint.
const tokenRetryLimit = 3

const maxActorSlots = 6

// SubmissionInput carries the project form fields. Optional fields left
// empty are stored as NULL.
type SubmissionInput struct {
	Title        string
	Logline      string
	Synopsis     string
	TreatmentURL string
	MoodboardURL string
	Soundtracks  string

	WriterBio     string
	Actors        []string
	Budget        *float64
	Languages     string
	PreviousWorks string
	TermsAccepted bool

	ContactName  string
	ContactEmail string
	ContactPhone string
}

// SubmissionFilter narrows admin listings.
type SubmissionFilter struct {
	Status string
	Search string
	Limit  int
	Offset int
}

type SubmissionService struct {
	db *gorm.DB
}

func NewSubmissionService(db *gorm.DB) *SubmissionService {
	if db == nil {
		db = config.DB
	}
	return &SubmissionService{db: db}
}

// Create validates the form contract and persists a new submission in
// pending status with a fresh id and an independent tracking token.
func (s *SubmissionService) Create(input *SubmissionInput) (*models.ProjectSubmission, error) {
	if input == nil {
		return nil, validationErr("", "input is nil")
	}

	title := utils.SanitizeInput(input.Title)
	contactName := utils.SanitizeInput(input.ContactName)
	contactEmail := utils.SanitizeInput(input.ContactEmail)
	contactPhone := utils.SanitizeInput(input.ContactPhone)

	if title == "" {
		return nil, validationErr("title", "project title is required")
	}
	if contactName == "" {
		return nil, validationErr("contact_name", "contact name is required")
	}
	if contactEmail == "" {
		return nil, validationErr("contact_email", "contact email is required")
	}
	if !utils.ValidateEmail(contactEmail) {
		return nil, validationErr("contact_email", "contact email is not a valid address")
	}
	if contactPhone == "" {
		return nil, validationErr("contact_phone", "contact phone is required")
	}
	if !utils.ValidatePhone(contactPhone) {
		return nil, validationErr("contact_phone", "phone must be 10 digits starting with 6-9")
	}
	if len(input.Actors) > maxActorSlots {
		return nil, validationErr("actors", fmt.Sprintf("at most %d actor recommendations are accepted", maxActorSlots))
	}

	actors := make([]*string, maxActorSlots)
	for i, a := range input.Actors {
		actors[i] = optionalString(a)
	}

	sub := &models.ProjectSubmission{
		Title:         title,
		Logline:       optionalString(input.Logline),
		Synopsis:      optionalString(input.Synopsis),
		TreatmentURL:  optionalString(input.TreatmentURL),
		MoodboardURL:  optionalString(input.MoodboardURL),
		Soundtracks:   optionalString(input.Soundtracks),
		WriterBio:     optionalString(input.WriterBio),
		Actor1:        actors[0],
		Actor2:        actors[1],
		Actor3:        actors[2],
		Actor4:        actors[3],
		Actor5:        actors[4],
		Actor6:        actors[5],
		Budget:        input.Budget,
		Languages:     optionalString(input.Languages),
		PreviousWorks: optionalString(input.PreviousWorks),
		TermsAccepted: input.TermsAccepted,
		ContactName:   contactName,
		ContactEmail:  contactEmail,
		ContactPhone:  contactPhone,
		Status:        models.StatusPending,
	}

	// Random UUIDs collide essentially never, but the tracking token carries
	// a UNIQUE constraint, so treat a duplicate as retryable rather than
	// failing the submitter.
	for attempt := 0; attempt < tokenRetryLimit; attempt++ {
		sub.ID = uuid.NewString()
		sub.TrackingToken = uuid.NewString()

		err := s.db.Create(sub).Error
		if err == nil {
			return sub, nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			continue
		}
		return nil, persistenceErr("create submission", err)
	}
	return nil, conflictErr("could not allocate a unique tracking token")
}

// UpdateStatus moves a submission through the review lifecycle and records
// who acted and when. A rejected submission must be re-opened to pending
// before any other change.
func (s *SubmissionService) UpdateStatus(id, status, reviewer string) (*models.ProjectSubmission, error) {
	normalized, ok := utils.NormalizeStatus(status)
	if !ok {
		return nil, validationErr("status", fmt.Sprintf("unknown status %q", status))
	}
	reviewer = utils.SanitizeInput(reviewer)
	if reviewer == "" {
		return nil, validationErr("reviewed_by", "reviewer identity is required")
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var sub models.ProjectSubmission
	if err := tx.Where("id = ?", id).First(&sub).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("submission", id)
		}
		return nil, persistenceErr("load submission", err)
	}

	if !utils.CanTransition(sub.Status, normalized) {
		tx.Rollback()
		return nil, conflictErr(fmt.Sprintf("a %s submission must be re-opened to %s first", sub.Status, models.StatusPending))
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":      normalized,
		"reviewed_at": now,
		"reviewed_by": reviewer,
		"updated_at":  now,
	}
	if err := tx.Model(&sub).Updates(updates).Error; err != nil {
		tx.Rollback()
		return nil, persistenceErr("update submission status", err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, persistenceErr("commit status update", err)
	}

	var updated models.ProjectSubmission
	if err := s.db.Where("id = ?", id).First(&updated).Error; err != nil {
		return nil, persistenceErr("reload submission", err)
	}
	return &updated, nil
}

// ResolveByToken looks up a submission by its public tracking token.
// Malformed tokens are reported the same as unknown ones.
func (s *SubmissionService) ResolveByToken(token string) (*models.ProjectSubmission, error) {
	token = strings.TrimSpace(token)
	if _, err := uuid.Parse(token); err != nil {
		return nil, notFoundErr("submission", token)
	}

	var sub models.ProjectSubmission
	if err := s.db.Where("tracking_token = ?", token).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("submission", token)
		}
		return nil, persistenceErr("resolve tracking token", err)
	}
	return &sub, nil
}

// Get fetches a submission by internal id.
func (s *SubmissionService) Get(id string) (*models.ProjectSubmission, error) {
	var sub models.ProjectSubmission
	if err := s.db.Where("id = ?", id).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("submission", id)
		}
		return nil, persistenceErr("load submission", err)
	}
	return &sub, nil
}

// List returns a page of submissions for the review queue, newest first.
func (s *SubmissionService) List(filter SubmissionFilter) ([]models.ProjectSubmission, int64, error) {
	query := s.db.Model(&models.ProjectSubmission{})

	if filter.Status != "" {
		normalized, ok := utils.NormalizeStatus(filter.Status)
		if !ok {
			return nil, 0, validationErr("status", fmt.Sprintf("unknown status %q", filter.Status))
		}
		query = query.Where("status = ?", normalized)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(contact_name) LIKE ? OR LOWER(contact_email) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, persistenceErr("count submissions", err)
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

	var subs []models.ProjectSubmission
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&subs).Error; err != nil {
		return nil, 0, persistenceErr("list submissions", err)
	}
	return subs, total, nil
}

// Delete removes a submission and its comment thread. Email audit rows
// survive with their submission reference nulled, mirroring the schema's
// ON DELETE actions.
func (s *SubmissionService) Delete(id string) error {
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var sub models.ProjectSubmission
	if err := tx.Where("id = ?", id).First(&sub).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundErr("submission", id)
		}
		return persistenceErr("load submission", err)
	}

	if err := tx.Model(&models.EmailRecord{}).Where("submission_id = ?", id).Update("submission_id", nil).Error; err != nil {
		tx.Rollback()
		return persistenceErr("detach email records", err)
	}
	if err := tx.Where("submission_id = ?", id).Delete(&models.SubmissionComment{}).Error; err != nil {
		tx.Rollback()
		return persistenceErr("delete comments", err)
	}
	if err := tx.Delete(&sub).Error; err != nil {
		tx.Rollback()
		return persistenceErr("delete submission", err)
	}
	if err := tx.Commit().Error; err != nil {
		return persistenceErr("commit submission delete", err)
	}
	return nil
}

func optionalString(v string) *string {
	v = utils.SanitizeInput(v)
	if v == "" {
		return nil
	}
	return &v
}
