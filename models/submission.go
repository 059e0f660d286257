package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Submission statuses. The set is closed; utils.NormalizeStatus maps
// free-form input onto these values.
const (
	StatusPending  = "pending"
	StatusReviewed = "reviewed"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// ProjectSubmission represents the project_submissions table. The tracking
// token is a second random identifier handed to the submitter; it is never
// derived from the primary key.
type ProjectSubmission struct {
	ID            string `gorm:"primaryKey;column:id" json:"id"`
	TrackingToken string `gorm:"column:tracking_token;uniqueIndex" json:"tracking_token"`

	// Narrative
	Title        string  `gorm:"column:title;not null" json:"title"`
	Logline      *string `gorm:"column:logline" json:"logline"`
	Synopsis     *string `gorm:"column:synopsis" json:"synopsis"`
	TreatmentURL *string `gorm:"column:treatment_url" json:"treatment_url"`
	MoodboardURL *string `gorm:"column:moodboard_url" json:"moodboard_url"`
	Soundtracks  *string `gorm:"column:soundtracks" json:"soundtracks"`

	// Talent and production
	WriterBio     *string  `gorm:"column:writer_bio" json:"writer_bio"`
	Actor1        *string  `gorm:"column:actor_1" json:"actor_1"`
	Actor2        *string  `gorm:"column:actor_2" json:"actor_2"`
	Actor3        *string  `gorm:"column:actor_3" json:"actor_3"`
	Actor4        *string  `gorm:"column:actor_4" json:"actor_4"`
	Actor5        *string  `gorm:"column:actor_5" json:"actor_5"`
	Actor6        *string  `gorm:"column:actor_6" json:"actor_6"`
	Budget        *float64 `gorm:"column:budget" json:"budget"`
	Languages     *string  `gorm:"column:languages" json:"languages"`
	PreviousWorks *string  `gorm:"column:previous_works" json:"previous_works"`
	TermsAccepted bool     `gorm:"column:terms_accepted" json:"terms_accepted"`

	// Contact
	ContactName  string `gorm:"column:contact_name;not null" json:"contact_name"`
	ContactEmail string `gorm:"column:contact_email;not null" json:"contact_email"`
	ContactPhone string `gorm:"column:contact_phone;not null" json:"contact_phone"`

	// Review lifecycle
	Status     string     `gorm:"column:status" json:"status"`
	ReviewedAt *time.Time `gorm:"column:reviewed_at" json:"reviewed_at"`
	ReviewedBy *string    `gorm:"column:reviewed_by" json:"reviewed_by"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`

	Comments []SubmissionComment `gorm:"foreignKey:SubmissionID" json:"comments,omitempty"`
}

// TableName specifies the table name for ProjectSubmission.
func (ProjectSubmission) TableName() string {
	return "project_submissions"
}

// BeforeCreate assigns the primary key and tracking token when the caller
// has not set them.
func (s *ProjectSubmission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.TrackingToken == "" {
		s.TrackingToken = uuid.NewString()
	}
	return nil
}

// GreetingName returns the submitter's first name for email salutations,
// falling back to a neutral greeting when the contact name is blank.
func (s *ProjectSubmission) GreetingName() string {
	fields := strings.Fields(s.ContactName)
	if len(fields) == 0 {
		return "there"
	}
	return fields[0]
}

// ActorNames collects the filled actor recommendation slots in order.
func (s *ProjectSubmission) ActorNames() []string {
	var names []string
	for _, a := range []*string{s.Actor1, s.Actor2, s.Actor3, s.Actor4, s.Actor5, s.Actor6} {
		if a != nil && strings.TrimSpace(*a) != "" {
			names = append(names, strings.TrimSpace(*a))
		}
	}
	return names
}
