// controllers/submission.go
package controllers

import (
	"log"
	"net/http"
	"time"

	"omi-stitch-api/models"
	"omi-stitch-api/services"
	"omi-stitch-api/utils"

	"github.com/gin-gonic/gin"
)

// ===================== PUBLIC SUBMISSION INTAKE =====================

// projectForm mirrors the website's project submission form. Field names
// match the form payload keys, so treatment/moodboard arrive without the
// _url suffix their columns carry.
type projectForm struct {
	Title       string `json:"title" binding:"required"`
	Logline     string `json:"logline"`
	Synopsis    string `json:"synopsis"`
	Treatment   string `json:"treatment"`
	Moodboard   string `json:"moodboard"`
	Soundtracks string `json:"soundtracks"`

	WriterBio string `json:"writer_bio"`
	Actor1    string `json:"actor_1"`
	Actor2    string `json:"actor_2"`
	Actor3    string `json:"actor_3"`
	Actor4    string `json:"actor_4"`
	Actor5    string `json:"actor_5"`
	Actor6    string `json:"actor_6"`

	Budget        *float64 `json:"budget"`
	Languages     string   `json:"languages"`
	PreviousWorks string   `json:"previous_works"`
	Terms         bool     `json:"terms"`

	ContactName  string `json:"contact_name" binding:"required"`
	ContactEmail string `json:"contact_email" binding:"required,email"`
	ContactPhone string `json:"contact_phone" binding:"required,inphone"`
}

// SubmitProject handles POST /api/v1/submissions
func SubmitProject(c *gin.Context) {
	var form projectForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid submission payload",
			"details": err.Error(),
		})
		return
	}

	input := &services.SubmissionInput{
		Title:         form.Title,
		Logline:       form.Logline,
		Synopsis:      form.Synopsis,
		TreatmentURL:  form.Treatment,
		MoodboardURL:  form.Moodboard,
		Soundtracks:   form.Soundtracks,
		WriterBio:     form.WriterBio,
		Actors:        []string{form.Actor1, form.Actor2, form.Actor3, form.Actor4, form.Actor5, form.Actor6},
		Budget:        form.Budget,
		Languages:     form.Languages,
		PreviousWorks: form.PreviousWorks,
		TermsAccepted: form.Terms,
		ContactName:   form.ContactName,
		ContactEmail:  form.ContactEmail,
		ContactPhone:  form.ContactPhone,
	}

	sub, err := services.NewSubmissionService(nil).Create(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// Confirmation and admin alert go out in the background; the audit row
	// for each attempt is written before SMTP is touched.
	notify := notifyService()
	go func(s models.ProjectSubmission) {
		if _, err := notify.SendSubmissionConfirmation(&s); err != nil {
			log.Printf("submission %s: confirmation email failed: %v", s.ID, err)
		}
		if _, err := notify.NotifyAdminNewSubmission(&s); err != nil {
			log.Printf("submission %s: admin alert failed: %v", s.ID, err)
		}
	}(*sub)

	c.JSON(http.StatusCreated, gin.H{
		"success":        true,
		"message":        "Project submitted successfully",
		"tracking_token": sub.TrackingToken,
		"data": gin.H{
			"title":  sub.Title,
			"status": sub.Status,
			"actors": sub.ActorNames(),
		},
	})
}

// ===================== PUBLIC TRACKING =====================

type trackedComment struct {
	AuthorType string    `json:"author_type"`
	AuthorName string    `json:"author_name"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

// trackingView is the submitter-facing projection. It never carries the
// internal submission id.
type trackingView struct {
	TrackingToken string           `json:"tracking_token"`
	Title         string           `json:"title"`
	Logline       *string          `json:"logline"`
	Status        string           `json:"status"`
	StatusLine    string           `json:"status_line"`
	SubmittedAt   time.Time        `json:"submitted_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	ReviewedAt    *time.Time       `json:"reviewed_at"`
	Comments      []trackedComment `json:"comments"`
}

// TrackSubmission handles GET /api/v1/track/:token
func TrackSubmission(c *gin.Context) {
	sub, err := services.NewSubmissionService(nil).ResolveByToken(c.Param("token"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	comments, err := services.NewCommentService(nil).List(sub.ID, models.AuthorTypeUser)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	view := trackingView{
		TrackingToken: sub.TrackingToken,
		Title:         sub.Title,
		Logline:       sub.Logline,
		Status:        sub.Status,
		StatusLine:    utils.StatusLine(sub.Status),
		SubmittedAt:   sub.CreatedAt,
		UpdatedAt:     sub.UpdatedAt,
		ReviewedAt:    sub.ReviewedAt,
		Comments:      make([]trackedComment, 0, len(comments)),
	}
	for _, cm := range comments {
		name := "OMI Team"
		if cm.AuthorType == models.AuthorTypeUser {
			name = sub.GreetingName()
		}
		if cm.AuthorName != nil && *cm.AuthorName != "" {
			name = *cm.AuthorName
		}
		view.Comments = append(view.Comments, trackedComment{
			AuthorType: cm.AuthorType,
			AuthorName: name,
			Message:    cm.Message,
			CreatedAt:  cm.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "submission": view})
}

type trackedCommentForm struct {
	Message    string `json:"message" binding:"required"`
	AuthorName string `json:"author_name"`
}

// AddTrackedComment handles POST /api/v1/track/:token/comments
//
// Comments posted through the tracking page are always public and carry
// the submitter's contact email for reply routing.
func AddTrackedComment(c *gin.Context) {
	var form trackedCommentForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid comment payload",
			"details": err.Error(),
		})
		return
	}

	sub, err := services.NewSubmissionService(nil).ResolveByToken(c.Param("token"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	authorName := form.AuthorName
	if authorName == "" {
		authorName = sub.ContactName
	}

	comment, err := services.NewCommentService(nil).Add(sub.ID, &services.CommentInput{
		AuthorType:  models.AuthorTypeUser,
		AuthorName:  authorName,
		AuthorEmail: sub.ContactEmail,
		Message:     form.Message,
		IsInternal:  false,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	notify := notifyService()
	go func(s models.ProjectSubmission, cm models.SubmissionComment) {
		if _, err := notify.NotifyAdminCommentReceived(&s, &cm); err != nil {
			log.Printf("submission %s: comment alert failed: %v", s.ID, err)
		}
	}(*sub, *comment)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Comment added to your submission",
		"comment": trackedComment{
			AuthorType: comment.AuthorType,
			AuthorName: authorName,
			Message:    comment.Message,
			CreatedAt:  comment.CreatedAt,
		},
	})
}
