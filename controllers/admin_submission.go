// controllers/admin_submission.go
package controllers

import (
	"log"
	"net/http"
	"strconv"

	"omi-stitch-api/middleware"
	"omi-stitch-api/models"
	"omi-stitch-api/services"
	"omi-stitch-api/utils"

	"github.com/gin-gonic/gin"
)

// ===================== ADMIN SUBMISSION MANAGEMENT =====================

// ListSubmissions handles GET /api/v1/admin/submissions
//
// Supports ?status=, ?search= (title/contact matching), ?limit= and
// ?offset= for paging.
func ListSubmissions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	filter := services.SubmissionFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
		Limit:  limit,
		Offset: offset,
	}

	submissions, total, err := services.NewSubmissionService(nil).List(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"submissions": submissions,
		"total":       total,
		"limit":       filter.Limit,
		"offset":      filter.Offset,
	})
}

// GetSubmission handles GET /api/v1/admin/submissions/:id
//
// Returns the full record with its comment thread (internal entries
// included) and the email audit trail.
func GetSubmission(c *gin.Context) {
	id := c.Param("id")

	sub, err := services.NewSubmissionService(nil).Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	comments, err := services.NewCommentService(nil).List(sub.ID, models.AuthorTypeAdmin)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	emails, _, err := services.NewEmailLogService(nil).List(services.EmailFilter{SubmissionID: sub.ID})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"submission": sub,
		"comments":   comments,
		"emails":     emails,
	})
}

type statusUpdateForm struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note"`
}

// UpdateSubmissionStatus handles PUT /api/v1/admin/submissions/:id/status
//
// The reviewer is taken from the authenticated admin, never from the
// request body. An optional note becomes an internal comment on the
// thread.
func UpdateSubmissionStatus(c *gin.Context) {
	var form statusUpdateForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid status payload",
			"details": err.Error(),
		})
		return
	}

	id := c.Param("id")
	reviewer := middleware.AdminName(c)

	sub, err := services.NewSubmissionService(nil).UpdateStatus(id, form.Status, reviewer)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if form.Note != "" {
		_, err := services.NewCommentService(nil).Add(sub.ID, &services.CommentInput{
			AuthorType: models.AuthorTypeAdmin,
			AuthorName: reviewer,
			Message:    form.Note,
			IsInternal: true,
		})
		if err != nil {
			log.Printf("submission %s: status note failed: %v", sub.ID, err)
		}
	}

	// Submitters hear about every decision except a reset back to the
	// queue.
	if sub.Status != models.StatusPending {
		notify := notifyService()
		go func(s models.ProjectSubmission) {
			if _, err := notify.SendStatusUpdate(&s); err != nil {
				log.Printf("submission %s: status email failed: %v", s.ID, err)
			}
		}(*sub)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Submission marked " + sub.Status,
		"submission": sub,
	})
}

// DeleteSubmission handles DELETE /api/v1/admin/submissions/:id
//
// Comments go with the submission; email audit rows survive with their
// submission link cleared.
func DeleteSubmission(c *gin.Context) {
	id := c.Param("id")
	if err := services.NewSubmissionService(nil).Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Submission deleted",
	})
}

// GetSubmissionStats handles GET /api/v1/admin/submissions/stats
func GetSubmissionStats(c *gin.Context) {
	svc := services.NewSubmissionService(nil)

	counts := gin.H{}
	var total int64
	for _, status := range utils.KnownStatuses() {
		_, n, err := svc.List(services.SubmissionFilter{Status: status, Limit: 1})
		if err != nil {
			respondServiceError(c, err)
			return
		}
		counts[status] = n
		total += n
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"total":     total,
		"by_status": counts,
		"statuses":  utils.KnownStatuses(),
	})
}
