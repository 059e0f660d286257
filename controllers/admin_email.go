// controllers/admin_email.go
package controllers

import (
	"net/http"
	"strconv"

	"omi-stitch-api/models"
	"omi-stitch-api/services"

	"github.com/gin-gonic/gin"
)

// ===================== EMAIL AUDIT LOG =====================

// ListEmailRecords handles GET /api/v1/admin/emails
//
// Supports ?status=, ?email_type=, ?submission_id=, ?limit= and ?offset=.
func ListEmailRecords(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	filter := services.EmailFilter{
		Status:       c.Query("status"),
		EmailType:    c.Query("email_type"),
		SubmissionID: c.Query("submission_id"),
		Limit:        limit,
		Offset:       offset,
	}

	records, total, err := services.NewEmailLogService(nil).List(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"emails":  records,
		"total":   total,
		"limit":   filter.Limit,
		"offset":  filter.Offset,
	})
}

// GetEmailRecord handles GET /api/v1/admin/emails/:id
func GetEmailRecord(c *gin.Context) {
	record, err := services.NewEmailLogService(nil).Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"email":   record,
	})
}

// RetryEmail handles POST /api/v1/admin/emails/:id/retry
//
// Only failed records can be retried. The send runs inline so the
// operator sees the fresh outcome in the response.
func RetryEmail(c *gin.Context) {
	record, err := notifyService().RetryOne(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	message := "Email delivered"
	if record.Status != models.EmailStatusSent {
		message = "Retry attempted; delivery failed again"
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"email":   record,
	})
}

// RetryFailedEmails handles POST /api/v1/admin/emails/retry-failed
//
// Runs the same sweep as the scheduled job, so an operator can force a
// pass right after fixing the SMTP settings. ?limit= caps the batch.
func RetryFailedEmails(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	attempted, recovered, err := notifyService().RetryFailed(limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"attempted": attempted,
		"recovered": recovered,
	})
}
