// controllers/admin_comment.go
package controllers

import (
	"log"
	"net/http"

	"omi-stitch-api/middleware"
	"omi-stitch-api/models"
	"omi-stitch-api/services"

	"github.com/gin-gonic/gin"
)

type adminCommentForm struct {
	Message    string `json:"message" binding:"required"`
	IsInternal bool   `json:"is_internal"`
}

// AddAdminComment handles POST /api/v1/admin/submissions/:id/comments
//
// Public replies trigger an email to the submitter; internal notes stay
// inside the admin thread and never reach SMTP.
func AddAdminComment(c *gin.Context) {
	var form adminCommentForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid comment payload",
			"details": err.Error(),
		})
		return
	}

	sub, err := services.NewSubmissionService(nil).Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	comment, err := services.NewCommentService(nil).Add(sub.ID, &services.CommentInput{
		AuthorType: models.AuthorTypeAdmin,
		AuthorName: middleware.AdminName(c),
		Message:    form.Message,
		IsInternal: form.IsInternal,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if !comment.IsInternal {
		notify := notifyService()
		go func(s models.ProjectSubmission, cm models.SubmissionComment) {
			if _, err := notify.SendCommentReply(&s, &cm); err != nil {
				log.Printf("submission %s: reply email failed: %v", s.ID, err)
			}
		}(*sub, *comment)
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Comment added",
		"comment": comment,
	})
}

// ListSubmissionComments handles GET /api/v1/admin/submissions/:id/comments
func ListSubmissionComments(c *gin.Context) {
	comments, err := services.NewCommentService(nil).List(c.Param("id"), models.AuthorTypeAdmin)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"comments": comments,
		"total":    len(comments),
	})
}

// MarkCommentRead handles PUT /api/v1/admin/comments/:id/read
//
// Safe to call repeatedly; the first read timestamp wins.
func MarkCommentRead(c *gin.Context) {
	comment, err := services.NewCommentService(nil).MarkRead(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"comment": comment,
	})
}
