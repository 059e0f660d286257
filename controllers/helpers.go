package controllers

import (
	"log"
	"net/http"

	"omi-stitch-api/config"
	"omi-stitch-api/services"
	"omi-stitch-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Persistence details stay in the log, not the response.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case services.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case services.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case services.IsConflict(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("Internal error on %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong. Please try again later."})
	}
}

// notifyService builds the email dispatcher against the current SMTP
// configuration.
func notifyService() *services.NotifyService {
	mailer := config.NewMailerFromEnv()
	return services.NewNotifyService(nil, mailer, services.NotifyOptionsFromEnv(mailer))
}

// RegisterValidators installs the custom binding rules used by the form
// request structs. Call once before routes are served.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("inphone", func(fl validator.FieldLevel) bool {
			return utils.ValidatePhone(fl.Field().String())
		})
	}
}
