package services

import (
	"log"
	"os"
	"strconv"
	"strings"

	"omi-stitch-api/config"
	"omi-stitch-api/models"

	"gorm.io/gorm"
)

// EmailSender delivers one composed message. config.Mailer is the
// production implementation.
type EmailSender interface {
	Send(msg config.OutgoingEmail) (messageID string, smtpResponse string, err error)
}

// NotifyOptions configures the dispatcher's sender identity and targets.
type NotifyOptions struct {
	FromEmail  string
	FromName   string
	ReplyTo    string
	AdminEmail string
	BaseURL    string
	MaxRetries int
}

// NotifyOptionsFromEnv derives dispatcher options from the mailer identity
// plus ADMIN_EMAIL, REPLY_TO_EMAIL, APP_BASE_URL and EMAIL_MAX_RETRIES.
func NotifyOptionsFromEnv(mailer *config.Mailer) NotifyOptions {
	maxRetries, _ := strconv.Atoi(os.Getenv("EMAIL_MAX_RETRIES"))
	return NotifyOptions{
		FromEmail:  mailer.SenderEmail,
		FromName:   mailer.SenderName,
		ReplyTo:    os.Getenv("REPLY_TO_EMAIL"),
		AdminEmail: os.Getenv("ADMIN_EMAIL"),
		BaseURL:    os.Getenv("APP_BASE_URL"),
		MaxRetries: maxRetries,
	}
}

// NotifyService composes submission lifecycle emails and sends them through
// the audit log: every dispatch writes a pending record first, then records
// the delivery outcome on the same row.
type NotifyService struct {
	emailLog *EmailLogService
	sender   EmailSender
	opts     NotifyOptions
}

func NewNotifyService(db *gorm.DB, sender EmailSender, opts NotifyOptions) *NotifyService {
	if db == nil {
		db = config.DB
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 3
	}
	return &NotifyService{
		emailLog: NewEmailLogService(db),
		sender:   sender,
		opts:     opts,
	}
}

// SendSubmissionConfirmation emails the submitter their receipt and
// tracking link.
func (n *NotifyService) SendSubmissionConfirmation(sub *models.ProjectSubmission) (*models.EmailRecord, error) {
	content := composeConfirmation(sub, n.trackingURL(sub.TrackingToken))
	return n.dispatch(&sub.ID, content, sub.ContactEmail, sub.ContactName, models.EmailTypeSubmissionConfirmation)
}

// NotifyAdminNewSubmission alerts the review inbox. A missing ADMIN_EMAIL
// just skips the alert.
func (n *NotifyService) NotifyAdminNewSubmission(sub *models.ProjectSubmission) (*models.EmailRecord, error) {
	if n.opts.AdminEmail == "" {
		return nil, nil
	}
	content := composeAdminNewSubmission(sub)
	return n.dispatch(&sub.ID, content, n.opts.AdminEmail, "", models.EmailTypeAdminNewSubmission)
}

// SendStatusUpdate emails the submitter after a review decision.
func (n *NotifyService) SendStatusUpdate(sub *models.ProjectSubmission) (*models.EmailRecord, error) {
	content := composeStatusUpdate(sub, n.trackingURL(sub.TrackingToken))
	return n.dispatch(&sub.ID, content, sub.ContactEmail, sub.ContactName, models.EmailTypeStatusUpdate)
}

// SendCommentReply emails the submitter about a new team message. Internal
// notes never leave the building, whatever the caller passes.
func (n *NotifyService) SendCommentReply(sub *models.ProjectSubmission, comment *models.SubmissionComment) (*models.EmailRecord, error) {
	if comment.IsInternal {
		return nil, nil
	}
	content := composeCommentReply(sub, comment, n.trackingURL(sub.TrackingToken))
	return n.dispatch(&sub.ID, content, sub.ContactEmail, sub.ContactName, models.EmailTypeCommentReply)
}

// NotifyAdminCommentReceived alerts the review inbox about a submitter reply.
func (n *NotifyService) NotifyAdminCommentReceived(sub *models.ProjectSubmission, comment *models.SubmissionComment) (*models.EmailRecord, error) {
	if n.opts.AdminEmail == "" {
		return nil, nil
	}
	content := composeCommentReceived(sub, comment)
	return n.dispatch(&sub.ID, content, n.opts.AdminEmail, "", models.EmailTypeCommentReceived)
}

// RetryFailed re-dispatches failed audit records still under the retry
// budget, using the stored envelope and bodies on the same rows.
func (n *NotifyService) RetryFailed(limit int) (attempted, recovered int, err error) {
	recs, err := n.emailLog.ListRetryable(n.opts.MaxRetries, limit)
	if err != nil {
		return 0, 0, err
	}
	for i := range recs {
		rec := &recs[i]
		attempted++
		updated, sendErr := n.deliver(rec.ID, recordMessage(rec))
		if sendErr == nil && updated != nil && updated.Status == models.EmailStatusSent {
			recovered++
		}
	}
	return attempted, recovered, nil
}

// RetryOne re-dispatches a single failed record on operator request,
// ignoring the retry budget. The delivery result lands in the record either
// way; only lookup and state problems surface as errors.
func (n *NotifyService) RetryOne(recordID string) (*models.EmailRecord, error) {
	rec, err := n.emailLog.Get(recordID)
	if err != nil {
		return nil, err
	}
	if rec.Status != models.EmailStatusFailed {
		return nil, conflictErr("only failed email records can be retried")
	}
	updated, sendErr := n.deliver(rec.ID, recordMessage(rec))
	if sendErr != nil {
		log.Printf("Manual retry of email %s failed again: %v", rec.ID, sendErr)
	}
	if updated == nil {
		return rec, nil
	}
	return updated, nil
}

func (n *NotifyService) dispatch(submissionID *string, content emailContent, toEmail, toName, emailType string) (*models.EmailRecord, error) {
	msg := config.OutgoingEmail{
		FromEmail: n.opts.FromEmail,
		FromName:  n.opts.FromName,
		ToEmail:   toEmail,
		ToName:    toName,
		ReplyTo:   n.opts.ReplyTo,
		Subject:   content.Subject,
		BodyHTML:  content.BodyHTML,
		BodyPlain: content.BodyPlain,
	}

	rec, err := n.emailLog.RecordAttempt(submissionID, msg, emailType)
	if err != nil {
		return nil, err
	}
	return n.deliver(rec.ID, msg)
}

// deliver runs the SMTP dialog for an already recorded attempt and stores
// the outcome. The send error comes back so synchronous callers can log it;
// the audit row is the source of truth either way.
func (n *NotifyService) deliver(recordID string, msg config.OutgoingEmail) (*models.EmailRecord, error) {
	messageID, smtpResponse, sendErr := n.sender.Send(msg)
	if sendErr != nil {
		updated, logErr := n.emailLog.RecordOutcome(recordID, models.EmailStatusFailed, EmailOutcome{
			ErrorMessage: sendErr.Error(),
		})
		if logErr != nil {
			log.Printf("Failed to record email failure for %s: %v", recordID, logErr)
			return nil, sendErr
		}
		return updated, sendErr
	}

	updated, logErr := n.emailLog.RecordOutcome(recordID, models.EmailStatusSent, EmailOutcome{
		MessageID:    messageID,
		SMTPResponse: smtpResponse,
	})
	if logErr != nil {
		log.Printf("Failed to record email success for %s: %v", recordID, logErr)
		return nil, nil
	}
	return updated, nil
}

func (n *NotifyService) trackingURL(token string) string {
	base := strings.TrimRight(n.opts.BaseURL, "/")
	if base == "" {
		return ""
	}
	return base + "/track/" + token
}

func recordMessage(rec *models.EmailRecord) config.OutgoingEmail {
	return config.OutgoingEmail{
		FromEmail: rec.FromEmail,
		FromName:  derefString(rec.FromName),
		ToEmail:   rec.ToEmail,
		ToName:    derefString(rec.ToName),
		ReplyTo:   derefString(rec.ReplyTo),
		Subject:   rec.Subject,
		BodyHTML:  rec.BodyHTML,
		BodyPlain: derefString(rec.BodyPlain),
	}
}
