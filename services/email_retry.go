package services

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"
)

// EmailRetryScheduler periodically re-dispatches failed email records that
// are still under the retry budget.
type EmailRetryScheduler struct {
	cron   *cron.Cron
	notify *NotifyService
	spec   string
	batch  int
}

// NewEmailRetryScheduler builds the sweeper. The schedule comes from
// EMAIL_RETRY_CRON (standard 5-field spec, default every 5 minutes) and the
// per-run batch size from EMAIL_RETRY_BATCH.
func NewEmailRetryScheduler(notify *NotifyService) *EmailRetryScheduler {
	spec := os.Getenv("EMAIL_RETRY_CRON")
	if spec == "" {
		spec = "*/5 * * * *"
	}
	batch, _ := strconv.Atoi(os.Getenv("EMAIL_RETRY_BATCH"))
	if batch <= 0 {
		batch = 20
	}
	return &EmailRetryScheduler{
		cron:   cron.New(),
		notify: notify,
		spec:   spec,
		batch:  batch,
	}
}

// Start registers the sweep job and starts the scheduler.
func (s *EmailRetryScheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.sweep); err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("📬 Email retry sweeper scheduled (%s, batch %d)", s.spec, s.batch)
	return nil
}

// Stop halts the scheduler; running sweeps finish on their own.
func (s *EmailRetryScheduler) Stop() {
	s.cron.Stop()
}

func (s *EmailRetryScheduler) sweep() {
	start := time.Now()
	attempted, recovered, err := s.notify.RetryFailed(s.batch)
	if err != nil {
		log.Printf("❌ Email retry sweep failed: %v", err)
		return
	}
	if attempted == 0 {
		return
	}
	log.Printf("📬 Email retry sweep: %d attempted, %d recovered in %s", attempted, recovered, time.Since(start).Round(time.Millisecond))
}
