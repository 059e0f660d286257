package services

import (
	"strings"
	"testing"

	"omi-stitch-api/models"
)

func TestCreateAssignsIndependentTrackingToken(t *testing.T) {
	db := newTestDB(t)

	sub := seedSubmission(t, db)
	if sub.ID == "" || sub.TrackingToken == "" {
		t.Fatalf("expected id and tracking token to be set, got %q / %q", sub.ID, sub.TrackingToken)
	}
	if sub.ID == sub.TrackingToken {
		t.Fatal("tracking token must not equal the internal id")
	}
	if sub.Status != models.StatusPending {
		t.Fatalf("new submissions start pending, got %q", sub.Status)
	}
	if sub.ReviewedAt != nil || sub.ReviewedBy != nil {
		t.Fatal("new submissions must not carry reviewer metadata")
	}
}

func TestCreateValidatesContactFields(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubmissionService(db)

	base := func() *SubmissionInput {
		return &SubmissionInput{
			Title:        "Orbit",
			ContactName:  "Asha Verma",
			ContactEmail: "asha@example.com",
			ContactPhone: "9876543210",
		}
	}

	cases := []struct {
		name   string
		mutate func(*SubmissionInput)
	}{
		{"missing title", func(in *SubmissionInput) { in.Title = "  " }},
		{"missing contact name", func(in *SubmissionInput) { in.ContactName = "" }},
		{"bad email", func(in *SubmissionInput) { in.ContactEmail = "not-an-email" }},
		{"phone too short", func(in *SubmissionInput) { in.ContactPhone = "987654321" }},
		{"phone too long", func(in *SubmissionInput) { in.ContactPhone = "98765432100" }},
		{"phone bad prefix", func(in *SubmissionInput) { in.ContactPhone = "1234567890" }},
		{"too many actors", func(in *SubmissionInput) {
			in.Actors = []string{"a", "b", "c", "d", "e", "f", "g"}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := base()
			tc.mutate(in)
			if _, err := svc.Create(in); !IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}

	// The valid baseline still goes through.
	if _, err := svc.Create(base()); err != nil {
		t.Fatalf("baseline input should be accepted: %v", err)
	}
}

func TestCreateStoresActorSlotsInOrder(t *testing.T) {
	db := newTestDB(t)

	sub, err := NewSubmissionService(db).Create(&SubmissionInput{
		Title:        "Orbit",
		Actors:       []string{"First Lead", "", "Third Slot"},
		ContactName:  "Asha Verma",
		ContactEmail: "asha@example.com",
		ContactPhone: "9876543210",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if sub.Actor1 == nil || *sub.Actor1 != "First Lead" {
		t.Fatalf("actor slot 1 = %v, want First Lead", sub.Actor1)
	}
	if sub.Actor2 != nil {
		t.Fatalf("empty actor slot should stay NULL, got %q", *sub.Actor2)
	}
	if sub.Actor3 == nil || *sub.Actor3 != "Third Slot" {
		t.Fatalf("actor slot 3 = %v, want Third Slot", sub.Actor3)
	}
	if names := sub.ActorNames(); len(names) != 2 {
		t.Fatalf("ActorNames = %v, want the two filled slots", names)
	}
}

func TestResolveByToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubmissionService(db)
	sub := seedSubmission(t, db)

	got, err := svc.ResolveByToken(sub.TrackingToken)
	if err != nil {
		t.Fatalf("ResolveByToken returned error: %v", err)
	}
	if got.ID != sub.ID {
		t.Fatalf("resolved wrong submission: %s", got.ID)
	}

	// Unknown and malformed tokens are indistinguishable to the caller.
	if _, err := svc.ResolveByToken("123e4567-e89b-12d3-a456-426614174000"); !IsNotFound(err) {
		t.Fatalf("unknown token should be not found, got %v", err)
	}
	if _, err := svc.ResolveByToken("definitely-not-a-uuid"); !IsNotFound(err) {
		t.Fatalf("malformed token should be not found, got %v", err)
	}

	// The internal id must not work as a token.
	if _, err := svc.ResolveByToken(sub.ID); !IsNotFound(err) {
		t.Fatalf("internal id should not resolve as a token, got %v", err)
	}
}

func TestUpdateStatusRecordsReviewer(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubmissionService(db)
	sub := seedSubmission(t, db)

	updated, err := svc.UpdateStatus(sub.ID, "approved", "editor_jane")
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if updated.Status != models.StatusApproved {
		t.Fatalf("status = %q, want approved", updated.Status)
	}
	if updated.ReviewedBy == nil || *updated.ReviewedBy != "editor_jane" {
		t.Fatalf("reviewed_by = %v, want editor_jane", updated.ReviewedBy)
	}
	if updated.ReviewedAt == nil {
		t.Fatal("reviewed_at should be set after a status change")
	}
}

func TestUpdateStatusAcceptsSynonyms(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubmissionService(db)
	sub := seedSubmission(t, db)

	updated, err := svc.UpdateStatus(sub.ID, "Under_Review", "editor_jane")
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if updated.Status != models.StatusReviewed {
		t.Fatalf("status = %q, want reviewed", updated.Status)
	}

	if _, err := svc.UpdateStatus(sub.ID, "vaporized", "editor_jane"); !IsValidation(err) {
		t.Fatalf("unknown status should be a validation error, got %v", err)
	}
	if _, err := svc.UpdateStatus(sub.ID, "approved", "  "); !IsValidation(err) {
		t.Fatalf("blank reviewer should be a validation error, got %v", err)
	}
}

func TestRejectedSubmissionMustBeReopened(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubmissionService(db)
	sub := seedSubmission(t, db)

	if _, err := svc.UpdateStatus(sub.ID, "rejected", "editor_jane"); err != nil {
		t.Fatalf("reject returned error: %v", err)
	}

	// Straight to approved is blocked.
	if _, err := svc.UpdateStatus(sub.ID, "approved", "editor_jane"); !IsConflict(err) {
		t.Fatalf("rejected -> approved should conflict, got %v", err)
	}

	// Re-open, then approve.
	reopened, err := svc.UpdateStatus(sub.ID, "pending", "editor_jane")
	if err != nil {
		t.Fatalf("re-open returned error: %v", err)
	}
	if reopened.Status != models.StatusPending {
		t.Fatalf("status = %q, want pending", reopened.Status)
	}
	if _, err := svc.UpdateStatus(sub.ID, "approved", "editor_jane"); err != nil {
		t.Fatalf("approve after re-open returned error: %v", err)
	}
}

func TestUpdateStatusUnknownSubmission(t *testing.T) {
	db := newTestDB(t)

	_, err := NewSubmissionService(db).UpdateStatus("123e4567-e89b-12d3-a456-426614174000", "approved", "editor_jane")
	if !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListFiltersAndPages(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubmissionService(db)

	first := seedSubmission(t, db)
	second, err := svc.Create(&SubmissionInput{
		Title:        "Deep Water",
		ContactName:  "Ravi Kumar",
		ContactEmail: "ravi@example.com",
		ContactPhone: "8765432109",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := svc.UpdateStatus(second.ID, "approved", "editor_jane"); err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}

	all, total, err := svc.List(SubmissionFilter{})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if total != 2 || len(all) != 2 {
		t.Fatalf("expected both submissions, got total=%d len=%d", total, len(all))
	}

	approved, total, err := svc.List(SubmissionFilter{Status: "greenlit"})
	if err != nil {
		t.Fatalf("List by status returned error: %v", err)
	}
	if total != 1 || approved[0].ID != second.ID {
		t.Fatalf("status filter should resolve the synonym and match one row, got total=%d", total)
	}

	found, _, err := svc.List(SubmissionFilter{Search: "orbit"})
	if err != nil {
		t.Fatalf("List by search returned error: %v", err)
	}
	if len(found) != 1 || found[0].ID != first.ID {
		t.Fatalf("search should match titles case-insensitively, got %d rows", len(found))
	}

	if _, _, err := svc.List(SubmissionFilter{Status: "vaporized"}); !IsValidation(err) {
		t.Fatalf("unknown status filter should be a validation error, got %v", err)
	}
}

func TestDeleteCascadesCommentsAndDetachesEmails(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubmissionService(db)
	sub := seedSubmission(t, db)

	if _, err := NewCommentService(db).Add(sub.ID, &CommentInput{
		AuthorType: models.AuthorTypeAdmin,
		Message:    "internal note",
		IsInternal: true,
	}); err != nil {
		t.Fatalf("Add comment returned error: %v", err)
	}

	rec, err := NewEmailLogService(db).RecordAttempt(&sub.ID, testMessage(sub.ContactEmail), models.EmailTypeSubmissionConfirmation)
	if err != nil {
		t.Fatalf("RecordAttempt returned error: %v", err)
	}

	if err := svc.Delete(sub.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	if _, err := svc.Get(sub.ID); !IsNotFound(err) {
		t.Fatalf("deleted submission should be gone, got %v", err)
	}

	var commentCount int64
	if err := db.Model(&models.SubmissionComment{}).Where("submission_id = ?", sub.ID).Count(&commentCount).Error; err != nil {
		t.Fatalf("count comments: %v", err)
	}
	if commentCount != 0 {
		t.Fatalf("comments should be deleted with the submission, found %d", commentCount)
	}

	// The audit row survives, detached.
	kept, err := NewEmailLogService(db).Get(rec.ID)
	if err != nil {
		t.Fatalf("email record should survive submission delete: %v", err)
	}
	if kept.SubmissionID != nil {
		t.Fatalf("email record should be detached, still linked to %q", *kept.SubmissionID)
	}
}

func TestSanitizeStripsControlCharacters(t *testing.T) {
	db := newTestDB(t)

	sub, err := NewSubmissionService(db).Create(&SubmissionInput{
		Title:        "  Orbit\x00  ",
		ContactName:  "Asha Verma",
		ContactEmail: "asha@example.com",
		ContactPhone: "9876543210",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if strings.ContainsRune(sub.Title, 0) || sub.Title != "Orbit" {
		t.Fatalf("title should be sanitized, got %q", sub.Title)
	}
}
