package services

import (
	"testing"
	"time"

	"omi-stitch-api/models"
)

func TestAddCommentValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewCommentService(db)
	sub := seedSubmission(t, db)

	if _, err := svc.Add(sub.ID, &CommentInput{AuthorType: "robot", Message: "hi"}); !IsValidation(err) {
		t.Fatalf("unknown author type should be a validation error, got %v", err)
	}
	if _, err := svc.Add(sub.ID, &CommentInput{AuthorType: models.AuthorTypeUser, Message: "   "}); !IsValidation(err) {
		t.Fatalf("blank message should be a validation error, got %v", err)
	}
	if _, err := svc.Add(sub.ID, &CommentInput{
		AuthorType:  models.AuthorTypeUser,
		AuthorEmail: "not-an-email",
		Message:     "hi",
	}); !IsValidation(err) {
		t.Fatalf("bad author email should be a validation error, got %v", err)
	}
	if _, err := svc.Add("123e4567-e89b-12d3-a456-426614174000", &CommentInput{
		AuthorType: models.AuthorTypeUser,
		Message:    "hi",
	}); !IsNotFound(err) {
		t.Fatalf("unknown submission should be not found, got %v", err)
	}

	// Author type is case-insensitive on the way in.
	comment, err := svc.Add(sub.ID, &CommentInput{AuthorType: "Admin", Message: "hello"})
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if comment.AuthorType != models.AuthorTypeAdmin {
		t.Fatalf("author type = %q, want admin", comment.AuthorType)
	}
}

func TestInternalCommentsHiddenFromNonAdminViewers(t *testing.T) {
	db := newTestDB(t)
	svc := NewCommentService(db)
	sub := seedSubmission(t, db)

	if _, err := svc.Add(sub.ID, &CommentInput{
		AuthorType: models.AuthorTypeAdmin,
		Message:    "public reply",
	}); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if _, err := svc.Add(sub.ID, &CommentInput{
		AuthorType: models.AuthorTypeAdmin,
		Message:    "internal note about budget",
		IsInternal: true,
	}); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	// Internal stays internal even when a user authored it.
	if _, err := svc.Add(sub.ID, &CommentInput{
		AuthorType: models.AuthorTypeUser,
		Message:    "user note flagged internal",
		IsInternal: true,
	}); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	adminView, err := svc.List(sub.ID, models.AuthorTypeAdmin)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(adminView) != 3 {
		t.Fatalf("admin should see all comments, got %d", len(adminView))
	}

	for _, viewer := range []string{models.AuthorTypeUser, "", "guest"} {
		visible, err := svc.List(sub.ID, viewer)
		if err != nil {
			t.Fatalf("List(%q) returned error: %v", viewer, err)
		}
		if len(visible) != 1 {
			t.Fatalf("viewer %q should see only public comments, got %d", viewer, len(visible))
		}
		if visible[0].IsInternal {
			t.Fatalf("viewer %q received an internal comment", viewer)
		}
	}
}

func TestListCommentsOldestFirst(t *testing.T) {
	db := newTestDB(t)
	sub := seedSubmission(t, db)

	// Insert out of order with explicit timestamps.
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	rows := []models.SubmissionComment{
		{SubmissionID: sub.ID, AuthorType: models.AuthorTypeAdmin, Message: "second", CreatedAt: base.Add(time.Hour)},
		{SubmissionID: sub.ID, AuthorType: models.AuthorTypeUser, Message: "first", CreatedAt: base},
		{SubmissionID: sub.ID, AuthorType: models.AuthorTypeAdmin, Message: "third", CreatedAt: base.Add(2 * time.Hour)},
	}
	for i := range rows {
		if err := db.Create(&rows[i]).Error; err != nil {
			t.Fatalf("insert comment: %v", err)
		}
	}

	got, err := NewCommentService(db).List(sub.ID, models.AuthorTypeAdmin)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	want := []string{"first", "second", "third"}
	if len(got) != len(want) {
		t.Fatalf("expected %d comments, got %d", len(want), len(got))
	}
	for i, message := range want {
		if got[i].Message != message {
			t.Fatalf("position %d = %q, want %q", i, got[i].Message, message)
		}
	}
}

func TestMarkReadIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewCommentService(db)
	sub := seedSubmission(t, db)

	comment, err := svc.Add(sub.ID, &CommentInput{
		AuthorType: models.AuthorTypeUser,
		Message:    "any update?",
	})
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if comment.IsRead || comment.ReadAt != nil {
		t.Fatal("new comments start unread")
	}

	first, err := svc.MarkRead(comment.ID)
	if err != nil {
		t.Fatalf("MarkRead returned error: %v", err)
	}
	if !first.IsRead || first.ReadAt == nil {
		t.Fatal("comment should be read with a timestamp after MarkRead")
	}

	time.Sleep(10 * time.Millisecond)

	second, err := svc.MarkRead(comment.ID)
	if err != nil {
		t.Fatalf("repeat MarkRead returned error: %v", err)
	}
	if !second.ReadAt.Equal(*first.ReadAt) {
		t.Fatalf("repeat MarkRead moved read_at from %v to %v", first.ReadAt, second.ReadAt)
	}

	if _, err := svc.MarkRead("123e4567-e89b-12d3-a456-426614174000"); !IsNotFound(err) {
		t.Fatalf("unknown comment should be not found, got %v", err)
	}
}
