package utils

import (
	"testing"

	"omi-stitch-api/models"
)

func TestNormalizeStatus(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"pending", models.StatusPending},
		{"new", models.StatusPending},
		{"reopened", models.StatusPending},
		{"reviewed", models.StatusReviewed},
		{"in_review", models.StatusReviewed},
		{"Under_Review", models.StatusReviewed},
		{"approved", models.StatusApproved},
		{"greenlit", models.StatusApproved},
		{"rejected", models.StatusRejected},
		{"Declined", models.StatusRejected},
		{"passed", models.StatusRejected},
		{"  APPROVED  ", models.StatusApproved},
	}
	for _, tc := range cases {
		got, ok := NormalizeStatus(tc.in)
		if !ok {
			t.Errorf("NormalizeStatus(%q) not recognized", tc.in)
			continue
		}
		if got != tc.want {
			t.Errorf("NormalizeStatus(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}

	for _, in := range []string{"", "vaporized", "pend ing"} {
		if _, ok := NormalizeStatus(in); ok {
			t.Errorf("NormalizeStatus(%q) should not be recognized", in)
		}
	}
}

func TestCanTransition(t *testing.T) {
	// From any non-rejected status everything is allowed, including
	// no-op re-assignments.
	for _, from := range []string{models.StatusPending, models.StatusReviewed, models.StatusApproved} {
		for _, to := range KnownStatuses() {
			if !CanTransition(from, to) {
				t.Errorf("CanTransition(%q, %q) = false, want true", from, to)
			}
		}
	}

	// A rejected submission only re-opens.
	if !CanTransition(models.StatusRejected, models.StatusPending) {
		t.Error("rejected -> pending should be allowed")
	}
	for _, to := range []string{models.StatusReviewed, models.StatusApproved, models.StatusRejected} {
		if CanTransition(models.StatusRejected, to) {
			t.Errorf("CanTransition(rejected, %q) = true, want false", to)
		}
	}
}

func TestStatusLineCoversAllStatuses(t *testing.T) {
	for _, status := range KnownStatuses() {
		if StatusLine(status) == "" {
			t.Errorf("StatusLine(%q) is empty", status)
		}
	}
	if StatusLine("anything-else") == "" {
		t.Error("StatusLine should fall back to a generic line")
	}
}
