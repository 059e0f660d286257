package utils

import (
	"strings"

	"omi-stitch-api/models"
)

var statusSynonyms = map[string][]string{
	models.StatusPending:  {"pending", "new", "received", "reopened"},
	models.StatusReviewed: {"reviewed", "in_review", "under_review"},
	models.StatusApproved: {"approved", "greenlit"},
	models.StatusRejected: {"rejected", "declined", "passed"},
}

var statusAliasToCanonical = buildStatusAliasMap()

func buildStatusAliasMap() map[string]string {
	aliasMap := make(map[string]string)
	for canonical, synonyms := range statusSynonyms {
		aliasMap[canonical] = canonical
		for _, alias := range synonyms {
			aliasMap[strings.ToLower(strings.TrimSpace(alias))] = canonical
		}
	}
	return aliasMap
}

// NormalizeStatus maps free-form status input onto the canonical closed set.
// The second return is false when the input matches nothing.
func NormalizeStatus(status string) (string, bool) {
	canonical, ok := statusAliasToCanonical[strings.ToLower(strings.TrimSpace(status))]
	return canonical, ok
}

// IsValidStatus reports whether the input resolves to a canonical status.
func IsValidStatus(status string) bool {
	_, ok := NormalizeStatus(status)
	return ok
}

// KnownStatuses returns the canonical statuses in lifecycle order.
func KnownStatuses() []string {
	return []string{models.StatusPending, models.StatusReviewed, models.StatusApproved, models.StatusRejected}
}

// CanTransition reports whether a submission may move between two canonical
// statuses. The only blocked edge: a rejected submission must be explicitly
// re-opened (moved back to pending) before any other change.
func CanTransition(from, to string) bool {
	if from == models.StatusRejected {
		return to == models.StatusPending
	}
	return true
}

// StatusLine returns the submitter-facing description of a status, used on
// the tracking page and in status update emails.
func StatusLine(status string) string {
	switch status {
	case models.StatusPending:
		return "Your project has been received and is waiting for review."
	case models.StatusReviewed:
		return "Our team is currently reviewing your project."
	case models.StatusApproved:
		return "Congratulations! Your project has been approved and our team will be in touch."
	case models.StatusRejected:
		return "After careful consideration, we will not be moving forward with your project at this time."
	default:
		return "Your project is being processed."
	}
}
