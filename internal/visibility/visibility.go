// Package visibility scopes checklist records to what a session may see:
// admins see everything, users see only what they authored.
package visibility

import "github.com/dmitrijs2005/fleetcheck/internal/models"

// Viewer is the identity a visibility decision is made for.
// *session.Session implements it.
type Viewer interface {
	IsAdmin() bool
	SubjectID() string
}

// CanSee reports whether v may see the record. A nil viewer, or a
// non-admin without a subject, sees nothing.
func CanSee(c models.Checklist, v Viewer) bool {
	if v == nil {
		return false
	}
	if v.IsAdmin() {
		return true
	}
	sub := v.SubjectID()
	return sub != "" && c.UserID == sub
}

// VisibleRecords returns the records v may see. For admins it returns all
// unchanged; otherwise a new slice holding the matching records in their
// original order.
func VisibleRecords(all []models.Checklist, v Viewer) []models.Checklist {
	if v != nil && v.IsAdmin() {
		return all
	}
	out := make([]models.Checklist, 0)
	for _, c := range all {
		if CanSee(c, v) {
			out = append(out, c)
		}
	}
	return out
}
