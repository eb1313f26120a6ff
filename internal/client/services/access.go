package services

import "github.com/datacleaner-ai/datacleaner/internal/client/models"

// CanAccess is the single capability predicate guarding every protected
// view. A nil session always denies (the caller redirects to
// authentication); otherwise the session's role must be a member of the
// allowed set. The result is never cached: the role can change under the
// same session, so callers re-evaluate on every navigation.
func CanAccess(sess *models.Session, allowed ...models.Role) bool {
	if sess == nil || sess.Profile == nil {
		return false
	}
	for _, role := range allowed {
		if sess.Profile.Role == role {
			return true
		}
	}
	return false
}
