// Package models defines the client-side view of the DataCleaner domain:
// roles, the authenticated session, processed artifacts, and the lifecycle
// of a single submission attempt.
package models

// Role is the access-level classification of a user. It drives both route
// gating and the upload quota policy.
type Role string

const (
	RoleGuest    Role = "guest"
	RoleFreeUser Role = "free_user"
	RoleProUser  Role = "pro_user"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleGuest, RoleFreeUser, RoleProUser, RoleAdmin:
		return true
	}
	return false
}

// ProcessMode selects how the remote service anonymizes an uploaded image.
// It is passed through to the server unchanged.
type ProcessMode string

const (
	ModeBlur     ProcessMode = "blur"
	ModePixelate ProcessMode = "pixelate"
	ModeNone     ProcessMode = "none"
)

func (m ProcessMode) Valid() bool {
	switch m {
	case ModeBlur, ModePixelate, ModeNone:
		return true
	}
	return false
}

// Profile is the authenticated viewer's self-description as reported by the
// server. UploadCount is a cache: it is incremented optimistically after a
// successful submission and reconciled on the next full profile fetch.
type Profile struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        Role   `json:"role"`
	UploadCount int    `json:"upload_count"`
}

// Session pairs the credential token with the viewer's profile. It exists
// only between a successful authentication and logout/invalidation.
type Session struct {
	Token   string
	Profile *Profile
}

// Detection describes one object found by the remote processing step.
type Detection struct {
	Class      string    `json:"class"`
	Confidence float64   `json:"confidence"`
	BBox       []float64 `json:"bbox"`
}

// Artifact is the remote record of one submitted file. The server owns it;
// the client only caches the list between refreshes.
type Artifact struct {
	ID              int64       `json:"id"`
	Filename        string      `json:"filename"`
	OriginalName    string      `json:"original_name"`
	CreatedAt       string      `json:"created_at"`
	URL             string      `json:"url"`
	Processed       bool        `json:"processed"`
	DetectedCount   int         `json:"detected_count"`
	DetectedObjects []Detection `json:"detected_objects,omitempty"`
}

// AdminUser is a user record visible under the administrative capability.
type AdminUser struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	Role      Role   `json:"role"`
	CreatedAt string `json:"created_at"`
}

// AttemptStatus is the state of the single tracked submission attempt.
type AttemptStatus int

const (
	StatusIdle AttemptStatus = iota
	StatusSelected
	StatusSubmitting
	StatusSucceeded
	StatusFailed
)

func (s AttemptStatus) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSelected:
		return "selected"
	case StatusSubmitting:
		return "submitting"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// Attempt tracks one file from selection through its terminal outcome.
type Attempt struct {
	File     string
	Mode     ProcessMode
	Status   AttemptStatus
	Artifact *Artifact
	Err      error
}
