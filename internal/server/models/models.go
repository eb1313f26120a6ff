// Package models defines the server-side domain records.
package models

import "time"

type Role string

const (
	RoleFreeUser Role = "free_user"
	RoleProUser  Role = "pro_user"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleFreeUser, RoleProUser, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID             int64
	Name           string
	Email          string
	Username       string
	HashedPassword string
	Role           Role
	UploadCount    int
	CreatedAt      time.Time
}

// Detection is one recognized object in an uploaded image.
type Detection struct {
	Class      string    `json:"class"`
	Confidence float64   `json:"confidence"`
	BBox       []float64 `json:"bbox"`
}

type Image struct {
	ID              int64
	UserID          int64
	Filename        string
	OriginalName    string
	StorageKey      string
	ContentType     string
	Processed       bool
	DetectedCount   int
	DetectedObjects []Detection
	CreatedAt       time.Time
}
