// internal/models/user.go
package models

// User is the active session's user as seen by the orchestration layer.
// Authentication itself happens upstream; we only carry the identity and
// the bearer token needed to call authenticated collaborators.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Token string `json:"-"`
}
