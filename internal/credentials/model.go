package credentials

import "time"

// Credential is the stored login secret of a single user.
type Credential struct {
	Username     string
	PasswordHash string
	UpdatedAt    time.Time
}
