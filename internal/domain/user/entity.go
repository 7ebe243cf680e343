package user

import (
	"time"

	"github.com/google/uuid"
)

// Gender codes as stored: 0 - female, 1 - male, 2 - unknown.
const (
	GenderFemale  = 0
	GenderMale    = 1
	GenderUnknown = 2
)

type (
	GUID = uuid.UUID
	User struct {
		GUID     GUID
		Login    string
		Password string
		Name     string
		Gender   int
		Birthday *time.Time
		Admin    bool

		CreatedOn time.Time
		CreatedBy *string

		ModifiedOn *time.Time
		ModifiedBy *string

		RevokedOn *time.Time
		RevokedBy *string
	}
	Users []*User
)

// Active reports whether the account has not been soft-deleted.
func (u *User) Active() bool { return u.RevokedOn == nil }
