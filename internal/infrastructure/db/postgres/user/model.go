package user

import (
	"time"

	"github.com/google/uuid"
)

type (
	User struct {
		GUID     uuid.UUID
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
