package user

import (
	"time"

	"github.com/google/uuid"
)

type (
	User struct {
		GUID       uuid.UUID  `json:"guid"`
		Login      string     `json:"login"`
		Name       string     `json:"name"`
		Gender     int        `json:"gender"`
		Birthday   *time.Time `json:"birthday"`
		Admin      bool       `json:"admin"`
		CreatedOn  time.Time  `json:"created_on"`
		CreatedBy  *string    `json:"created_by"`
		ModifiedOn *time.Time `json:"modified_on"`
		ModifiedBy *string    `json:"modified_by"`
		RevokedOn  *time.Time `json:"revoked_on"`
		RevokedBy  *string    `json:"revoked_by"`
	}
	Users        []User
	ResponseData struct {
		Data Users `json:"data"`
	}

	// Profile is the admin read-by-login view: name, gender, birthday,
	// whether the account is active, and who created it.
	Profile struct {
		Name      string     `json:"name"`
		Gender    int        `json:"gender"`
		Birthday  *time.Time `json:"birthday"`
		Active    bool       `json:"active"`
		CreatedBy *string    `json:"created_by"`
	}
)
