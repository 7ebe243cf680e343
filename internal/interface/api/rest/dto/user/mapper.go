package user

import (
	"user-accounts-api/internal/domain/user"
)

// ToResponseUser never exposes the stored password.
func ToResponseUser(uDomain user.User) User {
	var u = User{
		GUID:       uDomain.GUID,
		Login:      uDomain.Login,
		Name:       uDomain.Name,
		Gender:     uDomain.Gender,
		Birthday:   uDomain.Birthday,
		Admin:      uDomain.Admin,
		CreatedOn:  uDomain.CreatedOn,
		CreatedBy:  uDomain.CreatedBy,
		ModifiedOn: uDomain.ModifiedOn,
		ModifiedBy: uDomain.ModifiedBy,
		RevokedOn:  uDomain.RevokedOn,
		RevokedBy:  uDomain.RevokedBy,
	}

	return u
}

func ToResponseUsers(usDomain user.Users) Users {
	us := make(Users, len(usDomain))
	for idx, u := range usDomain {
		us[idx] = ToResponseUser(*u)
	}

	return us
}

func ToResponseProfile(uDomain user.User) Profile {
	return Profile{
		Name:      uDomain.Name,
		Gender:    uDomain.Gender,
		Birthday:  uDomain.Birthday,
		Active:    uDomain.Active(),
		CreatedBy: uDomain.CreatedBy,
	}
}
