package user

import (
	domain "user-accounts-api/internal/domain/user"
)

func fromDBModel(model *User) *domain.User {
	var u = &domain.User{
		GUID:     model.GUID,
		Login:    model.Login,
		Password: model.Password,
		Name:     model.Name,
		Gender:   model.Gender,
		Birthday: model.Birthday,
		Admin:    model.Admin,

		CreatedOn: model.CreatedOn,
		CreatedBy: model.CreatedBy,

		ModifiedOn: model.ModifiedOn,
		ModifiedBy: model.ModifiedBy,

		RevokedOn: model.RevokedOn,
		RevokedBy: model.RevokedBy,
	}

	return u
}

func fromDBModels(models *Users) domain.Users {
	us := make(domain.Users, len(*models))
	for idx, u := range *models {
		us[idx] = fromDBModel(u)
	}

	return us
}
