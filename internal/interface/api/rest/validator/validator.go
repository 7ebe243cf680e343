package validator

import (
	"errors"
	"regexp"
	"strconv"
	"time"

	"user-accounts-api/internal/domain/user"
	"user-accounts-api/internal/interface/api/rest/dto/auth"
	userDTO "user-accounts-api/internal/interface/api/rest/dto/user"
)

const birthdayLayout = "2006-01-02"

// The character rules come straight from the API contract: logins and
// passwords are latin letters and digits only, names are latin or cyrillic
// letters only.
var (
	loginRe = regexp.MustCompile(`^[0-9A-Za-z]+$`)
	nameRe  = regexp.MustCompile(`^[A-Za-zА-Яа-я]+$`)
)

func validLogin(s string) bool    { return loginRe.MatchString(s) }
func validPassword(s string) bool { return loginRe.MatchString(s) }
func validName(s string) bool     { return nameRe.MatchString(s) }
func validGender(g int) bool {
	return g == user.GenderFemale || g == user.GenderMale || g == user.GenderUnknown
}

func ParseBirthday(s string) (time.Time, error) {
	d, err := time.Parse(birthdayLayout, s)
	if err != nil {
		return time.Time{}, errors.New("birthday must be YYYY-MM-DD")
	}
	return d.UTC(), nil
}

func ValidateLogin(r auth.LoginRequest) map[string]string {
	errs := make(map[string]string)

	if r.Login == "" {
		errs["login"] = "login is required"
	} else if !validLogin(r.Login) {
		errs["login"] = "only latin letters and digits are allowed"
	}

	if r.Password == "" {
		errs["password"] = "password is required"
	} else if !validPassword(r.Password) {
		errs["password"] = "only latin letters and digits are allowed"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func ValidateCreate(r userDTO.CreateRequest) map[string]string {
	errs := make(map[string]string)

	if r.Login == "" {
		errs["login"] = "login is required"
	} else if !validLogin(r.Login) {
		errs["login"] = "only latin letters and digits are allowed"
	}

	if r.Password == "" {
		errs["password"] = "password is required"
	} else if !validPassword(r.Password) {
		errs["password"] = "only latin letters and digits are allowed"
	}

	if r.Name == "" {
		errs["name"] = "name is required"
	} else if !validName(r.Name) {
		errs["name"] = "only latin and cyrillic letters are allowed"
	}

	if !validGender(r.Gender) {
		errs["gender"] = "gender must be 0 (female), 1 (male) or 2 (unknown)"
	}

	if r.Birthday != nil {
		if _, err := ParseBirthday(*r.Birthday); err != nil {
			errs["birthday"] = err.Error()
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateChangeProfile also rejects a request that changes nothing.
func ValidateChangeProfile(r userDTO.ChangeProfileRequest) map[string]string {
	errs := make(map[string]string)

	if r.Name == nil && r.Gender == nil && r.Birthday == nil {
		errs["request"] = "at least one of name, gender, birthday is required"
		return errs
	}

	if r.Name != nil && !validName(*r.Name) {
		errs["name"] = "only latin and cyrillic letters are allowed"
	}

	if r.Gender != nil && !validGender(*r.Gender) {
		errs["gender"] = "gender must be 0 (female), 1 (male) or 2 (unknown)"
	}

	if r.Birthday != nil {
		if _, err := ParseBirthday(*r.Birthday); err != nil {
			errs["birthday"] = err.Error()
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func ValidatePassword(password string) map[string]string {
	if password == "" {
		return map[string]string{"password": "password is required"}
	}
	if !validPassword(password) {
		return map[string]string{"password": "only latin letters and digits are allowed"}
	}
	return nil
}

func ValidateNewLogin(login string) map[string]string {
	if login == "" {
		return map[string]string{"login": "login is required"}
	}
	if !validLogin(login) {
		return map[string]string{"login": "only latin letters and digits are allowed"}
	}
	return nil
}

// IsLogin validates a path parameter.
func IsLogin(s string) bool { return validLogin(s) }

func ValidateAge(s string) (int, error) {
	age, err := strconv.Atoi(s)
	if err != nil || age < 0 {
		return 0, errors.New("age must be a non-negative integer")
	}
	return age, nil
}
