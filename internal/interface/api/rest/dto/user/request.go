package user

type (
	CreateRequest struct {
		Login    string  `json:"login"`
		Password string  `json:"password"`
		Name     string  `json:"name"`
		Gender   int     `json:"gender"`
		Birthday *string `json:"birthday"`
		Admin    bool    `json:"admin"`
	}

	// ChangeProfileRequest fields are pointers so "absent" and "empty" stay
	// distinguishable; a request with all three absent is rejected.
	ChangeProfileRequest struct {
		Name     *string `json:"name"`
		Gender   *int    `json:"gender"`
		Birthday *string `json:"birthday"`
	}

	ChangePasswordRequest struct {
		Password string `json:"password"`
	}

	ChangeLoginRequest struct {
		Login string `json:"login"`
	}
)
