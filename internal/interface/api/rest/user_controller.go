package rest

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"user-accounts-api/internal/application/ports"
	domain "user-accounts-api/internal/domain/user"
	userDB "user-accounts-api/internal/infrastructure/db/postgres/user"
	"user-accounts-api/internal/interface/api/rest/dto/user"
	"user-accounts-api/internal/interface/api/rest/middleware"
	"user-accounts-api/internal/interface/api/rest/validator"
)

type UserController struct {
	userService ports.UserService
	logger      *zap.Logger
}

func NewUserController(
	r *gin.Engine,
	userService ports.UserService,
	logger *zap.Logger,
) *UserController {
	uc := &UserController{
		userService: userService,
		logger:      logger,
	}

	// self-service: any valid identity
	r.GET(RouteSelf, middleware.Authorize(false), uc.GetSelfHandler)
	r.PUT(RouteSelf, middleware.Authorize(false), uc.UpdateSelfHandler)
	r.PUT(RouteSelfPassword, middleware.Authorize(false), uc.ChangeSelfPasswordHandler)
	r.PUT(RouteSelfLogin, middleware.Authorize(false), uc.ChangeSelfLoginHandler)

	// admin only
	r.POST(RouteUsers, middleware.Authorize(true), uc.CreateUserHandler)
	r.GET(RouteUsers, middleware.Authorize(true), uc.ListUsersHandler)
	r.GET(RouteActiveUsers, middleware.Authorize(true), uc.ListActiveUsersHandler)
	r.GET(RouteUsersOlderThan, middleware.Authorize(true), uc.ListUsersOlderThanHandler)
	r.GET(RouteUser, middleware.Authorize(true), uc.GetUserHandler)
	r.PUT(RouteUser, middleware.Authorize(true), uc.UpdateUserHandler)
	r.PUT(RouteUserPassword, middleware.Authorize(true), uc.ChangeUserPasswordHandler)
	r.PUT(RouteUserLogin, middleware.Authorize(true), uc.ChangeUserLoginHandler)
	r.POST(RouteUserRevoke, middleware.Authorize(true), uc.RevokeUserHandler)
	r.POST(RouteUserRestore, middleware.Authorize(true), uc.RestoreUserHandler)
	r.DELETE(RouteUser, middleware.Authorize(true), uc.DeleteUserHandler)

	return uc
}

// applyProfile copies the present fields of a change request onto the record.
func applyProfile(u *domain.User, req user.ChangeProfileRequest) {
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Gender != nil {
		u.Gender = *req.Gender
	}
	if req.Birthday != nil {
		// validated upstream
		d, _ := validator.ParseBirthday(*req.Birthday)
		u.Birthday = &d
	}
}

func touch(u *domain.User, by string) {
	now := time.Now().UTC()
	u.ModifiedOn = &now
	u.ModifiedBy = &by
}

func (uc *UserController) updateAndRespond(c *gin.Context, u domain.User) {
	uRet, err := uc.userService.UpdateUser(c.Request.Context(), u)
	if err != nil {
		if errors.Is(err, userDB.ErrLoginTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "login already taken"})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to update user"},
		)
		return
	}
	if uRet == nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "user not changed"},
		)
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUser(*uRet))
}

// CreateUserHandler creates an account on behalf of the calling admin.
// Self-registration is deliberately not exposed.
func (uc *UserController) CreateUserHandler(c *gin.Context) {
	admin, _ := middleware.CurrentUser(c)

	var req user.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}
	if errs := validator.ValidateCreate(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	var birthday *time.Time
	if req.Birthday != nil {
		d, _ := validator.ParseBirthday(*req.Birthday)
		birthday = &d
	}

	u := domain.User{
		GUID:      uuid.New(),
		Login:     req.Login,
		Password:  req.Password,
		Name:      req.Name,
		Gender:    req.Gender,
		Birthday:  birthday,
		Admin:     req.Admin,
		CreatedOn: time.Now().UTC(),
		CreatedBy: &admin.Login,
	}

	uRet, err := uc.userService.CreateUser(c.Request.Context(), u)
	if err != nil {
		if errors.Is(err, userDB.ErrLoginTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user not created"})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to create user"},
		)
		return
	}
	if uRet == nil {
		// login already taken
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "user not created"},
		)
		return
	}

	c.JSON(http.StatusCreated, user.ToResponseUser(*uRet))
}

func (uc *UserController) GetSelfHandler(c *gin.Context) {
	self, _ := middleware.CurrentUser(c)

	u, err := uc.userService.FindByGUID(c.Request.Context(), self.GUID)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get user"},
		)
		return
	}
	if u == nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "user not found"},
		)
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUser(*u))
}

func (uc *UserController) UpdateSelfHandler(c *gin.Context) {
	self, _ := middleware.CurrentUser(c)
	if !self.Active() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user not changed"})
		return
	}

	var req user.ChangeProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}
	if errs := validator.ValidateChangeProfile(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	u := *self
	applyProfile(&u, req)
	touch(&u, self.Login)

	uc.updateAndRespond(c, u)
}

func (uc *UserController) UpdateUserHandler(c *gin.Context) {
	admin, _ := middleware.CurrentUser(c)

	login := c.Param("login")
	if !validator.IsLogin(login) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid login"})
		return
	}

	var req user.ChangeProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}
	if errs := validator.ValidateChangeProfile(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	u, err := uc.userService.FindByLogin(c.Request.Context(), login)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to update user"},
		)
		return
	}
	if u == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user not changed"})
		return
	}

	applyProfile(u, req)
	touch(u, admin.Login)

	uc.updateAndRespond(c, *u)
}

func (uc *UserController) ChangeSelfPasswordHandler(c *gin.Context) {
	self, _ := middleware.CurrentUser(c)
	if !self.Active() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user not changed"})
		return
	}

	var req user.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}
	if errs := validator.ValidatePassword(req.Password); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	u := *self
	u.Password = req.Password
	touch(&u, self.Login)

	uc.updateAndRespond(c, u)
}

func (uc *UserController) ChangeUserPasswordHandler(c *gin.Context) {
	admin, _ := middleware.CurrentUser(c)

	login := c.Param("login")
	if !validator.IsLogin(login) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid login"})
		return
	}

	var req user.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}
	if errs := validator.ValidatePassword(req.Password); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	u, err := uc.userService.FindByLogin(c.Request.Context(), login)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to update user"},
		)
		return
	}
	if u == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user not changed"})
		return
	}

	u.Password = req.Password
	touch(u, admin.Login)

	uc.updateAndRespond(c, *u)
}

func (uc *UserController) renameAndRespond(c *gin.Context, u domain.User, oldLogin string) {
	uRet, err := uc.userService.RenameLogin(c.Request.Context(), u, oldLogin)
	if err != nil {
		if errors.Is(err, userDB.ErrLoginTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "login already taken"})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to update user"},
		)
		return
	}
	if uRet == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user not changed"})
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUser(*uRet))
}

func (uc *UserController) ChangeSelfLoginHandler(c *gin.Context) {
	self, _ := middleware.CurrentUser(c)
	if !self.Active() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user not changed"})
		return
	}

	var req user.ChangeLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}
	if errs := validator.ValidateNewLogin(req.Login); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	u := *self
	oldLogin := u.Login
	u.Login = req.Login
	touch(&u, req.Login)

	uc.renameAndRespond(c, u, oldLogin)
}

// ChangeUserLoginHandler renames another account. Admin accounts rename
// themselves through the self route; they are not valid targets here.
func (uc *UserController) ChangeUserLoginHandler(c *gin.Context) {
	admin, _ := middleware.CurrentUser(c)

	login := c.Param("login")
	if !validator.IsLogin(login) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid login"})
		return
	}

	var req user.ChangeLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}
	if errs := validator.ValidateNewLogin(req.Login); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	u, err := uc.userService.FindByLogin(c.Request.Context(), login)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to update user"},
		)
		return
	}
	if u == nil || u.Admin {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user not changed"})
		return
	}

	oldLogin := u.Login
	u.Login = req.Login
	touch(u, admin.Login)

	uc.renameAndRespond(c, *u, oldLogin)
}

func (uc *UserController) ListUsersHandler(c *gin.Context) {
	users, err := uc.userService.FindAll(c.Request.Context())
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get users"},
		)
		return
	}

	c.JSON(http.StatusOK, user.ResponseData{
		Data: user.ToResponseUsers(users),
	})
}

func (uc *UserController) ListActiveUsersHandler(c *gin.Context) {
	users, err := uc.userService.FindActive(c.Request.Context())
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get users"},
		)
		return
	}

	c.JSON(http.StatusOK, user.ResponseData{
		Data: user.ToResponseUsers(users),
	})
}

func (uc *UserController) ListUsersOlderThanHandler(c *gin.Context) {
	age, err := validator.ValidateAge(c.Param("age"))
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": err.Error()},
		)
		return
	}

	users, err := uc.userService.FindOlderThan(c.Request.Context(), age)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get users"},
		)
		return
	}

	c.JSON(http.StatusOK, user.ResponseData{
		Data: user.ToResponseUsers(users),
	})
}

func (uc *UserController) GetUserHandler(c *gin.Context) {
	login := c.Param("login")
	if !validator.IsLogin(login) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid login"})
		return
	}

	u, err := uc.userService.FindByLogin(c.Request.Context(), login)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get user"},
		)
		return
	}
	if u == nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "user not found"},
		)
		return
	}

	c.JSON(http.StatusOK, user.ToResponseProfile(*u))
}

func (uc *UserController) RevokeUserHandler(c *gin.Context) {
	admin, _ := middleware.CurrentUser(c)

	login := c.Param("login")
	if !validator.IsLogin(login) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid login"})
		return
	}

	uRet, err := uc.userService.RevokeUser(c.Request.Context(), login, admin.Login)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to delete user"},
		)
		return
	}
	if uRet == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user not deleted"})
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUser(*uRet))
}

func (uc *UserController) RestoreUserHandler(c *gin.Context) {
	admin, _ := middleware.CurrentUser(c)

	login := c.Param("login")
	if !validator.IsLogin(login) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid login"})
		return
	}

	uRet, err := uc.userService.RestoreUser(c.Request.Context(), login, admin.Login)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to restore user"},
		)
		return
	}
	if uRet == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user not restored"})
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUser(*uRet))
}

func (uc *UserController) DeleteUserHandler(c *gin.Context) {
	login := c.Param("login")
	if !validator.IsLogin(login) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid login"})
		return
	}

	ok, err := uc.userService.DeleteUser(c.Request.Context(), login)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to delete user"},
		)
		return
	}
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user not deleted"})
		return
	}

	c.Status(http.StatusNoContent)
}
