package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-accounts-api/internal/application/ports"
	"user-accounts-api/internal/application/services"
	"user-accounts-api/internal/interface/api/rest/dto/auth"
	"user-accounts-api/internal/interface/api/rest/validator"
)

type AuthController struct {
	logger      *zap.Logger
	authService ports.Auth
}

func NewAuthController(
	r *gin.Engine,
	logger *zap.Logger,
	authService ports.Auth,
) *AuthController {
	ac := &AuthController{
		logger:      logger,
		authService: authService,
	}

	r.POST(RouteLogin, ac.LoginHandler)

	return ac
}

func (ac *AuthController) LoginHandler(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "invalid json"},
		)
		return
	}

	if errs := validator.ValidateLogin(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	data, err := ac.authService.CreateToken(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(
				http.StatusUnauthorized,
				gin.H{"error": "invalid login or password"},
			)
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to authenticate"},
		)
		ac.logger.Error("CreateToken() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"login":        data.Login,
		"is_admin":     data.IsAdmin,
		"access_token": data.Token,
		"token_type":   "Bearer",
	})
}
