package api

import (
	"net/http"

	reqdto "gin-jobqueue/internal/handler/dto/request"
	resdto "gin-jobqueue/internal/handler/dto/response"
	"gin-jobqueue/internal/handler/httperr"
	"gin-jobqueue/internal/handler/middleware"
	"gin-jobqueue/internal/pkg/config"
	"gin-jobqueue/internal/pkg/cookie"
	"gin-jobqueue/internal/pkg/jwt"
	"gin-jobqueue/internal/usecase"
	"gin-jobqueue/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	cmds       commands.AuthCommands
	jwtService *jwt.Service
	validator  usecase.TokenValidator
	cfg        config.Config
}

func NewAuthHandler(cmds commands.AuthCommands, jwtService *jwt.Service, validator usecase.TokenValidator, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		cmds:       cmds,
		jwtService: jwtService,
		validator:  validator,
		cfg:        cfg,
	}
}

// @Summary Register user
// @Description Validates the request and queues the user insert
// @Tags auth
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Deduplicates retried requests"
// @Param request body reqdto.RegisterRequest true "Register request"
// @Success 202 {object} resdto.AcceptedResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req reqdto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	j, err := h.cmds.Register(c.Request.Context(), req.ToInput(idempotencyKey(c)))
	if err != nil {
		httperr.Abort(c, err, "Failed to queue user registration")
		return
	}

	setJobID(c, j.ID())
	c.JSON(http.StatusAccepted, resdto.Accepted("User registration queued successfully", j))
}

// @Summary User login
// @Description Login with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.cmds.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httperr.Abort(c, err, "Login failed")
		return
	}

	cookie.SetAccessToken(c, h.cfg.Cookie, result.AccessToken, h.jwtService.TokenDuration())
	c.JSON(http.StatusOK, resdto.FromLoginResult(result))
}

// @Summary User logout
// @Description Clears the access token cookie and its cached verification
// @Tags auth
// @Success 204 "No Content"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if token := middleware.ExtractToken(c); token != "" {
		h.validator.Forget(token)
	}
	cookie.ClearAccessToken(c, h.cfg.Cookie)
	c.Status(http.StatusNoContent)
}
