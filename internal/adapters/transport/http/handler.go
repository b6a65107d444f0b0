package http

import (
	"crypto/sha256"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lumenchat/auth-service/internal/adapters/transport/http/dto"
	"github.com/lumenchat/auth-service/internal/adapters/transport/http/middleware"
	appsvc "github.com/lumenchat/auth-service/internal/app/auth/service"
	customErrors "github.com/lumenchat/auth-service/internal/domain/auth/errors"
)

// Messages of the uniform envelope. Domain errors never reach the client as
// raw text; they are mapped here and nowhere else.
const (
	msgFieldsRequired     = "All fields are required!"
	msgAlreadyExists      = "User already exists! Please login."
	msgInvalidCredentials = "Invalid credentials!"
	msgAccountNotFound    = "Account not found! Please sign up."
	msgNotAuthorized      = "Not authorized!"
	msgSignupOK           = "Sign Up Successful!"
	msgLoginOK            = "Logged in!"
	msgInternal           = "Something went wrong! Please try again."
)

type Handler struct {
	svc appsvc.Service
	log *zap.Logger
}

func NewHandler(svc appsvc.Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) Signup(c *gin.Context) {
	var body dto.SignupRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.fail(c, customErrors.NewInvalidArgument(err.Error()))
		return
	}
	h.log.Info("/signup", zap.String("user", hashEmail(body.Email)))

	sess, user, err := h.svc.Signup(c.Request.Context(), body)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Envelope{
		Success: true,
		Message: msgSignupOK,
		Token:   sess.Token,
		User:    dto.NewUserPayload(user),
	})
}

func (h *Handler) Login(c *gin.Context) {
	var body dto.LoginRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.fail(c, customErrors.NewInvalidArgument(err.Error()))
		return
	}
	h.log.Info("/login", zap.String("user", hashEmail(body.Email)))

	sess, user, err := h.svc.Login(c.Request.Context(), body)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Envelope{
		Success: true,
		Message: msgLoginOK,
		Token:   sess.Token,
		User:    dto.NewUserPayload(user),
	})
}

// Check reports the identity the session guard resolved for this request.
func (h *Handler) Check(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		h.fail(c, customErrors.ErrInvalidToken)
		return
	}
	c.JSON(http.StatusOK, dto.Envelope{Success: true, User: dto.NewUserPayload(user)})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		h.fail(c, customErrors.ErrInvalidToken)
		return
	}

	var body dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.fail(c, customErrors.NewInvalidArgument(err.Error()))
		return
	}

	updated, err := h.svc.UpdateProfile(c.Request.Context(), user.ID, body)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Envelope{Success: true, User: dto.NewUserPayload(updated)})
}

func (h *Handler) fail(c *gin.Context, err error) {
	var msg string
	switch {
	case customErrors.IsInvalidArgument(err):
		msg = msgFieldsRequired
	case customErrors.IsAlreadyExists(err):
		msg = msgAlreadyExists
	case customErrors.IsInvalidCredentials(err):
		msg = msgInvalidCredentials
	case customErrors.IsNotFound(err):
		msg = msgAccountNotFound
	case customErrors.IsInvalidToken(err):
		msg = msgNotAuthorized
	default:
		h.log.Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		msg = msgInternal
	}

	c.JSON(http.StatusOK, dto.Envelope{Success: false, Message: msg})
}

// hashEmail lets signup/login attempts be correlated in logs without storing
// the address itself.
func hashEmail(email string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(email)))
}
