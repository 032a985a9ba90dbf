package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/registrar-queue/internal/audit"
	"github.com/BruksfildServices01/registrar-queue/internal/auth"
	"github.com/BruksfildServices01/registrar-queue/internal/domain/user"
	"github.com/BruksfildServices01/registrar-queue/internal/dto"
	"github.com/BruksfildServices01/registrar-queue/internal/httperr"
	"github.com/BruksfildServices01/registrar-queue/internal/middleware"
	"github.com/BruksfildServices01/registrar-queue/internal/models"
	"github.com/BruksfildServices01/registrar-queue/internal/validators"
)

type AuthHandler struct {
	users       user.Repository
	issuer      *auth.Issuer
	audit       *audit.Dispatcher
	checkDomain validators.EmailDomainCheck
	log         zerolog.Logger
}

func NewAuthHandler(
	users user.Repository,
	issuer *auth.Issuer,
	audit *audit.Dispatcher,
	checkDomain validators.EmailDomainCheck,
	log zerolog.Logger,
) *AuthHandler {
	if checkDomain == nil {
		checkDomain = validators.AnyEmailDomain
	}
	return &AuthHandler{
		users:       users,
		issuer:      issuer,
		audit:       audit,
		checkDomain: checkDomain,
		log:         log,
	}
}

// --------- Requests ---------

// SignupRequest has no role: every self-registered account is a client.
type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Name, a valid email and a password of at least 6 characters are required")
		return
	}

	email := validators.NormalizeEmail(req.Email)
	if !h.checkDomain(email) {
		httperr.BadRequest(c, "invalid_email_domain", "The email domain does not appear to be valid")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	u := &models.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleClient,
	}
	if err := h.users.CreateUser(c.Request.Context(), u); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	token, err := h.issuer.Issue(u)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   u.ID,
		Action:   "user_signup",
		Entity:   "user",
		EntityID: u.ID,
	})

	c.JSON(http.StatusCreated, dto.AuthResponse{
		Token: token,
		User:  dto.NewUserDTO(u),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Email and password are required")
		return
	}

	u, err := h.users.FindUserByEmail(c.Request.Context(), validators.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "Invalid credentials")
			return
		}
		httperr.Respond(c, h.log, err)
		return
	}

	if !auth.CheckPassword(u.PasswordHash, req.Password) {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid credentials")
		return
	}

	token, err := h.issuer.Issue(u)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		Token: token,
		User:  dto.NewUserDTO(u),
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	id := middleware.IdentityFrom(c)

	u, err := h.users.GetUser(c.Request.Context(), id.UserID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": dto.NewUserDTO(u)})
}
