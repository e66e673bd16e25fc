package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/propnest/propnest/internal/credentials"
	"github.com/propnest/propnest/internal/shared"
)

// Handler exposes the public login and registration endpoints.
type Handler struct {
	creds    *credentials.Service
	tokens   *TokenService
	logger   *slog.Logger
	validate *validator.Validate
}

// NewHandler wires the auth endpoints to the credential and token services.
func NewHandler(creds *credentials.Service, tokens *TokenService, logger *slog.Logger) *Handler {
	return &Handler{
		creds:    creds,
		tokens:   tokens,
		logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

type credentialsRequest struct {
	Username string `json:"username" validate:"required,max=128"`
	Password string `json:"password" validate:"required,max=72"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
	ExpiresIn int64     `json:"expires_in"`
}

// Login validates credentials and returns a bearer token.
func (h *Handler) Login(c *fiber.Ctx) error {
	req, err := h.parse(c)
	if err != nil {
		return err
	}

	ok, err := h.creds.Authenticate(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}
	if !ok {
		h.logger.Info("auth.login rejected", slog.String("username", req.Username))
		return fiber.NewError(http.StatusUnauthorized, "invalid credentials")
	}

	token, exp, err := h.tokens.Issue(req.Username)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(loginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: exp.UTC(),
		ExpiresIn: int64(h.tokens.TTL() / time.Second),
	})
}

// Register stores credentials for a user. Existing users are overwritten.
func (h *Handler) Register(c *fiber.Ctx) error {
	req, err := h.parse(c)
	if err != nil {
		return err
	}

	if err := h.creds.Register(c.UserContext(), req.Username, req.Password); err != nil {
		return err
	}
	h.logger.Info("auth.register completed", slog.String("username", req.Username))
	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "user registered"})
}

func (h *Handler) parse(c *fiber.Ctx) (credentialsRequest, error) {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return req, fiber.NewError(http.StatusBadRequest, "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return req, validationError(err)
	}
	return req, nil
}

func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %s", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", shared.ErrValidation, strings.Join(msgs, ", "))
}
