package handlers

import (
	"strings"
	"time"

	"github.com/anjiri1684/tutor_orm/logger"
	"github.com/anjiri1684/tutor_orm/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Auth holds the single administrator account of a deployment.
type Auth struct {
	Secret       string
	TTL          time.Duration
	Email        string
	PasswordHash []byte
	OrgID        uuid.UUID
}

// NewAuth accepts the admin password either plain or as a bcrypt hash.
func NewAuth(secret string, ttl time.Duration, email, password string, org uuid.UUID) (*Auth, error) {
	hash := []byte(password)
	if _, err := bcrypt.Cost(hash); err != nil {
		hash, err = bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
	}
	return &Auth{Secret: secret, TTL: ttl, Email: strings.ToLower(email), PasswordHash: hash, OrgID: org}, nil
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	a := h.auth
	if a == nil || a.Email == "" || strings.ToLower(req.Email) != a.Email ||
		bcrypt.CompareHashAndPassword(a.PasswordHash, []byte(req.Password)) != nil {
		logger.Warn().Str("email", req.Email).Msg("login rejected")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
	}

	token, err := middleware.IssueToken(a.Secret, a.Email, a.OrgID, middleware.RoleAdmin, a.TTL)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create token"})
	}
	return c.JSON(fiber.Map{"token": token, "orgId": a.OrgID, "expiresIn": int64(a.TTL.Seconds())})
}
