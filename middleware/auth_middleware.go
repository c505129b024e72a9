package middleware

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// OrgLocal is the fiber local holding the caller's organization id.
const OrgLocal = "orgID"

const RoleAdmin = "admin"

var errNoOrg = errors.New("token has no organization")

// Protected verifies the bearer token and scopes the request to the
// organization named by its org_id claim.
func Protected(secret string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:     []byte(secret),
		ErrorHandler:   jwtError,
		SuccessHandler: orgScope,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if err.Error() == "Missing or malformed JWT" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"status": "error", "message": "Missing or malformed JWT", "data": nil})
	}
	return c.Status(fiber.StatusUnauthorized).
		JSON(fiber.Map{"status": "error", "message": "Invalid or expired JWT", "data": nil})
}

func orgScope(c *fiber.Ctx) error {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return jwtError(c, errNoOrg)
	}
	claims, _ := token.Claims.(jwt.MapClaims)
	org, err := OrgFromClaims(claims)
	if err != nil {
		return c.Status(fiber.StatusForbidden).
			JSON(fiber.Map{"status": "error", "message": err.Error(), "data": nil})
	}
	c.Locals(OrgLocal, org)
	return c.Next()
}

// AdminRequired must run after Protected.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if ok {
			if claims, ok := token.Claims.(jwt.MapClaims); ok && claims["role"] == RoleAdmin {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Forbidden: Admin access required",
		})
	}
}

// OrgID returns the organization set by Protected.
func OrgID(c *fiber.Ctx) (uuid.UUID, bool) {
	org, ok := c.Locals(OrgLocal).(uuid.UUID)
	return org, ok
}

func OrgFromClaims(claims jwt.MapClaims) (uuid.UUID, error) {
	raw, _ := claims["org_id"].(string)
	if raw == "" {
		return uuid.Nil, errNoOrg
	}
	org, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid org_id claim: %w", err)
	}
	return org, nil
}

// IssueToken signs an HS256 token for subject within org.
func IssueToken(secret, subject string, org uuid.UUID, role string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":    subject,
		"org_id": org.String(),
		"role":   role,
		"exp":    time.Now().Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken validates a raw token outside the fiber middleware chain, as
// needed for websocket upgrades that carry the token in the query string.
func ParseToken(secret, raw string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
