// Package handlers exposes the client over HTTP.
package handlers

import (
	"errors"

	"github.com/anjiri1684/tutor_orm/client"
	"github.com/anjiri1684/tutor_orm/logger"
	"github.com/anjiri1684/tutor_orm/middleware"
	"github.com/anjiri1684/tutor_orm/models"
	"github.com/anjiri1684/tutor_orm/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type Handler struct {
	db       *client.Client
	auth     *Auth
	renderer services.Renderer
	uploader services.Uploader
}

func New(db *client.Client, auth *Auth) *Handler {
	return &Handler{db: db, auth: auth}
}

// WithDocuments enables invoice document rendering.
func (h *Handler) WithDocuments(renderer services.Renderer, uploader services.Uploader) *Handler {
	h.renderer = renderer
	h.uploader = uploader
	return h
}

// scoped returns the client restricted to the caller's organization.
func (h *Handler) scoped(c *fiber.Ctx) (*client.Client, error) {
	org, ok := middleware.OrgID(c)
	if !ok {
		return nil, fiber.ErrUnauthorized
	}
	return h.db.ForOrg(org), nil
}

// decode reads a JSON body into v. An empty body leaves v untouched.
func decode(c *fiber.Ctx, v interface{}) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(v); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Cannot parse JSON")
	}
	return nil
}

// fresh returns an empty row with the model's defaults applied, ready to be
// decoded into.
func fresh[M any]() *M {
	m := new(M)
	if d, ok := any(m).(models.Defaulter); ok {
		d.ApplyDefaults()
	}
	return m
}

// fail writes err with the status its class maps to.
func fail(c *fiber.Ctx, err error) error {
	var (
		fe      *fiber.Error
		known   *client.KnownRequestError
		invalid validator.ValidationErrors
	)
	switch {
	case errors.As(err, &fe):
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	case client.IsValidation(err), errors.As(err, &invalid):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &known):
		status := fiber.StatusBadRequest
		switch known.Code {
		case client.CodeRecordNotFound:
			status = fiber.StatusNotFound
		case client.CodeUniqueViolation, client.CodeForeignKey:
			status = fiber.StatusConflict
		}
		return c.Status(status).JSON(fiber.Map{"error": known.Error(), "code": known.Code, "meta": known.Meta})
	}
	logger.Error().Err(err).Str("path", c.Path()).Str("method", c.Method()).Msg("request failed")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
}

// Health reports whether the database answers.
func (h *Handler) Health(c *fiber.Ctx) error {
	if err := h.db.Ping(c.UserContext()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable", "error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
