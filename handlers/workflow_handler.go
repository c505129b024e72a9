package handlers

import (
	"bytes"
	"strconv"
	"time"

	"github.com/anjiri1684/tutor_orm/client"
	"github.com/anjiri1684/tutor_orm/models"
	"github.com/anjiri1684/tutor_orm/query"
	"github.com/anjiri1684/tutor_orm/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type EnrollRequest struct {
	StudentID uuid.UUID `json:"studentId" validate:"required"`
	CourseID  uuid.UUID `json:"courseId" validate:"required"`
}

type StatusRequest struct {
	Status models.CourseStatus `json:"status" validate:"required"`
	Note   *string             `json:"note"`
}

type IssueInvoiceRequest struct {
	StudentID   uuid.UUID   `json:"studentId" validate:"required"`
	PurchaseIDs []uuid.UUID `json:"purchaseIds" validate:"required,min=1"`
	DueAt       *time.Time  `json:"dueAt"`
}

type PayRequest struct {
	Method models.PaymentMethod `json:"method" validate:"required"`
}

func body(c *fiber.Ctx, v interface{}) error {
	if err := decode(c, v); err != nil {
		return err
	}
	return validate.Struct(v)
}

func pathID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid id")
	}
	return id, nil
}

func (h *Handler) Enroll(c *fiber.Ctx) error {
	db, err := h.scoped(c)
	if err != nil {
		return fail(c, err)
	}
	var req EnrollRequest
	if err := body(c, &req); err != nil {
		return fail(c, err)
	}
	enrolment, err := services.NewEnrollment(db).Enroll(c.UserContext(), req.StudentID, req.CourseID)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(enrolment)
}

func (h *Handler) ChangeStatus(c *fiber.Ctx) error {
	db, err := h.scoped(c)
	if err != nil {
		return fail(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	var req StatusRequest
	if err := body(c, &req); err != nil {
		return fail(c, err)
	}
	enrolment, err := services.NewEnrollment(db).ChangeStatus(c.UserContext(), id, req.Status, req.Note)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(enrolment)
}

func (h *Handler) IssueInvoice(c *fiber.Ctx) error {
	db, err := h.scoped(c)
	if err != nil {
		return fail(c, err)
	}
	var req IssueInvoiceRequest
	if err := body(c, &req); err != nil {
		return fail(c, err)
	}
	invoice, err := services.NewBilling(db).IssueInvoice(c.UserContext(), req.StudentID, req.PurchaseIDs, req.DueAt)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(invoice)
}

func (h *Handler) PayInvoice(c *fiber.Ctx) error {
	db, err := h.scoped(c)
	if err != nil {
		return fail(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	var req PayRequest
	if err := body(c, &req); err != nil {
		return fail(c, err)
	}
	invoice, err := services.NewBilling(db).MarkPaid(c.UserContext(), id, req.Method)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(invoice)
}

func (h *Handler) RenderInvoice(c *fiber.Ctx) error {
	if h.renderer == nil || h.uploader == nil {
		return fail(c, fiber.NewError(fiber.StatusServiceUnavailable, "Document rendering is not configured"))
	}
	db, err := h.scoped(c)
	if err != nil {
		return fail(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	invoice, err := services.NewDocuments(db, h.renderer, h.uploader).RenderInvoice(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(invoice)
}

// ImportStudents reads the uploaded workbook in the "file" form field.
func (h *Handler) ImportStudents(c *fiber.Ctx) error {
	db, err := h.scoped(c)
	if err != nil {
		return fail(c, err)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return fail(c, fiber.NewError(fiber.StatusBadRequest, "A spreadsheet is required in the file field"))
	}
	f, err := fh.Open()
	if err != nil {
		return fail(c, err)
	}
	defer f.Close()

	res, err := services.NewSpreadsheet(db, validate).ImportStudents(c.UserContext(), f)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(res)
}

// ExportInvoices streams a workbook of invoices. ?paid=true|false filters
// by payment state.
func (h *Handler) ExportInvoices(c *fiber.Ctx) error {
	db, err := h.scoped(c)
	if err != nil {
		return fail(c, err)
	}
	where := &client.InvoiceWhereInput{IsDeleted: &query.BoolFilter{Equals: query.Ptr(false)}}
	if raw := c.Query("paid"); raw != "" {
		paid, err := strconv.ParseBool(raw)
		if err != nil {
			return fail(c, fiber.NewError(fiber.StatusBadRequest, "paid must be true or false"))
		}
		where.IsPaid = &query.BoolFilter{Equals: &paid}
	}

	var buf bytes.Buffer
	if _, err := services.NewSpreadsheet(db, validate).ExportInvoices(c.UserContext(), where, &buf); err != nil {
		return fail(c, err)
	}
	c.Attachment("invoices.xlsx")
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return c.Send(buf.Bytes())
}
