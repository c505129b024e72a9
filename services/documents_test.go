package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/anjiri1684/tutor_orm/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRenderer struct {
	html string
	err  error
}

func (r *fakeRenderer) RenderPDF(_ context.Context, html string) ([]byte, error) {
	r.html = html
	return []byte("%PDF-1.4"), r.err
}

type fakeUploader struct {
	publicID string
	data     []byte
}

func (u *fakeUploader) Upload(_ context.Context, data []byte, publicID string) (string, error) {
	u.publicID, u.data = publicID, data
	return "https://res.cloudinary.com/demo/raw/upload/" + publicID, nil
}

func TestRenderInvoice(t *testing.T) {
	db, mock := newTestClient(t)
	mock.MatchExpectationsInOrder(false)
	id, studentID := uuid.New(), uuid.New()
	issued := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "invoices" WHERE "invoices"."id" = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "student_id", "invoice_number", "issued_at", "total_amount"}).
			AddRow(id.String(), studentID.String(), "INV-202602-QWERTY", issued, 120.0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "students"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name"}).AddRow(studentID.String(), "Amina", "Njeri"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "purchases"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "invoice_id", "type", "amount", "quantity", "description"}).
			AddRow(uuid.NewString(), id.String(), "COURSE", 100.0, 1, "Algebra I").
			AddRow(uuid.NewString(), id.String(), "MATERIAL", 20.0, 2, nil))
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE "invoices" SET "document_url"=$1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "document_url"}).AddRow(id.String(), "https://res.cloudinary.com/demo/raw/upload/x"))

	renderer, uploader := &fakeRenderer{}, &fakeUploader{}
	inv, err := NewDocuments(db, renderer, uploader).RenderInvoice(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, inv.DocumentURL)

	assert.Contains(t, renderer.html, "Invoice INV-202602-QWERTY")
	assert.Contains(t, renderer.html, "Amina Njeri")
	assert.Contains(t, renderer.html, "Algebra I")
	assert.Contains(t, renderer.html, "MATERIAL")
	assert.Contains(t, renderer.html, "120.00")
	assert.True(t, strings.HasPrefix(uploader.publicID, "invoices/INV-202602-QWERTY_"))
	assert.Equal(t, []byte("%PDF-1.4"), uploader.data)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRenderInvoiceRenderFailure(t *testing.T) {
	db, mock := newTestClient(t)
	mock.MatchExpectationsInOrder(false)
	id := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "invoices"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "invoice_number"}).AddRow(id.String(), "INV-1"))
	mock.ExpectQuery(`SELECT \* FROM "purchases"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))

	boom := errors.New("chrome not found")
	uploader := &fakeUploader{}
	_, err := NewDocuments(db, &fakeRenderer{err: boom}, uploader).RenderInvoice(context.Background(), id)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, uploader.publicID)
}

func TestInvoiceHTMLEscapes(t *testing.T) {
	desc := "<script>alert(1)</script>"
	html, err := invoiceHTML(&models.Invoice{
		InvoiceNumber: "INV-2",
		Purchases:     []models.Purchase{{Type: models.PurchaseTypeOther, Description: &desc, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.NotContains(t, html, desc)
	assert.Contains(t, html, "&lt;script&gt;")
}
