package services

import (
	"context"
	"time"

	"github.com/anjiri1684/tutor_orm/client"
	"github.com/anjiri1684/tutor_orm/logger"
	"github.com/anjiri1684/tutor_orm/models"
	"github.com/anjiri1684/tutor_orm/query"
	"github.com/anjiri1684/tutor_orm/utils"
	"github.com/google/uuid"
)

// Billing turns purchases into invoices and settles them.
type Billing struct {
	db  *client.Client
	now func() time.Time
}

func NewBilling(db *client.Client) *Billing {
	return &Billing{db: db, now: time.Now}
}

// IssueInvoice bills the given purchases of one student. Every purchase
// must belong to the student and must not be on another invoice.
func (s *Billing) IssueInvoice(ctx context.Context, studentID uuid.UUID, purchaseIDs []uuid.UUID, dueAt *time.Time) (*models.Invoice, error) {
	ids := distinctIDs(purchaseIDs)
	if len(ids) == 0 {
		return nil, &query.ValidationError{Model: "Invoice", Field: "purchaseIds", Reason: "at least one purchase is required"}
	}
	now := s.now()
	if dueAt != nil && dueAt.Before(now) {
		return nil, &query.ValidationError{Model: "Invoice", Field: "dueAt", Reason: "must not be in the past"}
	}

	var invoice *models.Invoice
	err := s.db.Transaction(ctx, func(tx *client.Client) error {
		student, err := tx.Student.FindUniqueOrThrow(ctx, client.StudentFindUniqueArgs{
			Where: client.StudentWhereUniqueInput{ID: &studentID},
		})
		if err != nil {
			return err
		}

		billable := &client.PurchaseWhereInput{
			ID:        &query.UUIDFilter{In: ids},
			StudentID: &query.UUIDFilter{Equals: &studentID},
			InvoiceID: &query.UUIDFilter{IsNull: query.Ptr(true)},
			IsDeleted: &query.BoolFilter{Equals: query.Ptr(false)},
		}
		totals, err := tx.Purchase.Aggregate(ctx, client.PurchaseAggregateArgs{
			Where: billable,
			AggregateSelect: query.AggregateSelect[client.PurchaseField]{
				Count: []client.PurchaseField{query.CountAll},
				Sum:   []client.PurchaseField{client.PurchaseFieldAmount},
			},
		})
		if err != nil {
			return err
		}
		if totals.Count[query.CountAll] != int64(len(ids)) {
			return &query.ValidationError{Model: "Invoice", Field: "purchaseIds", Reason: "purchases must belong to the student and not be invoiced yet"}
		}
		var total float64
		if sum := totals.Sum[client.PurchaseFieldAmount]; sum != nil {
			total = *sum
		}

		number, err := utils.GenerateInvoiceNumber(ctx, now, func(ctx context.Context, code string) (bool, error) {
			n, err := tx.Invoice.Count(ctx, client.InvoiceCountArgs{
				Where: &client.InvoiceWhereInput{
					InvoiceNumber: &query.StringFilter{Equals: &code},
					OrgID:         &query.UUIDFilter{Equals: &student.OrgID},
				},
			})
			return n > 0, err
		})
		if err != nil {
			return err
		}

		invoice, err = tx.Invoice.Create(ctx, &models.Invoice{
			OrgID:         student.OrgID,
			StudentID:     studentID,
			InvoiceNumber: number,
			IssuedAt:      now,
			DueAt:         dueAt,
			TotalAmount:   total,
		})
		if err != nil {
			return err
		}
		_, err = tx.Purchase.UpdateMany(ctx, billable, []client.PurchaseAssignment{
			query.Set(client.PurchaseFieldInvoiceID, invoice.ID),
		})
		return err
	}, client.TxOptions{IsolationLevel: client.Serializable})
	if err != nil {
		return nil, err
	}
	logger.Info().Str("invoice", invoice.InvoiceNumber).Float64("total", invoice.TotalAmount).Msg("invoice issued")
	return invoice, nil
}

// MarkPaid settles an unpaid invoice.
func (s *Billing) MarkPaid(ctx context.Context, invoiceID uuid.UUID, method models.PaymentMethod) (*models.Invoice, error) {
	if !method.IsValid() {
		return nil, &query.ValidationError{Model: "Invoice", Field: "paymentMethod", Reason: "unknown payment method " + string(method)}
	}
	var paid *models.Invoice
	err := s.db.Transaction(ctx, func(tx *client.Client) error {
		where := client.InvoiceWhereUniqueInput{ID: &invoiceID}
		invoice, err := tx.Invoice.FindUniqueOrThrow(ctx, client.InvoiceFindUniqueArgs{Where: where})
		if err != nil {
			return err
		}
		if invoice.IsPaid {
			return &query.ValidationError{Model: "Invoice", Field: "isPaid", Reason: "invoice " + invoice.InvoiceNumber + " is already paid"}
		}
		paid, err = tx.Invoice.Update(ctx, where, []client.InvoiceAssignment{
			query.Set(client.InvoiceFieldIsPaid, true),
			query.Set(client.InvoiceFieldPaidAt, s.now()),
			query.Set(client.InvoiceFieldPaymentMethod, method),
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	logger.Info().Str("invoice", paid.InvoiceNumber).Str("method", string(method)).Msg("invoice paid")
	return paid, nil
}

func distinctIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == uuid.Nil {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
