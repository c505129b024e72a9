package jobs

import (
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/anjiri1684/tutor_orm/client"
	"github.com/anjiri1684/tutor_orm/logger"
	"github.com/anjiri1684/tutor_orm/models"
	"github.com/anjiri1684/tutor_orm/query"
)

// FlagOverdueInvoices emails a reminder for every unpaid invoice past its
// due date and returns how many reminders were sent. Students without an
// email address are skipped.
func (r *Runner) FlagOverdueInvoices(ctx context.Context) (int, error) {
	now := r.now()
	invoices, err := r.db.Invoice.FindMany(ctx, client.InvoiceFindManyArgs{
		Where: &client.InvoiceWhereInput{
			IsPaid:    &query.BoolFilter{Equals: query.Ptr(false)},
			IsDeleted: &query.BoolFilter{Equals: query.Ptr(false)},
			DueAt:     &query.DateTimeFilter{Lt: &now},
		},
		OrderBy: []client.InvoiceOrderBy{{Field: client.InvoiceFieldDueAt, Direction: query.Asc}},
		Include: []query.Include{{Relation: client.InvoiceIncludeStudent}},
	})
	if err != nil {
		return 0, err
	}

	sent := 0
	for i := range invoices {
		inv := &invoices[i]
		if !inv.IsOverdue(now) || inv.Student == nil || inv.Student.Email == nil {
			continue
		}
		subject, body := overdueEmail(inv, now)
		name := inv.Student.FullName()
		if inv.Student.ParentName != nil {
			name = *inv.Student.ParentName
		}
		if err := r.mailer.Send(ctx, name, *inv.Student.Email, subject, body); err != nil {
			logger.Warn().Err(err).Str("invoice", inv.InvoiceNumber).Msg("overdue reminder not sent")
			continue
		}
		sent++
	}
	logger.Info().Int("overdue", len(invoices)).Int("reminded", sent).Msg("overdue invoices flagged")
	return sent, nil
}

func overdueEmail(inv *models.Invoice, now time.Time) (string, string) {
	days := int(now.Sub(*inv.DueAt).Hours() / 24)
	subject := fmt.Sprintf("Invoice %s is overdue", inv.InvoiceNumber)
	body := fmt.Sprintf(
		"<h1>Payment reminder</h1><p>Invoice <b>%s</b> for %s was due on %s (%d day(s) ago).</p><p>Amount due: %.2f</p>",
		template.HTMLEscapeString(inv.InvoiceNumber),
		template.HTMLEscapeString(inv.Student.FullName()),
		inv.DueAt.Format("2006-01-02"),
		days,
		inv.TotalAmount,
	)
	return subject, body
}
