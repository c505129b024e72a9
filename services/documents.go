package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/anjiri1684/tutor_orm/client"
	"github.com/anjiri1684/tutor_orm/logger"
	"github.com/anjiri1684/tutor_orm/models"
	"github.com/anjiri1684/tutor_orm/query"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// Renderer turns an HTML document into a PDF.
type Renderer interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}

// Uploader stores a rendered document and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, data []byte, publicID string) (string, error)
}

// ChromeRenderer prints HTML to PDF in headless Chrome.
type ChromeRenderer struct{}

func (ChromeRenderer) RenderPDF(ctx context.Context, htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(ctx)
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

// CloudinaryUploader uploads raw files into one folder.
type CloudinaryUploader struct {
	cld     *cloudinary.Cloudinary
	folder  string
	timeout time.Duration
}

func NewCloudinaryUploader(cloudinaryURL, folder string) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, err
	}
	return &CloudinaryUploader{cld: cld, folder: folder, timeout: 10 * time.Second}, nil
}

func (u *CloudinaryUploader) Upload(ctx context.Context, data []byte, publicID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	res, err := u.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		PublicID:     publicID,
		Folder:       u.folder,
		ResourceType: "raw",
	})
	if err != nil {
		return "", err
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("cloudinary: %s", res.Error.Message)
	}
	return res.SecureURL, nil
}

var invoiceTemplate = template.Must(template.New("invoice").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
body { font-family: Helvetica, Arial, sans-serif; margin: 40px; color: #222; }
table { width: 100%; border-collapse: collapse; margin-top: 24px; }
th, td { border-bottom: 1px solid #ddd; padding: 8px; text-align: left; }
td.amount, th.amount { text-align: right; }
.total { font-weight: bold; }
</style>
</head>
<body>
<h1>Invoice {{.Number}}</h1>
<p>Billed to: {{.Student}}</p>
<p>Issued: {{.IssuedAt}}{{if .DueAt}} &middot; Due: {{.DueAt}}{{end}}</p>
<table>
<tr><th>Item</th><th>Qty</th><th class="amount">Amount</th></tr>
{{range .Lines}}<tr><td>{{.Description}}</td><td>{{.Quantity}}</td><td class="amount">{{printf "%.2f" .Amount}}</td></tr>
{{end}}<tr class="total"><td colspan="2">Total</td><td class="amount">{{printf "%.2f" .Total}}</td></tr>
</table>
{{if .Paid}}<p>Paid {{.PaidAt}}</p>{{end}}
</body>
</html>`))

type invoiceLine struct {
	Description string
	Quantity    int
	Amount      float64
}

type invoiceView struct {
	Number   string
	Student  string
	IssuedAt string
	DueAt    string
	Lines    []invoiceLine
	Total    float64
	Paid     bool
	PaidAt   string
}

// Documents renders invoices as PDF files and stores their URL.
type Documents struct {
	db       *client.Client
	renderer Renderer
	uploader Uploader
}

func NewDocuments(db *client.Client, renderer Renderer, uploader Uploader) *Documents {
	return &Documents{db: db, renderer: renderer, uploader: uploader}
}

// RenderInvoice renders the invoice with its purchases, uploads the PDF and
// saves the resulting URL on the invoice.
func (s *Documents) RenderInvoice(ctx context.Context, invoiceID uuid.UUID) (*models.Invoice, error) {
	if s.uploader == nil {
		return nil, fmt.Errorf("document storage is not configured")
	}
	where := client.InvoiceWhereUniqueInput{ID: &invoiceID}
	invoice, err := s.db.Invoice.FindUniqueOrThrow(ctx, client.InvoiceFindUniqueArgs{
		Where: where,
		Include: []query.Include{
			{Relation: client.InvoiceIncludeStudent},
			{Relation: client.InvoiceIncludePurchases, OrderBy: []query.OrderBy[string]{{Field: "purchasedAt"}}},
		},
	})
	if err != nil {
		return nil, err
	}

	html, err := invoiceHTML(invoice)
	if err != nil {
		return nil, err
	}
	pdf, err := s.renderer.RenderPDF(ctx, html)
	if err != nil {
		logger.Error().Err(err).Str("invoice", invoice.InvoiceNumber).Msg("failed to render invoice PDF")
		return nil, err
	}
	url, err := s.uploader.Upload(ctx, pdf, fmt.Sprintf("invoices/%s_%s", invoice.InvoiceNumber, uuid.NewString()))
	if err != nil {
		logger.Error().Err(err).Str("invoice", invoice.InvoiceNumber).Msg("failed to upload invoice PDF")
		return nil, err
	}

	updated, err := s.db.Invoice.Update(ctx, where, []client.InvoiceAssignment{
		query.Set(client.InvoiceFieldDocumentURL, url),
	})
	if err != nil {
		return nil, err
	}
	logger.Info().Str("invoice", invoice.InvoiceNumber).Str("url", url).Msg("invoice document stored")
	return updated, nil
}

func invoiceHTML(invoice *models.Invoice) (string, error) {
	const layout = "January 2, 2006"
	view := invoiceView{
		Number:   invoice.InvoiceNumber,
		IssuedAt: invoice.IssuedAt.Format(layout),
		Total:    invoice.TotalAmount,
		Paid:     invoice.IsPaid,
	}
	if invoice.Student != nil {
		view.Student = invoice.Student.FullName()
	}
	if invoice.DueAt != nil {
		view.DueAt = invoice.DueAt.Format(layout)
	}
	if invoice.PaidAt != nil {
		view.PaidAt = invoice.PaidAt.Format(layout)
	}
	for _, p := range invoice.Purchases {
		line := invoiceLine{Description: string(p.Type), Quantity: p.Quantity, Amount: p.Amount}
		if p.Description != nil && *p.Description != "" {
			line.Description = *p.Description
		}
		view.Lines = append(view.Lines, line)
	}

	var rendered bytes.Buffer
	if err := invoiceTemplate.Execute(&rendered, view); err != nil {
		return "", err
	}
	return rendered.String(), nil
}
