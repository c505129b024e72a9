package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/anjiri1684/tutor_orm/client"
	"github.com/anjiri1684/tutor_orm/logger"
	"github.com/anjiri1684/tutor_orm/models"
	"github.com/anjiri1684/tutor_orm/query"
	"github.com/go-playground/validator/v10"
	"github.com/xuri/excelize/v2"
)

const dateLayout = "2006-01-02"

// RowError reports why a spreadsheet row was not imported.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResult counts what happened to each data row. Every row is either
// created, blank, a duplicate of an existing email, or listed in Errors.
type ImportResult struct {
	Created    int64      `json:"created"`
	Blank      int        `json:"blank"`
	Duplicates int        `json:"duplicates"`
	Errors     []RowError `json:"errors,omitempty"`
}

// Spreadsheet imports and exports records as Excel workbooks.
type Spreadsheet struct {
	db       *client.Client
	validate *validator.Validate
}

func NewSpreadsheet(db *client.Client, validate *validator.Validate) *Spreadsheet {
	if validate == nil {
		validate = validator.New()
	}
	return &Spreadsheet{db: db, validate: validate}
}

// ImportStudents reads students from the first sheet of the workbook. The
// first row holds the headers (firstName, lastName, nickname, email, phone,
// gender, dateOfBirth, parentName, parentPhone, notes; any case). Invalid
// rows are reported in Errors. Students whose email already exists are left
// untouched and counted as duplicates.
func (s *Spreadsheet) ImportStudents(ctx context.Context, r io.Reader) (ImportResult, error) {
	var result ImportResult
	f, err := excelize.OpenReader(r)
	if err != nil {
		return result, &query.ValidationError{Model: "Student", Reason: "failed to open excel file: " + err.Error()}
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warn().Err(err).Msg("error closing excel file")
		}
	}()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return result, &query.ValidationError{Model: "Student", Reason: "excel file does not contain any sheets"}
	}
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return result, fmt.Errorf("failed to get rows from sheet %s: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return result, nil
	}

	index := headerIndex(rows[0])
	if _, ok := index["firstname"]; !ok {
		return result, &query.ValidationError{Model: "Student", Field: "firstName", Reason: "missing header column"}
	}

	students := make([]models.Student, 0, len(rows)-1)
	for i, row := range rows[1:] {
		line := i + 2
		if blank(row) {
			result.Blank++
			continue
		}
		student, err := studentFromRow(row, index)
		if err == nil {
			err = s.validate.Struct(student)
		}
		if err != nil {
			result.Errors = append(result.Errors, RowError{Row: line, Message: err.Error()})
			continue
		}
		students = append(students, student)
	}

	created, err := s.db.Student.CreateMany(ctx, students, true)
	if err != nil {
		return result, err
	}
	result.Created = created
	result.Duplicates = len(students) - int(created)
	logger.Info().Int64("created", created).Int("duplicates", result.Duplicates).Int("invalid", len(result.Errors)).Msg("students imported")
	return result, nil
}

func headerIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return index
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func studentFromRow(row []string, index map[string]int) (models.Student, error) {
	cell := func(name string) string {
		i, ok := index[strings.ToLower(name)]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	optional := func(name string) *string {
		if v := cell(name); v != "" {
			return &v
		}
		return nil
	}

	student := models.Student{
		FirstName:   cell("firstName"),
		LastName:    cell("lastName"),
		Nickname:    optional("nickname"),
		Email:       optional("email"),
		Phone:       optional("phone"),
		ParentName:  optional("parentName"),
		ParentPhone: optional("parentPhone"),
		Notes:       optional("notes"),
		IsActive:    true,
	}
	if g := cell("gender"); g != "" {
		gender := models.Gender(strings.ToUpper(g))
		if !gender.IsValid() {
			return student, fmt.Errorf("unknown gender %q", g)
		}
		student.Gender = &gender
	}
	if d := cell("dateOfBirth"); d != "" {
		dob, err := time.Parse(dateLayout, d)
		if err != nil {
			return student, fmt.Errorf("dateOfBirth must look like %s", dateLayout)
		}
		student.DateOfBirth = &dob
	}
	return student, nil
}

var invoiceHeaders = []string{"Invoice", "Student", "Issued", "Due", "Total", "Paid", "Paid At", "Method"}

// ExportInvoices writes the matching invoices, newest first, as a workbook.
func (s *Spreadsheet) ExportInvoices(ctx context.Context, where *client.InvoiceWhereInput, w io.Writer) (int, error) {
	invoices, err := s.db.Invoice.FindMany(ctx, client.InvoiceFindManyArgs{
		Where:   where,
		OrderBy: []client.InvoiceOrderBy{{Field: client.InvoiceFieldIssuedAt, Direction: query.Desc}},
		Include: []query.Include{{Relation: client.InvoiceIncludeStudent}},
	})
	if err != nil {
		return 0, err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warn().Err(err).Msg("error closing excel file")
		}
	}()
	const sheet = "Invoices"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return 0, err
	}
	if err := f.SetSheetRow(sheet, "A1", &invoiceHeaders); err != nil {
		return 0, err
	}
	for i, inv := range invoices {
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return 0, err
		}
		row := invoiceRow(inv)
		if err := f.SetSheetRow(sheet, cellRef, &row); err != nil {
			return 0, err
		}
	}
	if err := f.Write(w); err != nil {
		return 0, fmt.Errorf("failed to write workbook: %w", err)
	}
	return len(invoices), nil
}

func invoiceRow(inv models.Invoice) []interface{} {
	var student, due, paidAt, method string
	if inv.Student != nil {
		student = inv.Student.FullName()
	}
	if inv.DueAt != nil {
		due = inv.DueAt.Format(dateLayout)
	}
	if inv.PaidAt != nil {
		paidAt = inv.PaidAt.Format(dateLayout)
	}
	if inv.PaymentMethod != nil {
		method = string(*inv.PaymentMethod)
	}
	return []interface{}{inv.InvoiceNumber, student, inv.IssuedAt.Format(dateLayout), due, inv.TotalAmount, inv.IsPaid, paidAt, method}
}
