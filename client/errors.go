package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/anjiri1684/tutor_orm/query"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Known request error codes.
const (
	CodeValueTooLong    = "P2000"
	CodeUniqueViolation = "P2002"
	CodeForeignKey      = "P2003"
	CodeNullConstraint  = "P2011"
	CodeRecordNotFound  = "P2025"
)

// KnownRequestError is a database error the client could classify.
type KnownRequestError struct {
	Code    string
	Message string
	Model   string
	Meta    map[string]interface{}
	Err     error
}

func (e *KnownRequestError) Error() string {
	if e.Model != "" {
		return fmt.Sprintf("%s (%s): %s", e.Code, e.Model, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *KnownRequestError) Unwrap() error { return e.Err }

// Is matches any KnownRequestError carrying the same code.
func (e *KnownRequestError) Is(target error) bool {
	t, ok := target.(*KnownRequestError)
	return ok && t.Code == e.Code
}

var (
	ErrRecordNotFound  = &KnownRequestError{Code: CodeRecordNotFound, Message: "record not found"}
	ErrUniqueViolation = &KnownRequestError{Code: CodeUniqueViolation, Message: "unique constraint failed"}
	ErrForeignKey      = &KnownRequestError{Code: CodeForeignKey, Message: "foreign key constraint failed"}
)

func IsNotFound(err error) bool { return errors.Is(err, ErrRecordNotFound) }

func IsValidation(err error) bool {
	var v *query.ValidationError
	return errors.As(err, &v)
}

func notFound(model string) error {
	return &KnownRequestError{Code: CodeRecordNotFound, Message: "record to operate on was not found", Model: model}
}

// translate classifies err. Unrecognised errors are wrapped with the model
// and operation.
func translate(model, op string, err error) error {
	if err == nil {
		return nil
	}
	var known *KnownRequestError
	if errors.As(err, &known) {
		return err
	}
	var invalid *query.ValidationError
	if errors.As(err, &invalid) {
		if invalid.Model == "" {
			invalid.Model = model
		}
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &KnownRequestError{Code: CodeRecordNotFound, Message: "record to operate on was not found", Model: model, Err: err}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &KnownRequestError{Code: CodeUniqueViolation, Message: "unique constraint failed", Model: model, Err: err}
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return &KnownRequestError{Code: CodeForeignKey, Message: "foreign key constraint failed", Model: model, Err: err}
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if code, ok := pgCodes[pgErr.Code]; ok {
			meta := map[string]interface{}{}
			if pgErr.ConstraintName != "" {
				meta["target"] = pgErr.ConstraintName
			}
			if pgErr.ColumnName != "" {
				meta["column"] = pgErr.ColumnName
			}
			return &KnownRequestError{Code: code, Message: pgErr.Message, Model: model, Meta: meta, Err: err}
		}
	}
	if model == "" || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%s.%s: %w", model, op, err)
}

var pgCodes = map[string]string{
	"22001": CodeValueTooLong,
	"23505": CodeUniqueViolation,
	"23503": CodeForeignKey,
	"23502": CodeNullConstraint,
}
