package utils

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

const (
	invoiceCodeLength = 6
	letterBytes       = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	maxAttempts       = 20
)

// ExistsFunc reports whether a generated code is already taken.
type ExistsFunc func(ctx context.Context, code string) (bool, error)

// GenerateInvoiceNumber returns a number of the form INV-200601-XXXXXX that
// exists does not report as taken.
func GenerateInvoiceNumber(ctx context.Context, now time.Time, exists ExistsFunc) (string, error) {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))
	prefix := "INV-" + now.Format("200601") + "-"

	for attempt := 0; attempt < maxAttempts; attempt++ {
		b := make([]byte, invoiceCodeLength)
		for i := range b {
			b[i] = letterBytes[seededRand.Intn(len(letterBytes))]
		}
		code := prefix + string(b)

		taken, err := exists(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", fmt.Errorf("no free invoice number after %d attempts", maxAttempts)
}
