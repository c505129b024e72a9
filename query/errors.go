package query

import "fmt"

// ValidationError reports arguments that cannot be turned into a query.
type ValidationError struct {
	Model  string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Model != "" && e.Field != "":
		return fmt.Sprintf("invalid %s argument %q: %s", e.Model, e.Field, e.Reason)
	case e.Model != "":
		return fmt.Sprintf("invalid %s arguments: %s", e.Model, e.Reason)
	}
	return "invalid arguments: " + e.Reason
}
