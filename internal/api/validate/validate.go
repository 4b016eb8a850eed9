package validate

import (
	"strconv"
	"strings"
)

type ErrField struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

type Errs []ErrField

func (e Errs) Error() string {
	var b strings.Builder
	for i, ef := range e {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(ef.Field + ": " + ef.Msg)
	}
	return b.String()
}

func Required(field, value string) *ErrField {
	if strings.TrimSpace(value) == "" {
		return &ErrField{Field: field, Msg: "required"}
	}
	return nil
}

func MinInt(field string, v, min int64) *ErrField {
	if v < min {
		return &ErrField{Field: field, Msg: "must be >= " + strconv.FormatInt(min, 10)}
	}
	return nil
}

// Collect appends the non-nil checks into an Errs, returning nil when all
// checks passed.
func Collect(checks ...*ErrField) Errs {
	var out Errs
	for _, c := range checks {
		if c != nil {
			out = append(out, *c)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
