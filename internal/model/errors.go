package model

import (
	"fmt"
	"sort"
	"strings"
)

// FieldErrors maps request fields to lists of validation messages, matching
// the API's 400 payload shape, e.g. {"offered_items": ["..."]}.
type FieldErrors map[string][]string

// Add appends a message to a field's error list.
func (e FieldErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s: %s", f, strings.Join(e[f], ", "))
	}
	return b.String()
}
