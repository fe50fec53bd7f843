// utils/validation.go
package utils

import "regexp"

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail checks a basic email shape
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// FieldErrors collects validation messages keyed by field name.
type FieldErrors map[string][]string

func (e FieldErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

func (e FieldErrors) HasErrors() bool {
	return len(e) > 0
}

func (e FieldErrors) Error() string {
	for field, msgs := range e {
		if len(msgs) > 0 {
			return field + ": " + msgs[0]
		}
	}
	return "validation failed"
}
