package service

import (
	"fmt"
	"regexp"
	"strings"
)

var ticketKey = regexp.MustCompile(`^([A-Za-z]+)-(\d+)$`)

// NormalizeKey validates a ticket key and normalizes it to the canonical
// PROJECT-NNN form: project uppercased, number zero-padded to three digits,
// so "mdt-66" becomes "MDT-066".
func NormalizeKey(raw string) (project, key string, err error) {
	trimmed := strings.ToUpper(strings.TrimSpace(raw))
	m := ticketKey.FindStringSubmatch(trimmed)
	if m == nil {
		return "", "", &RequestError{
			Field:   "key",
			Message: fmt.Sprintf("invalid ticket key %q, expected PROJECT-NUMBER (e.g. MDT-066)", raw),
		}
	}
	number := m[2]
	for len(number) < 3 {
		number = "0" + number
	}
	return m[1], m[1] + "-" + number, nil
}
