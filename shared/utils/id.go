package utils

import (
	"strings"

	"github.com/google/uuid"
)

const idBodyLength = 12

// NewId returns prefix followed by 12 upper-case hex characters of a random uuid.
func NewId(prefix string) string {
	u := uuid.New()
	body := strings.ToUpper(strings.ReplaceAll(u.String(), "-", ""))
	return prefix + body[:idBodyLength]
}
