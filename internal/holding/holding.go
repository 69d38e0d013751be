package holding

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("holding not found")
	ErrDuplicate = errors.New("holding already exists")
	ErrInvalid   = errors.New("invalid holding")
)

// Holding is one instrument in a user's portfolio. The open quantity is never
// stored; it is derived from the holding's transactions.
type Holding struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Symbol    string
	Name      string
	Exchange  string
	CreatedAt time.Time
}

// NormalizeSymbol upper-cases and trims an instrument code.
func NormalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
