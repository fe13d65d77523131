package tracking

import (
	"fmt"
	"strings"

	"github.com/guber-mobility/service-trips/internal/domain/errs"
)

// EntityKind identifies what kind of tracked entity a key refers to.
type EntityKind string

const (
	KindDriver EntityKind = "driver"
	// KindRider keeps the historical "user" key prefix on the wire.
	KindRider EntityKind = "user"
)

// IsValid returns true if the entity kind is recognized.
func (k EntityKind) IsValid() bool {
	switch k {
	case KindDriver, KindRider:
		return true
	}
	return false
}

// String returns the string representation of the entity kind.
func (k EntityKind) String() string {
	return string(k)
}

// ParseEntityKind converts a string to an EntityKind. "rider" is accepted as
// an alias for the "user" prefix.
func ParseEntityKind(s string) (EntityKind, error) {
	switch strings.ToLower(s) {
	case "driver":
		return KindDriver, nil
	case "user", "rider":
		return KindRider, nil
	}
	return "", fmt.Errorf("invalid entity kind: %s", s)
}

// EntityKey addresses one tracked entity's last known position. The format
// is "<kind>:<id>", lower-cased.
type EntityKey string

// NewEntityKey builds an EntityKey from a kind and an entity ID.
func NewEntityKey(kind EntityKind, id string) (EntityKey, error) {
	if !kind.IsValid() {
		return "", errs.NewValidationError(fmt.Sprintf("invalid entity kind: %s", kind))
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return "", errs.NewValidationError("entity ID is required")
	}
	return EntityKey(string(kind) + ":" + strings.ToLower(id)), nil
}

// String returns the string representation of the entity key.
func (k EntityKey) String() string {
	return string(k)
}
