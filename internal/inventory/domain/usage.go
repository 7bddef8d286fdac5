package domain

import (
	"strings"

	"github.com/google/uuid"
)

// ValidateUsage checks a usage or request item list.
func ValidateUsage(items []UsageItem) error {
	if len(items) == 0 {
		return ErrEmptyUsage
	}
	for _, item := range items {
		if _, err := uuid.Parse(strings.TrimSpace(item.InventoryID)); err != nil {
			return ErrInvalidInventoryID
		}
		if item.Quantity < 0 {
			return ErrInvalidQuantity
		}
	}
	return nil
}
