package model

import "rentdesk/shared/failure"

type ItemType string

const (
	ItemTypeChair      ItemType = "chair"
	ItemTypeTable      ItemType = "table"
	ItemTypeTablecloth ItemType = "tablecloth"
	ItemTypeMixed      ItemType = "mixed"
)

// Classify derives the item type from the quantities of each category.
// Callers must reject all-zero quantities first (see ValidateQuantities);
// for that input Classify returns the empty ItemType.
func Classify(chairs, tables, tablecloths int) ItemType {
	var (
		positive int
		tag      ItemType
	)

	for _, category := range []struct {
		quantity int
		tag      ItemType
	}{
		{chairs, ItemTypeChair},
		{tables, ItemTypeTable},
		{tablecloths, ItemTypeTablecloth},
	} {
		if category.quantity > 0 {
			positive++
			tag = category.tag
		}
	}

	if positive > 1 {
		return ItemTypeMixed
	}

	return tag
}

// ValidateQuantities enforces the precondition of Classify.
func ValidateQuantities(chairs, tables, tablecloths int) error {
	if chairs < 0 || tables < 0 || tablecloths < 0 {
		return failure.Validation(FieldQuantity, "quantities must not be negative")
	}

	if chairs+tables+tablecloths == 0 {
		return failure.Validation(FieldQuantity, "at least one item quantity must be positive")
	}

	return nil
}
