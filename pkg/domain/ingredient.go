package domain

import (
	"fmt"
	"unicode/utf8"
)

const (
	MaxIngredientNameLength  = 128
	MaxMeasurementUnitLength = 64
)

// Ingredient is a food stuff recipes are made of.
//
// The pair (Name, MeasurementUnit) is unique;
// the same name may appear with different units.
type Ingredient struct {
	Id              int
	Name            string
	MeasurementUnit string
}

func (i Ingredient) Equal(o Ingredient) bool {
	return i.Id == o.Id &&
		i.Name == o.Name &&
		i.MeasurementUnit == o.MeasurementUnit
}

// IngredientSpec is the intent creating a new Ingredient.
type IngredientSpec struct {
	Name            string
	MeasurementUnit string
}

// IngredientFilter narrows ingredient listings.
//
// Empty fields do not narrow. Both match case-insensitively.
type IngredientFilter struct {
	// NamePrefix keeps ingredients whose name starts with this.
	NamePrefix string

	// NameContains keeps ingredients whose name contains this.
	NameContains string
}

func (s IngredientSpec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: ingredient name is required", ErrInvalid)
	}
	if MaxIngredientNameLength < utf8.RuneCountInString(s.Name) {
		return fmt.Errorf(
			"%w: ingredient name is longer than %d characters",
			ErrInvalid, MaxIngredientNameLength,
		)
	}
	if s.MeasurementUnit == "" {
		return fmt.Errorf("%w: measurement unit is required", ErrInvalid)
	}
	if MaxMeasurementUnitLength < utf8.RuneCountInString(s.MeasurementUnit) {
		return fmt.Errorf(
			"%w: measurement unit is longer than %d characters",
			ErrInvalid, MaxMeasurementUnitLength,
		)
	}
	return nil
}
