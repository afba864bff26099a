// Package vocab defines vocabulary items — the cards a player speaks to
// attack or defend — and the YAML content catalog they are authored in.
package vocab

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidComplexityLevel reports a complexity tier outside {1..5}.
var ErrInvalidComplexityLevel = errors.New("complexity level outside 1..5")

// ErrInvalidCategory reports an item category outside the closed set.
var ErrInvalidCategory = errors.New("invalid item category")

// ErrInvalidBasePower reports a base power that is not a positive finite number.
var ErrInvalidBasePower = errors.New("base power must be positive and finite")

// ComplexityLevel is the 1–5 difficulty tier assigned to a vocabulary item at
// content-authoring time.
type ComplexityLevel int

// NewComplexityLevel validates and builds a ComplexityLevel.
//
// Postcondition: Returns a level in {1..5}, or an error wrapping
// ErrInvalidComplexityLevel.
func NewComplexityLevel(n int) (ComplexityLevel, error) {
	if n < 1 || n > 5 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidComplexityLevel, n)
	}
	return ComplexityLevel(n), nil
}

// Valid reports whether the level is within {1..5}.
func (l ComplexityLevel) Valid() bool { return l >= 1 && l <= 5 }

// Category distinguishes regular items from special (rarer, stronger on
// defense) items. Irrelevant to attack resolution.
type Category int

const (
	Regular Category = iota
	Special
)

// Valid reports whether c is Regular or Special.
func (c Category) Valid() bool { return c == Regular || c == Special }

// String returns the wire label for the category.
func (c Category) String() string {
	switch c {
	case Regular:
		return "regular"
	case Special:
		return "special"
	default:
		return "unknown"
	}
}

// ParseCategory converts a wire label into a Category.
//
// Postcondition: Returns a valid Category, or ErrInvalidCategory.
func ParseCategory(s string) (Category, error) {
	switch s {
	case "regular":
		return Regular, nil
	case "special":
		return Special, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
}

// ValidateBasePower checks the base attack power contract: positive and finite.
func ValidateBasePower(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidBasePower, v)
	}
	return nil
}

// Item is one authored vocabulary card. All fields are fixed at authoring
// time; the engine never mutates an Item.
type Item struct {
	// ID uniquely identifies the item across all content packs.
	ID string
	// Word is the target-language word or phrase the player must speak.
	Word string
	// Gloss is the player's-language translation shown on the card.
	Gloss string
	// Level is the 1–5 complexity tier.
	Level ComplexityLevel
	// Category selects the defense-reduction column (regular or special).
	Category Category
	// BasePower is the item's base attack power.
	BasePower float64
}

// Validate checks all item invariants.
//
// Postcondition: Returns nil iff the item satisfies the content contract.
func (i Item) Validate() error {
	if i.ID == "" {
		return errors.New("item id must not be empty")
	}
	if i.Word == "" {
		return fmt.Errorf("item %q: word must not be empty", i.ID)
	}
	if !i.Level.Valid() {
		return fmt.Errorf("item %q: %w: got %d", i.ID, ErrInvalidComplexityLevel, int(i.Level))
	}
	if !i.Category.Valid() {
		return fmt.Errorf("item %q: %w", i.ID, ErrInvalidCategory)
	}
	if err := ValidateBasePower(i.BasePower); err != nil {
		return fmt.Errorf("item %q: %w", i.ID, err)
	}
	return nil
}
