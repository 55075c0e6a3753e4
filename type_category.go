package finance

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
)

// Category classifies a record. Income records use CategoryIncome, expenditures use
// one of the remaining eight categories.
type Category int

const (
	CategoryIncome Category = iota
	CategoryFood
	CategoryHousing
	CategoryTransportation
	CategoryEntertainment
	CategoryUtilities
	CategoryHealthcare
	CategoryEducation
	CategoryOther
)

var categoryNames = [...]string{
	CategoryIncome:         "Income",
	CategoryFood:           "Food",
	CategoryHousing:        "Housing",
	CategoryTransportation: "Transportation",
	CategoryEntertainment:  "Entertainment",
	CategoryUtilities:      "Utilities",
	CategoryHealthcare:     "Healthcare",
	CategoryEducation:      "Education",
	CategoryOther:          "Other",
}

func (c Category) String() string {
	if c < CategoryIncome || c > CategoryOther {
		return "Unknown"
	}
	return categoryNames[c]
}

// Categories iterates over all categories in declaration order.
func Categories() iter.Seq[Category] {
	return func(yield func(Category) bool) {
		for c := CategoryIncome; c <= CategoryOther; c++ {
			if !yield(c) {
				return
			}
		}
	}
}

// ExpenseCategories iterates over the categories an expenditure can use.
func ExpenseCategories() iter.Seq[Category] {
	return func(yield func(Category) bool) {
		for c := CategoryFood; c <= CategoryOther; c++ {
			if !yield(c) {
				return
			}
		}
	}
}

// CategoryFromString returns the category with that exact display name.
// Unrecognized names map to CategoryOther, it never fails.
func CategoryFromString(s string) Category {
	for c := range Categories() {
		if categoryNames[c] == s {
			return c
		}
	}
	return CategoryOther
}

// ParseCategory parses a user supplied expenditure category.
//
// It accepts a display name (case insensitive) or the menu number 1-8 of the
// expenditure categories (1 is Food, 8 is Other).
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > int(CategoryOther) {
			return CategoryOther, fmt.Errorf("%w: %q want a number between 1 and %d", ErrUnknownCategory, s, CategoryOther)
		}
		return Category(n), nil
	}
	for c := range Categories() {
		if strings.EqualFold(categoryNames[c], s) {
			return c, nil
		}
	}
	return CategoryOther, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}
