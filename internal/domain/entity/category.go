// Package entity defines the core business entities for the domain layer.
package entity

import "time"

// UncategorizedName is the display name used for transactions without a category.
const UncategorizedName = "Uncategorized"

// Category represents a transaction category.
type Category struct {
	ID          int64
	Name        string
	Description string
	IsDefault   bool // System-provided; cannot be deleted, may be renamed
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CategoryInput holds the writable fields of a category.
type CategoryInput struct {
	Name        string
	Description string
}

// DefaultCategoryNames lists the categories the finance API seeds on bootstrap.
var DefaultCategoryNames = []string{
	"Food & Dining",
	"Shopping",
	"Housing",
	"Transportation",
	"Entertainment",
	"Health & Fitness",
	"Personal Care",
	"Education",
	"Gifts & Donations",
	"Bills & Utilities",
	"Travel",
	"Income",
	"Transfer",
	UncategorizedName,
}

// FindCategory returns the category with the given ID, or nil.
func FindCategory(categories []Category, id int64) *Category {
	for i := range categories {
		if categories[i].ID == id {
			return &categories[i]
		}
	}
	return nil
}
