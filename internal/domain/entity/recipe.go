package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipe receta con las cantidades de ingredientes por porción.
type Recipe struct {
	ID           string
	Name         string
	Description  string
	Servings     int
	Instructions string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Ingredients []RecipeIngredient
}

// RecipeIngredient línea de receta.
type RecipeIngredient struct {
	ID           string
	RecipeID     string
	IngredientID string
	Quantity     decimal.Decimal
	Unit         string
	Notes        string

	IngredientName string          // solo lectura
	CurrentStock   decimal.Decimal // solo lectura
}
