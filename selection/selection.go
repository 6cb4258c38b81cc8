// Package selection holds the box rules shared by every surface that lets a
// customer pick recipes: the per-recipe cap and the box-wide min/max counts.
package selection

import (
	"errors"

	"github.com/rohanthewiz/serr"
)

var (
	// ErrBoxFull is returned when the box already holds MaxRecipes units
	ErrBoxFull = errors.New("box is full")
	// ErrRecipeLimit is returned when a single recipe is at its SelectionLimit
	ErrRecipeLimit = errors.New("recipe selection limit reached")
)

// ExceedsLimit reports whether a recipe selected `selected` times has reached
// its per-recipe cap. A limit of zero or less means the recipe is uncapped.
func ExceedsLimit(limit, selected int) bool {
	if limit <= 0 {
		return false
	}
	return selected >= limit
}

// Plan describes how many meals a box must and may contain.
type Plan struct {
	MinRecipes     int `yaml:"min_recipes" json:"min_recipes"`
	MaxRecipes     int `yaml:"max_recipes" json:"max_recipes"`
	SelectionLimit int `yaml:"selection_limit" json:"selection_limit"`
}

// DefaultPlan is a three-to-six meal box, at most three of any one recipe
func DefaultPlan() Plan {
	return Plan{MinRecipes: 3, MaxRecipes: 6, SelectionLimit: 3}
}

// Validate checks the plan bounds are usable
func (p Plan) Validate() error {
	if p.MinRecipes < 0 {
		return serr.New("min_recipes must not be negative")
	}
	if p.MaxRecipes <= 0 {
		return serr.New("max_recipes must be positive")
	}
	if p.MinRecipes > p.MaxRecipes {
		return serr.New("min_recipes must not exceed max_recipes")
	}
	if p.SelectionLimit < 0 {
		return serr.New("selection_limit must not be negative")
	}
	return nil
}

// Status is the box-wide state every card needs to render its controls
type Status struct {
	Total      int  `json:"total"`
	MinReached bool `json:"min_reached"`
	MaxReached bool `json:"max_reached"`
}

// Status totals the quantities and derives the min/max flags.
// Non-positive quantities are ignored.
func (p Plan) Status(quantities map[string]int) Status {
	total := 0
	for _, qty := range quantities {
		if qty > 0 {
			total += qty
		}
	}
	return p.StatusForTotal(total)
}

// StatusForTotal derives the flags from an already computed total
func (p Plan) StatusForTotal(total int) Status {
	return Status{
		Total:      total,
		MinReached: total >= p.MinRecipes,
		MaxReached: total >= p.MaxRecipes,
	}
}

// CanAdd reports whether one more unit of a recipe currently selected
// `selected` times fits into a box holding `total` units.
func (p Plan) CanAdd(total, selected int) error {
	if total >= p.MaxRecipes {
		return ErrBoxFull
	}
	if ExceedsLimit(p.SelectionLimit, selected) {
		return ErrRecipeLimit
	}
	return nil
}
