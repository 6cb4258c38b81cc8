package models

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/rohanthewiz/serr"
)

// ErrRecipeNotFound is returned when a box operation names an unknown recipe
var ErrRecipeNotFound = errors.New("recipe not found")

// Recipe is a menu item as stored in the recipes table
type Recipe struct {
	ID          string        `db:"id"`
	Name        string        `db:"name"`
	Headline    string        `db:"headline"`
	Image       string        `db:"image"`
	Yields      int           `db:"yields"`
	ExtraCharge sql.NullInt64 `db:"extra_charge"` // cents
	Position    int           `db:"position"`
	CreatedAt   time.Time     `db:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at"`
}

// RecipeInput is the shape accepted from menu files and the API
type RecipeInput struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Headline    string `yaml:"headline" json:"headline"`
	Image       string `yaml:"image" json:"image"`
	Yields      int    `yaml:"yields" json:"yields"`
	ExtraCharge *int   `yaml:"extra_charge,omitempty" json:"extra_charge,omitempty"`
	Position    int    `yaml:"position" json:"position"`
}

// RecipeOutput is the JSON representation of a recipe
type RecipeOutput struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Headline    string `json:"headline"`
	Image       string `json:"image"`
	Yields      int    `json:"yields"`
	ExtraCharge *int   `json:"extra_charge,omitempty"`
}

// Charge returns the surcharge in cents, or nil when the recipe has none
func (r Recipe) Charge() *int {
	if !r.ExtraCharge.Valid {
		return nil
	}
	v := int(r.ExtraCharge.Int64)
	return &v
}

// ToOutput converts a Recipe to its JSON form
func (r Recipe) ToOutput() RecipeOutput {
	return RecipeOutput{
		ID:          r.ID,
		Name:        r.Name,
		Headline:    r.Headline,
		Image:       r.Image,
		Yields:      r.Yields,
		ExtraCharge: r.Charge(),
	}
}

// RecipeFromOutput rebuilds a Recipe from its JSON form at the given menu position
func RecipeFromOutput(out RecipeOutput, position int) Recipe {
	r := Recipe{
		ID:       out.ID,
		Name:     out.Name,
		Headline: out.Headline,
		Image:    out.Image,
		Yields:   out.Yields,
		Position: position,
	}
	if out.ExtraCharge != nil {
		r.ExtraCharge = sql.NullInt64{Int64: int64(*out.ExtraCharge), Valid: true}
	}
	return r
}

// Validate checks the fields a card cannot render without
func (in RecipeInput) Validate() error {
	if strings.TrimSpace(in.ID) == "" {
		return serr.New("recipe id is required")
	}
	if strings.ContainsAny(in.ID, "/?#") {
		return serr.New("recipe id must not contain '/', '?' or '#'")
	}
	if strings.TrimSpace(in.Name) == "" {
		return serr.New("recipe name is required")
	}
	if in.Yields <= 0 {
		return serr.New("recipe yields must be positive")
	}
	if in.ExtraCharge != nil && *in.ExtraCharge < 0 {
		return serr.New("recipe extra_charge must not be negative")
	}
	return nil
}

// UpsertRecipe inserts a recipe or replaces the stored fields of an existing one
func UpsertRecipe(in RecipeInput) (*Recipe, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var charge sql.NullInt64
	if in.ExtraCharge != nil {
		charge = sql.NullInt64{Int64: int64(*in.ExtraCharge), Valid: true}
	}

	now := time.Now()
	query := `
		INSERT INTO recipes (id, name, headline, image, yields, extra_charge, position, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			headline = excluded.headline,
			image = excluded.image,
			yields = excluded.yields,
			extra_charge = excluded.extra_charge,
			position = excluded.position,
			updated_at = excluded.updated_at
	`
	err := WriteThrough(query, in.ID, in.Name, in.Headline, in.Image, in.Yields, charge, in.Position, now, now)
	if err != nil {
		return nil, serr.Wrap(err, "failed to upsert recipe")
	}

	return GetRecipe(in.ID)
}

const recipeColumns = `id, name, headline, image, yields, extra_charge, position, created_at, updated_at`

// GetRecipe retrieves a recipe by id. Returns nil, nil when it does not exist.
func GetRecipe(id string) (*Recipe, error) {
	row := QueryRowFromCache(`SELECT `+recipeColumns+` FROM recipes WHERE id = ?`, id)

	r, err := scanRecipe(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, serr.Wrap(err, "failed to get recipe")
	}
	return r, nil
}

// ListRecipes returns the whole menu in display order
func ListRecipes() ([]Recipe, error) {
	rows, err := ReadFromCache(`SELECT ` + recipeColumns + ` FROM recipes ORDER BY position, id`)
	if err != nil {
		return nil, serr.Wrap(err, "failed to list recipes")
	}
	defer rows.Close()

	var recipes []Recipe
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, serr.Wrap(err, "failed to scan recipe")
		}
		recipes = append(recipes, *r)
	}
	return recipes, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecipe(row rowScanner) (*Recipe, error) {
	var r Recipe
	var headline, image sql.NullString
	err := row.Scan(&r.ID, &r.Name, &headline, &image, &r.Yields, &r.ExtraCharge,
		&r.Position, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	r.Headline = headline.String
	r.Image = image.String
	return &r, nil
}
