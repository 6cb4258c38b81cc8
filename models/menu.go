package models

import (
	"errors"
	"io"
	"os"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
	"go.yaml.in/yaml/v4"
)

// MenuFile is the YAML layout of a weekly menu
type MenuFile struct {
	Recipes []RecipeInput `yaml:"recipes"`
}

// LoadMenu parses and validates a YAML menu. Recipes without an explicit
// position are ordered as they appear in the file.
func LoadMenu(reader io.Reader) ([]RecipeInput, error) {
	var menu MenuFile
	if err := yaml.NewDecoder(reader).Decode(&menu); err != nil && !errors.Is(err, io.EOF) {
		return nil, serr.Wrap(err, "failed to decode menu")
	}

	seen := make(map[string]bool, len(menu.Recipes))
	for i := range menu.Recipes {
		in := &menu.Recipes[i]
		if err := in.Validate(); err != nil {
			return nil, serr.Wrap(err, "invalid recipe in menu")
		}
		if seen[in.ID] {
			return nil, serr.New("duplicate recipe id in menu: " + in.ID)
		}
		seen[in.ID] = true
		if in.Position == 0 {
			in.Position = i + 1
		}
	}

	return menu.Recipes, nil
}

// SeedMenu upserts every recipe of the menu
func SeedMenu(recipes []RecipeInput) error {
	for _, in := range recipes {
		if _, err := UpsertRecipe(in); err != nil {
			return serr.Wrap(err, "failed to seed recipe "+in.ID)
		}
	}
	logger.Info("Menu seeded", "recipes", len(recipes))
	return nil
}

// SeedMenuFile loads the menu at path and seeds it. A missing file is skipped.
func SeedMenuFile(path string) error {
	if path == "" {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("No menu file found, skipping seed", "path", path)
			return nil
		}
		return serr.Wrap(err, "failed to open menu file")
	}
	defer f.Close()

	recipes, err := LoadMenu(f)
	if err != nil {
		return err
	}
	return SeedMenu(recipes)
}
