package models

import (
	"database/sql"
	"errors"
	"time"

	"mealbox/price"
	"mealbox/selection"

	"github.com/rohanthewiz/serr"
)

// BoxItem is one recipe line in a session's box
type BoxItem struct {
	RecipeID string `json:"recipe_id" msgpack:"recipe_id"`
	Quantity int    `json:"quantity" msgpack:"quantity"`
}

// GetBox returns the quantities in a session's box keyed by recipe id.
// An unknown session has an empty box.
func GetBox(sessionID string) (map[string]int, error) {
	rows, err := ReadFromCache(`SELECT recipe_id, quantity FROM box_items WHERE session_id = ?`, sessionID)
	if err != nil {
		return nil, serr.Wrap(err, "failed to read box")
	}
	defer rows.Close()

	quantities := make(map[string]int)
	for rows.Next() {
		var item BoxItem
		if err := rows.Scan(&item.RecipeID, &item.Quantity); err != nil {
			return nil, serr.Wrap(err, "failed to scan box item")
		}
		quantities[item.RecipeID] = item.Quantity
	}
	return quantities, rows.Err()
}

// AddToBox adds one unit of a recipe and returns its new quantity.
// The plan is checked under the write lock, so concurrent adds cannot
// overfill the box. Returns ErrRecipeNotFound, selection.ErrBoxFull or
// selection.ErrRecipeLimit unwrapped.
func AddToBox(sessionID, recipeID string, plan selection.Plan) (int, error) {
	tx, err := BeginDualTx()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM recipes WHERE id = ?`, recipeID).Scan(&exists); err != nil {
		return 0, serr.Wrap(err, "failed to check recipe")
	}
	if exists == 0 {
		return 0, ErrRecipeNotFound
	}

	var total int
	err = tx.QueryRow(`SELECT COALESCE(SUM(quantity), 0) FROM box_items WHERE session_id = ?`, sessionID).Scan(&total)
	if err != nil {
		return 0, serr.Wrap(err, "failed to total box")
	}

	selected, err := txQuantity(tx, sessionID, recipeID)
	if err != nil {
		return 0, err
	}

	if err := plan.CanAdd(total, selected); err != nil {
		return selected, err
	}

	if selected == 0 {
		err = tx.Exec(`INSERT INTO box_items (session_id, recipe_id, quantity, updated_at) VALUES (?, ?, 1, ?)`,
			sessionID, recipeID, time.Now())
	} else {
		err = tx.Exec(`UPDATE box_items SET quantity = quantity + 1, updated_at = ? WHERE session_id = ? AND recipe_id = ?`,
			time.Now(), sessionID, recipeID)
	}
	if err != nil {
		return selected, serr.Wrap(err, "failed to add to box")
	}

	if err := tx.Commit(); err != nil {
		return selected, err
	}
	return selected + 1, nil
}

// RemoveFromBox removes one unit of a recipe and returns its new quantity.
// Removing a recipe that is not in the box is a no-op.
func RemoveFromBox(sessionID, recipeID string) (int, error) {
	tx, err := BeginDualTx()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	selected, err := txQuantity(tx, sessionID, recipeID)
	if err != nil {
		return 0, err
	}
	if selected == 0 {
		return 0, nil
	}

	if selected == 1 {
		err = tx.Exec(`DELETE FROM box_items WHERE session_id = ? AND recipe_id = ?`, sessionID, recipeID)
	} else {
		err = tx.Exec(`UPDATE box_items SET quantity = quantity - 1, updated_at = ? WHERE session_id = ? AND recipe_id = ?`,
			time.Now(), sessionID, recipeID)
	}
	if err != nil {
		return selected, serr.Wrap(err, "failed to remove from box")
	}

	if err := tx.Commit(); err != nil {
		return selected, err
	}
	return selected - 1, nil
}

// ClearBox empties a session's box
func ClearBox(sessionID string) error {
	if err := WriteThrough(`DELETE FROM box_items WHERE session_id = ?`, sessionID); err != nil {
		return serr.Wrap(err, "failed to clear box")
	}
	return nil
}

func txQuantity(tx *DualTx, sessionID, recipeID string) (int, error) {
	var qty int
	err := tx.QueryRow(`SELECT quantity FROM box_items WHERE session_id = ? AND recipe_id = ?`,
		sessionID, recipeID).Scan(&qty)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, serr.Wrap(err, "failed to read box quantity")
	}
	return qty, nil
}

// BoxSummary is the price breakdown shown next to the menu
type BoxSummary struct {
	Status       selection.Status `json:"status" msgpack:"status"`
	Items        []BoxItem        `json:"items" msgpack:"items"`
	Servings     int              `json:"servings" msgpack:"servings"`
	ExtraCharges int              `json:"extra_charges" msgpack:"extra_charges"`
	Subtotal     int              `json:"subtotal" msgpack:"subtotal"`
	Shipping     int              `json:"shipping" msgpack:"shipping"`
	TotalPrice   int              `json:"total_price" msgpack:"total_price"`
}

// Summarize prices a box. Quantities for recipes missing from the menu are ignored.
func Summarize(recipes []Recipe, quantities map[string]int, plan selection.Plan, pricing price.Pricing) BoxSummary {
	var sum BoxSummary
	counted := make(map[string]int, len(quantities))

	for _, r := range recipes {
		qty := quantities[r.ID]
		if qty <= 0 {
			continue
		}
		counted[r.ID] = qty
		sum.Items = append(sum.Items, BoxItem{RecipeID: r.ID, Quantity: qty})
		sum.Servings += qty * r.Yields
		if c := r.Charge(); c != nil {
			sum.ExtraCharges += qty * *c
		}
	}

	sum.Status = plan.Status(counted)
	sum.Subtotal = sum.Servings*pricing.PerServing + sum.ExtraCharges
	if sum.Status.Total > 0 {
		sum.Shipping = pricing.Shipping
	}
	sum.TotalPrice = sum.Subtotal + sum.Shipping
	return sum
}

// LoadBox reads the menu and a session's box and prices it
func LoadBox(sessionID string, plan selection.Plan, pricing price.Pricing) ([]Recipe, map[string]int, BoxSummary, error) {
	recipes, err := ListRecipes()
	if err != nil {
		return nil, nil, BoxSummary{}, err
	}
	quantities, err := GetBox(sessionID)
	if err != nil {
		return nil, nil, BoxSummary{}, err
	}
	return recipes, quantities, Summarize(recipes, quantities, plan, pricing), nil
}
