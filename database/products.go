package database

import (
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"longchen/model"
)

// ErrInUse marks a delete refused because other records still reference
// the target. Handlers turn it into a 409.
var ErrInUse = errors.New("record is still referenced")

func GetAllProductGroups(db *sqlx.DB) ([]model.ProductGroup, error) {
	var groups []model.ProductGroup
	err := db.Select(&groups, "SELECT id, name FROM product_groups ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to get product groups: %w", err)
	}
	return groups, nil
}

func GetAllProductItems(db *sqlx.DB) ([]model.ProductItem, error) {
	var items []model.ProductItem
	err := db.Select(&items, "SELECT * FROM product_items ORDER BY group_id, id")
	if err != nil {
		return nil, fmt.Errorf("failed to get product items: %w", err)
	}
	return items, nil
}

func GetProductItemsByGroup(db *sqlx.DB, groupID string) ([]model.ProductItem, error) {
	var items []model.ProductItem
	err := db.Select(&items, "SELECT * FROM product_items WHERE group_id = ? ORDER BY id", groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product items for group %s: %w", groupID, err)
	}
	return items, nil
}

// ProductItemExists reports whether (groupID, itemID) resolves right now.
// Orders keep the literal id strings, so callers check at write time only.
func ProductItemExists(db *sqlx.DB, groupID, itemID string) (bool, error) {
	var n int
	err := db.Get(&n, "SELECT COUNT(*) FROM product_items WHERE group_id = ? AND id = ?", groupID, itemID)
	if err != nil {
		return false, fmt.Errorf("failed to check product item %s-%s: %w", groupID, itemID, err)
	}
	return n > 0, nil
}

func CreateProductGroup(db *sqlx.DB, g model.ProductGroup) error {
	_, err := db.Exec(`INSERT INTO product_groups (id, name) VALUES (?, ?)`, g.ID, g.Name)
	if err != nil {
		return fmt.Errorf("failed to create product group %s: %w", g.ID, err)
	}
	return nil
}

func RenameProductGroup(db *sqlx.DB, id, name string) error {
	_, err := db.Exec(`UPDATE product_groups SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return fmt.Errorf("failed to rename product group %s: %w", id, err)
	}
	return nil
}

// DeleteProductGroup refuses to delete a group that still has items.
func DeleteProductGroup(db *sqlx.DB, id string) error {
	var n int
	if err := db.Get(&n, "SELECT COUNT(*) FROM product_items WHERE group_id = ?", id); err != nil {
		return fmt.Errorf("failed to count items in group %s: %w", id, err)
	}
	if n > 0 {
		return fmt.Errorf("%w: 類別 %s 內尚有 %d 個商品", ErrInUse, id, n)
	}
	if _, err := db.Exec(`DELETE FROM product_groups WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete product group %s: %w", id, err)
	}
	return nil
}

func UpsertProductItem(db *sqlx.DB, item model.ProductItem) error {
	const q = `
		INSERT INTO product_items
			(group_id, id, name, jpy_price, domestic_ship, handling_fee,
			 intl_ship, rate_sale, rate_cost, input_price)
		VALUES (:group_id, :id, :name, :jpy_price, :domestic_ship, :handling_fee,
			 :intl_ship, :rate_sale, :rate_cost, :input_price)
		ON CONFLICT(group_id, id) DO UPDATE SET
			name          = excluded.name,
			jpy_price     = excluded.jpy_price,
			domestic_ship = excluded.domestic_ship,
			handling_fee  = excluded.handling_fee,
			intl_ship     = excluded.intl_ship,
			rate_sale     = excluded.rate_sale,
			rate_cost     = excluded.rate_cost,
			input_price   = excluded.input_price
	`
	if _, err := db.NamedExec(q, item); err != nil {
		return fmt.Errorf("UpsertProductItem (%s-%s) failed: %w", item.GroupID, item.ID, err)
	}
	return nil
}

func RenameProductItem(db *sqlx.DB, groupID, itemID, name string) error {
	_, err := db.Exec(`UPDATE product_items SET name = ? WHERE group_id = ? AND id = ?`, name, groupID, itemID)
	if err != nil {
		return fmt.Errorf("failed to rename product item %s-%s: %w", groupID, itemID, err)
	}
	return nil
}

// DeleteProductItem refuses to delete a product that orders still reference.
func DeleteProductItem(db *sqlx.DB, groupID, itemID string) error {
	var n int
	err := db.Get(&n, "SELECT COUNT(*) FROM order_items WHERE product_group_id = ? AND product_item_id = ?", groupID, itemID)
	if err != nil {
		return fmt.Errorf("failed to count orders for product %s-%s: %w", groupID, itemID, err)
	}
	if n > 0 {
		return fmt.Errorf("%w: 商品 %s-%s 已被 %d 筆訂單引用", ErrInUse, groupID, itemID, n)
	}
	if _, err := db.Exec(`DELETE FROM product_items WHERE group_id = ? AND id = ?`, groupID, itemID); err != nil {
		return fmt.Errorf("failed to delete product item %s-%s: %w", groupID, itemID, err)
	}
	return nil
}
