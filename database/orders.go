package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"longchen/model"
)

func GetAllOrderGroups(db *sqlx.DB) ([]model.OrderGroup, error) {
	var groups []model.OrderGroup
	err := db.Select(&groups, "SELECT * FROM order_groups ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to get order groups: %w", err)
	}
	return groups, nil
}

// GetOrderGroupIDsForMonth returns the batch ids already created for one
// exact year/month, the input the batch id generator works from.
func GetOrderGroupIDsForMonth(db *sqlx.DB, year, month int) ([]string, error) {
	var ids []string
	err := db.Select(&ids, "SELECT id FROM order_groups WHERE year = ? AND month = ? ORDER BY id", year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to get order group ids for %d-%02d: %w", year, month, err)
	}
	return ids, nil
}

func CreateOrderGroup(db *sqlx.DB, g model.OrderGroup) error {
	const q = `INSERT INTO order_groups (id, year, month, suffix) VALUES (?, ?, ?, ?)`
	if _, err := db.Exec(q, g.ID, g.Year, g.Month, g.Suffix); err != nil {
		return fmt.Errorf("failed to create order group %s: %w", g.ID, err)
	}
	return nil
}

// DeleteOrderGroup refuses to delete a batch that still has order lines.
func DeleteOrderGroup(db *sqlx.DB, id string) error {
	var n int
	if err := db.Get(&n, "SELECT COUNT(*) FROM order_items WHERE order_group_id = ?", id); err != nil {
		return fmt.Errorf("failed to count order items in batch %s: %w", id, err)
	}
	if n > 0 {
		return fmt.Errorf("%w: 批次 %s 內尚有 %d 筆訂單", ErrInUse, id, n)
	}
	if _, err := db.Exec(`DELETE FROM order_groups WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete order group %s: %w", id, err)
	}
	return nil
}

func GetAllOrderItems(db *sqlx.DB) ([]model.OrderItem, error) {
	var items []model.OrderItem
	err := db.Select(&items, "SELECT * FROM order_items")
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}
	return items, nil
}

func GetOrderItemsByGroup(db *sqlx.DB, orderGroupID string) ([]model.OrderItem, error) {
	var items []model.OrderItem
	err := db.Select(&items, "SELECT * FROM order_items WHERE order_group_id = ?", orderGroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items for batch %s: %w", orderGroupID, err)
	}
	return items, nil
}

func UpsertOrderItem(db *sqlx.DB, item model.OrderItem) error {
	const q = `
		INSERT INTO order_items
			(id, order_group_id, product_group_id, product_item_id,
			 description, buyer, quantity, remarks, note, date)
		VALUES (:id, :order_group_id, :product_group_id, :product_item_id,
			 :description, :buyer, :quantity, :remarks, :note, :date)
		ON CONFLICT(id) DO UPDATE SET
			order_group_id   = excluded.order_group_id,
			product_group_id = excluded.product_group_id,
			product_item_id  = excluded.product_item_id,
			description      = excluded.description,
			buyer            = excluded.buyer,
			quantity         = excluded.quantity,
			remarks          = excluded.remarks,
			note             = excluded.note,
			date             = excluded.date
	`
	if _, err := db.NamedExec(q, item); err != nil {
		return fmt.Errorf("UpsertOrderItem (%s) failed: %w", item.ID, err)
	}
	return nil
}

func DeleteOrderItem(db *sqlx.DB, id string) error {
	if _, err := db.Exec(`DELETE FROM order_items WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete order item %s: %w", id, err)
	}
	return nil
}
