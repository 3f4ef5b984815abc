package database

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
)

const schema = `
CREATE TABLE IF NOT EXISTS product_groups (
	id   TEXT PRIMARY KEY,
	name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS product_items (
	group_id      TEXT NOT NULL,
	id            TEXT NOT NULL,
	name          TEXT NOT NULL DEFAULT '',
	jpy_price     REAL NOT NULL DEFAULT 0,
	domestic_ship REAL NOT NULL DEFAULT 0,
	handling_fee  REAL NOT NULL DEFAULT 0,
	intl_ship     REAL NOT NULL DEFAULT 0,
	rate_sale     REAL NOT NULL DEFAULT 0,
	rate_cost     REAL NOT NULL DEFAULT 0,
	input_price   REAL NOT NULL DEFAULT 0,
	PRIMARY KEY (group_id, id)
);

CREATE TABLE IF NOT EXISTS order_groups (
	id     TEXT PRIMARY KEY,
	year   INTEGER NOT NULL,
	month  INTEGER NOT NULL,
	suffix TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS order_items (
	id               TEXT PRIMARY KEY,
	order_group_id   TEXT NOT NULL,
	product_group_id TEXT NOT NULL,
	product_item_id  TEXT NOT NULL,
	description      TEXT NOT NULL DEFAULT '',
	buyer            TEXT NOT NULL DEFAULT '',
	quantity         INTEGER NOT NULL DEFAULT 0,
	remarks          TEXT NOT NULL DEFAULT '',
	note             TEXT NOT NULL DEFAULT '',
	date             TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_order_items_group ON order_items (order_group_id);
CREATE INDEX IF NOT EXISTS idx_order_items_product ON order_items (product_group_id, product_item_id);

CREATE TABLE IF NOT EXISTS income_settings (
	order_group_id    TEXT PRIMARY KEY,
	packaging_revenue REAL NOT NULL DEFAULT 0,
	card_charge       REAL NOT NULL DEFAULT 0,
	card_fee          REAL NOT NULL DEFAULT 0,
	intl_shipping     REAL NOT NULL DEFAULT 0,
	dad_receivable    REAL NOT NULL DEFAULT 0,
	payment_note      TEXT NOT NULL DEFAULT ''
);
`

// InitDatabase applies the schema and seeds the starter categories when
// the database is brand new.
func InitDatabase(db *sqlx.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return seedDefaults(db)
}

func seedDefaults(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, "SELECT COUNT(*) FROM product_groups"); err != nil {
		return fmt.Errorf("failed to count product groups: %w", err)
	}
	if n > 0 {
		return nil
	}

	log.Println("Empty database detected, seeding default product groups...")
	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	for i, name := range []string{"吊飾", "文具", "其他"} {
		id := fmt.Sprintf("%02d", i+1)
		if _, err := tx.Exec(`INSERT INTO product_groups (id, name) VALUES (?, ?)`, id, name); err != nil {
			return fmt.Errorf("failed to seed product group %s: %w", id, err)
		}
	}
	return tx.Commit()
}
