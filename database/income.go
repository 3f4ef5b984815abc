package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"longchen/model"
)

// GetIncomeSettings returns the manual figures for one batch, or nil when
// none were ever saved (the statement then runs on all-zero defaults).
func GetIncomeSettings(db *sqlx.DB, orderGroupID string) (*model.IncomeSettings, error) {
	var s model.IncomeSettings
	err := db.Get(&s, "SELECT * FROM income_settings WHERE order_group_id = ?", orderGroupID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get income settings for %s: %w", orderGroupID, err)
	}
	return &s, nil
}

func GetAllIncomeSettings(db *sqlx.DB) (map[string]model.IncomeSettings, error) {
	var rows []model.IncomeSettings
	if err := db.Select(&rows, "SELECT * FROM income_settings"); err != nil {
		return nil, fmt.Errorf("failed to get income settings: %w", err)
	}
	settings := make(map[string]model.IncomeSettings, len(rows))
	for _, s := range rows {
		settings[s.OrderGroupID] = s
	}
	return settings, nil
}

func SaveIncomeSettings(db *sqlx.DB, s model.IncomeSettings) error {
	const q = `
		INSERT INTO income_settings
			(order_group_id, packaging_revenue, card_charge, card_fee,
			 intl_shipping, dad_receivable, payment_note)
		VALUES (:order_group_id, :packaging_revenue, :card_charge, :card_fee,
			 :intl_shipping, :dad_receivable, :payment_note)
		ON CONFLICT(order_group_id) DO UPDATE SET
			packaging_revenue = excluded.packaging_revenue,
			card_charge       = excluded.card_charge,
			card_fee          = excluded.card_fee,
			intl_shipping     = excluded.intl_shipping,
			dad_receivable    = excluded.dad_receivable,
			payment_note      = excluded.payment_note
	`
	if _, err := db.NamedExec(q, s); err != nil {
		return fmt.Errorf("SaveIncomeSettings (%s) failed: %w", s.OrderGroupID, err)
	}
	return nil
}
