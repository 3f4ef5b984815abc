package database

import (
	"github.com/jmoiron/sqlx"

	"longchen/model"
)

// LoadSnapshot reads the whole store in one pass. Every report endpoint
// recomputes from a snapshot like this one; there is no incremental state.
func LoadSnapshot(db *sqlx.DB) (model.Snapshot, error) {
	var snap model.Snapshot
	var err error

	if snap.ProductGroups, err = GetAllProductGroups(db); err != nil {
		return model.Snapshot{}, err
	}
	if snap.ProductItems, err = GetAllProductItems(db); err != nil {
		return model.Snapshot{}, err
	}
	if snap.OrderGroups, err = GetAllOrderGroups(db); err != nil {
		return model.Snapshot{}, err
	}
	if snap.OrderItems, err = GetAllOrderItems(db); err != nil {
		return model.Snapshot{}, err
	}
	if snap.Settings, err = GetAllIncomeSettings(db); err != nil {
		return model.Snapshot{}, err
	}
	return snap, nil
}
