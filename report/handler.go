package report

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/jmoiron/sqlx"

	"longchen/database"
	"longchen/model"
)

func parseMode(r *http.Request) Mode {
	if r.URL.Query().Get("mode") == string(ModeProduct) {
		return ModeProduct
	}
	return ModeBuyer
}

func parseDepositMode(r *http.Request) DepositMode {
	if r.URL.Query().Get("mode") == string(DepositExpense) {
		return DepositExpense
	}
	return DepositIncome
}

func loadBatch(db *sqlx.DB, w http.ResponseWriter, r *http.Request) (model.Snapshot, []model.OrderItem, bool) {
	groupID := r.URL.Query().Get("group")
	if groupID == "" {
		http.Error(w, "group parameter is required", http.StatusBadRequest)
		return model.Snapshot{}, nil, false
	}
	snap, err := database.LoadSnapshot(db)
	if err != nil {
		log.Printf("Error loading snapshot: %v", err)
		http.Error(w, "Failed to load data", http.StatusInternalServerError)
		return model.Snapshot{}, nil, false
	}
	return snap, FilterBatch(snap.OrderItems, groupID), true
}

// DetailHandler returns the 購買明細 buckets for one batch.
func DetailHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, batch, ok := loadBatch(db, w, r)
		if !ok {
			return
		}
		buckets := BuildDetailReport(batch, snap.ProductItems, parseMode(r))
		if buckets == nil {
			buckets = []model.DetailBucket{}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(buckets)
	}
}

// AnalysisHandler returns the 分析資料 rows for one batch, highest
// revenue first.
func AnalysisHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, batch, ok := loadBatch(db, w, r)
		if !ok {
			return
		}
		rows := BuildAnalysisReport(batch, snap.ProductItems, parseMode(r))
		if rows == nil {
			rows = []model.AnalysisRow{}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(rows)
	}
}

// DepositsHandler returns the 預收款項 lines for one batch and mode.
func DepositsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, batch, ok := loadBatch(db, w, r)
		if !ok {
			return
		}
		list := ClassifyDeposits(batch, parseDepositMode(r))
		if list == nil {
			list = []model.OrderItem{}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(list)
	}
}

// ViewsHandler recomputes every view for one batch in a single response.
func ViewsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groupID := r.URL.Query().Get("group")
		if groupID == "" {
			http.Error(w, "group parameter is required", http.StatusBadRequest)
			return
		}
		snap, err := database.LoadSnapshot(db)
		if err != nil {
			log.Printf("Error loading snapshot: %v", err)
			http.Error(w, "Failed to load data", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Recompute(snap, groupID))
	}
}
