package order

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"

	"longchen/csvutil"
	"longchen/database"
	"longchen/idgen"
	"longchen/model"
	"longchen/report"
)

func ListGroupsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groups, err := database.GetAllOrderGroups(db)
		if err != nil {
			log.Printf("Error fetching order groups: %v", err)
			http.Error(w, "Failed to get order groups", http.StatusInternalServerError)
			return
		}
		if groups == nil {
			groups = []model.OrderGroup{}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(groups)
	}
}

// CreateGroupHandler creates the next batch for a year/month. The first
// batch of a month gets the bare YYYYMM id, later ones a letter suffix.
func CreateGroupHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Year  int `json:"year"`
			Month int `json:"month"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Year == 0 || req.Month < 1 || req.Month > 12 {
			http.Error(w, "valid year and month are required", http.StatusBadRequest)
			return
		}

		existing, err := database.GetOrderGroupIDsForMonth(db, req.Year, req.Month)
		if err != nil {
			http.Error(w, "Failed to get existing batches", http.StatusInternalServerError)
			return
		}

		base := fmt.Sprintf("%d%02d", req.Year, req.Month)
		id := idgen.NextOrderGroupID(req.Year, req.Month, existing)
		g := model.OrderGroup{
			ID:     id,
			Year:   req.Year,
			Month:  req.Month,
			Suffix: strings.TrimPrefix(id, base),
		}
		if err := database.CreateOrderGroup(db, g); err != nil {
			log.Printf("Error creating order group: %v", err)
			http.Error(w, "Failed to create order group", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(g)
	}
}

func DeleteGroupHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID string `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
			http.Error(w, "id is required", http.StatusBadRequest)
			return
		}
		if err := database.DeleteOrderGroup(db, req.ID); err != nil {
			if errors.Is(err, database.ErrInUse) {
				http.Error(w, err.Error(), http.StatusConflict)
				return
			}
			log.Printf("Error deleting order group %s: %v", req.ID, err)
			http.Error(w, "Failed to delete order group", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ListItemsHandler returns one batch's lines in screen order (product
// group, product item, buyer).
func ListItemsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groupID := r.URL.Query().Get("group")
		if groupID == "" {
			http.Error(w, "group parameter is required", http.StatusBadRequest)
			return
		}
		items, err := database.GetOrderItemsByGroup(db, groupID)
		if err != nil {
			log.Printf("Error fetching order items for %s: %v", groupID, err)
			http.Error(w, "Failed to get order items", http.StatusInternalServerError)
			return
		}
		sorted := report.FilterBatch(items, groupID)
		if sorted == nil {
			sorted = []model.OrderItem{}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(sorted)
	}
}

// SaveItemHandler upserts one order line. New lines get an opaque unique
// token and must reference a product that exists right now; the id strings
// survive on the line even if the product is deleted later.
func SaveItemHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var item model.OrderItem
		if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
			http.Error(w, "invalid order payload", http.StatusBadRequest)
			return
		}
		if item.OrderGroupID == "" || item.Buyer == "" {
			http.Error(w, "orderGroupId and buyer are required", http.StatusBadRequest)
			return
		}

		if item.ID == "" {
			ok, err := database.ProductItemExists(db, item.ProductGroupID, item.ProductItemID)
			if err != nil {
				http.Error(w, "Failed to check product reference", http.StatusInternalServerError)
				return
			}
			if !ok {
				http.Error(w, "product does not exist", http.StatusBadRequest)
				return
			}
			item.ID = idgen.NewOrderItemID()
		}

		if err := database.UpsertOrderItem(db, item); err != nil {
			log.Printf("Error saving order item: %v", err)
			http.Error(w, "Failed to save order item", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(item)
	}
}

func DeleteItemHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID string `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
			http.Error(w, "id is required", http.StatusBadRequest)
			return
		}
		if err := database.DeleteOrderItem(db, req.ID); err != nil {
			log.Printf("Error deleting order item %s: %v", req.ID, err)
			http.Error(w, "Failed to delete order item", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ExportItemsHandler emits the raw 訂單 CSV for one batch.
func ExportItemsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groupID := r.URL.Query().Get("group")
		if groupID == "" {
			http.Error(w, "group parameter is required", http.StatusBadRequest)
			return
		}
		snap, err := database.LoadSnapshot(db)
		if err != nil {
			http.Error(w, "Failed to load data for export", http.StatusInternalServerError)
			return
		}

		productNames := make(map[string]string, len(snap.ProductItems))
		for _, p := range snap.ProductItems {
			productNames[p.GroupID+"-"+p.ID] = p.Name
		}

		b := csvutil.NewBuilder()
		b.WriteRow("訂單批次", "商品類別", "商品ID", "商品名稱", "描述", "買家", "數量", "備註", "說明", "日期")
		for _, item := range report.FilterBatch(snap.OrderItems, groupID) {
			b.WriteRow(
				item.OrderGroupID, item.ProductGroupID, item.ProductItemID,
				productNames[item.ProductGroupID+"-"+item.ProductItemID],
				item.Description, item.Buyer, csvutil.Int(item.Quantity),
				item.Remarks, item.Note, item.Date,
			)
		}
		csvutil.ServeDownload(w, "訂單_"+groupID+".csv", b)
	}
}
