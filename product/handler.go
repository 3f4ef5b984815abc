package product

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	"longchen/config"
	"longchen/csvutil"
	"longchen/database"
	"longchen/idgen"
	"longchen/model"
	"longchen/pricing"
)

type itemView struct {
	model.ProductItem
	Stats model.ProductStats `json:"stats"`
}

type groupView struct {
	Group model.ProductGroup `json:"group"`
	Items []itemView         `json:"items"`
}

// ListProductsHandler returns every group with its items and the derived
// pricing figures, the shape the 產品管理 screen renders directly.
func ListProductsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groups, err := database.GetAllProductGroups(db)
		if err != nil {
			log.Printf("Error fetching product groups: %v", err)
			http.Error(w, "Failed to get product groups", http.StatusInternalServerError)
			return
		}
		items, err := database.GetAllProductItems(db)
		if err != nil {
			log.Printf("Error fetching product items: %v", err)
			http.Error(w, "Failed to get product items", http.StatusInternalServerError)
			return
		}

		byGroup := make(map[string][]itemView)
		for _, item := range items {
			byGroup[item.GroupID] = append(byGroup[item.GroupID], itemView{
				ProductItem: item,
				Stats:       pricing.Stats(item),
			})
		}

		views := make([]groupView, 0, len(groups))
		for _, g := range groups {
			items := byGroup[g.ID]
			if items == nil {
				items = []itemView{}
			}
			views = append(views, groupView{Group: g, Items: items})
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(views)
	}
}

func CreateGroupHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
			http.Error(w, "name is required", http.StatusBadRequest)
			return
		}

		groups, err := database.GetAllProductGroups(db)
		if err != nil {
			http.Error(w, "Failed to get product groups", http.StatusInternalServerError)
			return
		}
		ids := make([]string, len(groups))
		for i, g := range groups {
			ids[i] = g.ID
		}

		g := model.ProductGroup{ID: idgen.NextGroupID(ids), Name: req.Name}
		if err := database.CreateProductGroup(db, g); err != nil {
			log.Printf("Error creating product group: %v", err)
			http.Error(w, "Failed to create product group", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(g)
	}
}

func RenameGroupHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			GroupID string `json:"groupId"`
			Name    string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.GroupID == "" || req.Name == "" {
			http.Error(w, "groupId and name are required", http.StatusBadRequest)
			return
		}
		if err := database.RenameProductGroup(db, req.GroupID, req.Name); err != nil {
			log.Printf("Error renaming product group %s: %v", req.GroupID, err)
			http.Error(w, "Failed to rename product group", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func DeleteGroupHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			GroupID string `json:"groupId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.GroupID == "" {
			http.Error(w, "groupId is required", http.StatusBadRequest)
			return
		}
		if err := database.DeleteProductGroup(db, req.GroupID); err != nil {
			if errors.Is(err, database.ErrInUse) {
				http.Error(w, err.Error(), http.StatusConflict)
				return
			}
			log.Printf("Error deleting product group %s: %v", req.GroupID, err)
			http.Error(w, "Failed to delete product group", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// SaveItemHandler upserts a product. A request without an item id is a
// create: the id comes from the gap-fill generator and zero rates fall
// back to the configured defaults.
func SaveItemHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var item model.ProductItem
		if err := json.NewDecoder(r.Body).Decode(&item); err != nil || item.GroupID == "" {
			http.Error(w, "invalid product payload", http.StatusBadRequest)
			return
		}

		if item.ID == "" {
			siblings, err := database.GetProductItemsByGroup(db, item.GroupID)
			if err != nil {
				http.Error(w, "Failed to get group items", http.StatusInternalServerError)
				return
			}
			ids := make([]string, len(siblings))
			for i, s := range siblings {
				ids[i] = s.ID
			}
			item.ID = idgen.NextItemID(ids)

			cfg := config.GetConfig()
			if item.RateSale == 0 {
				item.RateSale = cfg.DefaultRateSale
			}
			if item.RateCost == 0 {
				item.RateCost = cfg.DefaultRateCost
			}
		}

		if err := database.UpsertProductItem(db, item); err != nil {
			log.Printf("Error saving product item: %v", err)
			http.Error(w, "Failed to save product item", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(item)
	}
}

func RenameItemHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			GroupID string `json:"groupId"`
			ItemID  string `json:"itemId"`
			Name    string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.GroupID == "" || req.ItemID == "" || req.Name == "" {
			http.Error(w, "groupId, itemId and name are required", http.StatusBadRequest)
			return
		}
		if err := database.RenameProductItem(db, req.GroupID, req.ItemID, req.Name); err != nil {
			log.Printf("Error renaming product item: %v", err)
			http.Error(w, "Failed to rename product item", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func DeleteItemHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			GroupID string `json:"groupId"`
			ItemID  string `json:"itemId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.GroupID == "" || req.ItemID == "" {
			http.Error(w, "groupId and itemId are required", http.StatusBadRequest)
			return
		}
		if err := database.DeleteProductItem(db, req.GroupID, req.ItemID); err != nil {
			if errors.Is(err, database.ErrInUse) {
				http.Error(w, err.Error(), http.StatusConflict)
				return
			}
			log.Printf("Error deleting product item: %v", err)
			http.Error(w, "Failed to delete product item", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ExportProductsHandler emits the 產品資料 CSV.
func ExportProductsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groups, err := database.GetAllProductGroups(db)
		if err != nil {
			http.Error(w, "Failed to get product groups for export", http.StatusInternalServerError)
			return
		}
		items, err := database.GetAllProductItems(db)
		if err != nil {
			http.Error(w, "Failed to get product items for export", http.StatusInternalServerError)
			return
		}
		groupNames := make(map[string]string, len(groups))
		for _, g := range groups {
			groupNames[g.ID] = g.Name
		}

		b := csvutil.NewBuilder()
		b.WriteRow("類別ID", "類別名稱", "商品ID", "商品名稱", "日幣價格", "境內運", "手續費", "國際運", "售價匯率", "成本匯率", "輸入價格")
		for _, item := range items {
			b.WriteRow(
				item.GroupID, groupNames[item.GroupID], item.ID, item.Name,
				csvutil.Num(item.JpyPrice), csvutil.Num(item.DomesticShip),
				csvutil.Num(item.HandlingFee), csvutil.Num(item.IntlShip),
				csvutil.Num(item.RateSale), csvutil.Num(item.RateCost),
				csvutil.Num(item.InputPrice),
			)
		}

		filename := "產品資料_" + time.Now().Format("2006-01-02") + ".csv"
		csvutil.ServeDownload(w, filename, b)
	}
}
