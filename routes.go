package main

import (
	"net/http"

	"github.com/jmoiron/sqlx"

	"longchen/income"
	"longchen/order"
	"longchen/product"
	"longchen/report"
)

func SetupRoutes(mux *http.ServeMux, dbConn *sqlx.DB) {

	mux.HandleFunc("/api/products", product.ListProductsHandler(dbConn))
	mux.HandleFunc("/api/products/groups", product.CreateGroupHandler(dbConn))
	mux.HandleFunc("/api/products/groups/rename", product.RenameGroupHandler(dbConn))
	mux.HandleFunc("/api/products/groups/delete", product.DeleteGroupHandler(dbConn))
	mux.HandleFunc("/api/products/save", product.SaveItemHandler(dbConn))
	mux.HandleFunc("/api/products/rename", product.RenameItemHandler(dbConn))
	mux.HandleFunc("/api/products/delete", product.DeleteItemHandler(dbConn))
	mux.HandleFunc("/api/products/export", product.ExportProductsHandler(dbConn))

	mux.HandleFunc("/api/orders/groups", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			order.ListGroupsHandler(dbConn)(w, r)
		case http.MethodPost:
			order.CreateGroupHandler(dbConn)(w, r)
		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/api/orders/groups/delete", order.DeleteGroupHandler(dbConn))
	mux.HandleFunc("/api/orders", order.ListItemsHandler(dbConn))
	mux.HandleFunc("/api/orders/save", order.SaveItemHandler(dbConn))
	mux.HandleFunc("/api/orders/delete", order.DeleteItemHandler(dbConn))
	mux.HandleFunc("/api/orders/export", order.ExportItemsHandler(dbConn))

	mux.HandleFunc("/api/reports/views", report.ViewsHandler(dbConn))
	mux.HandleFunc("/api/reports/detail", report.DetailHandler(dbConn))
	mux.HandleFunc("/api/reports/detail/export", report.ExportDetailsHandler(dbConn))
	mux.HandleFunc("/api/reports/analysis", report.AnalysisHandler(dbConn))
	mux.HandleFunc("/api/reports/analysis/export", report.ExportAnalysisHandler(dbConn))
	mux.HandleFunc("/api/reports/deposits", report.DepositsHandler(dbConn))
	mux.HandleFunc("/api/reports/deposits/export", report.ExportDepositsHandler(dbConn))

	mux.HandleFunc("/api/income", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			income.GetHandler(dbConn)(w, r)
		case http.MethodPost:
			income.SaveHandler(dbConn)(w, r)
		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/api/income/export", income.ExportHandler(dbConn))

	mux.HandleFunc("/api/config", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			GetConfigHandler()(w, r)
		case http.MethodPost:
			SaveConfigHandler()(w, r)
		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}
	})
}
