package report

import (
	"net/http"

	"github.com/jmoiron/sqlx"

	"longchen/csvutil"
)

// ExportDetailsHandler emits the 購買明細 CSV, one row per order line,
// grouped and labelled the same way the screen shows them.
func ExportDetailsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, batch, ok := loadBatch(db, w, r)
		if !ok {
			return
		}
		mode := parseMode(r)
		buckets := BuildDetailReport(batch, snap.ProductItems, mode)

		b := csvutil.NewBuilder()
		if mode == ModeProduct {
			b.WriteRow("商品", "買家", "描述", "數量", "單項總價", "商品總計")
		} else {
			b.WriteRow("買家", "商品描述", "商品原名", "數量", "單項總價", "買家總計")
		}
		for _, g := range buckets {
			for _, line := range g.Lines {
				if mode == ModeProduct {
					b.WriteRow(g.Label, line.Buyer, line.Description,
						csvutil.Int(line.Quantity), csvutil.Num(line.Total), csvutil.Num(g.TotalPrice))
				} else {
					b.WriteRow(g.Label, line.Description, line.ProductName,
						csvutil.Int(line.Quantity), csvutil.Num(line.Total), csvutil.Num(g.TotalPrice))
				}
			}
		}
		csvutil.ServeDownload(w, "購買明細_"+string(mode)+"_"+r.URL.Query().Get("group")+".csv", b)
	}
}

// ExportAnalysisHandler emits the 分析資料 CSV.
func ExportAnalysisHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, batch, ok := loadBatch(db, w, r)
		if !ok {
			return
		}
		mode := parseMode(r)
		rows := BuildAnalysisReport(batch, snap.ProductItems, mode)

		b := csvutil.NewBuilder()
		if mode == ModeProduct {
			b.WriteRow("商品", "總數量", "總金額")
		} else {
			b.WriteRow("買家", "總數量", "總金額")
		}
		for _, row := range rows {
			b.WriteRow(row.Label, csvutil.Int(row.Qty), csvutil.Num(row.Total))
		}
		csvutil.ServeDownload(w, "分析資料_"+string(mode)+"_"+r.URL.Query().Get("group")+".csv", b)
	}
}

// ExportDepositsHandler emits the 預收款項 CSV for the selected mode.
func ExportDepositsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, batch, ok := loadBatch(db, w, r)
		if !ok {
			return
		}
		list := ClassifyDeposits(batch, parseDepositMode(r))

		productNames := make(map[string]string, len(snap.ProductItems))
		for _, p := range snap.ProductItems {
			productNames[p.GroupID+"-"+p.ID] = p.Name
		}

		b := csvutil.NewBuilder()
		b.WriteRow("訂購者", "備註欄", "說明", "商品名稱", "描述", "數量", "日期")
		for _, item := range list {
			b.WriteRow(
				item.Buyer, item.Remarks, item.Note,
				productNames[item.ProductGroupID+"-"+item.ProductItemID],
				item.Description, csvutil.Int(item.Quantity), item.Date,
			)
		}
		csvutil.ServeDownload(w, "預收款項_"+r.URL.Query().Get("group")+".csv", b)
	}
}
