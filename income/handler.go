package income

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/jmoiron/sqlx"

	"longchen/csvutil"
	"longchen/database"
	"longchen/model"
	"longchen/report"
)

type statementView struct {
	model.IncomeStatement
	DadShare    float64 `json:"dadShare"`
	SisterShare float64 `json:"sisterShare"`
}

func computeStatement(db *sqlx.DB, orderGroupID string) (statementView, error) {
	items, err := database.GetOrderItemsByGroup(db, orderGroupID)
	if err != nil {
		return statementView{}, err
	}
	products, err := database.GetAllProductItems(db)
	if err != nil {
		return statementView{}, err
	}
	settings, err := database.GetIncomeSettings(db, orderGroupID)
	if err != nil {
		return statementView{}, err
	}

	st := report.ComputeIncomeStatement(items, products, settings)
	dad, sister := report.SplitShares(st.NetProfit)
	return statementView{IncomeStatement: st, DadShare: dad, SisterShare: sister}, nil
}

// GetHandler returns the 收支計算 statement for one batch.
func GetHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groupID := r.URL.Query().Get("group")
		if groupID == "" {
			http.Error(w, "group parameter is required", http.StatusBadRequest)
			return
		}
		view, err := computeStatement(db, groupID)
		if err != nil {
			log.Printf("Error computing income statement for %s: %v", groupID, err)
			http.Error(w, "Failed to compute income statement", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(view)
	}
}

// SaveHandler stores the manual figures for one batch.
func SaveHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var s model.IncomeSettings
		if err := json.NewDecoder(r.Body).Decode(&s); err != nil || s.OrderGroupID == "" {
			http.Error(w, "orderGroupId is required", http.StatusBadRequest)
			return
		}
		if err := database.SaveIncomeSettings(db, s); err != nil {
			log.Printf("Error saving income settings: %v", err)
			http.Error(w, "Failed to save income settings", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ExportHandler emits the 收支計算表 CSV for one batch.
func ExportHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groupID := r.URL.Query().Get("group")
		if groupID == "" {
			http.Error(w, "group parameter is required", http.StatusBadRequest)
			return
		}
		v, err := computeStatement(db, groupID)
		if err != nil {
			log.Printf("Error computing income statement for export: %v", err)
			http.Error(w, "Failed to compute income statement", http.StatusInternalServerError)
			return
		}

		b := csvutil.NewBuilder()
		b.WriteRow("項目", "數值")
		b.WriteRow("日幣總計", csvutil.Num(v.TotalJpy))
		b.WriteRow("境內運總計", csvutil.Num(v.TotalDomestic))
		b.WriteRow("手續費總計", csvutil.Num(v.TotalHandling))
		b.WriteRow("商品收入", csvutil.Num(v.TotalSales))
		b.WriteRow("包材收入", csvutil.Num(v.PackagingRevenue))
		b.WriteRow("刷卡費(成本)", csvutil.Num(v.CardCharge))
		b.WriteRow("刷卡手續費", csvutil.Num(v.CardFee))
		b.WriteRow("國際運費", csvutil.Num(v.IntlShipping))
		b.WriteRow("平均匯率", fmt.Sprintf("%.3f", v.AvgRateCost))
		b.WriteRow("手續費佔比", fmt.Sprintf("%.2f%%", v.CardFeeRate))
		b.WriteRow("總利潤", csvutil.Num(v.NetProfit))
		b.WriteRow("利潤率", fmt.Sprintf("%.2f%%", v.ProfitRate))
		b.WriteRow("利潤(爸爸20%)", csvutil.Num(v.DadShare))
		b.WriteRow("利潤(妹妹80%)", csvutil.Num(v.SisterShare))
		b.WriteRow("爸爸應收", csvutil.Num(v.DadReceivable))
		b.WriteRow("收款說明", v.PaymentNote)
		csvutil.ServeDownload(w, "收支計算表_"+groupID+".csv", b)
	}
}
