package model

// ProductStats are the derived pricing figures for one product.
type ProductStats struct {
	TwdCost       float64 `json:"twdCost"`
	CostPlusShip  float64 `json:"costPlusShip"`
	PricePlusShip float64 `json:"pricePlusShip"`
	Profit        float64 `json:"profit"`
}

// DetailLine is one order line inside a detail bucket, joined against its
// product. ProductName is empty when the product no longer exists.
type DetailLine struct {
	OrderItem
	ProductName string  `json:"productName"`
	Total       float64 `json:"total"`
}

// DetailBucket is one buyer's (or one product's) slice of a batch in the
// 購買明細 view.
type DetailBucket struct {
	Label      string       `json:"label"`
	TotalQty   int          `json:"totalQty"`
	TotalPrice float64      `json:"totalPrice"`
	Lines      []DetailLine `json:"lines"`
}

// AnalysisRow is one row of the 分析資料 view.
type AnalysisRow struct {
	Label string  `json:"label"`
	Qty   int     `json:"qty"`
	Total float64 `json:"total"`
}

// IncomeStatement 收支計算 for one batch: totals folded over the batch's
// order lines plus the manual IncomeSettings figures.
type IncomeStatement struct {
	TotalJpy         float64 `json:"totalJpy"`
	TotalDomestic    float64 `json:"totalDomestic"`
	TotalHandling    float64 `json:"totalHandling"`
	TotalSales       float64 `json:"totalSales"`
	TotalBaseCost    float64 `json:"totalBaseCost"`
	AvgRateCost      float64 `json:"avgRateCost"`
	PackagingRevenue float64 `json:"packagingRevenue"`
	CardCharge       float64 `json:"cardCharge"`
	CardFee          float64 `json:"cardFee"`
	IntlShipping     float64 `json:"intlShipping"`
	TotalRevenue     float64 `json:"totalRevenue"`
	TotalExpenses    float64 `json:"totalExpenses"`
	NetProfit        float64 `json:"netProfit"`
	ProfitRate       float64 `json:"profitRate"`
	CardFeeRate      float64 `json:"cardFeeRate"`
	DadReceivable    float64 `json:"dadReceivable"`
	PaymentNote      string  `json:"paymentNote"`
}

// Views are every derived report for one batch, recomputed in full.
type Views struct {
	BatchID           string          `json:"batchId"`
	DetailByBuyer     []DetailBucket  `json:"detailByBuyer"`
	DetailByProduct   []DetailBucket  `json:"detailByProduct"`
	AnalysisByBuyer   []AnalysisRow   `json:"analysisByBuyer"`
	AnalysisByProduct []AnalysisRow   `json:"analysisByProduct"`
	DepositsIncome    []OrderItem     `json:"depositsIncome"`
	DepositsExpense   []OrderItem     `json:"depositsExpense"`
	Income            IncomeStatement `json:"income"`
}
