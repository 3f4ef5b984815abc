package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"longchen/model"
)

func fixtureProducts() []model.ProductItem {
	return []model.ProductItem{
		{GroupID: "01", ID: "01", Name: "壓克力吊飾", JpyPrice: 1000, RateCost: 0.205, DomesticShip: 20, HandlingFee: 10, InputPrice: 300},
		{GroupID: "01", ID: "02", Name: "透明資料夾", JpyPrice: 500, RateCost: 0.2, InputPrice: 150},
	}
}

func fixtureOrders() []model.OrderItem {
	return []model.OrderItem{
		{ID: "a", OrderGroupID: "202505", ProductGroupID: "01", ProductItemID: "01", Buyer: "Amy", Quantity: 2},
		{ID: "b", OrderGroupID: "202505", ProductGroupID: "01", ProductItemID: "01", Buyer: "Bob", Quantity: 1},
		{ID: "c", OrderGroupID: "202505", ProductGroupID: "01", ProductItemID: "02", Buyer: "Amy", Quantity: 3},
		{ID: "d", OrderGroupID: "202505", ProductGroupID: "09", ProductItemID: "99", Buyer: "Cara", Quantity: 1},
		{ID: "e", OrderGroupID: "202506", ProductGroupID: "01", ProductItemID: "01", Buyer: "Dan", Quantity: 4},
	}
}

func TestFilterBatch(t *testing.T) {
	batch := FilterBatch(fixtureOrders(), "202505")
	require.Len(t, batch, 4)
	for _, it := range batch {
		assert.Equal(t, "202505", it.OrderGroupID)
	}
	// Ordered by product group, product item, then buyer.
	ids := []string{batch[0].ID, batch[1].ID, batch[2].ID, batch[3].ID}
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids)
}

func TestBuildDetailReportByBuyer(t *testing.T) {
	batch := FilterBatch(fixtureOrders(), "202505")
	buckets := BuildDetailReport(batch, fixtureProducts(), ModeBuyer)
	require.Len(t, buckets, 3)

	assert.Equal(t, "Amy", buckets[0].Label)
	assert.Equal(t, 5, buckets[0].TotalQty)
	assert.InDelta(t, 2*300+3*150, buckets[0].TotalPrice, 1e-9)
	require.Len(t, buckets[0].Lines, 2)

	// Dangling product reference stays in the report at zero value.
	assert.Equal(t, "Cara", buckets[2].Label)
	assert.Zero(t, buckets[2].TotalPrice)
	assert.Equal(t, "", buckets[2].Lines[0].ProductName)
}

func TestBuildDetailReportByProduct(t *testing.T) {
	batch := FilterBatch(fixtureOrders(), "202505")
	buckets := BuildDetailReport(batch, fixtureProducts(), ModeProduct)
	require.Len(t, buckets, 3)

	labels := make([]string, len(buckets))
	for i, b := range buckets {
		labels[i] = b.Label
	}
	assert.Contains(t, labels, UnknownProductName)
	assert.Contains(t, labels, "壓克力吊飾")
	assert.Contains(t, labels, "透明資料夾")
}

func TestReportsNeverDropItems(t *testing.T) {
	batch := FilterBatch(fixtureOrders(), "202505")
	wantQty := 0
	for _, it := range batch {
		wantQty += it.Quantity
	}
	for _, mode := range []Mode{ModeBuyer, ModeProduct} {
		gotDetail := 0
		for _, b := range BuildDetailReport(batch, fixtureProducts(), mode) {
			gotDetail += b.TotalQty
		}
		assert.Equal(t, wantQty, gotDetail, "detail mode %s", mode)

		gotAnalysis := 0
		for _, row := range BuildAnalysisReport(batch, fixtureProducts(), mode) {
			gotAnalysis += row.Qty
		}
		assert.Equal(t, wantQty, gotAnalysis, "analysis mode %s", mode)
	}
}

func TestAnalysisGrandTotalIndependentOfMode(t *testing.T) {
	batch := FilterBatch(fixtureOrders(), "202505")
	products := fixtureProducts()

	sum := func(rows []model.AnalysisRow) float64 {
		var s float64
		for _, r := range rows {
			s += r.Total
		}
		return s
	}
	byBuyer := sum(BuildAnalysisReport(batch, products, ModeBuyer))
	byProduct := sum(BuildAnalysisReport(batch, products, ModeProduct))
	want := float64(2*300 + 1*300 + 3*150) // dangling line contributes 0
	assert.InDelta(t, want, byBuyer, 1e-9)
	assert.InDelta(t, want, byProduct, 1e-9)
}

func TestAnalysisSortedByRevenueDescending(t *testing.T) {
	batch := FilterBatch(fixtureOrders(), "202505")
	rows := BuildAnalysisReport(batch, fixtureProducts(), ModeBuyer)
	require.NotEmpty(t, rows)
	for i := 1; i < len(rows); i++ {
		assert.GreaterOrEqual(t, rows[i-1].Total, rows[i].Total)
	}
	assert.Equal(t, "Amy", rows[0].Label)
}

func TestClassifyDeposits(t *testing.T) {
	items := []model.OrderItem{
		{ID: "1", Buyer: "王小明", Remarks: "退貨", Quantity: 1},
		{ID: "2", Buyer: "李大華", Remarks: "已付訂金", Quantity: 2},
		{ID: "3", Buyer: "陳匯款", Remarks: "", Quantity: 1},
		{ID: "4", Buyer: "林無名", Remarks: "", Quantity: 1},
		{ID: "5", Buyer: "張三", Remarks: "", Quantity: -2},
		{ID: "6", Buyer: "趙六", Remarks: "代支付款", Quantity: 1},
	}

	income := ClassifyDeposits(items, DepositIncome)
	expense := ClassifyDeposits(items, DepositExpense)

	idsOf := func(list []model.OrderItem) []string {
		var ids []string
		for _, it := range list {
			ids = append(ids, it.ID)
		}
		return ids
	}

	// 退/支 remarks go to expense and never to income.
	assert.Contains(t, idsOf(expense), "1")
	assert.Contains(t, idsOf(expense), "6")
	assert.NotContains(t, idsOf(income), "1")
	assert.NotContains(t, idsOf(income), "6")

	// Negative quantity is an expense even without remarks.
	assert.Contains(t, idsOf(expense), "5")

	// Remarks or a 匯 marker in the buyer name count as income.
	assert.Contains(t, idsOf(income), "2")
	assert.Contains(t, idsOf(income), "3")

	// A plain line belongs to neither mode.
	assert.NotContains(t, idsOf(income), "4")
	assert.NotContains(t, idsOf(expense), "4")
}

func TestComputeIncomeStatement(t *testing.T) {
	batch := FilterBatch(fixtureOrders(), "202505")
	settings := &model.IncomeSettings{
		OrderGroupID:     "202505",
		PackagingRevenue: 100,
		CardCharge:       50,
		CardFee:          5,
		IntlShipping:     20,
		DadReceivable:    999,
		PaymentNote:      "轉帳",
	}

	st := ComputeIncomeStatement(batch, fixtureProducts(), settings)

	assert.InDelta(t, 1350, st.TotalSales, 1e-9)
	assert.InDelta(t, 3*1000+3*500, st.TotalJpy, 1e-9)
	assert.InDelta(t, 3*20, st.TotalDomestic, 1e-9)
	assert.InDelta(t, 3*10, st.TotalHandling, 1e-9)
	assert.InDelta(t, 3*205+3*100, st.TotalBaseCost, 1e-9)
	assert.InDelta(t, (0.205+0.2)/2, st.AvgRateCost, 1e-9)

	assert.InDelta(t, 1450, st.TotalRevenue, 1e-9)
	assert.InDelta(t, 75, st.TotalExpenses, 1e-9)
	assert.InDelta(t, 1375, st.NetProfit, 1e-9)
	assert.InDelta(t, 1375.0/1450.0*100, st.ProfitRate, 1e-9)
	assert.InDelta(t, 10, st.CardFeeRate, 1e-9)
	assert.InDelta(t, 999, st.DadReceivable, 1e-9)
	assert.Equal(t, "轉帳", st.PaymentNote)
}

func TestComputeIncomeStatementZeroGuards(t *testing.T) {
	st := ComputeIncomeStatement(nil, nil, nil)
	assert.Zero(t, st.ProfitRate)
	assert.Zero(t, st.CardFeeRate)
	assert.Zero(t, st.TotalRevenue)
	// No product contributes a cost rate, so the average falls back.
	assert.InDelta(t, DefaultRateCost, st.AvgRateCost, 1e-9)
}

func TestSplitShares(t *testing.T) {
	dad, sister := SplitShares(1375)
	assert.Equal(t, 275.0, dad)
	assert.Equal(t, 1100.0, sister)

	dad, sister = SplitShares(101)
	assert.Equal(t, 20.0, dad)
	assert.Equal(t, 81.0, sister)
}

func TestRecomputeIdempotent(t *testing.T) {
	snap := model.Snapshot{
		ProductItems: fixtureProducts(),
		OrderItems:   fixtureOrders(),
		Settings: map[string]model.IncomeSettings{
			"202505": {OrderGroupID: "202505", CardCharge: 50, CardFee: 5},
		},
	}
	first := Recompute(snap, "202505")
	second := Recompute(snap, "202505")
	assert.Equal(t, first, second)
	assert.Equal(t, "202505", first.BatchID)
	require.NotEmpty(t, first.DetailByBuyer)
	require.NotEmpty(t, first.AnalysisByProduct)
}
