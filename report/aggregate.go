package report

import (
	"math"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"longchen/model"
	"longchen/pricing"
)

// Mode selects the grouping axis for the detail and analysis views.
type Mode string

const (
	ModeBuyer   Mode = "buyer"
	ModeProduct Mode = "product"
)

// DepositMode selects the 預收款項 classification.
type DepositMode string

const (
	DepositIncome  DepositMode = "income"
	DepositExpense DepositMode = "expense"
)

// UnknownProductName labels lines whose product no longer exists.
const UnknownProductName = "未知商品"

// DefaultRateCost is assumed when no product in a batch defines a cost rate.
const DefaultRateCost = 0.205

type productKey struct {
	groupID string
	itemID  string
}

// bucketKey keeps buyer buckets and product buckets in separate key
// spaces, so a buyer who happens to be named like a product id pair can
// never merge into the wrong bucket.
type bucketKey struct {
	buyer   string
	product productKey
}

func indexProducts(products []model.ProductItem) map[productKey]model.ProductItem {
	byKey := make(map[productKey]model.ProductItem, len(products))
	for _, p := range products {
		byKey[productKey{p.GroupID, p.ID}] = p
	}
	return byKey
}

// newCollator builds the comparator used for every buyer-facing sort.
// Buyer names are Traditional Chinese; byte order would shuffle them.
func newCollator() *collate.Collator {
	return collate.New(language.TraditionalChinese)
}

// FilterBatch returns one batch's order lines in the order every screen
// and export lists them: product group, product item, then buyer.
func FilterBatch(items []model.OrderItem, orderGroupID string) []model.OrderItem {
	var out []model.OrderItem
	for _, it := range items {
		if it.OrderGroupID == orderGroupID {
			out = append(out, it)
		}
	}
	c := newCollator()
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.ProductGroupID != b.ProductGroupID {
			return a.ProductGroupID < b.ProductGroupID
		}
		if a.ProductItemID != b.ProductItemID {
			return a.ProductItemID < b.ProductItemID
		}
		return c.CompareString(a.Buyer, b.Buyer) < 0
	})
	return out
}

// BuildDetailReport partitions a batch's lines into buckets keyed by buyer
// or by product and returns them sorted by label. A line whose product is
// gone stays in the report with a zero price and the 未知商品 label.
func BuildDetailReport(orderItems []model.OrderItem, products []model.ProductItem, mode Mode) []model.DetailBucket {
	byKey := indexProducts(products)
	buckets := make(map[bucketKey]*model.DetailBucket)
	var order []bucketKey

	for _, it := range orderItems {
		p := byKey[productKey{it.ProductGroupID, it.ProductItemID}]
		total := p.InputPrice * float64(it.Quantity)

		var key bucketKey
		var label string
		if mode == ModeProduct {
			key = bucketKey{product: productKey{it.ProductGroupID, it.ProductItemID}}
			label = p.Name
			if label == "" {
				label = UnknownProductName
			}
		} else {
			key = bucketKey{buyer: it.Buyer}
			label = it.Buyer
		}

		b := buckets[key]
		if b == nil {
			b = &model.DetailBucket{Label: label}
			buckets[key] = b
			order = append(order, key)
		}
		b.TotalQty += it.Quantity
		b.TotalPrice += total
		b.Lines = append(b.Lines, model.DetailLine{
			OrderItem:   it,
			ProductName: p.Name,
			Total:       total,
		})
	}

	out := make([]model.DetailBucket, 0, len(order))
	for _, k := range order {
		out = append(out, *buckets[k])
	}
	c := newCollator()
	sort.SliceStable(out, func(i, j int) bool {
		return c.CompareString(out[i].Label, out[j].Label) < 0
	})
	return out
}

// BuildAnalysisReport accumulates quantity and revenue per buyer or per
// product, sorted by descending revenue. Ties keep first-encountered order.
func BuildAnalysisReport(orderItems []model.OrderItem, products []model.ProductItem, mode Mode) []model.AnalysisRow {
	byKey := indexProducts(products)
	rows := make(map[bucketKey]*model.AnalysisRow)
	var order []bucketKey

	for _, it := range orderItems {
		p := byKey[productKey{it.ProductGroupID, it.ProductItemID}]
		revenue := p.InputPrice * float64(it.Quantity)

		var key bucketKey
		var label string
		if mode == ModeProduct {
			key = bucketKey{product: productKey{it.ProductGroupID, it.ProductItemID}}
			label = p.Name
			if label == "" {
				label = UnknownProductName
			}
		} else {
			key = bucketKey{buyer: it.Buyer}
			label = it.Buyer
		}

		row := rows[key]
		if row == nil {
			row = &model.AnalysisRow{Label: label}
			rows[key] = row
			order = append(order, key)
		}
		row.Qty += it.Quantity
		row.Total += revenue
	}

	out := make([]model.AnalysisRow, 0, len(order))
	for _, k := range order {
		out = append(out, *rows[k])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total > out[j].Total
	})
	return out
}

// ClassifyDeposits selects the 預收款項 lines for one mode, sorted by buyer.
//
// The 退/支/匯 substring checks on free-text fields mirror how the books
// have always been kept; changing them would change report membership.
func ClassifyDeposits(orderItems []model.OrderItem, mode DepositMode) []model.OrderItem {
	var out []model.OrderItem
	for _, it := range orderItems {
		refundOrPayout := strings.Contains(it.Remarks, "退") || strings.Contains(it.Remarks, "支")
		if mode == DepositExpense {
			if refundOrPayout || it.Quantity < 0 {
				out = append(out, it)
			}
			continue
		}
		if refundOrPayout {
			continue
		}
		hasRemark := strings.TrimSpace(it.Remarks) != ""
		isTransfer := strings.Contains(it.Buyer, "匯")
		if hasRemark || isTransfer {
			out = append(out, it)
		}
	}
	c := newCollator()
	sort.SliceStable(out, func(i, j int) bool {
		return c.CompareString(out[i].Buyer, out[j].Buyer) < 0
	})
	return out
}

// ComputeIncomeStatement folds one batch's lines into the 收支計算 totals
// and merges the batch's manual settings. Lines whose product is gone
// contribute nothing; a nil settings behaves as all zeroes.
func ComputeIncomeStatement(orderItems []model.OrderItem, products []model.ProductItem, settings *model.IncomeSettings) model.IncomeStatement {
	byKey := indexProducts(products)

	var st model.IncomeStatement
	var rateSum float64
	rateCount := 0

	for _, it := range orderItems {
		p, ok := byKey[productKey{it.ProductGroupID, it.ProductItemID}]
		if !ok {
			continue
		}
		qty := float64(it.Quantity)
		stats := pricing.Stats(p)
		st.TotalSales += p.InputPrice * qty
		st.TotalBaseCost += stats.TwdCost * qty
		st.TotalJpy += p.JpyPrice * qty
		st.TotalDomestic += p.DomesticShip * qty
		st.TotalHandling += p.HandlingFee * qty
		if p.RateCost != 0 {
			rateSum += p.RateCost
			rateCount++
		}
	}

	st.AvgRateCost = DefaultRateCost
	if rateCount > 0 {
		st.AvgRateCost = rateSum / float64(rateCount)
	}

	var s model.IncomeSettings
	if settings != nil {
		s = *settings
	}
	st.PackagingRevenue = s.PackagingRevenue
	st.CardCharge = s.CardCharge
	st.CardFee = s.CardFee
	st.IntlShipping = s.IntlShipping
	st.DadReceivable = s.DadReceivable
	st.PaymentNote = s.PaymentNote

	st.TotalRevenue = st.TotalSales + s.PackagingRevenue
	st.TotalExpenses = s.CardCharge + s.IntlShipping + s.CardFee
	st.NetProfit = st.TotalRevenue - st.TotalExpenses
	if st.TotalRevenue > 0 {
		st.ProfitRate = st.NetProfit / st.TotalRevenue * 100
	}
	if s.CardCharge > 0 {
		st.CardFeeRate = s.CardFee / s.CardCharge * 100
	}
	return st
}

// SplitShares reports the fixed 20/80 settlement split (爸爸/妹妹),
// rounded to whole TWD. Rounding happens only here, at presentation.
func SplitShares(netProfit float64) (dad, sister float64) {
	return math.Round(netProfit * 0.2), math.Round(netProfit * 0.8)
}

// Recompute derives every report view for one batch from a snapshot. It
// keeps no state across calls: the same snapshot always yields the same
// views.
func Recompute(snap model.Snapshot, orderGroupID string) model.Views {
	batch := FilterBatch(snap.OrderItems, orderGroupID)
	var settings *model.IncomeSettings
	if s, ok := snap.Settings[orderGroupID]; ok {
		settings = &s
	}
	return model.Views{
		BatchID:           orderGroupID,
		DetailByBuyer:     BuildDetailReport(batch, snap.ProductItems, ModeBuyer),
		DetailByProduct:   BuildDetailReport(batch, snap.ProductItems, ModeProduct),
		AnalysisByBuyer:   BuildAnalysisReport(batch, snap.ProductItems, ModeBuyer),
		AnalysisByProduct: BuildAnalysisReport(batch, snap.ProductItems, ModeProduct),
		DepositsIncome:    ClassifyDeposits(batch, DepositIncome),
		DepositsExpense:   ClassifyDeposits(batch, DepositExpense),
		Income:            ComputeIncomeStatement(batch, snap.ProductItems, settings),
	}
}
