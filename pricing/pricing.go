package pricing

import "longchen/model"

// Stats derives the TWD cost/price/profit figures for one product.
//
// PricePlusShip deliberately excludes the domestic shipping and handling
// legs: the buyer pays the international leg only, the rest stays on the
// cost side. Profit is measured against the hand-entered InputPrice, not
// against the reference sale price.
func Stats(p model.ProductItem) model.ProductStats {
	twdCost := p.JpyPrice * p.RateCost
	costPlusShip := twdCost + p.DomesticShip + p.HandlingFee + p.IntlShip
	return model.ProductStats{
		TwdCost:       twdCost,
		CostPlusShip:  costPlusShip,
		PricePlusShip: p.JpyPrice*p.RateSale + p.IntlShip,
		Profit:        p.InputPrice - costPlusShip,
	}
}
