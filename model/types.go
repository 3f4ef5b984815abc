package model

// ProductGroup 商品類別。IDs are two-digit zero-padded strings ("01", "02", ...)
// assigned once; deleted ids are reused by the generator.
type ProductGroup struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// ProductItem is one purchasable product. Prices are TWD except JpyPrice
// (supplier price in JPY). RateSale/RateCost are JPY→TWD multipliers.
// InputPrice is the amount actually charged to the buyer, entered by hand.
type ProductItem struct {
	GroupID      string  `db:"group_id" json:"groupId"`
	ID           string  `db:"id" json:"id"`
	Name         string  `db:"name" json:"name"`
	JpyPrice     float64 `db:"jpy_price" json:"jpyPrice"`
	DomesticShip float64 `db:"domestic_ship" json:"domesticShip"`
	HandlingFee  float64 `db:"handling_fee" json:"handlingFee"`
	IntlShip     float64 `db:"intl_ship" json:"intlShip"`
	RateSale     float64 `db:"rate_sale" json:"rateSale"`
	RateCost     float64 `db:"rate_cost" json:"rateCost"`
	InputPrice   float64 `db:"input_price" json:"inputPrice"`
}

// OrderGroup 訂單批次 — one settlement batch, e.g. "202505" or "202505B".
type OrderGroup struct {
	ID     string `db:"id" json:"id"`
	Year   int    `db:"year" json:"year"`
	Month  int    `db:"month" json:"month"`
	Suffix string `db:"suffix" json:"suffix"`
}

// OrderItem is a single order line. Quantity may be negative for a
// refund or adjustment line. ProductGroupID/ProductItemID are kept as the
// literal strings entered at order time even if the product is later gone.
type OrderItem struct {
	ID             string `db:"id" json:"id"`
	OrderGroupID   string `db:"order_group_id" json:"orderGroupId"`
	ProductGroupID string `db:"product_group_id" json:"productGroupId"`
	ProductItemID  string `db:"product_item_id" json:"productItemId"`
	Description    string `db:"description" json:"description"`
	Buyer          string `db:"buyer" json:"buyer"`
	Quantity       int    `db:"quantity" json:"quantity"`
	Remarks        string `db:"remarks" json:"remarks"`
	Note           string `db:"note" json:"note"`
	Date           string `db:"date" json:"date"`
}

// IncomeSettings are the manually entered figures merged into one batch's
// income statement. A batch without a row behaves as all zeroes.
type IncomeSettings struct {
	OrderGroupID     string  `db:"order_group_id" json:"orderGroupId"`
	PackagingRevenue float64 `db:"packaging_revenue" json:"packagingRevenue"`
	CardCharge       float64 `db:"card_charge" json:"cardCharge"`
	CardFee          float64 `db:"card_fee" json:"cardFee"`
	IntlShipping     float64 `db:"intl_shipping" json:"intlShipping"`
	DadReceivable    float64 `db:"dad_receivable" json:"dadReceivable"`
	PaymentNote      string  `db:"payment_note" json:"paymentNote"`
}

// Snapshot is the full store state a recompute runs against. Reports are
// always rebuilt from a fresh snapshot; nothing is carried between calls.
type Snapshot struct {
	ProductGroups []ProductGroup
	ProductItems  []ProductItem
	OrderGroups   []OrderGroup
	OrderItems    []OrderItem
	Settings      map[string]IncomeSettings
}
