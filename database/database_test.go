package database

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"longchen/model"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// One in-memory database per connection; keep the pool at one.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, InitDatabase(db))
	return db
}

func TestInitDatabaseSeedsDefaults(t *testing.T) {
	db := newTestDB(t)

	groups, err := GetAllProductGroups(db)
	require.NoError(t, err)
	require.Len(t, groups, 3)
	assert.Equal(t, "01", groups[0].ID)
	assert.Equal(t, "吊飾", groups[0].Name)

	// Re-running init must not duplicate the seed.
	require.NoError(t, InitDatabase(db))
	groups, err = GetAllProductGroups(db)
	require.NoError(t, err)
	assert.Len(t, groups, 3)
}

func TestProductGroupCRUD(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, CreateProductGroup(db, model.ProductGroup{ID: "04", Name: "徽章"}))
	require.NoError(t, RenameProductGroup(db, "04", "壓克力"))

	groups, err := GetAllProductGroups(db)
	require.NoError(t, err)
	require.Len(t, groups, 4)
	assert.Equal(t, "壓克力", groups[3].Name)

	require.NoError(t, DeleteProductGroup(db, "04"))
	groups, err = GetAllProductGroups(db)
	require.NoError(t, err)
	assert.Len(t, groups, 3)
}

func TestDeleteProductGroupInUse(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, UpsertProductItem(db, model.ProductItem{GroupID: "01", ID: "01", Name: "壓克力吊飾"}))

	err := DeleteProductGroup(db, "01")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInUse)
}

func TestProductItemUpsertAndExists(t *testing.T) {
	db := newTestDB(t)

	item := model.ProductItem{GroupID: "01", ID: "01", Name: "壓克力吊飾", JpyPrice: 1000, RateCost: 0.205, InputPrice: 300}
	require.NoError(t, UpsertProductItem(db, item))

	ok, err := ProductItemExists(db, "01", "01")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = ProductItemExists(db, "01", "99")
	require.NoError(t, err)
	assert.False(t, ok)

	// Upsert with the same key overwrites instead of inserting.
	item.InputPrice = 350
	require.NoError(t, UpsertProductItem(db, item))

	items, err := GetProductItemsByGroup(db, "01")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.InDelta(t, 350, items[0].InputPrice, 1e-9)

	require.NoError(t, RenameProductItem(db, "01", "01", "新吊飾"))
	items, err = GetProductItemsByGroup(db, "01")
	require.NoError(t, err)
	assert.Equal(t, "新吊飾", items[0].Name)
}

func TestDeleteProductItemReferencedByOrder(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, UpsertProductItem(db, model.ProductItem{GroupID: "01", ID: "01"}))
	require.NoError(t, CreateOrderGroup(db, model.OrderGroup{ID: "202505", Year: 2025, Month: 5}))
	require.NoError(t, UpsertOrderItem(db, model.OrderItem{
		ID: "a", OrderGroupID: "202505", ProductGroupID: "01", ProductItemID: "01", Buyer: "Amy", Quantity: 1,
	}))

	err := DeleteProductItem(db, "01", "01")
	assert.ErrorIs(t, err, ErrInUse)

	require.NoError(t, DeleteOrderItem(db, "a"))
	require.NoError(t, DeleteProductItem(db, "01", "01"))
}

func TestOrderGroups(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, CreateOrderGroup(db, model.OrderGroup{ID: "202505", Year: 2025, Month: 5}))
	require.NoError(t, CreateOrderGroup(db, model.OrderGroup{ID: "202505A", Year: 2025, Month: 5, Suffix: "A"}))
	require.NoError(t, CreateOrderGroup(db, model.OrderGroup{ID: "202506", Year: 2025, Month: 6}))

	ids, err := GetOrderGroupIDsForMonth(db, 2025, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"202505", "202505A"}, ids)

	groups, err := GetAllOrderGroups(db)
	require.NoError(t, err)
	assert.Len(t, groups, 3)
}

func TestDeleteOrderGroupInUse(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, CreateOrderGroup(db, model.OrderGroup{ID: "202505", Year: 2025, Month: 5}))
	require.NoError(t, UpsertOrderItem(db, model.OrderItem{ID: "a", OrderGroupID: "202505"}))

	err := DeleteOrderGroup(db, "202505")
	assert.ErrorIs(t, err, ErrInUse)

	require.NoError(t, DeleteOrderItem(db, "a"))
	require.NoError(t, DeleteOrderGroup(db, "202505"))
}

func TestOrderItemRoundtrip(t *testing.T) {
	db := newTestDB(t)

	item := model.OrderItem{
		ID:             "a",
		OrderGroupID:   "202505",
		ProductGroupID: "01",
		ProductItemID:  "01",
		Description:    "展場限定",
		Buyer:          "Amy",
		Quantity:       2,
		Remarks:        "已付訂金",
		Note:           "含特典",
		Date:           "2025-05-10",
	}
	require.NoError(t, UpsertOrderItem(db, item))

	items, err := GetOrderItemsByGroup(db, "202505")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, item, items[0])
}

func TestIncomeSettings(t *testing.T) {
	db := newTestDB(t)

	s, err := GetIncomeSettings(db, "202505")
	require.NoError(t, err)
	assert.Nil(t, s)

	saved := model.IncomeSettings{
		OrderGroupID:     "202505",
		PackagingRevenue: 100,
		CardCharge:       50,
		CardFee:          5,
		IntlShipping:     20,
		DadReceivable:    999,
		PaymentNote:      "轉帳",
	}
	require.NoError(t, SaveIncomeSettings(db, saved))

	s, err = GetIncomeSettings(db, "202505")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, saved, *s)

	// Second save for the same batch updates in place.
	saved.CardFee = 7
	require.NoError(t, SaveIncomeSettings(db, saved))
	all, err := GetAllIncomeSettings(db)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.InDelta(t, 7, all["202505"].CardFee, 1e-9)
}

func TestLoadSnapshot(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, UpsertProductItem(db, model.ProductItem{GroupID: "01", ID: "01", Name: "壓克力吊飾"}))
	require.NoError(t, CreateOrderGroup(db, model.OrderGroup{ID: "202505", Year: 2025, Month: 5}))
	require.NoError(t, UpsertOrderItem(db, model.OrderItem{ID: "a", OrderGroupID: "202505", ProductGroupID: "01", ProductItemID: "01", Buyer: "Amy", Quantity: 1}))
	require.NoError(t, SaveIncomeSettings(db, model.IncomeSettings{OrderGroupID: "202505", CardCharge: 50}))

	snap, err := LoadSnapshot(db)
	require.NoError(t, err)
	assert.Len(t, snap.ProductGroups, 3)
	assert.Len(t, snap.ProductItems, 1)
	assert.Len(t, snap.OrderGroups, 1)
	assert.Len(t, snap.OrderItems, 1)
	require.Contains(t, snap.Settings, "202505")
	assert.InDelta(t, 50, snap.Settings["202505"].CardCharge, 1e-9)
}
