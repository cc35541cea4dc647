package checkout

import (
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/5h3r42/savzix-store-antigravity/httperr"
	"github.com/5h3r42/savzix-store-antigravity/models"
	"github.com/5h3r42/savzix-store-antigravity/store"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.Order{}, &models.OrderItem{}))
	return db
}

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	db := openTestDB(t)
	return NewService(store.NewCatalog(db), store.NewOrders(db)), db
}

func seedProduct(t *testing.T, db *gorm.DB, id, slug string, price float64, stock int, status models.ProductStatus) {
	t.Helper()
	require.NoError(t, db.Create(&models.Product{
		ID: id, Slug: slug, Name: slug, Price: price, Stock: stock, Status: status,
	}).Error)
}

func TestSanitizeItems(t *testing.T) {
	items := SanitizeItems([]Item{
		{ID: " lavender-soap ", Quantity: 2},
		{ID: "", Quantity: 1},
		{ID: "rose-candle", Quantity: 0},
		{ID: "mint-scrub", Quantity: 2.5},
		{ID: "lavender-soap", Quantity: 1},
	})
	require.Len(t, items, 1, "blank ids and non-positive or fractional quantities drop")
	assert.Equal(t, "lavender-soap", items[0].ID)
	assert.Equal(t, 3.0, items[0].Quantity, "duplicate lines merge")
}

func TestShippingRule(t *testing.T) {
	svc := NewService(nil, nil)
	assert.Equal(t, 0.0, svc.shipping(0))
	assert.Equal(t, FlatShippingRate, svc.shipping(45))
	assert.Equal(t, 0.0, svc.shipping(50))
	assert.Equal(t, 0.0, svc.shipping(60))

	// Site config overrides reach the rule.
	svc.Threshold = 30
	svc.FlatRate = 2.50
	assert.Equal(t, 2.50, svc.shipping(29.99))
	assert.Equal(t, 0.0, svc.shipping(30))
}

func TestPlaceComputesTotals(t *testing.T) {
	cases := []struct {
		price        float64
		wantShipping float64
		wantTotal    float64
	}{
		{45.00, 4.99, 49.99},
		{60.00, 0, 60.00},
	}
	for i, tc := range cases {
		svc, db := newTestService(t)
		id := fmt.Sprintf("PROD-%03d", i+1)
		slug := fmt.Sprintf("item-%d", i+1)
		seedProduct(t, db, id, slug, tc.price, 10, models.ProductStatusActive)

		result, err := svc.Place("user-1", []Item{{ID: slug, Quantity: 1}})
		require.NoError(t, err)
		assert.Equal(t, tc.price, result.Subtotal)
		assert.Equal(t, tc.wantShipping, result.Shipping)
		assert.Equal(t, tc.wantTotal, result.Total)
	}
}

func TestPlaceResolvesBySlugOrID(t *testing.T) {
	svc, db := newTestService(t)
	seedProduct(t, db, "PROD-001", "lavender-soap", 4.99, 10, models.ProductStatusActive)
	seedProduct(t, db, "PROD-002", "rose-candle", 12.00, 10, models.ProductStatusActive)

	result, err := svc.Place("user-1", []Item{
		{ID: "lavender-soap", Quantity: 1},
		{ID: "PROD-002", Quantity: 2},
	})
	require.NoError(t, err)
	assert.InDelta(t, 28.99, result.Subtotal, 0.001)

	var order models.Order
	require.NoError(t, db.Preload("Items").Where("id = ?", result.OrderID).First(&order).Error)
	require.Len(t, order.Items, 2)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	// Line items always carry the canonical product id, not the slug.
	assert.Equal(t, "PROD-001", order.Items[0].ProductID)
	assert.Equal(t, 12.00, order.Items[1].UnitPrice)
}

func TestPlaceRejections(t *testing.T) {
	svc, db := newTestService(t)
	seedProduct(t, db, "PROD-001", "active-soap", 4.99, 2, models.ProductStatusActive)
	seedProduct(t, db, "PROD-002", "draft-soap", 4.99, 10, models.ProductStatusDraft)

	_, err := svc.Place("", []Item{{ID: "active-soap", Quantity: 1}})
	assert.Equal(t, httperr.KindAuthentication, httperr.KindOf(err))

	_, err = svc.Place("user-1", nil)
	assert.Equal(t, httperr.KindValidation, httperr.KindOf(err))

	_, err = svc.Place("user-1", []Item{{ID: "  ", Quantity: 3}})
	assert.Equal(t, httperr.KindValidation, httperr.KindOf(err), "all-invalid cart is empty after sanitize")

	_, err = svc.Place("user-1", []Item{{ID: "no-such-thing", Quantity: 1}})
	require.Error(t, err)
	assert.Equal(t, httperr.KindNotFound, httperr.KindOf(err))
	assert.Contains(t, err.Error(), "no-such-thing")

	_, err = svc.Place("user-1", []Item{{ID: "draft-soap", Quantity: 1}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not available")

	_, err = svc.Place("user-1", []Item{{ID: "active-soap", Quantity: 5}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient stock")
}

func TestPlaceDropsFractionalQuantityLines(t *testing.T) {
	svc, db := newTestService(t)
	seedProduct(t, db, "PROD-001", "active-soap", 4.99, 10, models.ProductStatusActive)
	seedProduct(t, db, "PROD-002", "rose-candle", 12.00, 10, models.ProductStatusActive)

	// The fractional line drops in sanitization; the rest of the cart
	// still goes through.
	result, err := svc.Place("user-1", []Item{
		{ID: "active-soap", Quantity: 2},
		{ID: "rose-candle", Quantity: 1.5},
	})
	require.NoError(t, err)
	assert.InDelta(t, 9.98, result.Subtotal, 0.001)

	var order models.Order
	require.NoError(t, db.Preload("Items").Where("id = ?", result.OrderID).First(&order).Error)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)
}

func TestPlaceIsAtomic(t *testing.T) {
	svc, db := newTestService(t)
	seedProduct(t, db, "PROD-001", "active-soap", 4.99, 10, models.ProductStatusActive)

	// Second line fails validation after the first passes; nothing may
	// reach the database.
	_, err := svc.Place("user-1", []Item{
		{ID: "active-soap", Quantity: 1},
		{ID: "missing", Quantity: 1},
	})
	require.Error(t, err)

	var orders, items int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&items).Error)
	assert.Zero(t, orders)
	assert.Zero(t, items)
}

func TestNewOrderIDShape(t *testing.T) {
	pattern := regexp.MustCompile(`^ORD-\d{8}-\d{3}$`)
	for i := 0; i < 20; i++ {
		assert.Regexp(t, pattern, NewOrderID())
	}
}
