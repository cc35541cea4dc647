package checkout

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/5h3r42/savzix-store-antigravity/httperr"
	"github.com/5h3r42/savzix-store-antigravity/models"
)

const (
	// Orders at or above the threshold ship free; an empty subtotal never
	// attracts shipping either.
	FreeShippingThreshold = 50.0
	FlatShippingRate      = 4.99
)

// Item is one line of the incoming cart. ID accepts either a product slug
// or a "PROD-###" id. Quantity is numeric so a fractional value drops the
// line in sanitization instead of failing the whole request bind.
type Item struct {
	ID       string  `json:"id"`
	Quantity float64 `json:"quantity"`
}

// Result is what the handler returns to the storefront.
type Result struct {
	OrderID  string  `json:"orderId"`
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

// Catalog is the product lookup the checkout needs.
type Catalog interface {
	FindBySlugsOrIDs(keys []string) ([]models.Product, error)
}

// OrderWriter persists the finished order.
type OrderWriter interface {
	Create(order *models.Order) error
}

// Service turns a sanitized cart into a persisted Pending order. Threshold
// and FlatRate default to the launch configuration and may be overridden
// from site config.
type Service struct {
	Catalog   Catalog
	Orders    OrderWriter
	Threshold float64
	FlatRate  float64
}

func NewService(catalog Catalog, orders OrderWriter) *Service {
	return &Service{
		Catalog:   catalog,
		Orders:    orders,
		Threshold: FreeShippingThreshold,
		FlatRate:  FlatShippingRate,
	}
}

func (s *Service) shipping(subtotal float64) float64 {
	if subtotal == 0 || subtotal >= s.Threshold {
		return 0
	}
	return s.FlatRate
}

// SanitizeItems trims ids and drops lines with no id, a non-positive
// quantity, or a fractional quantity. Duplicate ids are merged.
func SanitizeItems(items []Item) []Item {
	merged := make(map[string]int)
	var order []string
	for _, item := range items {
		id := strings.TrimSpace(item.ID)
		if id == "" || item.Quantity < 1 || item.Quantity != math.Trunc(item.Quantity) {
			continue
		}
		if _, seen := merged[id]; !seen {
			order = append(order, id)
		}
		merged[id] += int(item.Quantity)
	}

	out := make([]Item, 0, len(order))
	for _, id := range order {
		out = append(out, Item{ID: id, Quantity: float64(merged[id])})
	}
	return out
}

// Place validates the cart against the live catalogue and writes the order.
// Every line must resolve to an Active product with enough stock; any
// failure rejects the whole cart and persists nothing.
func (s *Service) Place(userID string, items []Item) (*Result, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, httperr.New(httperr.KindAuthentication, "checkout requires a signed-in user")
	}

	items = SanitizeItems(items)
	if len(items) == 0 {
		return nil, httperr.New(httperr.KindValidation, "cart is empty")
	}

	keys := make([]string, len(items))
	for i, item := range items {
		keys[i] = item.ID
	}
	products, err := s.Catalog.FindBySlugsOrIDs(keys)
	if err != nil {
		return nil, err
	}
	byKey := make(map[string]models.Product, len(products)*2)
	for _, p := range products {
		byKey[p.Slug] = p
		byKey[p.ID] = p
	}

	var subtotal float64
	lines := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		quantity := int(item.Quantity)
		product, found := byKey[item.ID]
		if !found {
			return nil, httperr.New(httperr.KindNotFound, "unknown product: %s", item.ID)
		}
		if product.Status != models.ProductStatusActive {
			return nil, httperr.New(httperr.KindValidation, "product is not available: %s", item.ID)
		}
		if product.Stock < quantity {
			return nil, httperr.New(httperr.KindValidation, "insufficient stock for %s", item.ID)
		}
		if product.Price < 0 || math.IsNaN(product.Price) || math.IsInf(product.Price, 0) {
			return nil, httperr.New(httperr.KindValidation, "product has no valid price: %s", item.ID)
		}

		subtotal += product.Price * float64(quantity)
		lines = append(lines, models.OrderItem{
			ProductID: product.ID,
			Quantity:  quantity,
			UnitPrice: product.Price,
		})
	}

	subtotal = round2(subtotal)
	shipping := s.shipping(subtotal)
	total := round2(subtotal + shipping)

	order := &models.Order{
		ID:       NewOrderID(),
		UserID:   userID,
		Items:    lines,
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    total,
		Status:   models.OrderStatusPending,
	}
	if err := s.Orders.Create(order); err != nil {
		return nil, err
	}

	return &Result{
		OrderID:  order.ID,
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    total,
	}, nil
}

// NewOrderID builds "ORD-{last 8 digits of unix millis}-{3 random digits}".
func NewOrderID() string {
	millis := fmt.Sprintf("%d", time.Now().UnixMilli())
	if len(millis) > 8 {
		millis = millis[len(millis)-8:]
	}
	return fmt.Sprintf("ORD-%s-%03d", millis, rand.Intn(1000))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
