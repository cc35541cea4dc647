package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/5h3r42/savzix-store-antigravity/httperr"
	"github.com/5h3r42/savzix-store-antigravity/models"
)

// Orders persists order headers and their line items.
type Orders struct {
	db *gorm.DB
}

func NewOrders(db *gorm.DB) *Orders {
	return &Orders{db: db}
}

// Create writes the order header and all line items in one transaction, so
// an order either lands with every item or not at all.
func (o *Orders) Create(order *models.Order) error {
	if len(order.Items) == 0 {
		return httperr.New(httperr.KindValidation, "an order must have at least one item")
	}
	err := o.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
	if err != nil {
		return httperr.Wrap(httperr.KindPersistence, err, "failed to create order")
	}
	return nil
}

// ListAll returns every order with items, newest first.
func (o *Orders) ListAll() ([]models.Order, error) {
	var orders []models.Order
	err := o.db.Preload("Items").Order("created_at DESC").Find(&orders).Error
	if err != nil {
		return nil, httperr.Wrap(httperr.KindPersistence, err, "failed to load orders")
	}
	return orders, nil
}

// ListByUser returns one customer's orders with items, newest first.
func (o *Orders) ListByUser(userID string) ([]models.Order, error) {
	var orders []models.Order
	err := o.db.Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, httperr.Wrap(httperr.KindPersistence, err, "failed to load orders")
	}
	return orders, nil
}

// GetByID returns one order with items.
func (o *Orders) GetByID(orderID string) (*models.Order, error) {
	var order models.Order
	err := o.db.Preload("Items").Where("id = ?", orderID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.New(httperr.KindNotFound, "order not found: %s", orderID)
	}
	if err != nil {
		return nil, httperr.Wrap(httperr.KindPersistence, err, "failed to load order")
	}
	return &order, nil
}

// UpdateStatus moves an order to a new status. Checkout only creates
// Pending orders; Confirmed and Cancelled come from the backoffice.
func (o *Orders) UpdateStatus(orderID string, status models.OrderStatus) error {
	if !models.ValidOrderStatus(status) {
		return httperr.New(httperr.KindValidation, "invalid order status: %s", status)
	}
	result := o.db.Model(&models.Order{}).Where("id = ?", orderID).Update("status", status)
	if result.Error != nil {
		return httperr.Wrap(httperr.KindPersistence, result.Error, "failed to update order status")
	}
	if result.RowsAffected == 0 {
		return httperr.New(httperr.KindNotFound, "order not found: %s", orderID)
	}
	return nil
}
