package orderControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/5h3r42/savzix-store-antigravity/httperr"
	"github.com/5h3r42/savzix-store-antigravity/middleware"
	"github.com/5h3r42/savzix-store-antigravity/models"
	"github.com/5h3r42/savzix-store-antigravity/store"
)

type updateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// GetAllOrders is the backoffice listing, newest first, items included.
func GetAllOrders(orders *store.Orders) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := orders.ListAll()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve orders"})
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// GetUserOrders returns the signed-in user's own orders.
func GetUserOrders(orders *store.Orders) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.SessionUserID(c)
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Sign in to view orders"})
			return
		}

		list, err := orders.ListByUser(userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve orders"})
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// UpdateOrderStatus moves an order along the fulfilment flow.
// URL param: /admin/orders/:orderID/status
func UpdateOrderStatus(orders *store.Orders) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")

		var req updateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		if err := orders.UpdateStatus(orderID, req.Status); err != nil {
			status := httperr.Status(err)
			if httperr.KindOf(err) == httperr.KindNotFound {
				status = http.StatusNotFound
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		updated, err := orders.GetByID(orderID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reload order"})
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}
