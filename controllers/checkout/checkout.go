package checkoutcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/5h3r42/savzix-store-antigravity/checkout"
	"github.com/5h3r42/savzix-store-antigravity/httperr"
	"github.com/5h3r42/savzix-store-antigravity/middleware"
)

// Broadcaster pushes the new-order event to the backoffice feed; nil is
// fine, checkout works without listeners.
type Broadcaster func(orderID string)

type placeOrderRequest struct {
	Items []checkout.Item `json:"items"`
}

// PlaceOrder turns the signed-in user's cart into a Pending order.
func PlaceOrder(svc *checkout.Service, broadcast Broadcaster) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.SessionUserID(c)
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Sign in to check out"})
			return
		}

		var req placeOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		result, err := svc.Place(userID, req.Items)
		if err != nil {
			c.JSON(httperr.Status(err), gin.H{"error": err.Error()})
			return
		}

		if broadcast != nil {
			broadcast(result.OrderID)
		}
		c.JSON(http.StatusCreated, result)
	}
}
