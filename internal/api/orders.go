package api

import (
	"net/http" // HTTP status codes

	"stock_management/internal/domain"  // Order status
	"stock_management/internal/service" // Order workflow

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Exact totals
)

// Request struct for order create and update
type orderRequest struct {
	Status  *domain.OrderStatus `json:"status"`  // processing, shipped or delivered
	Total   *decimal.Decimal    `json:"total"`   // Defaults to the product price on create
	Account *string             `json:"account"` // Account ID
	Product *string             `json:"product"` // Product ID
}

func (r orderRequest) input() service.OrderInput {
	return service.OrderInput{Status: r.Status, Total: r.Total, AccountID: r.Account, ProductID: r.Product}
}

// CreateOrderHandler places an order and takes one unit of stock
func CreateOrderHandler(svc *service.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req orderRequest
		if !bindBody(c, &req) {
			return
		}
		order, err := svc.Create(c.Request.Context(), req.input())
		if err != nil {
			respondError(c, err) // 404 missing account or product, 400 out of stock
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Order created successfully", "order": order})
	}
}

// ListOrdersHandler returns one page of orders with account and product expanded
func ListOrdersHandler(svc *service.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := svc.FindAll(c.Request.Context(), c.Query("page"), c.Query("limit"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, page)
	}
}

func GetOrderHandler(svc *service.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := svc.FindOne(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order retrieved successfully", "order": order})
	}
}

// UpdateOrderHandler merges the supplied fields; stock is left as it is
func UpdateOrderHandler(svc *service.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req orderRequest
		if !bindBody(c, &req) {
			return
		}
		order, err := svc.Update(c.Request.Context(), c.Param("id"), req.input())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order updated successfully", "order": order})
	}
}

// DeleteOrderHandler removes the order and returns its unit to the product
func DeleteOrderHandler(svc *service.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := svc.Delete(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully", "order": order})
	}
}
