package api

import (
	"net/http" // HTTP status codes

	"stock_management/internal/service" // Product workflow

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Exact prices
)

// Request struct for product create and update
type productRequest struct {
	Name        *string          `json:"name"`        // Unique name
	Price       *decimal.Decimal `json:"price"`       // Unit price
	Description *string          `json:"description"` // Free-form text
	Stock       *float64         `json:"stock"`       // Whole number, checked by the schema
	Category    *string          `json:"category"`    // Category ID
}

func (r productRequest) input() service.ProductInput {
	in := service.ProductInput{
		Name:        r.Name,
		Price:       r.Price,
		Description: r.Description,
		CategoryID:  r.Category,
	}
	if r.Stock != nil {
		stock := int(*r.Stock) // Schema bounds it to a whole number in 0..domain.MaxStock
		in.Stock = &stock
	}
	return in
}

// CreateProductHandler adds a product to an existing category
func CreateProductHandler(svc *service.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req productRequest
		if !bindBody(c, &req) {
			return
		}
		product, err := svc.Create(c.Request.Context(), req.input())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Product created successfully", "product": product})
	}
}

// ListProductsHandler returns one page of products with category names
func ListProductsHandler(svc *service.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := svc.FindAll(c.Request.Context(), c.Query("page"), c.Query("limit"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, page)
	}
}

func GetProductHandler(svc *service.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := svc.FindOne(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product retrieved successfully", "product": product})
	}
}

// UpdateProductHandler merges the supplied fields
func UpdateProductHandler(svc *service.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req productRequest
		if !bindBody(c, &req) {
			return
		}
		product, err := svc.Update(c.Request.Context(), c.Param("id"), req.input())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully", "product": product})
	}
}

func DeleteProductHandler(svc *service.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}
