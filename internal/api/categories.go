package api

import (
	"net/http" // HTTP status codes

	"stock_management/internal/service" // Category workflow

	"github.com/gin-gonic/gin" // Gin web framework
)

// Request struct for category create and update
type categoryRequest struct {
	Name *string `json:"name"` // Unique category name
}

// CreateCategoryHandler adds a category with a unique name
func CreateCategoryHandler(svc *service.CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req categoryRequest
		if !bindBody(c, &req) {
			return
		}
		category, err := svc.Create(c.Request.Context(), service.CategoryInput{Name: req.Name})
		if err != nil {
			respondError(c, err) // 409 when the name is taken
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Category created successfully", "category": category})
	}
}

// ListCategoriesHandler returns one page of categories
func ListCategoriesHandler(svc *service.CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := svc.FindAll(c.Request.Context(), c.Query("page"), c.Query("limit"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, page) // Page envelope with totals
	}
}

func GetCategoryHandler(svc *service.CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		category, err := svc.FindOne(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err) // 404 when missing
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Category retrieved successfully", "category": category})
	}
}

// UpdateCategoryHandler renames a category
func UpdateCategoryHandler(svc *service.CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req categoryRequest
		if !bindBody(c, &req) {
			return
		}
		category, err := svc.Update(c.Request.Context(), c.Param("id"), service.CategoryInput{Name: req.Name})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Category updated successfully", "category": category})
	}
}

// DeleteCategoryHandler refuses with 409 while products still use the category
func DeleteCategoryHandler(svc *service.CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
	}
}
