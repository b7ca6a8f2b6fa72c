package api

import (
	"net/http" // HTTP status codes

	"stock_management/internal/service" // Account workflow

	"github.com/gin-gonic/gin" // Gin web framework
)

// CreateUserHandler adds an account; same rules as sign-up
func CreateUserHandler(svc *service.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req accountRequest
		if !bindBody(c, &req) {
			return
		}
		account, err := svc.Create(c.Request.Context(), req.input())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "User created successfully", "user": account})
	}
}

// ListUsersHandler returns one page of accounts, without password hashes
func ListUsersHandler(svc *service.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := svc.FindAll(c.Request.Context(), c.Query("page"), c.Query("limit"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, page)
	}
}

func GetUserHandler(svc *service.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		account, err := svc.FindOne(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User retrieved successfully", "user": account})
	}
}

// UpdateUserHandler merges the supplied fields; a new password is re-hashed
func UpdateUserHandler(svc *service.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req accountRequest
		if !bindBody(c, &req) {
			return
		}
		account, err := svc.Update(c.Request.Context(), c.Param("id"), req.input())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User updated successfully", "user": account})
	}
}

func DeleteUserHandler(svc *service.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
	}
}
