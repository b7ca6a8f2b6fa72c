package api

import (
	"net/http" // HTTP status codes

	"stock_management/internal/service" // Credential workflow

	"github.com/gin-gonic/gin" // Gin web framework
)

// Request struct for registration and account edits
type accountRequest struct {
	FullName *string `json:"full_name"` // Optional display name
	Email    *string `json:"email"`     // Identity
	Password *string `json:"password"`  // Plain secret, hashed before storage
}

func (r accountRequest) input() service.AccountInput {
	return service.AccountInput{FullName: r.FullName, Email: r.Email, Password: r.Password}
}

// Request struct for sign-in
type signInRequest struct {
	Email    string `json:"email"`    // Identity
	Password string `json:"password"` // Plain secret
}

// SignUpHandler registers a new account
func SignUpHandler(svc *service.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req accountRequest // Body already passed the sign-up schema
		if !bindBody(c, &req) {
			return
		}
		account, err := svc.SignUp(c.Request.Context(), req.input())
		if err != nil {
			respondError(c, err) // 409 when the email is taken
			return
		}
		// Return success response, the hash is never serialized
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "user": account})
	}
}

// SignInHandler verifies a credential and returns the account identity
func SignInHandler(svc *service.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req signInRequest
		if !bindBody(c, &req) {
			return
		}
		identity, err := svc.SignIn(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err) // 404 unknown email, 401 wrong password
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Login successful", "user": identity})
	}
}
