package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	accountdomain "github.com/Jguyatt/backend/internal/account/domain"
	customerdomain "github.com/Jguyatt/backend/internal/customer/domain"
)

// GetCustomerData looks up one customer by email. A missing customer is a
// normal portal state, not an error, so it answers 200 with success=false.
func (s *Server) GetCustomerData(c *gin.Context) {
	customer, found, err := s.accountSvc.GetCustomer(c.Request.Context(), c.Param("email"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": "Customer not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": customer})
}

func (s *Server) ListAllCustomers(c *gin.Context) {
	dump, err := s.accountSvc.AllData(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":               true,
		"customers":             dump.Customers,
		"users":                 dump.Users,
		"onboardingSubmissions": dump.OnboardingSubs,
		"deletedUsers":          dump.DeletedUsers,
	})
}

type syncDataRequest struct {
	Email        string                   `json:"email"`
	CustomerData *customerdomain.Customer `json:"customerData"`
	UserData     *accountdomain.User      `json:"userData"`
}

func (s *Server) SyncData(c *gin.Context) {
	var req syncDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	err := s.accountSvc.Sync(c.Request.Context(), accountdomain.SyncInput{
		Email:        req.Email,
		UserData:     req.UserData,
		CustomerData: req.CustomerData,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Data synced successfully"})
}

// DeleteCustomer removes one customer record addressed by its raw storage
// key.
func (s *Server) DeleteCustomer(c *gin.Context) {
	if err := s.accountSvc.DeleteCustomer(c.Request.Context(), c.Param("email")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Customer deleted successfully"})
}
