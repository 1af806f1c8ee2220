package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	lifecycledomain "github.com/Jguyatt/backend/internal/lifecycle/domain"
)

type cancellationRequestBody struct {
	CustomerEmail string `json:"customerEmail"`
	CustomerName  string `json:"customerName"`
	ProjectID     string `json:"projectId"`
	Reason        string `json:"reason"`
}

func (s *Server) FileCancellationRequest(c *gin.Context) {
	var req cancellationRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	_, err := s.lifecycleSvc.FileRequest(c.Request.Context(), lifecycledomain.FileRequestInput{
		CustomerEmail: req.CustomerEmail,
		CustomerName:  req.CustomerName,
		ProjectID:     req.ProjectID,
		Reason:        req.Reason,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cancellation request submitted successfully"})
}

func (s *Server) ListCancellationRequests(c *gin.Context) {
	requests, err := s.lifecycleSvc.ListRequests(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "requests": requests})
}

type processCancellationBody struct {
	RequestID string `json:"requestId"`
	Action    string `json:"action"`
	AdminName string `json:"adminName"`
}

func (s *Server) ProcessCancellation(c *gin.Context) {
	var req processCancellationBody
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	_, err := s.lifecycleSvc.Resolve(c.Request.Context(), lifecycledomain.ResolveInput{
		RequestID: req.RequestID,
		Action:    req.Action,
		AdminName: req.AdminName,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Cancellation request " + req.Action + "d successfully",
	})
}

type cancelProjectBody struct {
	CustomerEmail string `json:"customerEmail"`
	ProjectID     string `json:"projectId"`
	CancelledBy   string `json:"cancelledBy"`
	IsTestPackage bool   `json:"isTestPackage"`
	Reason        string `json:"reason"`
}

// CancelProject cancels one active project immediately. Recurring packages
// keep a billing end date 30 days out; one-time packages end right away.
func (s *Server) CancelProject(c *gin.Context) {
	var req cancelProjectBody
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	result, err := s.lifecycleSvc.CancelProject(c.Request.Context(), lifecycledomain.CancelProjectInput{
		CustomerEmail: req.CustomerEmail,
		ProjectID:     req.ProjectID,
		CancelledBy:   req.CancelledBy,
		Reason:        req.Reason,
		OneTime:       req.IsTestPackage,
	})
	if err != nil {
		if errors.Is(err, lifecycledomain.ErrCustomerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Customer not found",
				"message": "No customer found with this email address",
			})
			return
		}
		AbortWithError(c, err)
		return
	}

	var billingEndDate any
	if result.BillingEndDate != "" {
		billingEndDate = result.BillingEndDate
	}
	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"message":        "Project cancelled successfully",
		"isTestPackage":  result.OneTime,
		"billingEndDate": billingEndDate,
	})
}
