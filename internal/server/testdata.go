package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	accountdomain "github.com/Jguyatt/backend/internal/account/domain"
	customerdomain "github.com/Jguyatt/backend/internal/customer/domain"
	"github.com/Jguyatt/backend/internal/store"
)

const dateOnly = "2006-01-02"

type createTestCustomerBody struct {
	Email       string  `json:"email"`
	Name        string  `json:"name"`
	PackageName string  `json:"packageName"`
	Amount      float64 `json:"amount"`
}

// CreateTestCustomer seeds a synthetic customer record without going through
// a checkout. Registered only outside production.
func (s *Server) CreateTestCustomer(c *gin.Context) {
	var req createTestCustomerBody
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	if req.Email == "" {
		req.Email = "test@example.com"
	}
	if req.Name == "" {
		req.Name = "Test Customer"
	}
	if req.PackageName == "" {
		req.PackageName = "Test"
	}
	if req.Amount == 0 {
		req.Amount = 1
	}

	now := s.clock.Now()
	today := now.Format(dateOnly)
	in30Days := now.Add(30 * 24 * time.Hour).Format(dateOnly)
	plan := req.PackageName + " Package"

	customer := customerdomain.Customer{
		Name:        req.Name,
		Email:       req.Email,
		Business:    req.Name + " Business",
		Package:     req.PackageName,
		MonthlyRate: req.Amount,
		ActiveProjects: []customerdomain.Project{{
			ID:                s.genID.Generate().String(),
			Name:              plan,
			Status:            customerdomain.StatusActive,
			StartDate:         today,
			Progress:          20,
			NextUpdate:        in30Days,
			Type:              "SEO",
			Category:          "Local SEO",
			Requirements:      []string{"Business Information", "Service Details"},
			EstimatedDuration: "30 days",
			Deliverables:      []string{"SEO Optimization", "Rankings Report"},
		}},
		OrderTimeline: customerdomain.OrderTimeline{
			OrderPlaced:     customerdomain.Milestone{Status: "completed", Date: today, Completed: true},
			OnboardingForm:  customerdomain.Milestone{Status: "pending"},
			OrderInProgress: customerdomain.Milestone{Status: "pending"},
			ReviewDelivery:  customerdomain.Milestone{Status: "pending"},
			OrderComplete:   customerdomain.Milestone{Status: "pending"},
		},
		RecentActivity: []customerdomain.Activity{{
			Type:    "purchase_completed",
			Message: "Purchase completed: " + plan,
			Date:    today,
		}},
		Subscription: customerdomain.Subscription{
			Status:      customerdomain.StatusActive,
			Plan:        plan,
			MonthlyRate: req.Amount,
			NextBilling: in30Days,
		},
		Billing: customerdomain.Billing{
			Plan:        plan,
			Amount:      "$" + strconv.FormatFloat(req.Amount, 'f', -1, 64),
			NextBilling: in30Days,
			Status:      customerdomain.StatusActive,
		},
		StripeCustomerID:   "cus_test_" + s.genID.Generate().String(),
		StripeSessionID:    "cs_test_" + s.genID.Generate().String(),
		SubscriptionStatus: customerdomain.StatusActive,
	}

	report, err := s.store.Update(c.Request.Context(), func(tx *store.Tx) error {
		customers := customerdomain.Collection{}
		if err := tx.Read(store.DocCustomers, &customers); err != nil {
			return err
		}
		customers[customerdomain.Key(req.Email)] = customer
		tx.Write(store.DocCustomers, customers)
		return nil
	})
	if err != nil || !report.Ok() {
		AbortWithError(c, accountdomain.ErrStorageWrite)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "customerData": customer})
}

type cleanupTestDataBody struct {
	TestCustomers   []string                   `json:"testCustomers"`
	TestUsers       []string                   `json:"testUsers"`
	TestSubmissions []accountdomain.Submission `json:"testSubmissions"`
}

// CleanupTestData removes synthetic records named by an integration test
// run. Registered only outside production.
func (s *Server) CleanupTestData(c *gin.Context) {
	var req cleanupTestDataBody
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	_, err := s.accountSvc.Cleanup(c.Request.Context(), accountdomain.CleanupInput{
		TestCustomers:   req.TestCustomers,
		TestUsers:       req.TestUsers,
		TestSubmissions: req.TestSubmissions,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Test data cleaned up successfully",
		"removed": gin.H{
			"customers":   len(req.TestCustomers),
			"users":       len(req.TestUsers),
			"submissions": len(req.TestSubmissions),
		},
	})
}
