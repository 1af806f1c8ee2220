package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	accountdomain "github.com/Jguyatt/backend/internal/account/domain"
)

func (s *Server) SubmitOnboarding(c *gin.Context) {
	submission := accountdomain.Submission{}
	if err := c.ShouldBindJSON(&submission); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	if err := s.accountSvc.SubmitOnboarding(c.Request.Context(), submission); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Onboarding submission saved"})
}

func (s *Server) ListOnboardingSubmissions(c *gin.Context) {
	submissions, err := s.accountSvc.ListOnboarding(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "submissions": submissions})
}
