package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HandleStripeWebhook acknowledges every authentic delivery. Stripe retries
// on any non-2xx, so only signature failures are rejected; processing
// failures are logged inside the ingest service and still acknowledged.
func (s *Server) HandleStripeWebhook(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	if err := s.webhookSvc.Ingest(c.Request.Context(), payload, c.Request.Header); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
