package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListPurchases returns the raw purchase log as an array, the shape the
// admin dashboard already consumes.
func (s *Server) ListPurchases(c *gin.Context) {
	purchases, err := s.purchaseSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, purchases)
}

func (s *Server) ProcessPurchase(c *gin.Context) {
	purchase, err := s.purchaseSvc.MarkProcessed(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "purchase": purchase})
}
