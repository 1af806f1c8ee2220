package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	accountdomain "github.com/Jguyatt/backend/internal/account/domain"
	lifecycledomain "github.com/Jguyatt/backend/internal/lifecycle/domain"
	paymentdomain "github.com/Jguyatt/backend/internal/payment/domain"
	purchasedomain "github.com/Jguyatt/backend/internal/purchase/domain"
)

var ErrInvalidRequest = errors.New("invalid_request")

// ErrorHandlingMiddleware turns the last error pushed by a handler into a
// JSON error envelope. Handlers that already wrote a body are left alone.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, message := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, gin.H{"error": message})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, paymentdomain.ErrInvalidSignature):
		return http.StatusBadRequest, "Webhook signature verification failed"
	case errors.Is(err, purchasedomain.ErrPurchaseNotFound):
		return http.StatusNotFound, "Purchase not found"
	case errors.Is(err, lifecycledomain.ErrRequestNotFound):
		return http.StatusNotFound, "Cancellation request not found"
	case errors.Is(err, lifecycledomain.ErrCustomerNotFound),
		errors.Is(err, accountdomain.ErrCustomerNotFound):
		return http.StatusNotFound, "Customer not found"
	case errors.Is(err, lifecycledomain.ErrProjectNotFound):
		return http.StatusNotFound, "Project not found"
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, lifecycledomain.ErrInvalidRequest),
		errors.Is(err, lifecycledomain.ErrInvalidAction),
		errors.Is(err, accountdomain.ErrInvalidEmail),
		errors.Is(err, accountdomain.ErrInvalidUser):
		return http.StatusBadRequest, "Invalid request"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
