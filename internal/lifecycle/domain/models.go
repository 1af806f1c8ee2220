package domain

import (
	"context"
	"errors"
)

const (
	RequestPending  = "pending"
	RequestApproved = "approved"
	RequestDenied   = "denied"

	ActionApprove = "approve"
	ActionDeny    = "deny"

	// ActorCustomerRequest is the cancelling actor recorded when an
	// approved cancellation request triggers the transition.
	ActorCustomerRequest = "Customer Request"
)

// CancellationRequest is a customer-initiated, admin-resolved workflow
// item. It is resolved by exactly one approve/deny action; re-resolving
// overwrites the resolution fields.
type CancellationRequest struct {
	ID            string `json:"id"`
	CustomerEmail string `json:"customerEmail"`
	CustomerName  string `json:"customerName"`
	ProjectID     string `json:"projectId"`
	Reason        string `json:"reason"`
	RequestDate   string `json:"requestDate"`
	Status        string `json:"status"`
	ReviewedBy    string `json:"reviewedBy,omitempty"`
	ReviewedDate  string `json:"reviewedDate,omitempty"`
}

type Requests []CancellationRequest

// CancelProjectInput cancels one active project immediately. OneTime
// distinguishes one-time packages (no billing tail) from recurring ones
// (service runs through the paid period).
type CancelProjectInput struct {
	CustomerEmail string
	ProjectID     string
	CancelledBy   string
	Reason        string
	OneTime       bool
}

type CancelProjectResult struct {
	OneTime        bool
	BillingEndDate string // empty for one-time packages
}

type FileRequestInput struct {
	CustomerEmail string
	CustomerName  string
	ProjectID     string
	Reason        string
}

type ResolveInput struct {
	RequestID string
	Action    string
	AdminName string
}

// ResolveResult reports the stamped request and whether the project
// transition actually ran: an approved request whose customer or project
// has meanwhile disappeared stays stamped, with ProjectCancelled false.
type ResolveResult struct {
	Request          CancellationRequest
	ProjectCancelled bool
	BillingEndDate   string
}

type Service interface {
	CancelProject(ctx context.Context, input CancelProjectInput) (CancelProjectResult, error)
	FileRequest(ctx context.Context, input FileRequestInput) (CancellationRequest, error)
	ListRequests(ctx context.Context) (Requests, error)
	Resolve(ctx context.Context, input ResolveInput) (ResolveResult, error)
}

var (
	ErrCustomerNotFound = errors.New("customer_not_found")
	ErrProjectNotFound  = errors.New("project_not_found")
	ErrRequestNotFound  = errors.New("request_not_found")
	ErrInvalidAction    = errors.New("invalid_action")
	ErrInvalidRequest   = errors.New("invalid_request")
	ErrStorageWrite     = errors.New("storage_write_failed")
)
