package service

import (
	"context"
	"strings"
	"time"

	accountdomain "github.com/Jguyatt/backend/internal/account/domain"
	"github.com/Jguyatt/backend/internal/clock"
	customerdomain "github.com/Jguyatt/backend/internal/customer/domain"
	"github.com/Jguyatt/backend/internal/lifecycle/domain"
	"github.com/Jguyatt/backend/internal/store"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Store *store.Store
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
}

type Service struct {
	store *store.Store
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
}

func New(p Params) domain.Service {
	return &Service{
		store: p.Store,
		log:   p.Log.Named("lifecycle.service"),
		genID: p.GenID,
		clock: p.Clock,
	}
}

const billingTail = 30 * 24 * time.Hour

// CancelProject transitions one active project to Cancelled. The customer
// document and the onboarding submissions commit in one transaction; when
// the customer or project cannot be located nothing is mutated.
func (s *Service) CancelProject(ctx context.Context, input domain.CancelProjectInput) (domain.CancelProjectResult, error) {
	var result domain.CancelProjectResult
	report, err := s.store.Update(ctx, func(tx *store.Tx) error {
		moved, err := s.cancelInTx(tx, input)
		if err != nil {
			return err
		}
		result = domain.CancelProjectResult{
			OneTime:        input.OneTime,
			BillingEndDate: moved.BillingEndDate,
		}
		return nil
	})
	if err != nil {
		return domain.CancelProjectResult{}, err
	}
	if !report.Ok() {
		return result, domain.ErrStorageWrite
	}

	s.log.Info("project cancelled",
		zap.String("email", input.CustomerEmail),
		zap.String("project_id", input.ProjectID),
		zap.String("cancelled_by", input.CancelledBy),
		zap.Bool("one_time", input.OneTime),
	)
	return result, nil
}

// cancelInTx applies the Active -> Cancelled transition inside an open
// transaction and returns the moved project.
func (s *Service) cancelInTx(tx *store.Tx, input domain.CancelProjectInput) (customerdomain.Project, error) {
	customers := customerdomain.Collection{}
	if err := tx.Read(store.DocCustomers, &customers); err != nil {
		return customerdomain.Project{}, err
	}

	key, ok := customerdomain.BuildEmailIndex(customers).Lookup(input.CustomerEmail)
	if !ok {
		return customerdomain.Project{}, domain.ErrCustomerNotFound
	}
	customer := customers[key]

	idx := -1
	for i, project := range customer.ActiveProjects {
		if project.ID == input.ProjectID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return customerdomain.Project{}, domain.ErrProjectNotFound
	}

	now := s.clock.Now()
	actor := input.CancelledBy
	if strings.TrimSpace(actor) == "" {
		actor = "Admin"
	}

	cancelled := customer.ActiveProjects[idx]
	cancelled.Status = customerdomain.StatusCancelled
	cancelled.CancelledDate = now.Format(time.RFC3339)
	cancelled.CancelledBy = actor
	cancelled.CompletedDate = now.Format(time.RFC3339)
	cancelled.CancellationReason = cancellationReason(input, actor)
	if !input.OneTime {
		cancelled.BillingEndDate = now.Add(billingTail).Format(time.RFC3339)
	}

	customer.ActiveProjects = append(
		customer.ActiveProjects[:idx],
		customer.ActiveProjects[idx+1:]...,
	)
	customer.CompletedProjects = append(customer.CompletedProjects, cancelled)
	customer.SubscriptionStatus = customerdomain.StatusCancelled
	customer.RecentActivity = append([]customerdomain.Activity{{
		ID:        s.genID.Generate().String(),
		Type:      "project_cancelled",
		Message:   "Project cancelled by " + actor,
		Timestamp: now.Format(time.RFC3339),
		ProjectID: cancelled.ID,
	}}, customer.RecentActivity...)

	customers[key] = customer

	submissions := accountdomain.Submissions{}
	if err := tx.Read(store.DocOnboarding, &submissions); err != nil {
		return customerdomain.Project{}, err
	}
	touched := false
	for _, sub := range submissions {
		if sub.MatchesEmail(input.CustomerEmail) {
			sub.MarkCancelled()
			touched = true
		}
	}

	tx.Write(store.DocCustomers, customers)
	if touched {
		tx.Write(store.DocOnboarding, submissions)
	}

	return cancelled, nil
}

func cancellationReason(input domain.CancelProjectInput, actor string) string {
	if strings.TrimSpace(input.Reason) != "" {
		return input.Reason
	}
	if input.OneTime {
		return "Customer requested cancellation (one-time payment)"
	}
	if actor == "Customer" {
		return "Customer requested cancellation"
	}
	return "Cancelled by admin"
}

// FileRequest records a pending cancellation request for later admin
// review.
func (s *Service) FileRequest(ctx context.Context, input domain.FileRequestInput) (domain.CancellationRequest, error) {
	if strings.TrimSpace(input.CustomerEmail) == "" || strings.TrimSpace(input.ProjectID) == "" {
		return domain.CancellationRequest{}, domain.ErrInvalidRequest
	}

	reason := strings.TrimSpace(input.Reason)
	if reason == "" {
		reason = "Customer requested cancellation"
	}
	request := domain.CancellationRequest{
		ID:            s.genID.Generate().String(),
		CustomerEmail: input.CustomerEmail,
		CustomerName:  input.CustomerName,
		ProjectID:     input.ProjectID,
		Reason:        reason,
		RequestDate:   s.clock.Now().Format(time.RFC3339),
		Status:        domain.RequestPending,
	}

	report, err := s.store.Update(ctx, func(tx *store.Tx) error {
		requests := domain.Requests{}
		if err := tx.Read(store.DocCancellations, &requests); err != nil {
			return err
		}
		requests = append(requests, request)
		tx.Write(store.DocCancellations, requests)
		return nil
	})
	if err != nil {
		return domain.CancellationRequest{}, err
	}
	if !report.Ok() {
		return domain.CancellationRequest{}, domain.ErrStorageWrite
	}

	s.log.Info("cancellation request filed",
		zap.String("request_id", request.ID),
		zap.String("email", request.CustomerEmail),
		zap.String("project_id", request.ProjectID),
	)
	return request, nil
}

func (s *Service) ListRequests(ctx context.Context) (domain.Requests, error) {
	requests := domain.Requests{}
	err := s.store.View(ctx, func(tx store.ReadTx) error {
		return tx.Read(store.DocCancellations, &requests)
	})
	return requests, err
}

// Resolve approves or denies a pending request. Denial stamps the request
// and leaves the project alone. Approval stamps the request and runs the
// same transition as a direct cancellation, as a recurring package, with
// the request's reason and "Customer Request" as the actor. A request whose
// customer or project is already gone still gets stamped; the result then
// reports ProjectCancelled=false.
func (s *Service) Resolve(ctx context.Context, input domain.ResolveInput) (domain.ResolveResult, error) {
	if input.Action != domain.ActionApprove && input.Action != domain.ActionDeny {
		return domain.ResolveResult{}, domain.ErrInvalidAction
	}
	reviewer := strings.TrimSpace(input.AdminName)
	if reviewer == "" {
		reviewer = "Admin"
	}

	var result domain.ResolveResult
	report, err := s.store.Update(ctx, func(tx *store.Tx) error {
		requests := domain.Requests{}
		if err := tx.Read(store.DocCancellations, &requests); err != nil {
			return err
		}

		idx := -1
		for i := range requests {
			if requests[i].ID == input.RequestID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return domain.ErrRequestNotFound
		}

		status := domain.RequestDenied
		if input.Action == domain.ActionApprove {
			status = domain.RequestApproved
		}
		requests[idx].Status = status
		requests[idx].ReviewedBy = reviewer
		requests[idx].ReviewedDate = s.clock.Now().Format(time.RFC3339)
		tx.Write(store.DocCancellations, requests)
		result.Request = requests[idx]

		if input.Action != domain.ActionApprove {
			return nil
		}

		moved, err := s.cancelInTx(tx, domain.CancelProjectInput{
			CustomerEmail: requests[idx].CustomerEmail,
			ProjectID:     requests[idx].ProjectID,
			CancelledBy:   domain.ActorCustomerRequest,
			Reason:        requests[idx].Reason,
			OneTime:       false,
		})
		if err != nil {
			// The approval stands even when the project is already gone;
			// the caller sees the partial effect through the result.
			s.log.Warn("approved request had no project to cancel",
				zap.String("request_id", input.RequestID),
				zap.Error(err),
			)
			return nil
		}
		result.ProjectCancelled = true
		result.BillingEndDate = moved.BillingEndDate
		return nil
	})
	if err != nil {
		return domain.ResolveResult{}, err
	}
	if !report.Ok() {
		return result, domain.ErrStorageWrite
	}
	return result, nil
}
