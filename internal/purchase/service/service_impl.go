package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	userdomain "github.com/Jguyatt/backend/internal/account/domain"
	"github.com/Jguyatt/backend/internal/catalog"
	"github.com/Jguyatt/backend/internal/clock"
	customerdomain "github.com/Jguyatt/backend/internal/customer/domain"
	"github.com/Jguyatt/backend/internal/purchase/domain"
	"github.com/Jguyatt/backend/internal/store"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Store   *store.Store
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Catalog *catalog.Catalog
}

type Service struct {
	store   *store.Store
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	catalog *catalog.Catalog
}

func New(p Params) domain.Service {
	return &Service{
		store:   p.Store,
		log:     p.Log.Named("purchase.service"),
		genID:   p.GenID,
		clock:   p.Clock,
		catalog: p.Catalog,
	}
}

const dateOnly = "2006-01-02"

// Process turns a completed checkout into a customer record with one seed
// project, creates the user account if it does not exist yet, and appends a
// purchase-log entry. Re-delivery of the same session id is not
// deduplicated: it creates a fresh project id and replaces the customer's
// document.
func (s *Service) Process(ctx context.Context, event domain.CheckoutEvent) error {
	now := s.clock.Now()
	amount := float64(event.AmountCents) / 100
	packageName := s.catalog.Classify(event.AmountCents)

	customer := s.buildCustomer(event, packageName, amount, now)
	key := customerdomain.Key(event.Email)

	s.log.Info("processing purchase",
		zap.String("session_id", event.SessionID),
		zap.String("email", event.Email),
		zap.Float64("amount", amount),
		zap.String("package", packageName),
	)

	report, err := s.store.Update(ctx, func(tx *store.Tx) error {
		customers := customerdomain.Collection{}
		if err := tx.Read(store.DocCustomers, &customers); err != nil {
			return err
		}
		customers[key] = customer
		tx.Write(store.DocCustomers, customers)

		if email := strings.TrimSpace(event.Email); email != "" {
			users := userdomain.Users{}
			if err := tx.Read(store.DocUsers, &users); err != nil {
				return err
			}
			lower := strings.ToLower(email)
			if _, exists := users[lower]; !exists {
				users[lower] = userdomain.User{
					Email:         email,
					Name:          fallback(event.Name, "Customer"),
					BusinessName:  fallback(event.Name, "Customer") + " Business",
					IsAdmin:       false,
					EmailVerified: true,
					CreatedAt:     now.Format(time.RFC3339),
					Projects:      []string{},
				}
				tx.Write(store.DocUsers, users)
			}
		}

		purchases := domain.Purchases{}
		if err := tx.Read(store.DocPurchases, &purchases); err != nil {
			return err
		}
		purchases = append(purchases, domain.Purchase{
			ID:              s.genID.Generate().String(),
			StripeSessionID: event.SessionID,
			CustomerEmail:   event.Email,
			CustomerName:    event.Name,
			Amount:          amount,
			Package:         packageName,
			CreatedAt:       now.Format(time.RFC3339),
			Processed:       false,
		})
		tx.Write(store.DocPurchases, purchases)
		return nil
	})
	if err != nil {
		return err
	}
	if !report.Ok() {
		return fmt.Errorf("%w: %d of %d writes applied",
			domain.ErrStorageWrite, len(report.Applied), len(report.Applied)+len(report.Failed))
	}
	return nil
}

func (s *Service) buildCustomer(event domain.CheckoutEvent, packageName string, amount float64, now time.Time) customerdomain.Customer {
	desc := s.catalog.Describe(packageName)
	today := now.Format(dateOnly)
	in30Days := now.Add(30 * 24 * time.Hour).Format(dateOnly)
	plan := packageName + " Package"

	project := customerdomain.Project{
		ID:                s.genID.Generate().String(),
		Name:              plan,
		Status:            customerdomain.StatusActive,
		StartDate:         today,
		Progress:          20, // purchase completed, onboarding pending
		NextUpdate:        in30Days,
		Type:              desc.Type,
		Category:          desc.Category,
		Requirements:      desc.Requirements,
		EstimatedDuration: "30 days",
		Deliverables:      desc.Deliverables,
	}

	stripeCustomerID := event.CustomerID
	if stripeCustomerID == "" {
		stripeCustomerID = "cus_" + s.genID.Generate().String()
	}

	return customerdomain.Customer{
		Name:           fallback(event.Name, "Customer"),
		Email:          fallback(event.Email, "customer@example.com"),
		Business:       fallback(event.Name, "Customer") + " Business",
		Package:        packageName,
		MonthlyRate:    amount,
		ActiveProjects: []customerdomain.Project{project},
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
			MonthlyRate: amount,
			NextBilling: in30Days,
		},
		Billing: customerdomain.Billing{
			Plan:        plan,
			Amount:      "$" + strconv.FormatFloat(amount, 'f', -1, 64),
			NextBilling: in30Days,
			Status:      customerdomain.StatusActive,
		},
		StripeCustomerID:   stripeCustomerID,
		StripeSessionID:    event.SessionID,
		SubscriptionStatus: customerdomain.StatusActive,
	}
}

func (s *Service) List(ctx context.Context) (domain.Purchases, error) {
	purchases := domain.Purchases{}
	err := s.store.View(ctx, func(tx store.ReadTx) error {
		return tx.Read(store.DocPurchases, &purchases)
	})
	return purchases, err
}

// MarkProcessed flags the purchase-log entry with the given checkout
// session id.
func (s *Service) MarkProcessed(ctx context.Context, sessionID string) (domain.Purchase, error) {
	var marked domain.Purchase
	report, err := s.store.Update(ctx, func(tx *store.Tx) error {
		purchases := domain.Purchases{}
		if err := tx.Read(store.DocPurchases, &purchases); err != nil {
			return err
		}
		for i := range purchases {
			if purchases[i].StripeSessionID == sessionID {
				purchases[i].Processed = true
				marked = purchases[i]
				tx.Write(store.DocPurchases, purchases)
				return nil
			}
		}
		return domain.ErrPurchaseNotFound
	})
	if err != nil {
		return domain.Purchase{}, err
	}
	if !report.Ok() {
		return domain.Purchase{}, domain.ErrStorageWrite
	}
	return marked, nil
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}
