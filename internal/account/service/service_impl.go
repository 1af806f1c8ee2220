package service

import (
	"context"
	"strings"
	"time"

	"github.com/Jguyatt/backend/internal/account/domain"
	"github.com/Jguyatt/backend/internal/clock"
	customerdomain "github.com/Jguyatt/backend/internal/customer/domain"
	"github.com/Jguyatt/backend/internal/store"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Store *store.Store
	Log   *zap.Logger
	Clock clock.Clock
}

type Service struct {
	store *store.Store
	log   *zap.Logger
	clock clock.Clock
}

func New(p Params) domain.Service {
	return &Service{
		store: p.Store,
		log:   p.Log.Named("account.service"),
		clock: p.Clock,
	}
}

// Sync upserts client-pushed user and customer state. Customer documents
// are only accepted when they carry at least one active project, so a stale
// portal cannot blank out a record seeded by a purchase.
func (s *Service) Sync(ctx context.Context, input domain.SyncInput) error {
	if input.UserData != nil && strings.TrimSpace(input.UserData.Email) == "" {
		return domain.ErrInvalidUser
	}

	report, err := s.store.Update(ctx, func(tx *store.Tx) error {
		if input.UserData != nil {
			users := domain.Users{}
			if err := tx.Read(store.DocUsers, &users); err != nil {
				return err
			}
			users[strings.ToLower(strings.TrimSpace(input.UserData.Email))] = *input.UserData
			tx.Write(store.DocUsers, users)
		}

		if input.Email != "" && input.CustomerData != nil && len(input.CustomerData.ActiveProjects) > 0 {
			customers := customerdomain.Collection{}
			if err := tx.Read(store.DocCustomers, &customers); err != nil {
				return err
			}
			customers[customerdomain.Key(input.Email)] = *input.CustomerData
			tx.Write(store.DocCustomers, customers)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if !report.Ok() {
		return domain.ErrStorageWrite
	}
	return nil
}

// DeleteUser tombstones an email and purges the user, every matching
// customer record, and matching onboarding submissions. All four documents
// commit in one transaction; partial write failures are logged per document
// by the store.
func (s *Service) DeleteUser(ctx context.Context, email string) (domain.Removed, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return domain.Removed{}, domain.ErrInvalidEmail
	}
	lower := strings.ToLower(email)

	var removed domain.Removed
	report, err := s.store.Update(ctx, func(tx *store.Tx) error {
		users := domain.Users{}
		customers := customerdomain.Collection{}
		submissions := domain.Submissions{}
		deleted := domain.DeletedUsers{}
		if err := tx.Read(store.DocUsers, &users); err != nil {
			return err
		}
		if err := tx.Read(store.DocCustomers, &customers); err != nil {
			return err
		}
		if err := tx.Read(store.DocOnboarding, &submissions); err != nil {
			return err
		}
		if err := tx.Read(store.DocDeletedUsers, &deleted); err != nil {
			return err
		}

		if _, ok := users[lower]; ok {
			delete(users, lower)
			removed.User = true
		}

		for key, customer := range customers {
			if strings.ToLower(strings.TrimSpace(customer.Email)) == lower {
				delete(customers, key)
				removed.CustomerData = true
			}
		}

		kept := make(domain.Submissions, 0, len(submissions))
		for _, sub := range submissions {
			if sub.MatchesEmail(email) {
				removed.Submissions++
				continue
			}
			kept = append(kept, sub)
		}

		deleted = append(deleted, domain.DeletedUser{
			Email:     email,
			Timestamp: s.clock.Now().Format(time.RFC3339),
		})
		removed.DeletedUsers = len(deleted)

		tx.Write(store.DocUsers, users)
		tx.Write(store.DocCustomers, customers)
		tx.Write(store.DocOnboarding, kept)
		tx.Write(store.DocDeletedUsers, deleted)
		return nil
	})
	if err != nil {
		return domain.Removed{}, err
	}
	if !report.Ok() {
		return removed, domain.ErrStorageWrite
	}

	s.log.Info("user deleted",
		zap.String("email", lower),
		zap.Bool("had_user", removed.User),
		zap.Bool("had_customer", removed.CustomerData),
		zap.Int("submissions_removed", removed.Submissions),
	)
	return removed, nil
}

func (s *Service) ListDeleted(ctx context.Context) (domain.DeletedUsers, error) {
	deleted := domain.DeletedUsers{}
	err := s.store.View(ctx, func(tx store.ReadTx) error {
		return tx.Read(store.DocDeletedUsers, &deleted)
	})
	return deleted, err
}

func (s *Service) AllData(ctx context.Context) (domain.Dump, error) {
	dump := domain.Dump{
		Customers:      customerdomain.Collection{},
		Users:          domain.Users{},
		OnboardingSubs: domain.Submissions{},
		DeletedUsers:   domain.DeletedUsers{},
	}
	err := s.store.View(ctx, func(tx store.ReadTx) error {
		if err := tx.Read(store.DocCustomers, &dump.Customers); err != nil {
			return err
		}
		if err := tx.Read(store.DocUsers, &dump.Users); err != nil {
			return err
		}
		if err := tx.Read(store.DocOnboarding, &dump.OnboardingSubs); err != nil {
			return err
		}
		return tx.Read(store.DocDeletedUsers, &dump.DeletedUsers)
	})
	return dump, err
}

func (s *Service) GetCustomer(ctx context.Context, email string) (customerdomain.Customer, bool, error) {
	customers := customerdomain.Collection{}
	err := s.store.View(ctx, func(tx store.ReadTx) error {
		return tx.Read(store.DocCustomers, &customers)
	})
	if err != nil {
		return customerdomain.Customer{}, false, err
	}
	customer, ok := customers[customerdomain.Key(email)]
	return customer, ok, nil
}

func (s *Service) DeleteCustomer(ctx context.Context, key string) error {
	report, err := s.store.Update(ctx, func(tx *store.Tx) error {
		customers := customerdomain.Collection{}
		if err := tx.Read(store.DocCustomers, &customers); err != nil {
			return err
		}
		if _, ok := customers[key]; !ok {
			return domain.ErrCustomerNotFound
		}
		delete(customers, key)
		tx.Write(store.DocCustomers, customers)
		return nil
	})
	if err != nil {
		return err
	}
	if !report.Ok() {
		return domain.ErrStorageWrite
	}
	return nil
}

func (s *Service) SubmitOnboarding(ctx context.Context, submission domain.Submission) error {
	report, err := s.store.Update(ctx, func(tx *store.Tx) error {
		submissions := domain.Submissions{}
		if err := tx.Read(store.DocOnboarding, &submissions); err != nil {
			return err
		}
		submissions = append(submissions, submission)
		tx.Write(store.DocOnboarding, submissions)
		return nil
	})
	if err != nil {
		return err
	}
	if !report.Ok() {
		return domain.ErrStorageWrite
	}
	s.log.Info("onboarding submission received", zap.String("email", submission.CustomerEmail()))
	return nil
}

func (s *Service) ListOnboarding(ctx context.Context) (domain.Submissions, error) {
	submissions := domain.Submissions{}
	err := s.store.View(ctx, func(tx store.ReadTx) error {
		return tx.Read(store.DocOnboarding, &submissions)
	})
	return submissions, err
}

// Cleanup removes synthetic records created by integration tests.
func (s *Service) Cleanup(ctx context.Context, input domain.CleanupInput) (domain.CleanupResult, error) {
	var result domain.CleanupResult
	report, err := s.store.Update(ctx, func(tx *store.Tx) error {
		if len(input.TestCustomers) > 0 {
			customers := customerdomain.Collection{}
			if err := tx.Read(store.DocCustomers, &customers); err != nil {
				return err
			}
			for _, key := range input.TestCustomers {
				if _, ok := customers[key]; ok {
					delete(customers, key)
					result.Customers++
				}
			}
			tx.Write(store.DocCustomers, customers)
		}

		if len(input.TestUsers) > 0 {
			users := domain.Users{}
			if err := tx.Read(store.DocUsers, &users); err != nil {
				return err
			}
			for _, email := range input.TestUsers {
				lower := strings.ToLower(strings.TrimSpace(email))
				if _, ok := users[lower]; ok {
					delete(users, lower)
					result.Users++
				}
			}
			tx.Write(store.DocUsers, users)
		}

		if len(input.TestSubmissions) > 0 {
			submissions := domain.Submissions{}
			if err := tx.Read(store.DocOnboarding, &submissions); err != nil {
				return err
			}
			kept := make(domain.Submissions, 0, len(submissions))
			for _, sub := range submissions {
				if matchesAny(sub, input.TestSubmissions) {
					result.Submissions++
					continue
				}
				kept = append(kept, sub)
			}
			tx.Write(store.DocOnboarding, kept)
		}
		return nil
	})
	if err != nil {
		return domain.CleanupResult{}, err
	}
	if !report.Ok() {
		return result, domain.ErrStorageWrite
	}
	return result, nil
}

func matchesAny(sub domain.Submission, tests []domain.Submission) bool {
	for _, test := range tests {
		if id, ok := test["id"]; ok && id == sub["id"] {
			return true
		}
		if email := test.CustomerEmail(); email != "" && sub.MatchesEmail(email) {
			return true
		}
	}
	return false
}
