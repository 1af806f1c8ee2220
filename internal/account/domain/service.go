package domain

import (
	"context"

	customerdomain "github.com/Jguyatt/backend/internal/customer/domain"
)

type Service interface {
	Sync(ctx context.Context, input SyncInput) error
	DeleteUser(ctx context.Context, email string) (Removed, error)
	ListDeleted(ctx context.Context) (DeletedUsers, error)
	AllData(ctx context.Context) (Dump, error)
	GetCustomer(ctx context.Context, email string) (customerdomain.Customer, bool, error)
	DeleteCustomer(ctx context.Context, key string) error
	SubmitOnboarding(ctx context.Context, submission Submission) error
	ListOnboarding(ctx context.Context) (Submissions, error)
	Cleanup(ctx context.Context, input CleanupInput) (CleanupResult, error)
}
