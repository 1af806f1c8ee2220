package service

import (
	"context"
	"testing"
	"time"

	accountdomain "github.com/Jguyatt/backend/internal/account/domain"
	"github.com/Jguyatt/backend/internal/catalog"
	"github.com/Jguyatt/backend/internal/clock"
	customerdomain "github.com/Jguyatt/backend/internal/customer/domain"
	"github.com/Jguyatt/backend/internal/purchase/domain"
	"github.com/Jguyatt/backend/internal/store"
	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) (domain.Service, *store.Store, *clock.FakeClock) {
	t.Helper()

	st := store.New(store.NewMemoryBackend(), zap.NewNop())
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	fake := clock.NewFakeClock(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))

	svc := New(Params{
		Store:   st,
		Log:     zap.NewNop(),
		GenID:   node,
		Clock:   fake,
		Catalog: catalog.New(),
	})
	return svc, st, fake
}

func readCustomers(t *testing.T, st *store.Store) customerdomain.Collection {
	t.Helper()
	customers := customerdomain.Collection{}
	err := st.View(context.Background(), func(tx store.ReadTx) error {
		return tx.Read(store.DocCustomers, &customers)
	})
	require.NoError(t, err)
	return customers
}

func TestProcessSeedsCustomerDocument(t *testing.T) {
	svc, st, _ := newTestService(t)

	err := svc.Process(context.Background(), domain.CheckoutEvent{
		SessionID:   "cs_test_1",
		CustomerID:  "cus_123",
		Email:       "A@B.com",
		Name:        "Ada",
		AmountCents: 24900,
	})
	require.NoError(t, err)

	customers := readCustomers(t, st)
	customer, ok := customers["customer-a-b-com"]
	require.True(t, ok, "customer keyed by normalized email")

	assert.Equal(t, "Ada", customer.Name)
	assert.Equal(t, "Map PowerBoost", customer.Package)
	assert.Equal(t, float64(249), customer.MonthlyRate)
	assert.Equal(t, customerdomain.StatusActive, customer.SubscriptionStatus)
	assert.Equal(t, "cus_123", customer.StripeCustomerID)
	assert.Equal(t, "cs_test_1", customer.StripeSessionID)

	require.Len(t, customer.ActiveProjects, 1)
	project := customer.ActiveProjects[0]
	assert.NotEmpty(t, project.ID)
	assert.Equal(t, "Map PowerBoost Package", project.Name)
	assert.Equal(t, customerdomain.StatusActive, project.Status)
	assert.Equal(t, 20, project.Progress)
	assert.Equal(t, "2026-03-10", project.StartDate)
	assert.Equal(t, "2026-04-09", project.NextUpdate)
	assert.Equal(t, "Google Maps Optimization", project.Type)

	assert.True(t, customer.OrderTimeline.OrderPlaced.Completed)
	assert.Equal(t, "2026-03-10", customer.OrderTimeline.OrderPlaced.Date)
	assert.False(t, customer.OrderTimeline.OnboardingForm.Completed)

	require.Len(t, customer.RecentActivity, 1)
	assert.Equal(t, "purchase_completed", customer.RecentActivity[0].Type)
	assert.Equal(t, "Purchase completed: Map PowerBoost Package", customer.RecentActivity[0].Message)

	assert.Equal(t, "$249", customer.Billing.Amount)
	assert.Equal(t, "2026-04-09", customer.Subscription.NextBilling)
}

func TestProcessCreatesUserOnlyWhenAbsent(t *testing.T) {
	svc, st, _ := newTestService(t)

	_, err := st.Update(context.Background(), func(tx *store.Tx) error {
		tx.Write(store.DocUsers, accountdomain.Users{
			"a@b.com": {Email: "a@b.com", Name: "Existing", IsAdmin: true},
		})
		return nil
	})
	require.NoError(t, err)

	err = svc.Process(context.Background(), domain.CheckoutEvent{
		SessionID:   "cs_test_2",
		Email:       "a@b.com",
		Name:        "Ada",
		AmountCents: 24900,
	})
	require.NoError(t, err)

	users := accountdomain.Users{}
	err = st.View(context.Background(), func(tx store.ReadTx) error {
		return tx.Read(store.DocUsers, &users)
	})
	require.NoError(t, err)
	assert.Equal(t, "Existing", users["a@b.com"].Name, "existing account must not be overwritten")
	assert.True(t, users["a@b.com"].IsAdmin)
}

func TestProcessAppendsPurchaseLogEntry(t *testing.T) {
	svc, _, _ := newTestService(t)

	err := svc.Process(context.Background(), domain.CheckoutEvent{
		SessionID:   "cs_test_3",
		Email:       "a@b.com",
		Name:        "Ada",
		AmountCents: 100,
	})
	require.NoError(t, err)

	purchases, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, purchases, 1)
	assert.Equal(t, "cs_test_3", purchases[0].StripeSessionID)
	assert.Equal(t, "Test", purchases[0].Package)
	assert.Equal(t, float64(1), purchases[0].Amount)
	assert.False(t, purchases[0].Processed)
}

func TestProcessDuplicateSessionCreatesFreshProject(t *testing.T) {
	svc, st, _ := newTestService(t)

	event := domain.CheckoutEvent{
		SessionID:   "cs_dup",
		Email:       "a@b.com",
		AmountCents: 24900,
	}
	require.NoError(t, svc.Process(context.Background(), event))
	first := readCustomers(t, st)["customer-a-b-com"].ActiveProjects[0].ID

	require.NoError(t, svc.Process(context.Background(), event))
	customer := readCustomers(t, st)["customer-a-b-com"]

	// Redelivery is not deduplicated: the document is replaced with a new
	// project id and the log gains a second entry.
	require.Len(t, customer.ActiveProjects, 1)
	assert.NotEqual(t, first, customer.ActiveProjects[0].ID)

	purchases, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, purchases, 2)
}

func TestProcessUnknownAmount(t *testing.T) {
	svc, st, _ := newTestService(t)

	err := svc.Process(context.Background(), domain.CheckoutEvent{
		SessionID:   "cs_odd",
		Email:       "a@b.com",
		AmountCents: 12345,
	})
	require.NoError(t, err)

	customer := readCustomers(t, st)["customer-a-b-com"]
	assert.Equal(t, catalog.UnknownPackage, customer.Package)
	assert.Equal(t, 123.45, customer.MonthlyRate)
	require.Len(t, customer.ActiveProjects, 1)
	assert.Equal(t, "Local SEO", customer.ActiveProjects[0].Category)
}

func TestProcessWithoutEmailFallsBackToUnknownKey(t *testing.T) {
	svc, st, _ := newTestService(t)

	err := svc.Process(context.Background(), domain.CheckoutEvent{
		SessionID:   "cs_noemail",
		AmountCents: 24900,
	})
	require.NoError(t, err)

	customers := readCustomers(t, st)
	customer, ok := customers["customer-unknown"]
	require.True(t, ok)
	assert.Equal(t, "customer@example.com", customer.Email)
	assert.Equal(t, "Customer", customer.Name)
}

func TestMarkProcessed(t *testing.T) {
	svc, _, _ := newTestService(t)

	require.NoError(t, svc.Process(context.Background(), domain.CheckoutEvent{
		SessionID:   "cs_mark",
		Email:       "a@b.com",
		AmountCents: 24900,
	}))

	purchase, err := svc.MarkProcessed(context.Background(), "cs_mark")
	require.NoError(t, err)
	assert.True(t, purchase.Processed)

	purchases, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, purchases, 1)
	assert.True(t, purchases[0].Processed)
}

func TestMarkProcessedNotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.MarkProcessed(context.Background(), "cs_missing")
	require.ErrorIs(t, err, domain.ErrPurchaseNotFound)
}
