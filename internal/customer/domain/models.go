package domain

// Customer is the whole-document record for one paying customer, keyed in
// the customerData document by a normalized email-derived key. Field names
// match the documents the dashboard and portal already consume.
type Customer struct {
	Name               string        `json:"name"`
	Email              string        `json:"email"`
	Business           string        `json:"business"`
	Package            string        `json:"package"`
	MonthlyRate        float64       `json:"monthlyRate"`
	ActiveProjects     []Project     `json:"activeProjects"`
	CompletedProjects  []Project     `json:"completedProjects,omitempty"`
	OrderTimeline      OrderTimeline `json:"orderTimeline"`
	RecentActivity     []Activity    `json:"recentActivity"`
	Subscription       Subscription  `json:"subscription"`
	Billing            Billing       `json:"billing"`
	StripeCustomerID   string        `json:"stripeCustomerId"`
	StripeSessionID    string        `json:"stripeSessionId"`
	SubscriptionStatus string        `json:"subscriptionStatus"`
}

const (
	StatusActive    = "Active"
	StatusCancelled = "Cancelled"
)

// Project is one purchased service engagement. A project id lives in
// exactly one of activeProjects or completedProjects; cancellation moves
// it, never copies or drops it.
type Project struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Status            string   `json:"status"`
	StartDate         string   `json:"startDate"`
	Progress          int      `json:"progress"`
	NextUpdate        string   `json:"nextUpdate"`
	Type              string   `json:"type"`
	Category          string   `json:"category"`
	Requirements      []string `json:"requirements"`
	EstimatedDuration string   `json:"estimatedDuration"`
	Deliverables      []string `json:"deliverables"`

	CancelledDate      string `json:"cancelledDate,omitempty"`
	CancelledBy        string `json:"cancelledBy,omitempty"`
	CompletedDate      string `json:"completedDate,omitempty"`
	CancellationReason string `json:"cancellationReason,omitempty"`
	BillingEndDate     string `json:"billingEndDate,omitempty"`
}

// OrderTimeline tracks the five order milestones.
type OrderTimeline struct {
	OrderPlaced     Milestone `json:"orderPlaced"`
	OnboardingForm  Milestone `json:"onboardingForm"`
	OrderInProgress Milestone `json:"orderInProgress"`
	ReviewDelivery  Milestone `json:"reviewDelivery"`
	OrderComplete   Milestone `json:"orderComplete"`
}

type Milestone struct {
	Status    string `json:"status"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}

// Activity is one entry of the most-recent-first activity feed. Purchase
// entries carry a date, cancellation entries an id/timestamp/projectId; the
// optional fields keep both shapes in one type.
type Activity struct {
	ID        string `json:"id,omitempty"`
	Type      string `json:"type"`
	Message   string `json:"message"`
	Date      string `json:"date,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	ProjectID string `json:"projectId,omitempty"`
}

type Subscription struct {
	Status      string  `json:"status"`
	Plan        string  `json:"plan"`
	MonthlyRate float64 `json:"monthlyRate"`
	NextBilling string  `json:"nextBilling"`
}

type Billing struct {
	Plan        string `json:"plan"`
	Amount      string `json:"amount"`
	NextBilling string `json:"nextBilling"`
	Status      string `json:"status"`
}

// Collection is the customerData document: storage key -> customer.
type Collection map[string]Customer
