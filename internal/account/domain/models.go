package domain

import (
	"errors"
	"strings"

	customerdomain "github.com/Jguyatt/backend/internal/customer/domain"
)

// User is one registered account, independent of any purchase. The users
// document is keyed by lower-cased email.
type User struct {
	Email         string   `json:"email"`
	Name          string   `json:"name"`
	BusinessName  string   `json:"businessName"`
	IsAdmin       bool     `json:"isAdmin"`
	EmailVerified bool     `json:"emailVerified"`
	CreatedAt     string   `json:"createdAt"`
	Projects      []string `json:"projects"`
}

type Users map[string]User

// DeletedUser is an append-only tombstone. It never forbids recreating the
// account.
type DeletedUser struct {
	Email     string `json:"email"`
	Timestamp string `json:"timestamp"`
}

type DeletedUsers []DeletedUser

// Submission is a free-form onboarding form payload. The shape is owned by
// the front end; the backend only appends, reads, and flips status.
type Submission map[string]any

type Submissions []Submission

const SubmissionStatusCancelled = "cancelled"

func (s Submission) CustomerEmail() string {
	email, _ := s["customerEmail"].(string)
	return email
}

func (s Submission) MatchesEmail(email string) bool {
	own := strings.ToLower(strings.TrimSpace(s.CustomerEmail()))
	return own != "" && own == strings.ToLower(strings.TrimSpace(email))
}

func (s Submission) MarkCancelled() {
	s["status"] = SubmissionStatusCancelled
}

// SyncInput is the client-pushed upsert of user and/or customer state.
type SyncInput struct {
	Email        string
	UserData     *User
	CustomerData *customerdomain.Customer
}

// Removed reports what a user deletion purged.
type Removed struct {
	User         bool `json:"user"`
	CustomerData bool `json:"customerData"`
	Submissions  int  `json:"submissions"`
	DeletedUsers int  `json:"deletedUsers"`
}

// Dump is the admin view over every store.
type Dump struct {
	Customers      customerdomain.Collection `json:"customers"`
	Users          Users                     `json:"users"`
	OnboardingSubs Submissions               `json:"onboardingSubmissions"`
	DeletedUsers   DeletedUsers              `json:"deletedUsers"`
}

// CleanupInput names the synthetic records a test run wants removed.
type CleanupInput struct {
	TestCustomers   []string
	TestUsers       []string
	TestSubmissions []Submission
}

// CleanupResult counts what the cleanup removed.
type CleanupResult struct {
	Customers   int `json:"customers"`
	Users       int `json:"users"`
	Submissions int `json:"submissions"`
}

var (
	ErrInvalidEmail     = errors.New("invalid_email")
	ErrInvalidUser      = errors.New("invalid_user")
	ErrCustomerNotFound = errors.New("customer_not_found")
	ErrStorageWrite     = errors.New("storage_write_failed")
)
