package domain

import "strings"

const keyPrefix = "customer-"

// Key derives the customerData storage key from an email: lower-cased, with
// every non-alphanumeric character replaced by a hyphen. An absent email
// falls back to "unknown". Both the write path and the read path use this
// one derivation.
func Key(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return keyPrefix + "unknown"
	}

	var b strings.Builder
	for _, r := range strings.ToLower(email) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune('-')
		}
	}
	return keyPrefix + b.String()
}

// EmailIndex is the secondary index from lower-cased email to storage key.
// It is rebuilt from the loaded document instead of scanning per lookup.
type EmailIndex map[string]string

func BuildEmailIndex(customers Collection) EmailIndex {
	idx := make(EmailIndex, len(customers))
	for key, customer := range customers {
		email := strings.ToLower(strings.TrimSpace(customer.Email))
		if email == "" {
			continue
		}
		idx[email] = key
	}
	return idx
}

func (idx EmailIndex) Lookup(email string) (string, bool) {
	key, ok := idx[strings.ToLower(strings.TrimSpace(email))]
	return key, ok
}
