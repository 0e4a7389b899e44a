package lead

import "context"

// Identity describes the authenticated caller of an admin operation.
type Identity struct {
	Subject string
}

// Authorizer is the capability check for admin operations: it answers whether
// the caller attached to ctx may triage leads, and who that caller is.
// Implementations are swapped at the composition root (JWT-backed in
// production, AllowAll in development and tests).
type Authorizer interface {
	Authorize(ctx context.Context) (Identity, bool)
}

// AllowAll authorizes every caller. Development and test wiring only.
type AllowAll struct {
	Subject string
}

func (a AllowAll) Authorize(context.Context) (Identity, bool) {
	subject := a.Subject
	if subject == "" {
		subject = "dev-admin"
	}
	return Identity{Subject: subject}, true
}

// DenyAll rejects every caller. Useful as a test double for unauthorized paths.
type DenyAll struct{}

func (DenyAll) Authorize(context.Context) (Identity, bool) {
	return Identity{}, false
}
