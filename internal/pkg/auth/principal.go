package auth

import "context"

// Principal is the authenticated identity attached to a single request.
// Fields are fixed at construction; the password hash is only consulted during login.
type Principal struct {
	id           int64
	username     string
	firstName    string
	lastName     string
	admin        bool
	passwordHash string
}

// NewPrincipal builds a principal from a stored user record.
func NewPrincipal(id int64, username, firstName, lastName string, admin bool, passwordHash string) *Principal {
	return &Principal{
		id:           id,
		username:     username,
		firstName:    firstName,
		lastName:     lastName,
		admin:        admin,
		passwordHash: passwordHash,
	}
}

func (p *Principal) ID() int64            { return p.id }
func (p *Principal) Username() string     { return p.username }
func (p *Principal) FirstName() string    { return p.firstName }
func (p *Principal) LastName() string     { return p.lastName }
func (p *Principal) IsAdmin() bool        { return p.admin }
func (p *Principal) PasswordHash() string { return p.passwordHash }

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the principal stored by the authentication filter, if any.
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok && p != nil
}
