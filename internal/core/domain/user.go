package domain

import "time"

// Role is the capability level of a user.
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// User models a registered marketplace participant. A user sells products and
// authors reviews; PayoutAccountID is the connected account at the payment
// processor and is set once, at registration.
type User struct {
	ID              uint      `json:"id"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"`
	Name            string    `json:"name"`
	PayoutAccountID string    `json:"payout_account_id,omitempty"`
	Role            Role      `json:"role"`
	CreatedAt       time.Time `json:"created_at"`
}

// Payable reports whether checkout may route funds to this user.
func (u *User) Payable() bool {
	return u.PayoutAccountID != ""
}

// Actor is the caller of an operation, decoded from the session. The zero
// value is the anonymous actor.
type Actor struct {
	ID   uint
	Name string
	Role Role
}

// Authenticated reports whether the actor carries a user identity.
func (a Actor) Authenticated() bool {
	return a.ID != 0
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Authenticated() && a.Role == RoleAdmin
}

// Session is an issued login session.
type Session struct {
	Token     string    `json:"token"`
	ID        string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
}
