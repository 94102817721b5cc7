package model

import "time"

// Roles stored in the users.role column.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// Stats carries the cumulative per-player figures maintained from
// completed matches.  The columns live on the users table and are
// updated exactly once per match completion.
type Stats struct {
	TotalWins    uint32 `json:"total_wins"`
	TotalLosses  uint32 `json:"total_losses"`
	TotalPoints  uint32 `json:"total_points"`
	HighestBreak uint32 `json:"highest_break"`
}

// TotalMatches is the number of completed matches the player took part in.
func (s Stats) TotalMatches() uint32 { return s.TotalWins + s.TotalLosses }

// User mirrors the 'users' table.  Customers authenticate with
// mobile + OTP and have no password; admins carry a bcrypt hash in
// PasswordHash.  Mobile numbers are ten digits and unique.
type User struct {
	ID           uint64
	Mobile       string
	Name         string
	Role         string
	PasswordHash string // empty for customers
	IsActive     bool
	Stats        Stats
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
