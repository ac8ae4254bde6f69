package models

import (
	"time"
)

// Account defines the user model based on the 'users' table. One table
// carries all three roles; the student-only columns are nullable for
// admin and superadmin rows.
type Account struct {
	ID        int64     `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Password  string    `json:"-" db:"password"` // bcrypt hash, excluded from JSON
	Role      RoleType  `json:"role" db:"role"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Group     string    `json:"group,omitempty" db:"sig"` // empty for superadmin
	Position  string    `json:"position,omitempty" db:"position"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Student-only fields.
	StudentNumber *string           `json:"studentNumber,omitempty" db:"student_number"`
	Year          *int              `json:"year,omitempty" db:"year"`
	Section       *string           `json:"section,omitempty" db:"section"`
	Major         *string           `json:"major,omitempty" db:"major"`
	Status        *MembershipStatus `json:"status,omitempty" db:"status"`
}

// MembershipStatusOrDefault returns the account's status, defaulting to
// pending for student rows that predate the status column.
func (a *Account) MembershipStatusOrDefault() MembershipStatus {
	if a.Status == nil {
		return StatusPending
	}
	return *a.Status
}

// IsApprovedStudent reports whether a student account may see group data.
func (a *Account) IsApprovedStudent() bool {
	return a.Role == RoleStudent && a.Status != nil && *a.Status == StatusApproved
}
