package models

import "time"

// MembershipStatus is the lifecycle state of a chapter membership
type MembershipStatus string

const (
	MembershipActive   MembershipStatus = "active"
	MembershipInactive MembershipStatus = "inactive"
	// MembershipPending is reserved for invite or approval based joins;
	// the join flows currently activate memberships immediately
	MembershipPending MembershipStatus = "pending"
)

// Valid reports whether the value is a known membership status
func (s MembershipStatus) Valid() bool {
	return s == MembershipActive || s == MembershipInactive || s == MembershipPending
}

// ChapterMembership represents a row in the chapter_memberships join table.
// At most one row per user may be primary and active at the same time;
// the membership service maintains that invariant transactionally.
type ChapterMembership struct {
	ID        int64            `json:"id" db:"id"`
	UserID    int64            `json:"userId" db:"user_id"`
	ChapterID int64            `json:"chapterId" db:"chapter_id"`
	IsPrimary bool             `json:"isPrimary" db:"is_primary"`
	Status    MembershipStatus `json:"membershipStatus" db:"membership_status"`
	JoinedAt  time.Time        `json:"joinedAt" db:"joined_at"`
	CreatedAt time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time        `json:"updatedAt" db:"updated_at"`

	// Related entities
	User    *User    `json:"user,omitempty" db:"-"`
	Chapter *Chapter `json:"chapter,omitempty" db:"-"`
}
