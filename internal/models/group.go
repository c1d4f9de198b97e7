package models

// Group represents a leaderboard group.
// The creator is implicitly its first member.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group, 3 to 100 characters after trimming.
	Name string

	// CreatedBy is the user ID of the creator. Only the creator may rename or delete.
	CreatedBy string

	// InviteToken is the unguessable capability embedded in /join/{token} links.
	InviteToken string

	// MemberCount is derived from the membership table on read.
	MemberCount int

	CreatedAt int64
	UpdatedAt int64
}

// Member represents a user's presence in a group under an alias.
// A user appears at most once per group.
type Member struct {
	ID      string
	GroupID string
	UserID  string

	// DisplayAlias is shown on the leaderboard instead of the account name.
	DisplayAlias string

	// JoinedAt is the Unix timestamp of the join; members are listed in this order.
	JoinedAt int64
}

// GroupRef is the minimal view of a group resolved from an invite token.
type GroupRef struct {
	ID   string
	Name string
}

// InvitePreview is what a prospective member sees before choosing an alias.
type InvitePreview struct {
	GroupID      string
	GroupName    string
	CreatorEmail string
	MemberCount  int
}
