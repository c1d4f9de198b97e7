// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/cpnboard/internal/models"
)

var (
	// ErrNotFound is returned when no row matches the lookup or the ownership predicate.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned when a uniqueness constraint rejects a write.
	ErrConflict = errors.New("record already exists")
)

// UserStore holds user profiles. Subscription fields are written only by
// the billing boundary.
type UserStore interface {
	// CreateUser inserts a new profile. Returns ErrConflict if the ID exists.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByID returns ErrNotFound when the user does not exist.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// UpdateProfile refreshes email and display name from the identity provider.
	UpdateProfile(ctx context.Context, id, email, displayName string) error

	// UpdateSubscription applies a billing update. Empty fields are left unchanged.
	UpdateSubscription(ctx context.Context, id string, update models.SubscriptionUpdate) error
}

// TrackerStore holds tracked entities and their encounter entries.
type TrackerStore interface {
	CreateEntity(ctx context.Context, entity *models.Entity) error
	GetEntity(ctx context.Context, id string) (*models.Entity, error)

	// ListEntitiesByUser returns active and inactive entities, newest first.
	ListEntitiesByUser(ctx context.Context, userID string) ([]*models.Entity, error)
	CountActiveEntities(ctx context.Context, userID string) (int, error)

	// SetEntityActive and DeleteEntity match on both id and owner.
	// They return ErrNotFound when nothing matched.
	SetEntityActive(ctx context.Context, id, userID string, active bool) error
	DeleteEntity(ctx context.Context, id, userID string) error

	CreateEntry(ctx context.Context, entry *models.Entry) error
	ListEntriesByEntity(ctx context.Context, entityID string) ([]*models.Entry, error)

	// ListEntriesByUser returns the entries of every entity the user owns.
	ListEntriesByUser(ctx context.Context, userID string) ([]*models.Entry, error)

	// AggregateUserTotals computes the same totals as summing ListEntriesByUser
	// and ListEntitiesByUser, inside the database.
	AggregateUserTotals(ctx context.Context, userID string) (*models.UserTotals, error)
}

// GroupStore holds leaderboard groups. Reads populate Group.MemberCount.
type GroupStore interface {
	// CreateGroup persists a group. Returns ErrConflict on a duplicate invite token.
	CreateGroup(ctx context.Context, group *models.Group) error
	GetGroup(ctx context.Context, id string) (*models.Group, error)
	GetGroupByInviteToken(ctx context.Context, token string) (*models.Group, error)
	GetInvitePreview(ctx context.Context, token string) (*models.InvitePreview, error)

	// ListGroupsByMember returns every group the user belongs to.
	ListGroupsByMember(ctx context.Context, userID string) ([]*models.Group, error)

	// UpdateGroupName and DeleteGroup only touch rows created by ownerID.
	// They return ErrNotFound when the group is missing or owned by someone else.
	UpdateGroupName(ctx context.Context, id, ownerID, name string) (*models.Group, error)
	DeleteGroup(ctx context.Context, id, ownerID string) error
}

// MemberStore holds group memberships. (group_id, user_id) is unique.
type MemberStore interface {
	// AddMember inserts a membership. Returns ErrConflict if the user is already in the group.
	AddMember(ctx context.Context, member *models.Member) error

	// EnsureMember inserts a membership unless one exists for the same
	// (group_id, user_id). It reports whether a row was created.
	EnsureMember(ctx context.Context, member *models.Member) (bool, error)

	GetMember(ctx context.Context, groupID, userID string) (*models.Member, error)

	// RemoveMember succeeds even when no row matched.
	RemoveMember(ctx context.Context, groupID, userID string) error
	UpdateMemberAlias(ctx context.Context, groupID, userID, alias string) (*models.Member, error)

	// ListMembers returns members in join order.
	ListMembers(ctx context.Context, groupID string) ([]*models.Member, error)
}

// Store defines the full persistence boundary.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL)
// without changing the service layer.
type Store interface {
	UserStore
	TrackerStore
	GroupStore
	MemberStore

	// Close releases any resources held by the store.
	Close() error
}
