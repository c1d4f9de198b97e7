package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema mirrors the SQLite schema. The seq columns give a stable
// insertion order where SQLite would use rowid.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL,
    display_name TEXT NOT NULL DEFAULT '',
    subscription_tier TEXT NOT NULL DEFAULT 'boyfriend',
    subscription_status TEXT NOT NULL DEFAULT '',
    stripe_customer_id TEXT NOT NULL DEFAULT '',
    stripe_subscription_id TEXT NOT NULL DEFAULT '',
    has_seen_paywall BOOLEAN NOT NULL DEFAULT FALSE,
    created_at BIGINT NOT NULL,
    updated_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS entities (
    id TEXT PRIMARY KEY,
    seq BIGSERIAL,
    user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    age INTEGER NOT NULL,
    nationality TEXT NOT NULL DEFAULT '',
    ethnicity TEXT NOT NULL DEFAULT '',
    hair_color TEXT NOT NULL DEFAULT '',
    location_city TEXT NOT NULL DEFAULT '',
    location_country TEXT NOT NULL DEFAULT '',
    rating DOUBLE PRECISION NOT NULL CHECK (rating >= 0 AND rating <= 10),
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at BIGINT NOT NULL,
    updated_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS entries (
    id TEXT PRIMARY KEY,
    seq BIGSERIAL,
    entity_id TEXT NOT NULL REFERENCES entities(id) ON DELETE CASCADE,
    date TEXT NOT NULL,
    amount_spent DOUBLE PRECISION NOT NULL CHECK (amount_spent >= 0),
    duration_minutes INTEGER NOT NULL CHECK (duration_minutes > 0),
    units_count INTEGER NOT NULL CHECK (units_count >= 0),
    created_at BIGINT NOT NULL,
    updated_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS leaderboard_groups (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    created_by TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    invite_token TEXT NOT NULL UNIQUE,
    created_at BIGINT NOT NULL,
    updated_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS leaderboard_members (
    id TEXT PRIMARY KEY,
    seq BIGSERIAL,
    group_id TEXT NOT NULL REFERENCES leaderboard_groups(id) ON DELETE CASCADE,
    user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    display_alias TEXT NOT NULL,
    joined_at BIGINT NOT NULL,
    UNIQUE (group_id, user_id)
);

CREATE INDEX IF NOT EXISTS idx_entities_user_id ON entities(user_id);
CREATE INDEX IF NOT EXISTS idx_entries_entity_id ON entries(entity_id);
CREATE INDEX IF NOT EXISTS idx_leaderboard_groups_created_by ON leaderboard_groups(created_by);
CREATE INDEX IF NOT EXISTS idx_leaderboard_members_user_id ON leaderboard_members(user_id);
CREATE INDEX IF NOT EXISTS idx_leaderboard_members_group_id ON leaderboard_members(group_id, joined_at);
`

// runMigrations executes the schema setup. With no arguments pgx sends it
// over the simple protocol, so the multi-statement script runs as one batch.
func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schema)
	return err
}
