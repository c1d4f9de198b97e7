package sqlite

import "database/sql"

// schema sets up the database. It runs on startup so tables always exist.
// Parent tables must be created before the tables that reference them.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL,
    display_name TEXT NOT NULL DEFAULT '',
    subscription_tier TEXT NOT NULL DEFAULT 'boyfriend',
    subscription_status TEXT NOT NULL DEFAULT '',
    stripe_customer_id TEXT NOT NULL DEFAULT '',
    stripe_subscription_id TEXT NOT NULL DEFAULT '',
    has_seen_paywall INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS entities (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    name TEXT NOT NULL,
    age INTEGER NOT NULL,
    nationality TEXT NOT NULL DEFAULT '',
    ethnicity TEXT NOT NULL DEFAULT '',
    hair_color TEXT NOT NULL DEFAULT '',
    location_city TEXT NOT NULL DEFAULT '',
    location_country TEXT NOT NULL DEFAULT '',
    rating REAL NOT NULL CHECK (rating >= 0 AND rating <= 10),
    is_active INTEGER NOT NULL DEFAULT 1,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL,
    FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS entries (
    id TEXT PRIMARY KEY,
    entity_id TEXT NOT NULL,
    date TEXT NOT NULL,
    amount_spent REAL NOT NULL CHECK (amount_spent >= 0),
    duration_minutes INTEGER NOT NULL CHECK (duration_minutes > 0),
    units_count INTEGER NOT NULL CHECK (units_count >= 0),
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL,
    FOREIGN KEY (entity_id) REFERENCES entities(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS leaderboard_groups (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    created_by TEXT NOT NULL,
    invite_token TEXT NOT NULL UNIQUE,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL,
    FOREIGN KEY (created_by) REFERENCES users(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS leaderboard_members (
    id TEXT PRIMARY KEY,
    group_id TEXT NOT NULL,
    user_id TEXT NOT NULL,
    display_alias TEXT NOT NULL,
    joined_at INTEGER NOT NULL,
    UNIQUE (group_id, user_id),
    FOREIGN KEY (group_id) REFERENCES leaderboard_groups(id) ON DELETE CASCADE,
    FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_entities_user_id ON entities(user_id);
CREATE INDEX IF NOT EXISTS idx_entries_entity_id ON entries(entity_id);
CREATE INDEX IF NOT EXISTS idx_leaderboard_groups_created_by ON leaderboard_groups(created_by);
CREATE INDEX IF NOT EXISTS idx_leaderboard_members_user_id ON leaderboard_members(user_id);
CREATE INDEX IF NOT EXISTS idx_leaderboard_members_group_id ON leaderboard_members(group_id, joined_at);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
