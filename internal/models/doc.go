// Package models defines the core domain models for cpnboard.
//
// # Tracking
//
//   - User: account with subscription tier, written by the billing boundary
//   - Entity: a tracked profile owned by exactly one user
//   - Entry: one logged encounter (cost, time, units) against an Entity
//
// # Leaderboards
//
//   - Group: named, invite-gated collection of users
//   - Member: a user's anonymous alias inside one group
//
// # Derived
//
// UserStats, MemberWithStats and Ranking are computed on every request
// and never persisted.
//
// # Design Principles
//
//  1. Relationships are ID strings, never pointers
//  2. Timestamps are Unix seconds
//  3. Derived values live next to the model they describe but are not stored
package models
