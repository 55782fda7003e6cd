// Package model contains domain models/data structures shared across layers.
// Types carry JSON tags only; persistence concerns live in repository implementations.
package model
