// Package model defines the database models for the Fantasy Forge API.
//
// This package contains GORM models that map to the PostgreSQL schema
// created by the migrations in db/migrations.
//
// # Core Models
//
//   - User: Registered principals with a bcrypt credential and a role
//   - Device: Owned resources, keyed by a server-assigned API key
//
// # Database Schema
//
//   - users: principal identities, unique on email and name
//   - devices: owned resources, foreign key to users
//   - messages: audit trail (see pkg/audit)
package model
