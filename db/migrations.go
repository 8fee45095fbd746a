// Package db carries the Postgres schema and seed migrations.
package db

import "embed"

// Migrations holds the goose migration files under migrations/.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory of Migrations passed to goose.
const MigrationsDir = "migrations"
