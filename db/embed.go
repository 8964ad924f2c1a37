// Package db provides the embedded schema of the postgres local store backend.
package db

import _ "embed"

// Schema contains the DDL statements for the key-value table.
//
//go:embed migrations/001_schema.sql
var Schema string
