// Package pgexec executes provisioning SQL against a local PostgreSQL
// server using GORM over the unix socket.
//
// The create phase connects as the administrative role and issues
// existence-checking CREATE ROLE / CREATE DATABASE statements; the
// post-create phase connects as the database owner and runs the entry's
// script against the freshly created database. Identifiers are quoted with
// lib/pq, never interpolated raw.
//
// # Environment Variables
//
//   - PGPROV_LOG_LEVEL: Set to "debug" for SQL query logging
package pgexec
