// Package main provides pgprovctl, the PostgreSQL provisioning tool of the
// nixcloud-webservices stack.
//
// A declarative registry of databases is turned into three kinds of output:
// a peer-authentication identity map (pg_ident format), per-database access
// rules (pg_hba format), and one idempotent systemd oneshot unit per
// provisioning task, ordered so that every database is created exactly once
// after the server starts and before dependents see it as ready.
//
// # Quick Start
//
//	# Validate the registry
//	pgprovctl registry validate
//
//	# Render all artifacts
//	pgprovctl generate --output /etc/systemd/system
//
//	# Inspect the ordering graph
//	pgprovctl graph
//
//	# Provision immediately, without the scheduler
//	pgprovctl wait && pgprovctl apply
//
// # Environment Variables
//
//   - PGPROV_CONFIG_PATH: Config file location (default /etc/pgprovision/pgprov.yml)
//   - PGPROV_REGISTRY: Registry file override
//   - PGPROV_STATE_DIR: Marker state directory override
//   - PGPROV_LOG_LEVEL: Set to "debug" for SQL query logging
package main
