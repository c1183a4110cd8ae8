// Package authmap generates PostgreSQL peer-authentication configuration
// from the database registry.
//
// Two artifacts are produced, both regenerated in full on every build:
//
//   - An identity map (pg_ident.conf format) with one mapping group per
//     database. The owner maps to itself and every additional owner maps
//     onto the owning role, so multiple system identities share one
//     database role without sharing credentials.
//   - An access rule file (pg_hba.conf format) with one peer rule per
//     database referencing its mapping group, and a trailing catch-all
//     peer rule. PostgreSQL evaluates rules first-match-wins, so the
//     catch-all is always last.
//
// Mapping group names are a deterministic hash of the database name, which
// keeps rebuilds byte-identical and diffs stable.
package authmap
