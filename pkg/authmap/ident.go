package authmap

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/keeganpoppen/nixcloud-webservices/pkg/registry"
)

// groupNameLen is the number of hash characters kept in a mapping group
// name. PostgreSQL truncates map names at 63 bytes; "nixcloud-" plus 16 hex
// characters stays well below that.
const groupNameLen = 16

// Entry is one line of the identity map: within MapName, the operating
// system identity SystemUser is allowed to connect as DatabaseRole.
type Entry struct {
	MapName      string
	SystemUser   string
	DatabaseRole string
}

// GroupName derives the mapping group name for a database. It is a pure
// function of the database name so that regenerating the configuration is
// idempotent and diff-stable.
func GroupName(database string) string {
	sum := sha256.Sum256([]byte(database))
	return "nixcloud-" + hex.EncodeToString(sum[:])[:groupNameLen]
}

// IdentMap builds the identity map for the given databases. Each database
// contributes one mapping group: the owner maps to itself, and every
// additional owner maps onto the owning role. This is what lets several
// system identities connect as one shared role without shared credentials.
//
// Duplicate owners (including the owner redundantly listed as an additional
// owner) collapse to a single entry.
func IdentMap(dbs []registry.Database) []Entry {
	var entries []Entry
	for _, db := range dbs {
		group := GroupName(db.Name)
		seen := map[string]bool{db.Owner: true}
		entries = append(entries, Entry{
			MapName:      group,
			SystemUser:   db.Owner,
			DatabaseRole: db.Owner,
		})

		owners := append([]string(nil), db.AdditionalOwners...)
		sort.Strings(owners)
		for _, owner := range owners {
			if seen[owner] {
				continue
			}
			seen[owner] = true
			entries = append(entries, Entry{
				MapName:      group,
				SystemUser:   owner,
				DatabaseRole: db.Owner,
			})
		}
	}
	return entries
}

// RenderIdent renders identity map entries in pg_ident.conf format. The file
// is regenerated in full on every build.
func RenderIdent(entries []Entry) string {
	var b strings.Builder
	b.WriteString("# Generated by pgprovctl; do not edit.\n")
	b.WriteString("# MAPNAME SYSTEM-USERNAME PG-USERNAME\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "%s %s %s\n", e.MapName, e.SystemUser, e.DatabaseRole)
	}
	return b.String()
}
