package authmap

import (
	"fmt"
	"strings"

	"github.com/keeganpoppen/nixcloud-webservices/pkg/registry"
)

// Rule is one local (unix socket) access rule. Rule evaluation in PostgreSQL
// is first-match-wins, so the order of rules is significant.
type Rule struct {
	Database string
	Role     string
	Method   string
	// Map names the identity mapping group; empty for rules without one.
	Map string
}

// HBARules builds the access rules for the given databases: one peer rule
// per database referencing its mapping group, followed by a single catch-all
// peer rule. The catch-all must come last so the per-database maps are
// consulted first.
func HBARules(dbs []registry.Database) []Rule {
	rules := make([]Rule, 0, len(dbs)+1)
	for _, db := range dbs {
		rules = append(rules, Rule{
			Database: db.Name,
			Role:     db.Owner,
			Method:   "peer",
			Map:      GroupName(db.Name),
		})
	}
	rules = append(rules, Rule{
		Database: "all",
		Role:     "all",
		Method:   "peer",
	})
	return rules
}

// RenderHBA renders access rules in pg_hba.conf format, preserving order.
func RenderHBA(rules []Rule) string {
	var b strings.Builder
	b.WriteString("# Generated by pgprovctl; do not edit.\n")
	b.WriteString("# TYPE DATABASE USER METHOD [OPTIONS]\n")
	for _, r := range rules {
		if r.Map != "" {
			fmt.Fprintf(&b, "local %s %s %s map=%s\n", r.Database, r.Role, r.Method, r.Map)
			continue
		}
		fmt.Fprintf(&b, "local %s %s %s\n", r.Database, r.Role, r.Method)
	}
	return b.String()
}
