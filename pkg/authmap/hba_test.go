package authmap

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHBARulesOrdering(t *testing.T) {
	rules := HBARules(testDatabases())
	require.Len(t, rules, 3)

	// Database-specific rules come first, in registry order.
	assert.Equal(t, "app", rules[0].Database)
	assert.Equal(t, "blog", rules[1].Database)

	// The catch-all is last: rule evaluation is first-match-wins.
	last := rules[len(rules)-1]
	assert.Equal(t, Rule{Database: "all", Role: "all", Method: "peer"}, last)
}

func TestHBARulesReferenceMappingGroups(t *testing.T) {
	rules := HBARules(testDatabases())
	assert.Equal(t, GroupName("app"), rules[0].Map)
	assert.Equal(t, "app_role", rules[0].Role)
	assert.Equal(t, "peer", rules[0].Method)
}

func TestHBARulesEmptyRegistry(t *testing.T) {
	rules := HBARules(nil)
	require.Len(t, rules, 1)
	assert.Equal(t, "all", rules[0].Database)
}

func TestRenderHBAGolden(t *testing.T) {
	g := goldie.New(t)
	g.Assert(t, "pg_hba", []byte(RenderHBA(HBARules(testDatabases()))))
}
