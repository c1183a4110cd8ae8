package authmap

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keeganpoppen/nixcloud-webservices/pkg/registry"
)

func testDatabases() []registry.Database {
	return []registry.Database{
		{
			Name:             "app",
			Engine:           registry.EnginePostgreSQL,
			Owner:            "app_role",
			AdditionalOwners: []string{"app_backup", "app_admin"},
			PostCreate:       "GRANT ALL ON SCHEMA public TO app_admin;",
		},
		{
			Name:   "blog",
			Engine: registry.EnginePostgreSQL,
			Owner:  "blog_user",
		},
	}
}

func TestGroupNameDeterministic(t *testing.T) {
	assert.Equal(t, GroupName("app"), GroupName("app"))
	assert.NotEqual(t, GroupName("app"), GroupName("blog"))

	// Pure function of the name: a known input has a known group name.
	assert.Equal(t, "nixcloud-a172cedcae47474b", GroupName("app"))
}

func TestGroupNameLength(t *testing.T) {
	// PostgreSQL truncates map names at 63 bytes.
	for _, name := range []string{"a", "app", strings.Repeat("verylongname", 20)} {
		assert.LessOrEqual(t, len(GroupName(name)), 63)
	}
}

func TestIdentMap(t *testing.T) {
	entries := IdentMap(testDatabases())
	require.Len(t, entries, 4)

	group := GroupName("app")
	appEntries := entriesForMap(entries, group)
	require.Len(t, appEntries, 3)
	for _, e := range appEntries {
		assert.Equal(t, "app_role", e.DatabaseRole, "every owner maps onto the owning role")
	}
	assert.Equal(t, "app_role", appEntries[0].SystemUser, "owner entry comes first")

	blogEntries := entriesForMap(entries, GroupName("blog"))
	require.Len(t, blogEntries, 1)
	assert.Equal(t, Entry{MapName: GroupName("blog"), SystemUser: "blog_user", DatabaseRole: "blog_user"}, blogEntries[0])
}

func TestIdentMapDeduplicatesOwners(t *testing.T) {
	dbs := []registry.Database{{
		Name:             "app",
		Engine:           registry.EnginePostgreSQL,
		Owner:            "app_role",
		AdditionalOwners: []string{"app_admin", "app_admin", "app_role"},
	}}

	entries := IdentMap(dbs)
	require.Len(t, entries, 2)
	assert.Equal(t, "app_role", entries[0].SystemUser)
	assert.Equal(t, "app_admin", entries[1].SystemUser)
}

func TestIdentMapIdempotent(t *testing.T) {
	dbs := testDatabases()
	first := RenderIdent(IdentMap(dbs))
	second := RenderIdent(IdentMap(dbs))
	assert.Equal(t, first, second, "repeated builds must be byte-identical")
}

func TestRenderIdentGolden(t *testing.T) {
	g := goldie.New(t)
	g.Assert(t, "pg_ident", []byte(RenderIdent(IdentMap(testDatabases()))))
}

func entriesForMap(entries []Entry, mapName string) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.MapName == mapName {
			out = append(out, e)
		}
	}
	return out
}
