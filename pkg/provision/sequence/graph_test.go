package sequence

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keeganpoppen/nixcloud-webservices/pkg/config"
	"github.com/keeganpoppen/nixcloud-webservices/pkg/provision"
	"github.com/keeganpoppen/nixcloud-webservices/pkg/registry"
)

func testGraph(t *testing.T) *Graph {
	t.Helper()

	cfg := config.Default()
	tasks, err := provision.NewSynthesizer(cfg, "/etc/pgprovision/pgprov.yml").Tasks([]registry.Database{
		{
			Name:             "app",
			Engine:           registry.EnginePostgreSQL,
			Owner:            "app_role",
			AdditionalOwners: []string{"app_admin"},
			PostCreate:       "GRANT ALL ON SCHEMA public TO app_admin;",
		},
		{
			Name:   "blog",
			Engine: registry.EnginePostgreSQL,
			Owner:  "blog_user",
		},
	})
	require.NoError(t, err)

	g, err := Build(tasks, Options{
		InitUnit:    cfg.InitUnit,
		ServiceUnit: cfg.ServiceUnit,
		Target:      cfg.Target,
	})
	require.NoError(t, err)
	return g
}

func TestGraphEdges(t *testing.T) {
	g := testGraph(t)
	edges := g.Edges()

	want := []Edge{
		{From: "nixcloud-postgresql-initdb.service", To: "postgresql.service"},
		{From: "postgresql.service", To: "nixcloud-pgdb-app-create.service"},
		{From: "nixcloud-pgdb-app-create.service", To: "nixcloud-pgdb-app-post-create.service"},
		{From: "nixcloud-pgdb-app-create.service", To: "nixcloud-pgdb-app-ready.target"},
		{From: "nixcloud-pgdb-app-post-create.service", To: "nixcloud-pgdb-app-ready.target"},
		{From: "postgresql.service", To: "nixcloud-pgdb-blog-create.service"},
		{From: "nixcloud-pgdb-blog-create.service", To: "nixcloud-pgdb-blog-ready.target"},
		{From: "nixcloud-pgdb-app-ready.target", To: "nixcloud-postgresql-ready.target"},
		{From: "nixcloud-pgdb-blog-ready.target", To: "nixcloud-postgresql-ready.target"},
	}
	for _, e := range want {
		assert.Contains(t, edges, e)
	}
}

func TestGraphSubgraphsAreIndependent(t *testing.T) {
	for _, e := range testGraph(t).Edges() {
		appSide := strings.Contains(e.From, "-app-")
		blogSide := strings.Contains(e.To, "-blog-")
		assert.False(t, appSide && blogSide, "no edge may cross databases: %v", e)

		blogSide = strings.Contains(e.From, "-blog-")
		appSide = strings.Contains(e.To, "-app-")
		assert.False(t, blogSide && appSide, "no edge may cross databases: %v", e)
	}
}

func TestGraphNoPostCreateEdgeWithoutScript(t *testing.T) {
	edges := testGraph(t).Edges()
	for _, e := range edges {
		assert.NotContains(t, e.From, "blog-post-create")
		assert.NotContains(t, e.To, "blog-post-create")
	}
}

func TestGraphEdgesStable(t *testing.T) {
	assert.Equal(t, testGraph(t).Edges(), testGraph(t).Edges())
}

func TestBuildRequiresOptions(t *testing.T) {
	_, err := Build(nil, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must name init, service and target units")
}

func TestBuildRejectsInvalidTask(t *testing.T) {
	_, err := Build([]provision.Task{{Database: "app"}}, Options{
		InitUnit:    "init.service",
		ServiceUnit: "svc.service",
		Target:      "ready.target",
	})
	require.Error(t, err)
}

func TestDOT(t *testing.T) {
	dot := testGraph(t).DOT()
	assert.True(t, strings.HasPrefix(dot, "digraph provisioning {"))
	assert.Contains(t, dot, `"nixcloud-pgdb-app-create.service" -> "nixcloud-pgdb-app-post-create.service";`)
	assert.Equal(t, dot, testGraph(t).DOT(), "DOT output is stable across builds")
}
