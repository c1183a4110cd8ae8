package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keeganpoppen/nixcloud-webservices/pkg/provision"
)

// setupRunEnv points the command environment at a throwaway state dir,
// socket dir, and registry. The socket dir is empty, so any attempt to
// connect to a server fails immediately.
func setupRunEnv(t *testing.T) provision.MarkerStore {
	t.Helper()
	dir := t.TempDir()

	registryPath := filepath.Join(dir, "databases.yml")
	require.NoError(t, os.WriteFile(registryPath, []byte(`
app:
  engine: postgresql
  owner: app_role
  post_create: |
    CREATE TABLE app_settings (id int PRIMARY KEY);
`), 0o644))

	stateDir := filepath.Join(dir, "state")
	t.Setenv("PGPROV_CONFIG_PATH", filepath.Join(dir, "pgprov.yml"))
	t.Setenv("PGPROV_STATE_DIR", stateDir)
	t.Setenv("PGPROV_RUN_DIR", filepath.Join(dir, "run"))
	t.Setenv("PGPROV_REGISTRY", registryPath)

	return provision.MarkerStore{Dir: stateDir}
}

func TestRunPhaseSkipsCompletedPhase(t *testing.T) {
	markers := setupRunEnv(t)
	require.NoError(t, markers.Write("app", provision.PhasePostCreate))

	// The socket dir is empty, so this only succeeds if the marker
	// short-circuits the run before any connection attempt.
	err := runPhase("app", "post-create")
	assert.NoError(t, err)
}

func TestRunPhaseLeavesMarkerAbsentOnFailure(t *testing.T) {
	markers := setupRunEnv(t)

	err := runPhase("app", "create")
	require.Error(t, err)

	done, statErr := markers.Exists("app", provision.PhaseCreate)
	require.NoError(t, statErr)
	assert.False(t, done, "a failed phase must stay retryable")
}

func TestRunPhaseRejectsUndeclaredDatabase(t *testing.T) {
	setupRunEnv(t)

	err := runPhase("ghost", "create")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not declared in the registry")
}
