package provision

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keeganpoppen/nixcloud-webservices/pkg/registry"
)

// fakeExecutor records phase executions and optionally fails them.
type fakeExecutor struct {
	creates     []string
	postCreates []string
	failCreate  error
	failPost    error
}

func (f *fakeExecutor) Create(_ context.Context, db registry.Database) error {
	f.creates = append(f.creates, db.Name)
	return f.failCreate
}

func (f *fakeExecutor) PostCreate(_ context.Context, db registry.Database) error {
	f.postCreates = append(f.postCreates, db.Name)
	return f.failPost
}

func TestRunnerRunWritesMarker(t *testing.T) {
	exec := &fakeExecutor{}
	runner := Runner{Markers: MarkerStore{Dir: t.TempDir()}, Exec: exec}
	db := testDatabases()[0]

	skipped, err := runner.Run(context.Background(), db, PhaseCreate)
	require.NoError(t, err)
	assert.False(t, skipped)
	assert.Equal(t, []string{"app"}, exec.creates)

	done, err := runner.Markers.Exists("app", PhaseCreate)
	require.NoError(t, err)
	assert.True(t, done)
}

func TestRunnerSkipsWhenMarkerExists(t *testing.T) {
	exec := &fakeExecutor{}
	markers := MarkerStore{Dir: t.TempDir()}
	require.NoError(t, markers.Write("app", PhaseCreate))

	runner := Runner{Markers: markers, Exec: exec}
	skipped, err := runner.Run(context.Background(), testDatabases()[0], PhaseCreate)
	require.NoError(t, err)
	assert.True(t, skipped)
	assert.Empty(t, exec.creates, "task body must not run when the marker exists")
}

func TestRunnerFailureLeavesMarkerAbsent(t *testing.T) {
	exec := &fakeExecutor{failCreate: errors.New("connection refused")}
	markers := MarkerStore{Dir: t.TempDir()}
	runner := Runner{Markers: markers, Exec: exec}
	db := testDatabases()[0]

	_, err := runner.Run(context.Background(), db, PhaseCreate)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")

	done, err := markers.Exists("app", PhaseCreate)
	require.NoError(t, err)
	assert.False(t, done, "failed phase must stay retryable")

	// The next attempt retries the full task.
	exec.failCreate = nil
	skipped, err := runner.Run(context.Background(), db, PhaseCreate)
	require.NoError(t, err)
	assert.False(t, skipped)
	assert.Equal(t, []string{"app", "app"}, exec.creates)
}

func TestRunnerPostCreateRequiresScript(t *testing.T) {
	runner := Runner{Markers: MarkerStore{Dir: t.TempDir()}, Exec: &fakeExecutor{}}

	_, err := runner.Run(context.Background(), registry.Database{Name: "blog", Owner: "blog_user"}, PhasePostCreate)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no post-create script")
}

func TestRunnerApply(t *testing.T) {
	exec := &fakeExecutor{}
	markers := MarkerStore{Dir: t.TempDir()}
	runner := Runner{Markers: markers, Exec: exec}
	dbs := testDatabases()

	require.NoError(t, runner.Apply(context.Background(), dbs))
	assert.Equal(t, []string{"app", "blog"}, exec.creates)
	assert.Equal(t, []string{"app"}, exec.postCreates, "blog has no post-create phase")

	// Second apply is a no-op: every phase is marked done.
	require.NoError(t, runner.Apply(context.Background(), dbs))
	assert.Equal(t, []string{"app", "blog"}, exec.creates)
	assert.Equal(t, []string{"app"}, exec.postCreates)
}

func TestRunnerApplyStopsOnFailure(t *testing.T) {
	exec := &fakeExecutor{failPost: errors.New("syntax error")}
	runner := Runner{Markers: MarkerStore{Dir: t.TempDir()}, Exec: exec}

	err := runner.Apply(context.Background(), testDatabases())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "post-create phase for database \"app\" failed")
	assert.Equal(t, []string{"app"}, exec.creates, "databases after the failure are not attempted")
}

func TestMarkerStorePaths(t *testing.T) {
	store := MarkerStore{Dir: "/var/lib/pgprovision"}
	assert.Equal(t, "/var/lib/pgprovision/app.create.done", store.Path("app", PhaseCreate))
	assert.Equal(t, "/var/lib/pgprovision/app.post-create.done", store.Path("app", PhasePostCreate))
}

func TestMarkerStoreCreatesStateDir(t *testing.T) {
	dir := t.TempDir() + "/nested/state"
	store := MarkerStore{Dir: dir}

	require.NoError(t, store.Write("app", PhaseCreate))
	done, err := store.Exists("app", PhaseCreate)
	require.NoError(t, err)
	assert.True(t, done)

	done, err = store.Exists("app", PhasePostCreate)
	require.NoError(t, err)
	assert.False(t, done)
}
