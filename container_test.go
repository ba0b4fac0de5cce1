package diwire_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diwire/diwire"
	"github.com/diwire/diwire/internal/testutil"
)

// S1: a module field left at Auto with an Init method is initialized through
// it, and a field carrying a literal default is used as-is.
func TestBuildAutoResolution(t *testing.T) {
	c, err := diwire.Build(testutil.BasicModule{Name: "svc"})
	require.NoError(t, err)
	defer c.Close()

	name, err := diwire.Get[string](c.Injector())
	require.NoError(t, err)
	assert.Equal(t, "svc", name)

	greeter, err := diwire.Get[*testutil.Greeter](c.Injector())
	require.NoError(t, err)
	assert.Equal(t, "hello", greeter.Prefix)
	assert.Equal(t, "hello, world", greeter.Greet("world"))
}

// S2: autowiring fills a struct's fields from whatever the container has
// published, leaving unmatched fields at their zero value.
func TestBuildAutowireCrossModule(t *testing.T) {
	var lines []string
	c, err := diwire.Build(testutil.RepoModule{
		DB:  &testutil.Database{DSN: "postgres://test", Closed: &[]string{}},
		Log: &testutil.Logger{Lines: &lines},
	})
	require.NoError(t, err)
	defer c.Close()

	repo, err := diwire.Get[*testutil.Repository](c.Injector())
	require.NoError(t, err)
	require.NotNil(t, repo.DB)
	require.NotNil(t, repo.Log)
	assert.Equal(t, "postgres://test", repo.DB.DSN)

	repo.Log.Log("queried")
	assert.Equal(t, []string{"queried"}, lines)
}

// S3: a module with a failing Init unwinds and Build returns the original
// error wrapped in a BuildError.
func TestBuildUnwindsOnInitFailure(t *testing.T) {
	_, err := diwire.Build(testutil.FailingModule{})
	require.Error(t, err)

	var buildErr *diwire.BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.ErrorIs(t, buildErr, testutil.ErrInitFailed)
}

// S4: deinit runs in the reverse of the order Deps became ready.
func TestCloseRunsDeinitInReverse(t *testing.T) {
	var closed []string
	c, err := diwire.Build(testutil.TeardownModule{Closed: &closed})
	require.NoError(t, err)

	require.NoError(t, c.Close())
	require.Len(t, closed, 2)
	assert.Equal(t, "second", closed[0])
	assert.Equal(t, "first", closed[1])
}

// failingCloserModule wraps FailingCloser in a field left at its zero value
// so it auto-resolves to its Init method and actually participates in
// deinit, rather than passing it as the bare module value (which would
// seed it via the module's own Value provider and skip deinit entirely).
type failingCloserModule struct {
	Bad *testutil.FailingCloser
}

// S5: a failing Deinit is logged and swallowed, not returned from Close.
func TestCloseSwallowsDeinitFailure(t *testing.T) {
	c, err := diwire.Build(failingCloserModule{})
	require.NoError(t, err)
	assert.NoError(t, c.Close())
}

// S6: two modules contributing an instance for the same base type without
// an override is a DuplicateServiceError.
func TestBuildDuplicateService(t *testing.T) {
	_, err := diwire.Build(
		testutil.BasicModule{Name: "one"},
		testutil.BasicModule{Name: "two"},
	)
	require.Error(t, err)

	var buildErr *diwire.BuildError
	require.ErrorAs(t, err, &buildErr)
	var dup *diwire.DuplicateServiceError
	assert.ErrorAs(t, buildErr, &dup)
}

// S7: Get/Find fail once the container is no longer Ready.
func TestInjectorNotReadyAfterClose(t *testing.T) {
	c, err := diwire.Build(testutil.BasicModule{Name: "svc"})
	require.NoError(t, err)
	require.NoError(t, c.Close())

	_, err = diwire.Get[string](c.Injector())
	assert.ErrorIs(t, err, diwire.ErrNotReady)

	_, ok := diwire.Find[string](c.Injector())
	assert.False(t, ok)
}

func TestContainerIDIsStable(t *testing.T) {
	c, err := diwire.Build(testutil.BasicModule{Name: "svc"})
	require.NoError(t, err)
	defer c.Close()

	assert.NotEmpty(t, c.ID())
	assert.Equal(t, "Ready", c.State())
}

// namedVtableModule has testutil.VtableModule's shape plus a Configure method
// whose initializer replaces WithVtable.Init and seeds the Interface
// sub-field from the module's unexported name.
type namedVtableModule struct {
	Service testutil.WithVtable
	name    string
}

func (m namedVtableModule) Configure(b *diwire.Bundle) error {
	return diwire.AddOverride[testutil.WithVtable](b, diwire.Initializer(func(w *testutil.WithVtable) error {
		w.Interface.Owner = m.name
		return nil
	}))
}

func TestVtableFieldRef(t *testing.T) {
	c, err := diwire.Build(namedVtableModule{name: "svc"})
	require.NoError(t, err)
	defer c.Close()

	vt, err := diwire.Get[*testutil.Vtable](c.Injector())
	require.NoError(t, err)
	assert.Equal(t, "svc", vt.Owner)
}
