package diwire_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diwire/diwire"
	"github.com/diwire/diwire/internal/testutil"
)

func TestInjectorGetMissingType(t *testing.T) {
	c, err := diwire.Build(testutil.BasicModule{Name: "svc"})
	require.NoError(t, err)
	defer c.Close()

	_, err = diwire.Get[*testutil.Database](c.Injector())
	require.Error(t, err)
	var missing *diwire.MissingDependencyError
	assert.ErrorAs(t, err, &missing)
}

func TestInjectorCallResolvesFromContainer(t *testing.T) {
	c, err := diwire.Build(testutil.BasicModule{Name: "svc"})
	require.NoError(t, err)
	defer c.Close()

	out, err := c.Injector().Call0(func(g *testutil.Greeter) string {
		return g.Greet("there")
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "hello, there", out[0])
}

func TestInjectorCallUsesExtraArgsForUnknownTypes(t *testing.T) {
	c, err := diwire.Build(testutil.BasicModule{Name: "svc"})
	require.NoError(t, err)
	defer c.Close()

	// who is a bare int, a type no module registered, so it falls through
	// to the positional extraArgs instead of a container lookup.
	out, err := c.Injector().Call(func(g *testutil.Greeter, who int) string {
		return g.Greet(g.Prefix) + " " + string(rune('0'+who))
	}, 3)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Contains(t, out[0], "hello")
}

func TestInjectorCallMissingArgErrors(t *testing.T) {
	c, err := diwire.Build(testutil.BasicModule{Name: "svc"})
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Injector().Call0(func(who string, extra int) string {
		return who
	})
	require.Error(t, err)
}
