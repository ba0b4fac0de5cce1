package diwire_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diwire/diwire"
	"github.com/diwire/diwire/internal/testutil"
)

type hookModule struct {
	Ran *[]string
}

func (m hookModule) Configure(b *diwire.Bundle) error {
	if err := b.AddInitHook(func(g *testutil.Greeter) error {
		*m.Ran = append(*m.Ran, "init:"+g.Prefix)
		return nil
	}); err != nil {
		return err
	}
	return b.AddDeinitHook(func(g *testutil.Greeter) error {
		*m.Ran = append(*m.Ran, "deinit:"+g.Prefix)
		return nil
	})
}

func TestInitHookRunsOnceDependencyReady(t *testing.T) {
	var ran []string
	c, err := diwire.Build(hookModule{Ran: &ran}, testutil.BasicModule{Name: "svc"})
	require.NoError(t, err)
	require.Contains(t, ran, "init:hello")

	require.NoError(t, c.Close())
	assert.Contains(t, ran, "deinit:hello")
}

type badHookModule struct{}

func (badHookModule) Configure(b *diwire.Bundle) error {
	return b.AddInitHook(func(d *testutil.Database) error { return nil })
}

func TestInitHookUnresolvedDependencyErrors(t *testing.T) {
	_, err := diwire.Build(badHookModule{})
	require.Error(t, err)

	var buildErr *diwire.BuildError
	require.ErrorAs(t, err, &buildErr)
	var hookErr *diwire.HookDependencyError
	assert.ErrorAs(t, buildErr, &hookErr)
}
