package plugin

import (
	"errors"
	"testing"

	"github.com/bethropolis/trailspace/internal/logger"
	"github.com/stretchr/testify/require"
)

type stubPlugin struct {
	name    string
	initErr error
	calls   *[]string
}

func (p stubPlugin) Name() string { return p.name }

func (p stubPlugin) Initialize(EditorAPI) error {
	*p.calls = append(*p.calls, "init:"+p.name)
	return p.initErr
}

func (p stubPlugin) Shutdown() error {
	*p.calls = append(*p.calls, "stop:"+p.name)
	return nil
}

func TestManagerLifecycle(t *testing.T) {
	var calls []string
	m := NewManager(logger.Discard())
	boom := errors.New("boom")

	require.NoError(t, m.Register(stubPlugin{name: "b", calls: &calls}))
	require.NoError(t, m.Register(stubPlugin{name: "a", initErr: boom, calls: &calls}))
	require.NoError(t, m.Register(stubPlugin{name: "c", calls: &calls}))
	require.Error(t, m.Register(stubPlugin{name: "a", calls: &calls}))
	require.Error(t, m.Register(stubPlugin{name: "", calls: &calls}))

	err := m.InitializePlugins(nil)
	require.ErrorIs(t, err, boom)
	m.ShutdownPlugins()

	require.Equal(t, []string{"init:b", "init:a", "init:c", "stop:b", "stop:a", "stop:c"}, calls)

	p, ok := m.GetPlugin("c")
	require.True(t, ok)
	require.Equal(t, "c", p.Name())
}
