package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/vista/cmd/vista/commands"
	"go.trai.ch/vista/internal/app"
	"go.trai.ch/vista/internal/build"
	"go.trai.ch/vista/internal/core/domain"
)

type mockApp struct {
	runFunc func(ctx context.Context, opts app.RunOptions) error
}

func (m *mockApp) Run(ctx context.Context, opts app.RunOptions) error {
	if m.runFunc != nil {
		return m.runFunc(ctx, opts)
	}
	return nil
}

func TestCommands_Run(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var capturedOpts app.RunOptions
		called := false

		mock := &mockApp{
			runFunc: func(_ context.Context, opts app.RunOptions) error {
				capturedOpts = opts
				called = true
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"run", "risk", "--await-market-data", "--compile-only"})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.True(t, called)
		assert.Equal(t, []string{"risk"}, capturedOpts.Views)
		assert.True(t, capturedOpts.Flags.Has(domain.FlagAwaitMarketData))
		assert.True(t, capturedOpts.Flags.Has(domain.FlagCompileOnly))
		assert.True(t, capturedOpts.Flags.Has(domain.FlagTriggerCycleOnMarketDataChanged))
		assert.True(t, capturedOpts.Flags.Has(domain.FlagTriggerCycleOnTimeElapsed))
		assert.False(t, capturedOpts.Flags.Has(domain.FlagRunAsFastAsPossible))
	})

	t.Run("disables default triggers", func(t *testing.T) {
		var capturedOpts app.RunOptions
		mock := &mockApp{
			runFunc: func(_ context.Context, opts app.RunOptions) error {
				capturedOpts = opts
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"run", "--trigger-on-data=false", "--trigger-on-time=false", "--max-speed"})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.Empty(t, capturedOpts.Views)
		assert.False(t, capturedOpts.Flags.Has(domain.FlagTriggerCycleOnMarketDataChanged))
		assert.False(t, capturedOpts.Flags.Has(domain.FlagTriggerCycleOnTimeElapsed))
		assert.True(t, capturedOpts.Flags.Has(domain.FlagRunAsFastAsPossible))
	})

	t.Run("returns error on run failure", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(_ context.Context, _ app.RunOptions) error {
				return errors.New("simulated error")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"run"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})
}

func TestCommands_Version(t *testing.T) {
	mock := &mockApp{}
	cli := commands.New(mock)

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	err := cli.Execute(context.Background())
	require.NoError(t, err)

	assert.Contains(t, buf.String(), build.Version)
}
