package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	path := filepath.Join(t.TempDir(), "buatdocx.log")

	logger, err := New(false, path)
	require.NoError(t, err)
	require.False(t, logger.Core().Enabled(zap.DebugLevel))

	logger.Info("exported", zap.Int("blocks", 2))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"msg":"exported"`)
	require.Contains(t, string(data), `"blocks":2`)
}

func TestNew_Verbose(t *testing.T) {
	logger, err := New(true, filepath.Join(t.TempDir(), "buatdocx.log"))
	require.NoError(t, err)
	require.True(t, logger.Core().Enabled(zap.DebugLevel))
}

func TestSet(t *testing.T) {
	t.Cleanup(func() { Set(nil) })

	logger := zap.NewExample()
	Set(logger)
	require.Same(t, logger, Get())

	Set(nil)
	require.NotNil(t, Get())
}
