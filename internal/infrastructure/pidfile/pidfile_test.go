package pidfile_test

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ufoaiorg/ufoai-sub009/internal/infrastructure/pidfile"
)

func TestAcquireAndRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daemon.pid")
	p := pidfile.New(path)

	require.NoError(t, p.Acquire())

	owner, ok := p.Owner()
	assert.True(t, ok)
	assert.Equal(t, os.Getpid(), owner)

	require.NoError(t, p.Release())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestAcquireReplacesGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daemon.pid")
	require.NoError(t, os.WriteFile(path, []byte("not-a-pid"), 0o644))

	p := pidfile.New(path)
	require.NoError(t, p.Acquire())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(os.Getpid())+"\n", string(data))
}

func TestReleaseLeavesForeignFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daemon.pid")
	require.NoError(t, os.WriteFile(path, []byte("1\n"), 0o644))

	require.NoError(t, pidfile.New(path).Release())

	_, err := os.Stat(path)
	assert.NoError(t, err)
}
