//go:build unix

package filesystem

import (
	"net"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestSpecialFiles(t *testing.T) {
	r := newRegistry()
	dir := t.TempDir()

	fifo := filepath.Join(dir, "pipe")
	require.NoError(t, unix.Mkfifo(fifo, 0o600))
	assert.NoError(t, r.Expect(fifo).To().Be().A().Prop("fifo").Err())
	assert.NoError(t, r.Expect(fifo).Prop("namedPipe").Err())
	assert.NoError(t, r.Expect(fifo).Not().Prop("file").Err())

	assert.NoError(t, r.Expect("/dev/null").Prop("characterDevice").Err())
	assert.NoError(t, r.Expect("/dev/null").Prop("device").Err())
	assert.NoError(t, r.Expect("/dev/null").Not().Prop("blockDevice").Err())
	assert.NoError(t, r.Expect("/dev/null").Not().Prop("door").Err())

	sock := filepath.Join(dir, "s.sock")
	l, err := net.Listen("unix", sock)
	if err != nil {
		t.Skipf("unix sockets unavailable: %v", err)
	}
	defer l.Close()
	assert.NoError(t, r.Expect(sock).Prop("socket").Err())
}

func TestLstat_InodeAndDevice(t *testing.T) {
	f := newFixture(t)

	a, err := Lstat(f.file)
	require.NoError(t, err)
	b, err := Lstat(f.link)
	require.NoError(t, err)

	assert.NotZero(t, a.Inode)
	assert.True(t, IsRegular(a))
	assert.True(t, IsSymlink(b))
	assert.False(t, SameFile(a, b))
	assert.True(t, SameFile(a, a))
}
