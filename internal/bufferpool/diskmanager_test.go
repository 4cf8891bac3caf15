package bufferpool

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/novabase-dev/novabase/internal/storage"
)

func TestFileDiskManager_WritePageThenPageCount(t *testing.T) {
	dir := t.TempDir()
	sm := storage.NewStorageManager()
	fs := storage.LocalFileSet{Dir: dir, Base: "count"}
	disk := NewFileDiskManager(sm, fs)

	n, err := disk.PageCount()
	require.NoError(t, err)
	require.Zero(t, n)

	buf := make([]byte, storage.PageSize)
	buf[0] = 0x42
	require.NoError(t, disk.WritePage(0, buf))
	require.NoError(t, disk.WritePage(1, buf))

	n, err = disk.PageCount()
	require.NoError(t, err)
	require.Equal(t, uint32(2), n)

	got := make([]byte, storage.PageSize)
	require.NoError(t, disk.ReadPage(1, got))
	require.Equal(t, byte(0x42), got[0])
}
