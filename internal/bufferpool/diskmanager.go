package bufferpool

import "github.com/novabase-dev/novabase/internal/storage"

// DiskManager is the external collaborator that moves page bytes to and
// from physical storage. The buffer pool core never touches a file
// descriptor directly; it only ever talks to this interface, which makes
// every instance testable against an in-memory fake.
type DiskManager interface {
	ReadPage(pageID uint32, dst []byte) error
	WritePage(pageID uint32, src []byte) error

	// AllocatePage/DeallocatePage notify the on-disk allocator that a page
	// id has started or stopped being backed by storage. They are distinct
	// from the instance's own in-memory page id allocator (see nextPageID).
	AllocatePage(pageID uint32)
	DeallocatePage(pageID uint32)
}

var _ DiskManager = (*FileDiskManager)(nil)

// FileDiskManager adapts the segment-file StorageManager to the
// DiskManager contract.
type FileDiskManager struct {
	sm *storage.StorageManager
	fs storage.FileSet
}

func NewFileDiskManager(sm *storage.StorageManager, fs storage.FileSet) *FileDiskManager {
	return &FileDiskManager{sm: sm, fs: fs}
}

func (d *FileDiskManager) ReadPage(pageID uint32, dst []byte) error {
	return d.sm.ReadPage(d.fs, int32(pageID), dst)
}

func (d *FileDiskManager) WritePage(pageID uint32, src []byte) error {
	return d.sm.SavePage(d.fs, pageID, storage.Page{Buf: src})
}

// PageCount scans the segment files (see StorageManager.CountPages) and reports how many pages this
// disk manager is already backing, for startup logging.
func (d *FileDiskManager) PageCount() (uint32, error) {
	return d.sm.CountPages(d.fs)
}

// Segments grow lazily on WritePage, so file-backed storage has no
// separate allocation step to notify.
func (d *FileDiskManager) AllocatePage(pageID uint32) {}

func (d *FileDiskManager) DeallocatePage(pageID uint32) {}
