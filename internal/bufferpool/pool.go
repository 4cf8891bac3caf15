// Package bufferpool implements the buffer pool manager: a fixed-size,
// disk-backed page cache with CLOCK eviction, and the sharded front end
// that partitions the page id space across several such instances.
package bufferpool

import (
	"errors"
	"sync"

	"github.com/novabase-dev/novabase/internal/storage"
	"github.com/novabase-dev/novabase/pkg/clockx"
)

// InvalidPageID is the sentinel page id meaning "no page", distinct from
// every id an allocator can hand out.
const InvalidPageID = ^uint32(0)

// DefaultPoolSize is used when a caller asks for a non-positive pool size.
const DefaultPoolSize = 128

var ErrPoolExhausted = errors.New("bufferpool: every frame is pinned")

// Frame is one slot of the instance's frame array: a page-sized buffer
// plus the metadata the instance needs to track residency, pinning, and
// dirtiness.
type Frame struct {
	PageID   uint32
	Page     *storage.Page
	PinCount int32
	Dirty    bool
}

// PageRef is the handle returned to clients by NewPage/FetchPage. It ties
// a pin to the frame it came from; the holder must call UnpinPage exactly
// once per ref.
type PageRef struct {
	PageID uint32
	frame  *Frame
}

// Page returns the frame's page view. Mutations to its buffer are
// reflected on the next flush or eviction.
func (r *PageRef) Page() *storage.Page { return r.frame.Page }

// Instance owns a fixed array of frames, a page table, a free list, and
// one CLOCK replacer. All public operations serialize on a single
// instance-wide mutex.
type Instance struct {
	mu sync.Mutex

	poolSize      int
	numInstances  int
	instanceIndex int
	nextPageID    uint32

	disk DiskManager
	log  LogManager

	frames    []*Frame
	pageTable map[uint32]int // page id -> frame id
	freeList  []int
	replacer  *clockx.Clock
}

// NewInstance builds a buffer pool instance that is shard instanceIndex
// of numInstances. Use New for a standalone (non-sharded) instance.
func NewInstance(poolSize, numInstances, instanceIndex int, disk DiskManager, log LogManager) *Instance {
	if poolSize <= 0 {
		poolSize = DefaultPoolSize
	}
	if numInstances <= 0 {
		numInstances = 1
	}

	frames := make([]*Frame, poolSize)
	freeList := make([]int, poolSize)
	for i := range frames {
		frames[i] = &Frame{PageID: InvalidPageID}
		freeList[i] = i
	}

	return &Instance{
		poolSize:      poolSize,
		numInstances:  numInstances,
		instanceIndex: instanceIndex,
		nextPageID:    uint32(instanceIndex),
		disk:          disk,
		log:           log,
		frames:        frames,
		pageTable:     make(map[uint32]int, poolSize),
		freeList:      freeList,
		replacer:      clockx.New(poolSize),
	}
}

// New builds a standalone buffer pool instance (not part of a shard set).
func New(poolSize int, disk DiskManager, log LogManager) *Instance {
	return NewInstance(poolSize, 1, 0, disk, log)
}

// PoolSize returns the number of frames this instance owns.
func (in *Instance) PoolSize() int { return in.poolSize }

// allocatePageID hands out the next id owned by this instance: ids are
// assigned mod numInstances, starting at instanceIndex, stepping by
// numInstances, so page_id mod N always names this instance.
func (in *Instance) allocatePageID() uint32 {
	id := in.nextPageID
	in.nextPageID += uint32(in.numInstances)
	return id
}

// acquireFrame picks a frame to (re)use: the free list first, because
// reusing a free frame is zero-cost, and only falls back to the replacer
// when the free list is empty. Returns ok=false when every frame is
// pinned (pool exhausted).
func (in *Instance) acquireFrame() (frameID int, ok bool) {
	if n := len(in.freeList); n > 0 {
		frameID = in.freeList[0]
		in.freeList = in.freeList[1:]
		return frameID, true
	}
	return in.replacer.Victim()
}

// evictFrameLocked prepares a just-acquired frame for reuse: if it still
// holds a resident page, the dirty content is written back and its page
// table entry removed.
//
// frameID is only needed to restore the frame to the replacer if the
// write-back fails: a frame reaching this point with PageID != InvalidPageID
// was acquired from the replacer (free-list frames already carry
// InvalidPageID), so on failure it is still resident with no pins and must
// go back in, or it would be lost by neither the free list nor the replacer.
func (in *Instance) evictFrameLocked(frameID int, frame *Frame) error {
	if frame.PageID == InvalidPageID {
		return nil
	}
	if frame.Dirty {
		if err := in.writeBackLocked(frame); err != nil {
			in.replacer.Unpin(frameID)
			return err
		}
	}
	delete(in.pageTable, frame.PageID)
	return nil
}

func (in *Instance) writeBackLocked(frame *Frame) error {
	if in.log != nil {
		in.log.FlushLogUpTo(in.log.GetPersistentLSN())
	}
	if err := in.disk.WritePage(frame.PageID, frame.Page.Buf); err != nil {
		return err
	}
	frame.Dirty = false
	return nil
}

// NewPage allocates a fresh page id and pins it into a frame, reusing a
// free or evictable frame. Returns ErrPoolExhausted if every frame is
// currently pinned.
func (in *Instance) NewPage() (*PageRef, error) {
	in.mu.Lock()
	defer in.mu.Unlock()

	frameID, ok := in.acquireFrame()
	if !ok {
		return nil, ErrPoolExhausted
	}
	frame := in.frames[frameID]
	if err := in.evictFrameLocked(frameID, frame); err != nil {
		return nil, err
	}

	pageID := in.allocatePageID()
	buf := make([]byte, storage.PageSize)
	page, err := storage.NewPage(buf, pageID)
	if err != nil {
		return nil, err
	}

	frame.PageID = pageID
	frame.Page = page
	frame.PinCount = 1
	frame.Dirty = false
	in.pageTable[pageID] = frameID
	in.disk.AllocatePage(pageID)

	return &PageRef{PageID: pageID, frame: frame}, nil
}

// FetchPage returns a pinned reference to pageID, reading it from disk on
// a miss. Returns ErrPoolExhausted if pageID is not resident and every
// frame is pinned.
func (in *Instance) FetchPage(pageID uint32) (*PageRef, error) {
	in.mu.Lock()
	defer in.mu.Unlock()

	if frameID, ok := in.pageTable[pageID]; ok {
		frame := in.frames[frameID]
		frame.PinCount++
		in.replacer.Pin(frameID)
		return &PageRef{PageID: pageID, frame: frame}, nil
	}

	frameID, ok := in.acquireFrame()
	if !ok {
		return nil, ErrPoolExhausted
	}
	frame := in.frames[frameID]
	if err := in.evictFrameLocked(frameID, frame); err != nil {
		return nil, err
	}

	buf := make([]byte, storage.PageSize)
	if err := in.disk.ReadPage(pageID, buf); err != nil {
		// Frame is already detached from its old page; leave it on the
		// free list rather than stranding it half-initialized.
		frame.PageID = InvalidPageID
		frame.Page = nil
		in.freeList = append(in.freeList, frameID)
		return nil, err
	}

	frame.PageID = pageID
	frame.Page = &storage.Page{Buf: buf}
	frame.PinCount = 1
	frame.Dirty = false
	in.pageTable[pageID] = frameID

	return &PageRef{PageID: pageID, frame: frame}, nil
}

// UnpinPage releases one pin on pageID. dirty, if true, marks the frame
// dirty; it never clears an existing dirty flag. Returns false if pageID
// is not resident.
func (in *Instance) UnpinPage(pageID uint32, dirty bool) bool {
	in.mu.Lock()
	defer in.mu.Unlock()

	frameID, ok := in.pageTable[pageID]
	if !ok {
		return false
	}
	frame := in.frames[frameID]
	if dirty {
		frame.Dirty = true
	}
	if frame.PinCount > 0 {
		frame.PinCount--
	}
	if frame.PinCount == 0 {
		in.replacer.Unpin(frameID)
	}
	return true
}

// FlushPage writes pageID's contents to disk if dirty. Returns false for
// InvalidPageID or a page that is not resident.
func (in *Instance) FlushPage(pageID uint32) (bool, error) {
	in.mu.Lock()
	defer in.mu.Unlock()

	if pageID == InvalidPageID {
		return false, nil
	}
	frameID, ok := in.pageTable[pageID]
	if !ok {
		return false, nil
	}
	frame := in.frames[frameID]
	if frame.Dirty {
		if err := in.writeBackLocked(frame); err != nil {
			return false, err
		}
	}
	return true, nil
}

// FlushAllPages flushes every resident dirty frame.
func (in *Instance) FlushAllPages() error {
	in.mu.Lock()
	defer in.mu.Unlock()

	for _, frame := range in.frames {
		if frame.PageID == InvalidPageID || !frame.Dirty {
			continue
		}
		if err := in.writeBackLocked(frame); err != nil {
			return err
		}
	}
	return nil
}

// DeletePage drops pageID from the pool, returning it to the free list.
// It is idempotent on an absent page (returns true) and refuses a pinned
// page (returns false).
func (in *Instance) DeletePage(pageID uint32) (bool, error) {
	in.mu.Lock()
	defer in.mu.Unlock()

	frameID, ok := in.pageTable[pageID]
	if !ok {
		return true, nil
	}
	frame := in.frames[frameID]
	if frame.PinCount > 0 {
		return false, nil
	}

	delete(in.pageTable, pageID)
	in.replacer.Pin(frameID) // no-op if frameID isn't in the replacer
	frame.PageID = InvalidPageID
	frame.Page = nil
	frame.Dirty = false
	in.freeList = append(in.freeList, frameID)
	in.disk.DeallocatePage(pageID)

	return true, nil
}
