package storage

import (
	"encoding/binary"
	"errors"
)

// Header offsets. The buffer pool treats page content as an opaque byte
// buffer, so the only structure imposed here is a small header carrying
// the page id and an "initialized" marker, used by StorageManager.LoadPage
// to tell a freshly-read, never-written (all-zero) page apart from a real
// one.
const (
	offFlags  = 0
	offPageID = 2
	offInit   = 6
)

var ErrWrongSize = errors.New("page: buffer size != PageSize")

type Page struct {
	Buf []byte // fixed-size 8KB
}

func NewPage(buf []byte, pageID uint32) (*Page, error) {
	if len(buf) != PageSize {
		return nil, ErrWrongSize
	}
	p := &Page{Buf: buf}
	p.init(pageID)
	return p, nil
}

func (p *Page) init(pageID uint32) {
	for i := range p.Buf {
		p.Buf[i] = 0
	}
	p.setFlags(0)
	p.setPageID(pageID)
	binary.LittleEndian.PutUint16(p.Buf[offInit:], 1)
}

func (p *Page) setFlags(v uint16) {
	binary.LittleEndian.PutUint16(p.Buf[offFlags:], v)
}

func (p *Page) PageID() uint32 {
	return binary.LittleEndian.Uint32(p.Buf[offPageID:])
}

func (p *Page) setPageID(v uint32) {
	binary.LittleEndian.PutUint32(p.Buf[offPageID:], v)
}

// IsUninitialized reports whether this buffer has never been stamped by
// NewPage — i.e. it is a sparse, all-zero page read past the end of a
// segment file.
func (p *Page) IsUninitialized() bool {
	return binary.LittleEndian.Uint16(p.Buf[offInit:]) == 0
}
