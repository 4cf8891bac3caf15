package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPage_StampsHeaderAndZeroesBuf(t *testing.T) {
	buf := make([]byte, PageSize)
	for i := range buf {
		buf[i] = 0xFF
	}

	p, err := NewPage(buf, 7)
	require.NoError(t, err)
	assert.Equal(t, uint32(7), p.PageID())
	assert.False(t, p.IsUninitialized())
	assert.Zero(t, p.Buf[PageSize-1])
}

func TestNewPage_WrongSize(t *testing.T) {
	_, err := NewPage(make([]byte, PageSize-1), 0)
	require.ErrorIs(t, err, ErrWrongSize)
}

func TestPage_IsUninitialized_OnBareBuffer(t *testing.T) {
	p := &Page{Buf: make([]byte, PageSize)}
	assert.True(t, p.IsUninitialized())
}
