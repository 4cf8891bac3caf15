package storage

const (
	SegmentSize       = 1 << 30                // 1,073,741,824 (1 GiB)
	PageSize          = 1 << 13                // 8,192 (8 KiB)
	MaxPagePerSegment = SegmentSize / PageSize // 131,072 pages/segment

	FileMode0644 = 0o644
	FileMode0664 = 0o664
	FileMode0755 = 0o755
)
