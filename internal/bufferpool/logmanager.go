package bufferpool

// LogManager is the write-ahead-log collaborator consulted before a dirty
// frame is written back to disk. WAL mechanics and recovery live outside
// this package; a nil LogManager means no WAL is attached and write-back
// skips straight to the disk manager.
type LogManager interface {
	GetPersistentLSN() uint64
	FlushLogUpTo(lsn uint64)
}
