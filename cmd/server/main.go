package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/novabase-dev/novabase/internal/bufferpool"
	"github.com/novabase-dev/novabase/internal/storage"
	"github.com/novabase-dev/novabase/pkg/config"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file (optional)")
	workDir := flag.String("data-dir", "", "Working directory for database files (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if *workDir != "" {
		cfg.Storage.Workdir = *workDir
	}
	if cfg.Server.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if err := os.MkdirAll(cfg.Storage.Workdir, storage.FileMode0755); err != nil {
		log.Fatal().Err(err).Str("dir", cfg.Storage.Workdir).Msg("create data directory")
	}

	pool, disks, err := newShardedPool(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("build buffer pool")
	}

	var existingPages uint32
	for _, d := range disks {
		n, err := d.PageCount()
		if err != nil {
			log.Fatal().Err(err).Msg("count existing pages")
		}
		existingPages += n
	}

	log.Info().
		Str("app", cfg.AppName).
		Str("data_dir", cfg.Storage.Workdir).
		Int("instances", cfg.BufferPool.NumInstances).
		Int("pool_size", pool.PoolSize()).
		Uint32("existing_pages", existingPages).
		Msg("buffer pool server started")

	ref, err := pool.NewPage()
	if err != nil {
		log.Fatal().Err(err).Msg("allocate startup page")
	}
	if ok := pool.UnpinPage(ref.PageID, false); !ok {
		log.Warn().Uint32("page_id", ref.PageID).Msg("unpin failed")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info().Msg("shutting down, flushing dirty pages")
	if err := pool.FlushAllPages(); err != nil {
		log.Error().Err(err).Msg("flush all pages")
	}
}

// newShardedPool wires one storage-manager-backed DiskManager per shard
// so each instance has its own segment file set under the data directory.
// It also returns the concrete FileDiskManagers so the caller can report
// on-disk state (e.g. page counts) that the DiskManager interface itself
// doesn't expose.
func newShardedPool(cfg *config.Config) (*bufferpool.ShardedPool, []*bufferpool.FileDiskManager, error) {
	sm := storage.NewStorageManager()
	n := cfg.BufferPool.NumInstances
	if n <= 0 {
		n = 1
	}

	disks := make([]*bufferpool.FileDiskManager, n)
	poolDisks := make([]bufferpool.DiskManager, n)
	for i := 0; i < n; i++ {
		fs := storage.LocalFileSet{
			Dir:  cfg.Storage.Workdir,
			Base: shardFileName(i),
		}
		disks[i] = bufferpool.NewFileDiskManager(sm, fs)
		poolDisks[i] = disks[i]
	}

	return bufferpool.NewShardedPool(n, cfg.BufferPool.PoolSize, poolDisks, nil), disks, nil
}

func shardFileName(shard int) string {
	return fmt.Sprintf("heap.shard%d", shard)
}
