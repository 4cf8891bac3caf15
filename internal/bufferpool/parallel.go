package bufferpool

import (
	"errors"
	"sync/atomic"
)

// ShardedPool presents a single buffer-pool interface backed by N
// independent Instances. Every request keyed by a page id routes to
// instances[pid % N]; since each instance only ever allocates ids
// congruent to its own index mod N, that routing is always correct for
// pages the pool itself created.
//
// The front end holds no mutex: routing is pure arithmetic, and each
// dispatched call acquires only the target instance's lock, so requests
// against different shards proceed fully in parallel.
type ShardedPool struct {
	instances []*Instance
	cursor    atomic.Int64
}

// NewShardedPool builds a pool of numInstances shards, each with
// poolSizePerInstance frames, one DiskManager per shard (diskManagers
// must have length numInstances), and a shared log manager.
func NewShardedPool(numInstances, poolSizePerInstance int, diskManagers []DiskManager, log LogManager) *ShardedPool {
	if numInstances <= 0 {
		numInstances = 1
	}
	instances := make([]*Instance, numInstances)
	for i := range instances {
		instances[i] = NewInstance(poolSizePerInstance, numInstances, i, diskManagers[i], log)
	}
	return &ShardedPool{instances: instances}
}

func (s *ShardedPool) shardFor(pageID uint32) *Instance {
	return s.instances[pageID%uint32(len(s.instances))]
}

// NewPage tries instances in round-robin order starting from a rotating
// cursor, so allocation load balances across shards over time. It
// returns the first successful result, or ErrPoolExhausted if every
// shard refused.
func (s *ShardedPool) NewPage() (*PageRef, error) {
	n := int64(len(s.instances))
	start := s.cursor.Add(1) - 1

	for i := int64(0); i < n; i++ {
		idx := int((start + i) % n)
		ref, err := s.instances[idx].NewPage()
		if err == nil {
			return ref, nil
		}
		if !errors.Is(err, ErrPoolExhausted) {
			return nil, err
		}
	}
	return nil, ErrPoolExhausted
}

// FetchPage routes to instances[pageID % N] and returns its result.
func (s *ShardedPool) FetchPage(pageID uint32) (*PageRef, error) {
	return s.shardFor(pageID).FetchPage(pageID)
}

// UnpinPage routes to instances[pageID % N] and returns its result.
func (s *ShardedPool) UnpinPage(pageID uint32, dirty bool) bool {
	return s.shardFor(pageID).UnpinPage(pageID, dirty)
}

// FlushPage routes to instances[pageID % N] and returns its result.
func (s *ShardedPool) FlushPage(pageID uint32) (bool, error) {
	if pageID == InvalidPageID {
		return false, nil
	}
	return s.shardFor(pageID).FlushPage(pageID)
}

// FlushAllPages flushes every shard in turn.
func (s *ShardedPool) FlushAllPages() error {
	for _, in := range s.instances {
		if err := in.FlushAllPages(); err != nil {
			return err
		}
	}
	return nil
}

// DeletePage routes to instances[pageID % N] and returns its result.
func (s *ShardedPool) DeletePage(pageID uint32) (bool, error) {
	return s.shardFor(pageID).DeletePage(pageID)
}

// PoolSize is the sum of every shard's pool size, not the rotation
// cursor: it reports aggregate capacity, which is what callers actually
// want to know.
func (s *ShardedPool) PoolSize() int {
	total := 0
	for _, in := range s.instances {
		total += in.PoolSize()
	}
	return total
}
