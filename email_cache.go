package mailsyntax

import (
	"golang.org/x/sync/singleflight"
	"hash/crc32"
	"sync"
)

// // // // // // // // // //

const maxShardAbs = 8

type verdictEntryObj struct {
	err error
}

type verdictShardObj struct {
	mu       sync.RWMutex
	data     map[[hashBlockSize]byte]*verdictEntryObj
	group    singleflight.Group
	requests uint32
}

// verdictCacheObj remembers Check results keyed by a digest of the input, never the input itself.
type verdictCacheObj struct {
	shards  []verdictShardObj
	mask    uint32
	maxSize int
	pruneN  uint32
}

func newVerdictCache(cfg *ConfigCacheObj) *verdictCacheObj {
	count := 1 << cfg.ShardAbs

	obj := &verdictCacheObj{
		shards:  make([]verdictShardObj, count),
		mask:    uint32(count - 1),
		maxSize: int(cfg.ShardMaxSize),
		pruneN:  cfg.PruneEveryN,
	}
	for i := range obj.shards {
		obj.shards[i].data = make(map[[hashBlockSize]byte]*verdictEntryObj, 1024)
	}
	return obj
}

//

func (obj *verdictCacheObj) shard(key *[hashBlockSize]byte) *verdictShardObj {
	return &obj.shards[crc32.ChecksumIEEE(key[:])&obj.mask]
}

func (obj *verdictCacheObj) get(raw []byte, compute func() error) error {
	key := digest(raw)
	sh := obj.shard(&key)

	sh.mu.RLock()
	ent := sh.data[key]
	sh.mu.RUnlock()
	if ent != nil {
		return ent.err
	}

	v, _, _ := sh.group.Do(string(key[:]), func() (any, error) {
		sh.mu.RLock()
		ent2 := sh.data[key]
		sh.mu.RUnlock()
		if ent2 != nil {
			return ent2, nil
		}

		ent2 = &verdictEntryObj{err: compute()}

		sh.mu.Lock()
		sh.requests++
		switch {
		case sh.requests%obj.pruneN == 0:
			sh.trim(obj.maxSize - obj.maxSize/4)
		case len(sh.data) >= obj.maxSize:
			sh.trim(obj.maxSize - 1)
		}
		sh.data[key] = ent2
		sh.mu.Unlock()

		return ent2, nil
	})

	return v.(*verdictEntryObj).err
}

// trim evicts arbitrary entries until at most keep remain. Caller holds sh.mu.
func (sh *verdictShardObj) trim(keep int) {
	if keep < 0 {
		keep = 0
	}
	for k := range sh.data {
		if len(sh.data) <= keep {
			return
		}
		delete(sh.data, k)
	}
}

func (obj *verdictCacheObj) len() (n int) {
	for i := range obj.shards {
		sh := &obj.shards[i]
		sh.mu.RLock()
		n += len(sh.data)
		sh.mu.RUnlock()
	}
	return
}
