package kvstore

import (
	"sync"

	"github.com/trezcool/darasa/core"
)

type memoryKV struct {
	mu sync.RWMutex
	m  map[string][]byte
}

var _ core.KV = (*memoryKV)(nil)

// OpenMemory returns a volatile in-memory KV, used in tests and TEST mode.
func OpenMemory() core.KV {
	return &memoryKV{m: make(map[string][]byte)}
}

func (kv *memoryKV) Get(key string) ([]byte, error) {
	kv.mu.RLock()
	defer kv.mu.RUnlock()
	v, ok := kv.m[key]
	if !ok {
		return nil, core.ErrKeyNotFound
	}
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp, nil
}

func (kv *memoryKV) Put(key string, value []byte) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	cp := make([]byte, len(value))
	copy(cp, value)
	kv.m[key] = cp
	return nil
}

func (kv *memoryKV) Delete(key string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	delete(kv.m, key)
	return nil
}

func (kv *memoryKV) Close() error { return nil }
