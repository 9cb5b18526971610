package store

import "github.com/iov-one/barter"

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = barter.ReadOnlyKVStore
type KVStore = barter.KVStore
type CacheableKVStore = barter.CacheableKVStore
type KVCacheWrap = barter.KVCacheWrap
