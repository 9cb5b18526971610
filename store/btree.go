package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/barter/errors"
)

const (
	// DefaultFreeListSize is the size we hold for free node in btree
	DefaultFreeListSize = btree.DefaultFreeListSize
)

// MemStore returns a simple implementation useful for tests.
// There is no persistence here....
func MemStore() CacheableKVStore {
	return &memStore{
		bt: btree.New(2),
	}
}

// memStore is the bottom layer holding all written data.
type memStore struct {
	bt *btree.BTree
}

var _ CacheableKVStore = (*memStore)(nil)

func (m *memStore) Get(key []byte) ([]byte, error) {
	assertKey(key)
	res := m.bt.Get(bkey{key})
	if res == nil {
		return nil, nil
	}
	return res.(setItem).value, nil
}

func (m *memStore) Has(key []byte) (bool, error) {
	assertKey(key)
	return m.bt.Has(bkey{key}), nil
}

func (m *memStore) Set(key, value []byte) error {
	assertKey(key)
	m.bt.ReplaceOrInsert(newSetItem(key, value))
	return nil
}

func (m *memStore) Delete(key []byte) error {
	assertKey(key)
	m.bt.Delete(bkey{key})
	return nil
}

// CacheWrap returns a BTreeCacheWrap that can be later
// written to this store, or rolled back
func (m *memStore) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(m, m, nil)
}

///////////////////////////////////////////////
// Actual CacheWrap implementation

// BTreeCacheWrap places a btree cache over a KVStore. All reads
// fall through to the backing store unless the key was modified
// in this cache. Nothing reaches the parent until Write is called.
type BTreeCacheWrap struct {
	bt     *btree.BTree
	free   *btree.FreeList
	back   ReadOnlyKVStore
	parent KVStore
}

var _ KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap initializes a BTree to cache around this
// kv store. back is used for reading, parent receives all
// changes on Write. Usually they are the same instance.
//
// free may be nil, but set to an existing list to reuse it
// for memory savings
func NewBTreeCacheWrap(back ReadOnlyKVStore, parent KVStore, free *btree.FreeList) BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(DefaultFreeListSize)
	}
	return BTreeCacheWrap{
		bt:     btree.NewWithFreeList(2, free),
		free:   free,
		back:   back,
		parent: parent,
	}
}

// CacheWrap layers another BTree on top of this one.
func (b BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b, b, b.free)
}

// Write syncs all changes with the parent store in key order.
// And then cleans up
func (b BTreeCacheWrap) Write() error {
	var err error
	b.bt.Ascend(func(i btree.Item) bool {
		switch t := i.(type) {
		case setItem:
			err = b.parent.Set(t.key, t.value)
		case deletedItem:
			err = b.parent.Delete(t.key)
		default:
			err = errors.Wrapf(errors.ErrDatabase, "unknown item in btree: %#v", i)
		}
		return err == nil
	})
	if err != nil {
		return errors.Wrap(err, "cannot write cache")
	}
	b.Discard()
	return nil
}

// Discard invalidates this CacheWrap and releases all data
func (b BTreeCacheWrap) Discard() {
	// clean up the btree -> freelist
	for stop := false; !stop; {
		rem := b.bt.DeleteMin()
		stop = (rem == nil)
	}
}

// Set writes to the BTree
func (b BTreeCacheWrap) Set(key, value []byte) error {
	assertKey(key)
	b.bt.ReplaceOrInsert(newSetItem(key, value))
	return nil
}

// Delete marks the key as deleted in the BTree
func (b BTreeCacheWrap) Delete(key []byte) error {
	assertKey(key)
	b.bt.ReplaceOrInsert(newDeletedItem(key))
	return nil
}

// Get reads from btree if there, else backing store
func (b BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	assertKey(key)
	res := b.bt.Get(bkey{key})
	if res != nil {
		switch t := res.(type) {
		case setItem:
			return t.value, nil
		case deletedItem:
			return nil, nil
		default:
			return nil, errors.Wrapf(errors.ErrDatabase, "unknown item in btree: %#v", res)
		}
	}
	return b.back.Get(key)
}

// Has reads from btree if there, else backing store
func (b BTreeCacheWrap) Has(key []byte) (bool, error) {
	assertKey(key)
	res := b.bt.Get(bkey{key})
	if res != nil {
		switch res.(type) {
		case setItem:
			return true, nil
		case deletedItem:
			return false, nil
		default:
			return false, errors.Wrapf(errors.ErrDatabase, "unknown item in btree: %#v", res)
		}
	}
	return b.back.Has(key)
}

func assertKey(key []byte) {
	if key == nil {
		panic("nil key")
	}
}

/////////////////////////////////////////////////////////
// Items to write to btree

// we enforce all data in our btree implements keyer so we
// can compare nicely
type keyer interface {
	Key() []byte
}

// bkey implements keyer and btree.Item
// and may be used for queries or embedded in data to store
type bkey struct {
	key []byte
}

var _ keyer = bkey{}
var _ btree.Item = bkey{}

func (k bkey) Key() []byte {
	return k.key
}

// Less returns true iff second argument is greater than first
//
// panics if the item to compare doesn't implement keyer.
func (k bkey) Less(item btree.Item) bool {
	cmp := item.(keyer).Key()
	return bytes.Compare(k.key, cmp) < 0
}

type deletedItem struct {
	bkey
}

func newDeletedItem(key []byte) deletedItem {
	return deletedItem{bkey{key}}
}

type setItem struct {
	bkey
	value []byte
}

func newSetItem(key, value []byte) setItem {
	// the caller may reuse the value slice
	cpy := make([]byte, len(value))
	copy(cpy, value)
	return setItem{bkey{key}, cpy}
}
