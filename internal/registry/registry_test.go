package registry

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type key struct{ id int }

func TestRegistry_RegisterAndCount(t *testing.T) {
	t.Parallel()

	r := New[*key]()
	k := &key{}
	r.Register(k, []int{1}, "seq")

	require.True(t, r.RecordRead(k))
	require.True(t, r.RecordWrite(k))
	require.True(t, r.RecordWrite(k))

	e, ok := r.Get(k)
	require.True(t, ok)
	assert.Equal(t, "seq", e.Name)
	assert.Equal(t, int64(1), e.Reads)
	assert.Equal(t, int64(2), e.Writes)
	assert.Equal(t, []int{1}, e.Delegate)
}

func TestRegistry_IdentityKeys(t *testing.T) {
	t.Parallel()

	r := New[*key]()
	a, b := &key{id: 1}, &key{id: 1}
	r.Register(a, nil, "a")
	r.Register(b, nil, "b")
	r.RecordRead(a)

	assert.Equal(t, 2, r.Len())
	ea, _ := r.Get(a)
	eb, _ := r.Get(b)
	assert.Equal(t, int64(1), ea.Reads)
	assert.Equal(t, int64(0), eb.Reads)
}

func TestRegistry_UnknownKey(t *testing.T) {
	t.Parallel()

	r := New[*key]()
	assert.False(t, r.RecordRead(&key{}))
	assert.False(t, r.RecordWrite(&key{}))
	_, ok := r.Get(&key{})
	assert.False(t, ok)
}

func TestRegistry_ReRegisterKeepsCounts(t *testing.T) {
	t.Parallel()

	r := New[*key]()
	k := &key{}
	r.Register(k, nil, "first")
	r.RecordWrite(k)
	r.Register(k, nil, "second")

	e, _ := r.Get(k)
	assert.Equal(t, "first", e.Name)
	assert.Equal(t, int64(1), e.Writes)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_SnapshotOrder(t *testing.T) {
	t.Parallel()

	r := New[*key]()
	a, b, c := &key{1}, &key{2}, &key{3}
	r.Register(a, nil, "a")
	r.Register(b, nil, "b")
	r.Register(c, nil, "c")

	snap := r.Snapshot(c, a, &key{4}, b)
	require.Len(t, snap, 3)
	assert.Equal(t, "c", snap[0].Name)
	assert.Equal(t, "a", snap[1].Name)
	assert.Equal(t, "b", snap[2].Name)

	all := r.Entries()
	require.Len(t, all, 3)
	assert.Equal(t, "a", all[0].Name)
}

func TestRegistry_SnapshotIsCopy(t *testing.T) {
	t.Parallel()

	r := New[*key]()
	k := &key{}
	r.Register(k, nil, "k")
	snap := r.Snapshot(k)
	r.RecordRead(k)

	assert.Equal(t, int64(0), snap[0].Reads)
}

func TestRegistry_ConcurrentIncrements(t *testing.T) {
	t.Parallel()

	r := New[*key]()
	k := &key{}
	r.Register(k, nil, "k")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.RecordRead(k)
				r.RecordWrite(k)
			}
		}()
	}
	wg.Wait()

	e, _ := r.Get(k)
	assert.Equal(t, int64(5000), e.Reads)
	assert.Equal(t, int64(5000), e.Writes)
}

func TestRegistry_ValueKeys(t *testing.T) {
	t.Parallel()

	r := New[key]()
	r.Register(key{id: 1}, nil, "one")
	r.Register(key{id: 1}, nil, "again")
	r.Register(key{id: 2}, nil, "two")

	require.True(t, r.RecordRead(key{id: 1}))
	assert.False(t, r.RecordRead(key{id: 3}))
	assert.Equal(t, 2, r.Len())

	e, ok := r.Get(key{id: 1})
	require.True(t, ok)
	assert.Equal(t, "one", e.Name)
	assert.Equal(t, int64(1), e.Reads)
}
