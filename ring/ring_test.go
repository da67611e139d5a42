package ring

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unkn0wn-root/mhash"
)

func newTestRing(t *testing.T, replicas int, ids ...string) *Ring {
	t.Helper()
	r, err := New(Config{Replicas: replicas})
	require.NoError(t, err)
	for _, id := range ids {
		require.NoError(t, r.Add(NodeID(id), id+":7000"))
	}
	return r
}

func TestNewValidatesConfig(t *testing.T) {
	_, err := New(Config{Replicas: 0})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	r, err := New(DefaultConfig())
	require.NoError(t, err)
	assert.Empty(t, r.Owners(mhash.String("k")))
}

func TestRingOwnersWeightedFirstIsHeaviest(t *testing.T) {
	r := newTestRing(t, 2, "A", "B", "C")

	// make A overwhelmingly heavy so it always wins top rank.
	require.NoError(t, r.SetWeight("A", 1))
	require.NoError(t, r.SetWeight("B", 0.000001))
	require.NoError(t, r.SetWeight("C", 0.000001))

	key := mhash.U64(12345)
	owners := r.Owners(key)
	require.Len(t, owners, 2)
	assert.Equal(t, NodeID("A"), owners[0].ID)

	top := r.TopN(key, 3)
	require.Len(t, top, 3)
	assert.Equal(t, NodeID("A"), top[0].ID)
	assert.True(t, r.Owns("A", key))
}

func TestRingMembershipErrors(t *testing.T) {
	r := newTestRing(t, 1, "A")

	assert.ErrorIs(t, r.Add("A", "dup"), ErrNodeExists)
	assert.ErrorIs(t, r.Remove("Z"), ErrNodeNotFound)
	assert.ErrorIs(t, r.SetWeight("Z", 0.5), ErrNodeNotFound)
	assert.ErrorIs(t, r.SetWeight("A", 1.5), ErrInvalidWeight)
	assert.ErrorIs(t, r.SetWeight("A", -0.1), ErrInvalidWeight)

	require.NoError(t, r.Remove("A"))
	assert.Empty(t, r.Nodes())
	assert.False(t, r.Owns("A", mhash.String("k")))
}

func TestRingNodesSorted(t *testing.T) {
	r := newTestRing(t, 1, "c", "a", "b")
	nodes := r.Nodes()
	require.Len(t, nodes, 3)
	assert.Equal(t, []NodeID{"a", "b", "c"}, []NodeID{nodes[0].ID, nodes[1].ID, nodes[2].ID})
	assert.InDelta(t, defaultWeight, nodes[0].Weight(), 1e-9)
}

func TestRingDistribution(t *testing.T) {
	r := newTestRing(t, 1, "A", "B", "C")

	counts := map[NodeID]int{}
	for i := 0; i < 3000; i++ {
		owners := r.Owners(mhash.String("key:" + strconv.Itoa(i)))
		require.Len(t, owners, 1)
		counts[owners[0].ID]++
	}
	for id, c := range counts {
		assert.InDelta(t, 1000, c, 200, "node %s", id)
	}
	assert.Len(t, counts, 3)
}

func TestRingRemovalOnlyMovesLostKeys(t *testing.T) {
	r := newTestRing(t, 1, "A", "B", "C", "D")

	before := map[int]NodeID{}
	for i := 0; i < 2000; i++ {
		before[i] = r.Owners(mhash.Int(i))[0].ID
	}

	require.NoError(t, r.Remove("C"))
	for i := 0; i < 2000; i++ {
		after := r.Owners(mhash.Int(i))[0].ID
		if before[i] != "C" {
			assert.Equal(t, before[i], after, "key %d moved without cause", i)
		}
		assert.NotEqual(t, NodeID("C"), after)
	}
}

func TestRingOwnsAgreesWithOwners(t *testing.T) {
	r := newTestRing(t, 2, "A", "B", "C", "D", "E")
	require.NoError(t, r.SetWeight("B", 0.9))
	require.NoError(t, r.SetWeight("E", 0.1))

	for i := 0; i < 500; i++ {
		key := mhash.String("k" + strconv.Itoa(i))
		owners := map[NodeID]bool{}
		for _, n := range r.Owners(key) {
			owners[n.ID] = true
		}
		for _, n := range r.Nodes() {
			assert.Equal(t, owners[n.ID], r.Owns(n.ID, key), "key %d node %s", i, n.ID)
		}
	}
}

func TestRingSeedChangesPlacement(t *testing.T) {
	a, err := New(Config{Replicas: 1, Seed: 1})
	require.NoError(t, err)
	b, err := New(Config{Replicas: 1, Seed: 2, Engine: mhash.XXH3})
	require.NoError(t, err)
	for _, id := range []NodeID{"A", "B", "C", "D"} {
		require.NoError(t, a.Add(id, ""))
		require.NoError(t, b.Add(id, ""))
	}

	moved := 0
	for i := 0; i < 400; i++ {
		if a.Owners(mhash.Int(i))[0].ID != b.Owners(mhash.Int(i))[0].ID {
			moved++
		}
	}
	// independent placements agree on about a quarter of keys.
	assert.Greater(t, moved, 200)
}

func TestRingTopNBounds(t *testing.T) {
	r := newTestRing(t, 2, "A", "B")
	assert.Len(t, r.TopN(mhash.Int(1), 10), 2)
	assert.Empty(t, r.TopN(mhash.Int(1), -1))
}
