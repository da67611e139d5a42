package ring

import (
	"fmt"
	"math/bits"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/unkn0wn-root/mhash"
)

const weightScale = 1_000_000

// Node is one placement target.
type Node struct {
	ID     NodeID
	Addr   string
	weight atomic.Uint64 // scaled 0..weightScale
	salt   uint64        // per-node seed, pre-hashed from ID
}

// Weight returns the current weight as a [0,1] float.
func (n *Node) Weight() float64 {
	return float64(n.weight.Load()) / weightScale
}

// Ring assigns Hashable keys to nodes with weighted rendezvous hashing: every
// node scores the key under its own seed and the highest score*weight wins.
// Adding or removing a node only moves the keys that node wins or loses.
type Ring struct {
	mu       sync.RWMutex
	nodes    []*Node
	byID     map[NodeID]*Node
	replicas int
	seed     uint64
	engine   mhash.Engine
}

// New creates an empty ring.
func New(cfg Config) (*Ring, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := cfg.Engine
	if e == nil {
		e = mhash.Mix
	}
	return &Ring{
		byID:     make(map[NodeID]*Node),
		replicas: cfg.Replicas,
		seed:     cfg.Seed,
		engine:   e,
	}, nil
}

// Add joins a node with the default weight.
func (r *Ring) Add(id NodeID, addr string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; ok {
		return fmt.Errorf("add %q: %w", id, ErrNodeExists)
	}
	n := &Node{
		ID:   id,
		Addr: addr,
		salt: mhash.HashString(r.seed, string(id)),
	}
	n.weight.Store(uint64(defaultWeight * weightScale))
	r.byID[id] = n
	r.nodes = append(r.nodes, n)
	return nil
}

// Remove drops a node.
func (r *Ring) Remove(id NodeID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return fmt.Errorf("remove %q: %w", id, ErrNodeNotFound)
	}
	delete(r.byID, id)
	for i, n := range r.nodes {
		if n.ID == id {
			r.nodes = append(r.nodes[:i], r.nodes[i+1:]...)
			break
		}
	}
	return nil
}

// SetWeight changes a node's share of keys. A zero weight keeps the node in
// the ring but makes it lose every comparison against weighted nodes.
func (r *Ring) SetWeight(id NodeID, w float64) error {
	if w < 0 || w > 1 {
		return fmt.Errorf("set weight %q to %v: %w", id, w, ErrInvalidWeight)
	}
	r.mu.RLock()
	n, ok := r.byID[id]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("set weight %q: %w", id, ErrNodeNotFound)
	}
	n.weight.Store(uint64(w * weightScale))
	return nil
}

// Nodes returns the members sorted by ID.
func (r *Ring) Nodes() []*Node {
	r.mu.RLock()
	out := append([]*Node(nil), r.nodes...)
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Owners returns the top Replicas nodes for key, best first.
func (r *Ring) Owners(key mhash.Hashable) []*Node {
	return r.TopN(key, r.replicas)
}

// TopN returns up to n candidates for key ranked by weighted score.
func (r *Ring) TopN(key mhash.Hashable, n int) []*Node {
	r.mu.RLock()
	arr := r.score(key)
	r.mu.RUnlock()

	sort.Slice(arr, func(i, j int) bool { return arr[j].worse(arr[i]) })

	if n > len(arr) {
		n = len(arr)
	}
	if n < 0 {
		n = 0
	}
	out := make([]*Node, n)
	for i := 0; i < n; i++ {
		out[i] = arr[i].n
	}
	return out
}

// Owns reports whether id is among the owners of key. It keeps only the
// current top Replicas while scanning instead of sorting every node.
func (r *Ring) Owns(id NodeID, key mhash.Hashable) bool {
	r.mu.RLock()
	arr := r.score(key)
	r.mu.RUnlock()

	top := r.replicas
	if top > len(arr) {
		top = len(arr)
	}
	if top == 0 {
		return false
	}

	best := make([]slot, 0, top)
	worst := 0
	for _, s := range arr {
		if len(best) < top {
			best = append(best, s)
			if s.worse(best[worst]) {
				worst = len(best) - 1
			}
			continue
		}
		if best[worst].worse(s) {
			best[worst] = s
			worst = 0
			for i := 1; i < len(best); i++ {
				if best[i].worse(best[worst]) {
					worst = i
				}
			}
		}
	}

	for _, s := range best {
		if s.n.ID == id {
			return true
		}
	}
	return false
}

// slot is a node's 128-bit score*weight product for one key.
type slot struct {
	hi, lo uint64
	n      *Node
}

// worse orders slots by product, then by ID so ties are stable.
func (a slot) worse(b slot) bool {
	if a.hi != b.hi {
		return a.hi < b.hi
	}
	if a.lo != b.lo {
		return a.lo < b.lo
	}
	return a.n.ID > b.n.ID
}

// score must be called with r.mu held.
func (r *Ring) score(key mhash.Hashable) []slot {
	arr := make([]slot, 0, len(r.nodes))
	for _, n := range r.nodes {
		s := mhash.HashWith(r.engine, n.salt, key)
		hi, lo := bits.Mul64(s, n.weight.Load())
		arr = append(arr, slot{hi: hi, lo: lo, n: n})
	}
	return arr
}
