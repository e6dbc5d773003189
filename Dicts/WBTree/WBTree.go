package WBTree

import (
	"slices"

	"github.com/g-m-twostay/go-dicts/Dicts"
	"golang.org/x/exp/constraints"
)

// Tree is a binary search tree over caller-ordered keys with no repeated
// keys. It maintains balance by bounding, for every node, the ratio of the
// left subtree's weight to the node's own weight inside [0.292893, 0.707106]
// (weight = real nodes in the subtree plus one). The bound is restored after
// every mutation with at most two rotations per ancestor, which keeps the
// height D of the tree O(log n).
// Nodes live in an index-addressed arena instead of being heap-allocated
// individually; rotations and splices are index reassignments and removed
// indices are recycled through a free list.
// K is the key type, V the value type, and S the unsigned type used for
// arena indices and weights. S must be wide enough for the maximum number of
// entries plus two, otherwise the weights overflow; generally let S be a wide
// upper bound for the size of the tree.
// The zero Tree is not usable; create one with New or From.
type Tree[K, V any, S constraints.Unsigned] struct {
	cmp        Dicts.Cmp[K]
	ifs        []info[S] // ifs[0] is the virtual leaf. ks[i-1], vs[i-1] belong to ifs[i].
	ks         []K
	vs         []V
	root, free S
	rots       uint // rotations performed over the tree's lifetime, diagnostic only.
	ver        uint // bumped by every structural mutation; cursors check it.
}

// New returns an empty Tree bound to cmp, with capacity for hint entries
// preallocated. cmp must not be nil.
func New[K, V any, S constraints.Unsigned](cmp Dicts.Cmp[K], hint S) *Tree[K, V, S] {
	if cmp == nil {
		panic("WBTree: nil comparison function")
	}
	ifs := make([]info[S], 1, hint+1)
	ifs[0].w = 1
	return &Tree[K, V, S]{cmp: cmp, ifs: ifs, ks: make([]K, 0, hint), vs: make([]V, 0, hint)}
}

// From builds a Tree from keys already sorted in strictly increasing cmp
// order, with vs[i] as the value of ks[i]; a nil vs leaves the values zero.
// Both slices are handed to the tree and mustn't be modified by the caller
// afterwards. This is faster than repeated Insert. Panics if the keys aren't
// strictly increasing or the lengths differ.
// Time: O(n).
func From[K, V any, S constraints.Unsigned](cmp Dicts.Cmp[K], ks []K, vs []V) *Tree[K, V, S] {
	if cmp == nil {
		panic("WBTree: nil comparison function")
	}
	if vs == nil {
		vs = make([]V, len(ks))
	} else if len(vs) != len(ks) {
		panic("WBTree: len(vs) != len(ks)")
	}
	for i := 1; i < len(ks); i++ {
		if cmp(ks[i-1], ks[i]) >= 0 {
			panic("WBTree: keys not strictly increasing")
		}
	}
	u := &Tree[K, V, S]{cmp: cmp, ifs: make([]info[S], len(ks)+1), ks: ks, vs: vs}
	u.ifs[0].w = 1
	var build func(lo, hi int, p S) S
	build = func(lo, hi int, p S) S {
		if lo >= hi {
			return 0
		}
		mid := int(uint(lo+hi) >> 1)
		i := S(mid + 1)
		u.ifs[i] = info[S]{p: p, w: S(hi-lo) + 1}
		u.ifs[i].l = build(lo, mid, i)
		u.ifs[i].r = build(mid+1, hi, i)
		return i
	}
	u.root = build(0, len(ks), 0)
	return u
}

// Size is the number of entries, derived from the root's weight.
// Time: O(1)
func (u *Tree[K, V, S]) Size() uint {
	return uint(u.ifs[u.root].w - 1)
}

// Rotations returns the number of rotations performed on the tree so far. It
// is a diagnostic counter and has no bearing on correctness.
func (u *Tree[K, V, S]) Rotations() uint {
	return u.rots
}

// fixup restores the weight bound at n after n's weight changed by one,
// returning the number of rotations performed (0, 1 or 2). The thresholds are
// kept in integer arithmetic so the bound never drifts the way a float ratio
// would: 293/1000 and 707/1000 bracket the balanced range, 586/1000 picks
// between a single and a double rotation. Weights of the rotated cluster are
// recomputed bottom-up; ancestors above n are unaffected.
func (u *Tree[K, V, S]) fixup(n S) byte {
	lw, w := uint(u.ifs[u.ifs[n].l].w), uint(u.ifs[n].w)
	if lw*1000 < w*293 { // left too light, so the right child exists
		r := u.ifs[n].r
		if uint(u.ifs[u.ifs[r].l].w)*1000 < uint(u.ifs[r].w)*586 {
			u.rotateLeft(n)
			u.reweigh(n)
			u.reweigh(r)
			return 1
		}
		m := u.ifs[r].l
		u.rotateRight(r)
		u.rotateLeft(n)
		u.reweigh(n)
		u.reweigh(r)
		u.reweigh(m)
		return 2
	} else if lw*1000 > w*707 { // left too heavy
		l := u.ifs[n].l
		if uint(u.ifs[u.ifs[l].r].w)*1000 < uint(u.ifs[l].w)*586 {
			u.rotateRight(n)
			u.reweigh(n)
			u.reweigh(l)
			return 1
		}
		m := u.ifs[l].r
		u.rotateLeft(l)
		u.rotateRight(n)
		u.reweigh(n)
		u.reweigh(l)
		u.reweigh(m)
		return 2
	}
	return 0
}

// Insert k if it isn't present and return the pointer to its value slot
// together with true; if k is already present the existing slot is returned
// with false and the tree is unchanged, so the caller decides between
// updating in place and keeping the old value. The returned pointer is valid
// until the next structural mutation.
// Time: O(D)
func (u *Tree[K, V, S]) Insert(k K) (*V, bool) {
	p, left := S(0), false
	for cur := u.root; cur != 0; {
		c := u.cmp(k, u.ks[cur-1])
		if c == 0 {
			return &u.vs[cur-1], false
		}
		p = cur
		if left = c < 0; left {
			cur = u.ifs[cur].l
		} else {
			cur = u.ifs[cur].r
		}
	}
	n := u.popFree()
	if n == 0 {
		u.ifs = append(u.ifs, info[S]{p: p, w: 2})
		u.ks = append(u.ks, k)
		u.vs = append(u.vs, *new(V))
		n = S(uint(len(u.ifs)) - 1)
	} else {
		u.ifs[n] = info[S]{p: p, w: 2}
		u.ks[n-1] = k
	}
	if p == 0 {
		u.root = n
	} else if left {
		u.ifs[p].l = n
	} else {
		u.ifs[p].r = n
	}
	u.ver++
	for x := p; x != 0; { // every ancestor gained one descendant
		nx := u.ifs[x].p // fixup may rotate x downward, so take the parent first
		u.ifs[x].w++
		u.fixup(x)
		x = nx
	}
	return &u.vs[n-1], true
}

// Remove k, returning the evicted key and value. A node with two children
// isn't removed physically: its key and value are swapped with the in-order
// neighbour taken from whichever child subtree is heavier, and that
// neighbour, which has at most one child, is spliced out instead. The splice
// parent then starts the same upward repair walk as Insert, decrementing
// weights instead of incrementing them.
// Time: O(D)
func (u *Tree[K, V, S]) Remove(k K) (K, V, bool) {
	cur := u.root
	for cur != 0 {
		if c := u.cmp(k, u.ks[cur-1]); c < 0 {
			cur = u.ifs[cur].l
		} else if c > 0 {
			cur = u.ifs[cur].r
		} else {
			break
		}
	}
	if cur == 0 {
		return *new(K), *new(V), false
	}
	ok, ov := u.ks[cur-1], u.vs[cur-1]
	t := cur
	if f := u.ifs[cur]; f.l != 0 && f.r != 0 {
		if u.ifs[f.l].w > u.ifs[f.r].w {
			t = u.rightmost(f.l)
		} else {
			t = u.leftmost(f.r)
		}
		u.ks[cur-1], u.vs[cur-1] = u.ks[t-1], u.vs[t-1]
	}
	c := u.ifs[t].l
	if c == 0 {
		c = u.ifs[t].r
	}
	p := u.ifs[t].p
	if c != 0 {
		u.ifs[c].p = p
	}
	if p == 0 {
		u.root = c
	} else if u.ifs[p].l == t {
		u.ifs[p].l = c
	} else {
		u.ifs[p].r = c
	}
	u.ks[t-1], u.vs[t-1] = *new(K), *new(V)
	u.addFree(t)
	u.ver++
	for x := p; x != 0; {
		nx := u.ifs[x].p
		u.ifs[x].w--
		u.fixup(x)
		x = nx
	}
	return ok, ov, true
}

// Search for the value slot of k.
// Time: O(D); Space: O(1)
func (u *Tree[K, V, S]) Search(k K) (*V, bool) {
	for cur := u.root; cur != 0; {
		if c := u.cmp(k, u.ks[cur-1]); c < 0 {
			cur = u.ifs[cur].l
		} else if c > 0 {
			cur = u.ifs[cur].r
		} else {
			return &u.vs[cur-1], true
		}
	}
	return nil, false
}

// SearchLT finds the greatest entry whose key is <k.
// Time: O(D); Space: O(1)
func (u *Tree[K, V, S]) SearchLT(k K) (K, *V, bool) {
	p := S(0)
	for cur := u.root; cur != 0; {
		if u.cmp(k, u.ks[cur-1]) <= 0 {
			cur = u.ifs[cur].l
		} else {
			p = cur
			cur = u.ifs[cur].r
		}
	}
	if p == 0 {
		return *new(K), nil, false
	}
	return u.ks[p-1], &u.vs[p-1], true
}

// SearchLE finds the greatest entry whose key is <=k.
// Time: O(D); Space: O(1)
func (u *Tree[K, V, S]) SearchLE(k K) (K, *V, bool) {
	p := S(0)
	for cur := u.root; cur != 0; {
		if u.cmp(k, u.ks[cur-1]) < 0 {
			cur = u.ifs[cur].l
		} else {
			p = cur
			cur = u.ifs[cur].r
		}
	}
	if p == 0 {
		return *new(K), nil, false
	}
	return u.ks[p-1], &u.vs[p-1], true
}

// SearchGT finds the smallest entry whose key is >k.
// Time: O(D); Space: O(1)
func (u *Tree[K, V, S]) SearchGT(k K) (K, *V, bool) {
	p := S(0)
	for cur := u.root; cur != 0; {
		if u.cmp(k, u.ks[cur-1]) < 0 {
			p = cur
			cur = u.ifs[cur].l
		} else {
			cur = u.ifs[cur].r
		}
	}
	if p == 0 {
		return *new(K), nil, false
	}
	return u.ks[p-1], &u.vs[p-1], true
}

// SearchGE finds the smallest entry whose key is >=k.
// Time: O(D); Space: O(1)
func (u *Tree[K, V, S]) SearchGE(k K) (K, *V, bool) {
	p := S(0)
	for cur := u.root; cur != 0; {
		if u.cmp(k, u.ks[cur-1]) <= 0 {
			p = cur
			cur = u.ifs[cur].l
		} else {
			cur = u.ifs[cur].r
		}
	}
	if p == 0 {
		return *new(K), nil, false
	}
	return u.ks[p-1], &u.vs[p-1], true
}

// Select the entry with zero-based rank in key order, so Select(0) is the
// minimum and Select(Size()-1) the maximum. This reuses the weight field that
// already exists for balancing, so rank queries cost no extra bookkeeping.
// Time: O(D); Space: O(1)
func (u *Tree[K, V, S]) Select(rank uint) (K, *V, bool) {
	if rank >= u.Size() {
		return *new(K), nil, false
	}
	cur := u.root
	for {
		if lw := uint(u.ifs[u.ifs[cur].l].w); rank+1 == lw {
			return u.ks[cur-1], &u.vs[cur-1], true
		} else if rank+1 > lw {
			rank -= lw
			cur = u.ifs[cur].r
		} else {
			cur = u.ifs[cur].l
		}
	}
}

// Traverse the entries in increasing key order, stopping early when f
// returns false. Returns the number of entries visited, counting the one
// that stopped the walk. The tree must not be mutated by f.
// Time: O(n)
func (u *Tree[K, V, S]) Traverse(f func(K, *V) bool) uint {
	n := uint(0)
	for i := u.leftmost(u.root); i != 0; i = u.succ(i) {
		n++
		if !f(u.ks[i-1], &u.vs[i-1]) {
			break
		}
	}
	return n
}

// Clear every entry, calling del on each evicted pair in key order if del
// isn't nil. Returns the number of entries removed. The arena keeps its
// capacity, so the tree can be refilled without reallocating.
// Time: O(1) when del==nil, O(n) otherwise.
func (u *Tree[K, V, S]) Clear(del func(K, V)) uint {
	n := u.Size()
	if del != nil {
		for i := u.leftmost(u.root); i != 0; i = u.succ(i) {
			del(u.ks[i-1], u.vs[i-1])
		}
	}
	clear(u.ks)
	clear(u.vs)
	u.ks, u.vs, u.ifs = u.ks[:0], u.vs[:0], u.ifs[:1]
	u.ifs[0] = info[S]{w: 1}
	u.root, u.free = 0, 0
	u.ver++
	return n
}

// Clone returns an independent copy of the tree with the same shape. cp, if
// not nil, is applied to every live value so shared references can be deep
// copied; keys are copied as values.
// Time: O(n)
func (u *Tree[K, V, S]) Clone(cp func(V) V) *Tree[K, V, S] {
	n := &Tree[K, V, S]{
		cmp: u.cmp, root: u.root, free: u.free,
		ifs: slices.Clone(u.ifs), ks: slices.Clone(u.ks), vs: slices.Clone(u.vs),
	}
	if cp != nil {
		for i := n.leftmost(n.root); i != 0; i = n.succ(i) {
			n.vs[i-1] = cp(n.vs[i-1])
		}
	}
	return n
}

// Iterator returns a new Cursor as the backend-agnostic Dicts.Cursor.
func (u *Tree[K, V, S]) Iterator() Dicts.Cursor[K, V] {
	return u.Cursor()
}

// Verify walks the whole tree checking parent links, strict key ordering,
// that every weight equals the sum of its children's weights, and that every
// left/total weight ratio lies inside the balance bound. A false return means
// the engine itself is defective; it can never be caused by caller misuse.
// Recursive, meant for tests.
// Time: O(n)
func (u *Tree[K, V, S]) Verify() bool {
	if u.ifs[0] != (info[S]{w: 1}) {
		return false
	}
	if u.root != 0 && u.ifs[u.root].p != 0 {
		return false
	}
	n := uint(0)
	return u.verify(u.root, 0, nil, nil, &n) && n == u.Size()
}

func (u *Tree[K, V, S]) verify(i, p S, lo, hi *K, n *uint) bool {
	if i == 0 {
		return true
	}
	f := u.ifs[i]
	if f.p != p {
		return false
	}
	if lo != nil && u.cmp(u.ks[i-1], *lo) <= 0 {
		return false
	}
	if hi != nil && u.cmp(u.ks[i-1], *hi) >= 0 {
		return false
	}
	if f.w != u.ifs[f.l].w+u.ifs[f.r].w {
		return false
	}
	if lw := uint(u.ifs[f.l].w) * 1000; lw < uint(f.w)*292 || lw > uint(f.w)*708 {
		return false
	}
	*n++
	k := u.ks[i-1]
	return u.verify(f.l, i, lo, &k, n) && u.verify(f.r, i, &k, hi, n)
}
