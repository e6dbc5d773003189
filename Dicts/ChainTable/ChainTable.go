package ChainTable

import "github.com/g-m-twostay/go-dicts/Dicts"

const minBuckets = 8

// Table is a chained hash table over caller-hashed keys: a power-of-two
// bucket array of singly linked chains. Two keys are the same key iff cmp
// returns 0 on them, and equal keys must hash equally. Searches apply a
// self-organizing transposition step, so frequently searched keys drift
// toward the front of their chains.
// Table implements Dicts.Dict; it keeps no key order, so it deliberately
// doesn't carry the Dicts.SortedDict capabilities.
// The zero Table is not usable; create one with New.
type Table[K, V any] struct {
	buckets []*node[K, V]
	hash    func(K) uint
	cmp     Dicts.Cmp[K]
	size    uint
	ver     uint // bumped by every chain relink; cursors check it.
}

// New returns an empty Table using hash and cmp, sized for about hint
// entries. Neither function may be nil.
func New[K, V any](hash func(K) uint, cmp Dicts.Cmp[K], hint uint) *Table[K, V] {
	if hash == nil {
		panic("ChainTable: nil hash function")
	}
	if cmp == nil {
		panic("ChainTable: nil comparison function")
	}
	n := uint(minBuckets)
	for n < hint {
		n <<= 1
	}
	return &Table[K, V]{buckets: make([]*node[K, V], n), hash: hash, cmp: cmp}
}

func (u *Table[K, V]) at(h uint) uint {
	return h & uint(len(u.buckets)-1)
}

// grow doubles the bucket array, relinking every node in place. Chain order
// within the new buckets is reversed, which no contract depends on.
func (u *Table[K, V]) grow() {
	nb := make([]*node[K, V], len(u.buckets)<<1)
	mask := uint(len(nb) - 1)
	for _, c := range u.buckets {
		for c != nil {
			nx := c.nx
			i := c.hash & mask
			c.nx = nb[i]
			nb[i] = c
			c = nx
		}
	}
	u.buckets = nb
}

// Insert k if it isn't present and return the pointer to its value slot
// together with true; if k is already present the existing slot is returned
// with false and the table is unchanged. The table doubles once the load
// factor reaches 2.
// Time: amortized O(1)
func (u *Table[K, V]) Insert(k K) (*V, bool) {
	h := u.hash(k)
	for cur := u.buckets[u.at(h)]; cur != nil; cur = cur.nx {
		if cur.hash == h && u.cmp(k, cur.k) == 0 {
			return &cur.v, false
		}
	}
	if u.size >= uint(len(u.buckets))<<1 {
		u.grow()
	}
	b := u.at(h)
	n := &node[K, V]{nx: u.buckets[b], hash: h, k: k}
	u.buckets[b] = n
	u.size++
	u.ver++
	return &n.v, true
}

// Search for the value slot of k. A hit that isn't already at its chain head
// is transposed one link toward it, so the chain self-organizes under skewed
// lookups; that relink invalidates cursors like any other mutation.
// Time: expected O(1)
func (u *Table[K, V]) Search(k K) (*V, bool) {
	h := u.hash(k)
	b := u.at(h)
	var pp, p *node[K, V]
	for cur := u.buckets[b]; cur != nil; pp, p, cur = p, cur, cur.nx {
		if cur.hash == h && u.cmp(k, cur.k) == 0 {
			if p != nil { // swap cur with the node ahead of it
				p.nx = cur.nx
				cur.nx = p
				if pp != nil {
					pp.nx = cur
				} else {
					u.buckets[b] = cur
				}
				u.ver++
			}
			return &cur.v, true
		}
	}
	return nil, false
}

// Remove k, returning the evicted key and value.
// Time: expected O(1)
func (u *Table[K, V]) Remove(k K) (K, V, bool) {
	h := u.hash(k)
	b := u.at(h)
	var p *node[K, V]
	for cur := u.buckets[b]; cur != nil; p, cur = cur, cur.nx {
		if cur.hash == h && u.cmp(k, cur.k) == 0 {
			if p != nil {
				p.nx = cur.nx
			} else {
				u.buckets[b] = cur.nx
			}
			u.size--
			u.ver++
			return cur.k, cur.v, true
		}
	}
	return *new(K), *new(V), false
}

// Clear every entry, calling del on each evicted pair in bucket order if del
// isn't nil. Returns the number of entries removed. The bucket array keeps
// its length.
func (u *Table[K, V]) Clear(del func(K, V)) uint {
	n := u.size
	for i, c := range u.buckets {
		if del != nil {
			for ; c != nil; c = c.nx {
				del(c.k, c.v)
			}
		}
		u.buckets[i] = nil
	}
	u.size = 0
	u.ver++
	return n
}

// Traverse the entries in bucket order, stopping early when f returns false.
// Returns the number of entries visited, counting the one that stopped the
// walk. The table must not be mutated by f, and f mustn't Search either,
// since a transposition is a mutation.
// Time: O(n)
func (u *Table[K, V]) Traverse(f func(K, *V) bool) uint {
	n := uint(0)
	for _, c := range u.buckets {
		for ; c != nil; c = c.nx {
			n++
			if !f(c.k, &c.v) {
				return n
			}
		}
	}
	return n
}

// Size is the number of entries.
// Time: O(1)
func (u *Table[K, V]) Size() uint {
	return u.size
}

// Clone returns an independent copy of the table with the same bucket layout
// and chain order. cp, if not nil, is applied to every value so shared
// references can be deep copied.
// Time: O(n)
func (u *Table[K, V]) Clone(cp func(V) V) *Table[K, V] {
	n := &Table[K, V]{buckets: make([]*node[K, V], len(u.buckets)), hash: u.hash, cmp: u.cmp, size: u.size}
	for i, c := range u.buckets {
		tail := &n.buckets[i]
		for ; c != nil; c = c.nx {
			m := &node[K, V]{hash: c.hash, k: c.k, v: c.v}
			if cp != nil {
				m.v = cp(c.v)
			}
			*tail = m
			tail = &m.nx
		}
	}
	return n
}

// Iterator returns a new Cursor as the backend-agnostic Dicts.Cursor.
func (u *Table[K, V]) Iterator() Dicts.Cursor[K, V] {
	return u.Cursor()
}

// Verify checks that every node sits in the bucket its cached hash selects,
// that the cache matches rehashing the key, and that the chains hold exactly
// Size() entries. A false return means the table itself is defective.
// Time: O(n)
func (u *Table[K, V]) Verify() bool {
	n := uint(0)
	for i, c := range u.buckets {
		for ; c != nil; c = c.nx {
			if c.hash != u.hash(c.k) || u.at(c.hash) != uint(i) {
				return false
			}
			n++
		}
	}
	return n == u.size
}
