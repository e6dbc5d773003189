package ChainTable

// Cursor is a position handle over a Table's entries in bucket order. The
// order is arbitrary but stable between mutations. Like the tree cursor it
// never owns the entry it sits on, and refuses to step or read once the
// table was mutated outside of it (including the transposition a Search
// performs); First, Last and Seek reposition from scratch and revive it.
// Backward stepping is supported but costs a rescan of the table, since the
// chains are singly linked.
type Cursor[K, V any] struct {
	t   *Table[K, V]
	cur *node[K, V] // nil when unpositioned
	b   int         // bucket of cur
	ver uint
}

// Cursor returns a new cursor positioned at the first entry in bucket order,
// or unpositioned when the table is empty.
func (u *Table[K, V]) Cursor() *Cursor[K, V] {
	c := &Cursor[K, V]{t: u, ver: u.ver}
	c.First()
	return c
}

// Valid reports whether the cursor is positioned on a live entry.
func (u *Cursor[K, V]) Valid() bool {
	return u.cur != nil && u.ver == u.t.ver
}

// Stale reports whether the table was mutated outside this cursor since it
// was last positioned.
func (u *Cursor[K, V]) Stale() bool {
	return u.ver != u.t.ver
}

// First positions the cursor on the first entry in bucket order. False iff
// the table is empty.
func (u *Cursor[K, V]) First() bool {
	u.ver = u.t.ver
	for i, c := range u.t.buckets {
		if c != nil {
			u.b, u.cur = i, c
			return true
		}
	}
	u.cur = nil
	return false
}

// Last positions the cursor on the final entry in bucket order. False iff
// the table is empty.
// Time: O(n)
func (u *Cursor[K, V]) Last() bool {
	u.ver = u.t.ver
	u.cur = nil
	for i := len(u.t.buckets) - 1; i >= 0; i-- {
		if c := u.t.buckets[i]; c != nil {
			for ; c.nx != nil; c = c.nx {
			}
			u.b, u.cur = i, c
			return true
		}
	}
	return false
}

// Next steps to the following entry, continuing into later buckets. False
// past the end or on an unpositioned or stale cursor.
func (u *Cursor[K, V]) Next() bool {
	if !u.Valid() {
		u.cur = nil
		return false
	}
	if u.cur.nx != nil {
		u.cur = u.cur.nx
		return true
	}
	for i := u.b + 1; i < len(u.t.buckets); i++ {
		if c := u.t.buckets[i]; c != nil {
			u.b, u.cur = i, c
			return true
		}
	}
	u.cur = nil
	return false
}

// Prev steps to the preceding entry by rescanning, since the chains are
// singly linked. False past the start or on an unpositioned or stale cursor.
// Time: O(n)
func (u *Cursor[K, V]) Prev() bool {
	if !u.Valid() {
		u.cur = nil
		return false
	}
	if p := u.cur; p == u.t.buckets[u.b] {
		for i := u.b - 1; i >= 0; i-- {
			if c := u.t.buckets[i]; c != nil {
				for ; c.nx != nil; c = c.nx {
				}
				u.b, u.cur = i, c
				return true
			}
		}
		u.cur = nil
		return false
	}
	c := u.t.buckets[u.b]
	for ; c.nx != u.cur; c = c.nx {
	}
	u.cur = c
	return true
}

// NextN steps forward n times, returning false and leaving the cursor
// unpositioned if the entries run out before the count completes.
func (u *Cursor[K, V]) NextN(n uint) bool {
	for ; n > 0; n-- {
		if !u.Next() {
			return false
		}
	}
	return u.Valid()
}

// PrevN steps backward n times, mirroring NextN.
func (u *Cursor[K, V]) PrevN(n uint) bool {
	for ; n > 0; n-- {
		if !u.Prev() {
			return false
		}
	}
	return u.Valid()
}

// Seek positions the cursor on the entry with key k by a fresh bucket
// lookup, leaving it unpositioned on a miss. Unlike Table.Search it never
// transposes, so it doesn't invalidate other cursors.
// Time: expected O(1)
func (u *Cursor[K, V]) Seek(k K) bool {
	u.ver = u.t.ver
	h := u.t.hash(k)
	b := u.t.at(h)
	for c := u.t.buckets[b]; c != nil; c = c.nx {
		if c.hash == h && u.t.cmp(k, c.k) == 0 {
			u.b, u.cur = int(b), c
			return true
		}
	}
	u.cur = nil
	return false
}

// Key of the current entry; false if the cursor is unpositioned or stale.
func (u *Cursor[K, V]) Key() (K, bool) {
	if !u.Valid() {
		return *new(K), false
	}
	return u.cur.k, true
}

// Value slot of the current entry; false if the cursor is unpositioned or
// stale.
func (u *Cursor[K, V]) Value() (*V, bool) {
	if !u.Valid() {
		return nil, false
	}
	return &u.cur.v, true
}
