package WBTree

import "golang.org/x/exp/constraints"

// Cursor is a bidirectional position handle over a Tree's key sequence. It
// holds an arena index, never owns the entry it sits on, and must not outlive
// the tree. Because removed indices are recycled, a cursor refuses to step or
// read once the tree was structurally mutated outside of it: Stale reports
// that state and the positioned operations fail instead of touching a
// possibly recycled entry. First, Last and Seek reposition from the root, so
// they also revive a stale cursor.
type Cursor[K, V any, S constraints.Unsigned] struct {
	t   *Tree[K, V, S]
	cur S // 0 when unpositioned
	ver uint
}

// Cursor returns a new cursor positioned at the minimum key, or unpositioned
// when the tree is empty.
func (u *Tree[K, V, S]) Cursor() *Cursor[K, V, S] {
	return &Cursor[K, V, S]{t: u, cur: u.leftmost(u.root), ver: u.ver}
}

// Valid reports whether the cursor is positioned on a live entry.
func (u *Cursor[K, V, S]) Valid() bool {
	return u.cur != 0 && u.ver == u.t.ver
}

// Stale reports whether the tree was structurally mutated outside this
// cursor since it was last positioned.
func (u *Cursor[K, V, S]) Stale() bool {
	return u.ver != u.t.ver
}

// First positions the cursor on the minimum key. False iff the tree is empty.
func (u *Cursor[K, V, S]) First() bool {
	u.ver = u.t.ver
	u.cur = u.t.leftmost(u.t.root)
	return u.cur != 0
}

// Last positions the cursor on the maximum key. False iff the tree is empty.
func (u *Cursor[K, V, S]) Last() bool {
	u.ver = u.t.ver
	u.cur = u.t.rightmost(u.t.root)
	return u.cur != 0
}

// Next steps to the in-order successor. Stepping past the maximum, or calling
// Next on an unpositioned or stale cursor, leaves it unpositioned and returns
// false.
// Time: amortized O(1) over a full sweep, worst case O(D).
func (u *Cursor[K, V, S]) Next() bool {
	if !u.Valid() {
		u.cur = 0
		return false
	}
	u.cur = u.t.succ(u.cur)
	return u.cur != 0
}

// Prev steps to the in-order predecessor, mirroring Next.
func (u *Cursor[K, V, S]) Prev() bool {
	if !u.Valid() {
		u.cur = 0
		return false
	}
	u.cur = u.t.pred(u.cur)
	return u.cur != 0
}

// NextN steps forward n times, returning false and leaving the cursor
// unpositioned if the entries run out before the count completes.
func (u *Cursor[K, V, S]) NextN(n uint) bool {
	for ; n > 0; n-- {
		if !u.Next() {
			return false
		}
	}
	return u.Valid()
}

// PrevN steps backward n times, mirroring NextN.
func (u *Cursor[K, V, S]) PrevN(n uint) bool {
	for ; n > 0; n-- {
		if !u.Prev() {
			return false
		}
	}
	return u.Valid()
}

// Seek positions the cursor on the entry with key k by a fresh descent from
// the root, leaving it unpositioned on a miss.
// Time: O(D)
func (u *Cursor[K, V, S]) Seek(k K) bool {
	u.ver = u.t.ver
	cur := u.t.root
	for cur != 0 {
		if c := u.t.cmp(k, u.t.ks[cur-1]); c < 0 {
			cur = u.t.ifs[cur].l
		} else if c > 0 {
			cur = u.t.ifs[cur].r
		} else {
			break
		}
	}
	u.cur = cur
	return cur != 0
}

// Key of the current entry; false if the cursor is unpositioned or stale.
func (u *Cursor[K, V, S]) Key() (K, bool) {
	if !u.Valid() {
		return *new(K), false
	}
	return u.t.ks[u.cur-1], true
}

// Value slot of the current entry; false if the cursor is unpositioned or
// stale. The pointer is valid until the next structural mutation.
func (u *Cursor[K, V, S]) Value() (*V, bool) {
	if !u.Valid() {
		return nil, false
	}
	return &u.t.vs[u.cur-1], true
}
