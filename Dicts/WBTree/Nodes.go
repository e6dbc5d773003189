package WBTree

import "golang.org/x/exp/constraints"

// A node of the tree, stored in the arena slice Tree.ifs. Index 0 is the
// shared virtual leaf: it is never linked downward from, its weight is always
// 1, and it doubles as the none reference for l, r and p.
// w is the weight of the subtree rooted here: the number of real nodes in it
// plus one, so a childless node weighs 2 and the virtual leaf weighs 1.
type info[S constraints.Unsigned] struct {
	l, r, p, w S
}

// addFree recycles index a, reusing l as the next pointer of the free list.
func (u *Tree[K, V, S]) addFree(a S) {
	u.ifs[a].l = u.free
	u.free = a
}

// popFree takes a recycled index, 0 when there is none.
func (u *Tree[K, V, S]) popFree() S {
	b := u.free
	u.free = u.ifs[b].l
	return b
}

func (u *Tree[K, V, S]) leftmost(i S) S {
	if i != 0 {
		for u.ifs[i].l != 0 {
			i = u.ifs[i].l
		}
	}
	return i
}

func (u *Tree[K, V, S]) rightmost(i S) S {
	if i != 0 {
		for u.ifs[i].r != 0 {
			i = u.ifs[i].r
		}
	}
	return i
}

// succ is the in-order successor of i, 0 past the maximum.
// Time: amortized O(1) over a full traversal, worst case O(D).
func (u *Tree[K, V, S]) succ(i S) S {
	if r := u.ifs[i].r; r != 0 {
		return u.leftmost(r)
	}
	p := u.ifs[i].p
	for p != 0 && u.ifs[p].r == i {
		i, p = p, u.ifs[p].p
	}
	return p
}

// pred is the in-order predecessor of i, 0 past the minimum.
func (u *Tree[K, V, S]) pred(i S) S {
	if l := u.ifs[i].l; l != 0 {
		return u.rightmost(l)
	}
	p := u.ifs[i].p
	for p != 0 && u.ifs[p].l == i {
		i, p = p, u.ifs[p].p
	}
	return p
}

// reweigh recomputes i's weight from its children. Callers of the rotation
// primitives use it bottom-up on the rotated cluster.
func (u *Tree[K, V, S]) reweigh(i S) {
	f := &u.ifs[i]
	f.w = u.ifs[f.l].w + u.ifs[f.r].w
}

// rotateLeft promotes n's right child into n's place, keeping the in-order
// sequence. It relinks child, parent and root references only; the weights of
// the two nodes involved are left to the caller, which already holds the
// values needed to recompute them in O(1).
func (u *Tree[K, V, S]) rotateLeft(n S) {
	r := u.ifs[n].r
	rl := u.ifs[r].l
	u.ifs[n].r = rl
	if rl != 0 {
		u.ifs[rl].p = n
	}
	p := u.ifs[n].p
	u.ifs[r].p = p
	if p == 0 {
		u.root = r
	} else if u.ifs[p].l == n {
		u.ifs[p].l = r
	} else {
		u.ifs[p].r = r
	}
	u.ifs[r].l = n
	u.ifs[n].p = r
	u.rots++
}

// rotateRight is the mirror of rotateLeft.
func (u *Tree[K, V, S]) rotateRight(n S) {
	l := u.ifs[n].l
	lr := u.ifs[l].r
	u.ifs[n].l = lr
	if lr != 0 {
		u.ifs[lr].p = n
	}
	p := u.ifs[n].p
	u.ifs[l].p = p
	if p == 0 {
		u.root = l
	} else if u.ifs[p].l == n {
		u.ifs[p].l = l
	} else {
		u.ifs[p].r = l
	}
	u.ifs[l].r = n
	u.ifs[n].p = l
	u.rots++
}
