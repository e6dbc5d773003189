package WBTree

import (
	"sort"
	"testing"

	"github.com/g-m-twostay/go-dicts/Dicts"
)

func TestCursor_Sweep(t *testing.T) {
	keys := distinct(3000, 1<<20)
	tree := New[int, int, uint32](Dicts.Ordered[int], 0)
	for _, k := range keys {
		slot, _ := tree.Insert(k)
		*slot = k ^ 1
	}
	sort.Ints(keys)

	c := tree.Cursor() // starts at the minimum
	for i, want := range keys {
		k, ok := c.Key()
		if !ok || k != want {
			t.Fatalf("forward sweep at %v: (%v,%v), want %v", i, k, ok, want)
		}
		if v, ok := c.Value(); !ok || *v != want^1 {
			t.Fatalf("value at key %v wrong", want)
		}
		if c.Next() != (i+1 < len(keys)) {
			t.Fatalf("Next at %v of %v", i, len(keys))
		}
	}
	if c.Valid() {
		t.Fatal("cursor still positioned after walking off the end")
	}
	if _, ok := c.Key(); ok {
		t.Fatal("exhausted cursor still readable")
	}

	if !c.Last() {
		t.Fatal("Last failed on a populated tree")
	}
	for i := len(keys) - 1; i >= 0; i-- {
		k, _ := c.Key()
		if k != keys[i] {
			t.Fatalf("backward sweep at %v: %v, want %v", i, k, keys[i])
		}
		if c.Prev() != (i > 0) {
			t.Fatalf("Prev at %v", i)
		}
	}
	if c.Valid() {
		t.Fatal("cursor still positioned after walking off the start")
	}
}

func TestCursor_Empty(t *testing.T) {
	tree := New[int, int, uint8](Dicts.Ordered[int], 0)
	c := tree.Cursor()
	if c.Valid() || c.First() || c.Last() || c.Next() || c.Prev() {
		t.Fatal("cursor over an empty tree claims a position")
	}
	if _, ok := c.Key(); ok {
		t.Fatal("key readable on an empty tree")
	}
}

func TestCursor_SeekStep(t *testing.T) {
	keys := distinct(1000, 1 << 20)
	tree := New[int, int, uint32](Dicts.Ordered[int], 0)
	for _, k := range keys {
		tree.Insert(k)
	}
	sort.Ints(keys)

	c := tree.Cursor()
	mid := len(keys) / 2
	if !c.Seek(keys[mid]) {
		t.Fatal("seek of a present key missed")
	}
	if !c.NextN(10) {
		t.Fatal("NextN failed inside the range")
	}
	if k, _ := c.Key(); k != keys[mid+10] {
		t.Fatalf("NextN landed on %v, want %v", k, keys[mid+10])
	}
	if !c.PrevN(20) {
		t.Fatal("PrevN failed inside the range")
	}
	if k, _ := c.Key(); k != keys[mid-10] {
		t.Fatalf("PrevN landed on %v, want %v", k, keys[mid-10])
	}
	if c.NextN(uint(len(keys))) {
		t.Fatal("NextN past the end succeeded")
	}
	if c.Valid() {
		t.Fatal("cursor positioned after running out of entries")
	}

	miss := keys[len(keys)-1] + 1
	if c.Seek(miss) {
		t.Fatalf("seek of absent key %v hit", miss)
	}
	if c.Valid() {
		t.Fatal("cursor positioned after a missed seek")
	}
}

func TestCursor_Stale(t *testing.T) {
	tree := New[int, int, uint16](Dicts.Ordered[int], 0)
	for _, k := range rg.Perm(100) {
		tree.Insert(k)
	}
	c := tree.Cursor()
	c.NextN(50)

	tree.Insert(1000) // structural mutation outside the cursor
	if !c.Stale() {
		t.Fatal("cursor not stale after an outside insert")
	}
	if c.Valid() {
		t.Fatal("stale cursor claims to be valid")
	}
	if c.Next() || c.Prev() {
		t.Fatal("stale cursor stepped")
	}
	if _, ok := c.Key(); ok {
		t.Fatal("stale cursor read a key")
	}
	if _, ok := c.Value(); ok {
		t.Fatal("stale cursor read a value")
	}

	if !c.First() || c.Stale() {
		t.Fatal("First didn't revive the stale cursor")
	}
	if k, ok := c.Key(); !ok || k != 0 {
		t.Fatalf("revived cursor sits on %v,%v", k, ok)
	}
	tree.Remove(1000)
	if !c.Seek(50) || c.Stale() {
		t.Fatal("Seek didn't revive the stale cursor")
	}
}

func TestCursor_Iterator(t *testing.T) {
	tree := New[int, int, uint16](Dicts.Ordered[int], 0)
	for _, k := range rg.Perm(64) {
		tree.Insert(k)
	}
	var it Dicts.Cursor[int, int] = tree.Iterator()
	n := 0
	for ok := it.First(); ok; ok = it.Next() {
		if k, _ := it.Key(); k != n {
			t.Fatalf("facade cursor gave %v, want %v", k, n)
		}
		n++
	}
	if n != 64 {
		t.Fatalf("facade cursor visited %v entries", n)
	}
}
