package ChainTable

import (
	"math/rand"
	"testing"

	Go_Dicts "github.com/g-m-twostay/go-dicts"
	"github.com/g-m-twostay/go-dicts/Dicts"
)

var (
	rg = rand.New(rand.NewSource(0))
	hs = Go_Dicts.MakeHasher()
)

func TestTable_InsertSearchRemove(t *testing.T) {
	tbl := New[int, int](hs.HashInt, Dicts.Ordered[int], 0)
	content := make(map[int]int)
	for i := 0; i < 20000; i++ {
		k := rg.Intn(40000)
		_, in := content[k]
		slot, fresh := tbl.Insert(k)
		if fresh == in {
			t.Fatalf("insert of key %v reported fresh=%v, oracle says present=%v", k, fresh, in)
		}
		*slot = k * 3
		content[k] = k * 3
	}
	if !tbl.Verify() {
		t.Fatal("table corrupt after insertions")
	}
	if tbl.Size() != uint(len(content)) {
		t.Fatalf("size %v, oracle has %v", tbl.Size(), len(content))
	}
	for k, want := range content {
		if slot, ok := tbl.Search(k); !ok || *slot != want {
			t.Fatalf("search of inserted key %v failed", k)
		}
	}
	if _, ok := tbl.Search(-1); ok {
		t.Fatal("search of an absent key hit")
	}
	if !tbl.Verify() {
		t.Fatal("table corrupt after transposing searches")
	}
	i := 0
	for k, want := range content {
		if i&1 == 0 {
			ok, ov, found := tbl.Remove(k)
			if !found || ok != k || ov != want {
				t.Fatalf("remove of key %v returned (%v,%v,%v)", k, ok, ov, found)
			}
			if _, _, again := tbl.Remove(k); again {
				t.Fatalf("second removal of key %v succeeded", k)
			}
			delete(content, k)
		}
		i++
	}
	if !tbl.Verify() || tbl.Size() != uint(len(content)) {
		t.Fatal("table corrupt after removals")
	}
	for k, want := range content {
		if slot, ok := tbl.Search(k); !ok || *slot != want {
			t.Fatalf("surviving key %v lost", k)
		}
	}
}

// A constant hash forces every key into one chain, making the transposition
// order observable: inserts prepend, and each hit swaps one link toward the
// chain head.
func TestTable_Transpose(t *testing.T) {
	tbl := New[int, int](func(int) uint { return 7 }, Dicts.Ordered[int], 0)
	for _, k := range []int{1, 2, 3} {
		tbl.Insert(k)
	}
	order := func() (a []int) {
		tbl.Traverse(func(k int, _ *int) bool {
			a = append(a, k)
			return true
		})
		return
	}
	chain := order() // inserts prepend
	for i, want := range []int{3, 2, 1} {
		if chain[i] != want {
			t.Fatalf("chain after inserts: %v", chain)
		}
	}
	tbl.Search(1)
	for i, want := range []int{3, 1, 2} {
		if chain = order(); chain[i] != want {
			t.Fatalf("chain after first search: %v", chain)
		}
	}
	tbl.Search(1)
	for i, want := range []int{1, 3, 2} {
		if chain = order(); chain[i] != want {
			t.Fatalf("chain after second search: %v", chain)
		}
	}
	tbl.Search(1) // already at the head, no relink
	for i, want := range []int{1, 3, 2} {
		if chain = order(); chain[i] != want {
			t.Fatalf("chain after head search: %v", chain)
		}
	}
	if !tbl.Verify() {
		t.Fatal("table corrupt after transpositions")
	}
}

func TestTable_Grow(t *testing.T) {
	tbl := New[int, int](hs.HashInt, Dicts.Ordered[int], 0)
	if len(tbl.buckets) != minBuckets {
		t.Fatalf("fresh table has %v buckets", len(tbl.buckets))
	}
	for k := 0; k < 10000; k++ {
		tbl.Insert(k)
	}
	if len(tbl.buckets) <= minBuckets {
		t.Fatal("table never grew")
	}
	if !tbl.Verify() || tbl.Size() != 10000 {
		t.Fatal("table corrupt after growing")
	}
	for k := 0; k < 10000; k++ {
		if _, ok := tbl.Search(k); !ok {
			t.Fatalf("key %v lost in growth", k)
		}
	}
}

func TestTable_ClearClone(t *testing.T) {
	tbl := New[int, int](hs.HashInt, Dicts.Ordered[int], 0)
	for k := 0; k < 500; k++ {
		slot, _ := tbl.Insert(k)
		*slot = -k
	}
	cl := tbl.Clone(func(v int) int { return v - 1 })
	if !cl.Verify() || cl.Size() != 500 {
		t.Fatal("clone corrupt")
	}
	seen := 0
	if n := tbl.Clear(func(k, v int) {
		if v != -k {
			t.Fatalf("callback got (%v,%v)", k, v)
		}
		seen++
	}); n != 500 || seen != 500 {
		t.Fatalf("clear removed %v, callback saw %v", n, seen)
	}
	if tbl.Size() != 0 || !tbl.Verify() {
		t.Fatal("table not empty after clear")
	}
	if tbl.Clear(nil) != 0 {
		t.Fatal("clearing an empty table removed something")
	}
	// the clone is unaffected and deep copied
	cl.Traverse(func(k int, v *int) bool {
		if *v != -k-1 {
			t.Fatalf("deep copy not applied at key %v: %v", k, *v)
		}
		return true
	})
}

func TestTable_Cursor(t *testing.T) {
	tbl := New[int, int](hs.HashInt, Dicts.Ordered[int], 0)
	c := tbl.Cursor()
	if c.Valid() || c.First() || c.Last() {
		t.Fatal("cursor over an empty table claims a position")
	}
	content := make(map[int]struct{})
	for k := 0; k < 1000; k++ {
		tbl.Insert(k)
		content[k] = struct{}{}
	}
	c = tbl.Cursor()
	n := 0
	for ok := true; ok; ok = c.Next() {
		k, valid := c.Key()
		if !valid {
			t.Fatal("positioned cursor unreadable")
		}
		if _, in := content[k]; !in {
			t.Fatalf("cursor produced duplicate or foreign key %v", k)
		}
		delete(content, k)
		n++
	}
	if n != 1000 || len(content) != 0 {
		t.Fatalf("forward sweep visited %v entries, %v missed", n, len(content))
	}

	if !c.Last() {
		t.Fatal("Last failed on a populated table")
	}
	for n = 1; c.Prev(); n++ {
	}
	if n != 1000 {
		t.Fatalf("backward sweep visited %v entries", n)
	}

	if !c.Seek(123) {
		t.Fatal("seek of a present key missed")
	}
	if k, _ := c.Key(); k != 123 {
		t.Fatalf("seek landed on %v", k)
	}
	if c.Seek(-5) || c.Valid() {
		t.Fatal("seek of an absent key hit")
	}

	c.First()
	tbl.Insert(5000)
	if !c.Stale() || c.Next() {
		t.Fatal("cursor not invalidated by an outside insert")
	}
	tbl.Search(123) // transposition counts as a mutation too
	if !c.First() || c.Stale() {
		t.Fatal("First didn't revive the stale cursor")
	}
}
