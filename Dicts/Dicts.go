package Dicts

import "cmp"

// Cmp is a total ordering over keys of type K. It returns a negative number
// if a<b, 0 if a==b, and a positive number if a>b. Every dictionary is bound
// to exactly one Cmp at construction; two keys are the same key iff Cmp
// returns 0 on them.
type Cmp[K any] func(a, b K) int

// Ordered is the stock Cmp for the built-in ordered types.
func Ordered[K cmp.Ordered](a, b K) int {
	return cmp.Compare(a, b)
}

// Dict is the set of operations every dictionary backend supports. Callers
// that only need these can stay agnostic of the concrete backend.
// Receivers that have a bool as the last return value indicate whether the
// other return values are defined; a false means the value is absent, not
// that an error happened.
// Pointers into a dictionary (*V slots) stay valid until the next structural
// mutation of that dictionary.
// Implementations are not synchronized; sharing one instance across
// goroutines requires external mutual exclusion.
type Dict[K, V any] interface {
	//Insert k if it isn't present yet and return the pointer to its value
	//slot together with true. If k is already present, the pointer to the
	//existing slot is returned together with false and the dictionary is
	//unchanged; overwriting through the slot is the caller's choice.
	Insert(k K) (*V, bool)
	//Search for the value slot of k.
	Search(k K) (*V, bool)
	//Remove k, returning the evicted key and value.
	Remove(k K) (K, V, bool)
	//Clear every entry, calling del on each evicted pair if del isn't nil.
	//Returns the number of entries removed; 0 on an already empty dictionary.
	Clear(del func(K, V)) uint
	//Traverse the entries in the backend's natural order, stopping early when
	//f returns false. Returns the number of entries visited. The dictionary
	//must not be mutated by f.
	Traverse(f func(k K, v *V) bool) uint
	//Iterator returns a new Cursor over the dictionary.
	Iterator() Cursor[K, V]
	//Size is the number of entries.
	Size() uint
	//Verify the backend's structural invariants. A false return indicates a
	//defect in the backend itself, never caller misuse; it is meant for tests.
	Verify() bool
}

// SortedDict is a Dict whose backend keeps keys in Cmp order and can answer
// neighbour and rank queries. Not every backend has this capability; use
// AsSorted to discover it.
type SortedDict[K, V any] interface {
	Dict[K, V]
	//SearchLE finds the greatest entry whose key is <=k.
	SearchLE(k K) (K, *V, bool)
	//SearchLT finds the greatest entry whose key is <k.
	SearchLT(k K) (K, *V, bool)
	//SearchGE finds the smallest entry whose key is >=k.
	SearchGE(k K) (K, *V, bool)
	//SearchGT finds the smallest entry whose key is >k.
	SearchGT(k K) (K, *V, bool)
	//Select the entry with zero-based rank k in key order, so Select(0) is
	//the minimum. rank>=Size() is reported as absent.
	Select(rank uint) (K, *V, bool)
}

// AsSorted reports whether d carries the sorted capabilities. Backends
// without them (the hash table) are reported as (nil, false) instead of
// offering operations that would fail at call time.
func AsSorted[K, V any](d Dict[K, V]) (SortedDict[K, V], bool) {
	s, ok := d.(SortedDict[K, V])
	return s, ok
}

// Cursor is a bidirectional position handle over a dictionary's entries.
// A cursor is positioned on an entry or unpositioned; stepping past either
// end leaves it unpositioned. Any structural mutation of the dictionary done
// outside the cursor invalidates it: Stale reports this, the positioned
// operations fail on a stale cursor instead of touching recycled entries, and
// First/Last/Seek re-validate it because they reposition from scratch.
type Cursor[K, V any] interface {
	//First positions the cursor on the minimum entry (tree) or the first
	//entry in bucket order (hash table). False iff the dictionary is empty.
	First() bool
	//Last positions the cursor on the maximum/final entry.
	Last() bool
	//Next steps to the following entry, false when stepping past the end.
	Next() bool
	//Prev steps to the preceding entry, false when stepping past the start.
	Prev() bool
	//NextN steps forward n times, false if the entries run out before that.
	NextN(n uint) bool
	//PrevN steps backward n times, false if the entries run out before that.
	PrevN(n uint) bool
	//Seek positions the cursor on the entry with key k, leaving it
	//unpositioned on a miss.
	Seek(k K) bool
	//Key of the current entry; false if the cursor is unpositioned or stale.
	Key() (K, bool)
	//Value slot of the current entry; false if unpositioned or stale.
	Value() (*V, bool)
	//Valid reports whether the cursor is positioned and not stale.
	Valid() bool
	//Stale reports whether the dictionary was structurally mutated outside
	//this cursor since the cursor was last (re)positioned.
	Stale() bool
}
