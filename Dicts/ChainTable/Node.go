package ChainTable

// A node in a bucket chain. The full hash is cached so chain scans and
// regrowth never rehash the key.
type node[K, V any] struct {
	nx   *node[K, V]
	hash uint
	k    K
	v    V
}
