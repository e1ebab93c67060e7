package addressbook

import "iter"

// An index uses a doubly-linked list and a lookup map into that list to
// implement an insertion-ordered map.
//
// Replacing the value of an existing key keeps the key's original position.
// An index is not safe for concurrent use.
type index[K comparable, V any] struct {
	lookup   map[K]*indexEntry[K, V]
	oldest   *indexEntry[K, V]
	youngest *indexEntry[K, V]
}

type indexEntry[K comparable, V any] struct {
	k       K
	v       V
	older   *indexEntry[K, V]
	younger *indexEntry[K, V]
}

func newIndex[K comparable, V any]() *index[K, V] {
	return &index[K, V]{lookup: make(map[K]*indexEntry[K, V])}
}

func (x *index[K, V]) get(key K) (V, bool) {
	if entry, ok := x.lookup[key]; ok {
		return entry.v, true
	}
	var zero V
	return zero, false
}

// set stores v under key. New keys become the youngest entry.
func (x *index[K, V]) set(key K, v V) {
	if entry, ok := x.lookup[key]; ok {
		entry.v = v
		return
	}

	newest := &indexEntry[K, V]{k: key, v: v, older: x.youngest}
	if x.youngest != nil {
		x.youngest.younger = newest
	} else {
		x.oldest = newest
	}
	x.youngest = newest
	x.lookup[key] = newest
}

func (x *index[K, V]) remove(key K) {
	entry, ok := x.lookup[key]
	if !ok {
		return
	}
	delete(x.lookup, key)

	if entry.older != nil {
		entry.older.younger = entry.younger
	} else {
		x.oldest = entry.younger
	}
	if entry.younger != nil {
		entry.younger.older = entry.older
	} else {
		x.youngest = entry.older
	}
}

func (x *index[K, V]) len() int { return len(x.lookup) }

// all yields entries oldest first.
func (x *index[K, V]) all() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for e := x.oldest; e != nil; e = e.younger {
			if !yield(e.k, e.v) {
				return
			}
		}
	}
}
