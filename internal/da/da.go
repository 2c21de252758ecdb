// Package da implements the growable-array rules shared by point lists,
// face loops and face lists: capacity starts at InitCap and doubles when
// full, inserts and deletes shift elements in O(n), and nothing is ever
// compacted implicitly.
package da

// InitCap is the capacity given to an empty array on first growth.
const InitCap = 10

// nextCap returns the capacity an array of capacity c grows to.
func nextCap(c int) int {
	if c == 0 {
		return InitCap
	}
	return c * 2
}

// reserve makes room for n more elements, doubling until they fit.
func reserve[T any](s []T, n int) []T {
	need := len(s) + n
	if need <= cap(s) {
		return s
	}
	c := cap(s)
	for c < need {
		c = nextCap(c)
	}
	grown := make([]T, len(s), c)
	copy(grown, s)
	return grown
}

// Append adds v to the end of s.
func Append[T any](s []T, v ...T) []T {
	s = reserve(s, len(v))
	return append(s, v...)
}

// Insert places v at index i, shifting s[i:] one slot right. i may equal
// len(s), which appends.
func Insert[T any](s []T, i int, v T) []T {
	if i < 0 || i > len(s) {
		panic("da: insert index out of range")
	}
	s = reserve(s, 1)
	s = s[:len(s)+1]
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}

// Delete removes s[i], shifting s[i+1:] one slot left.
func Delete[T any](s []T, i int) []T {
	if i < 0 || i >= len(s) {
		panic("da: delete index out of range")
	}
	copy(s[i:], s[i+1:])
	var zero T
	s[len(s)-1] = zero
	return s[:len(s)-1]
}

// Concat appends every element of src after the elements of dst.
func Concat[T any](dst, src []T) []T {
	return Append(dst, src...)
}

// Resize sets the length of s to n. The backing array is reused when it is
// large enough; otherwise it grows to double its capacity, or to n if that
// is still too small. Slots past the old length keep whatever the backing
// array held, so callers can recycle element storage.
func Resize[T any](s []T, n int) []T {
	if n > cap(s) {
		c := nextCap(cap(s))
		if c < n {
			c = n
		}
		grown := make([]T, c)
		copy(grown, s[:cap(s)])
		return grown[:n]
	}
	return s[:n]
}

// CopyInto overwrites dst with the contents of src, growing dst the way
// Resize does.
func CopyInto[T any](dst, src []T) []T {
	dst = Resize(dst, len(src))
	copy(dst, src)
	return dst
}

// Clone returns an independent copy of s with the same length and capacity.
func Clone[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s), cap(s))
	copy(out, s)
	return out
}
