// Package aadeque provides a generic double-ended queue on a circular buffer
// whose capacity is always a power of two, so that logical indexes translate
// to buffer slots with a single bitmask. The buffer grows by doubling and
// shrinks automatically when utilization drops to 25% or less, which keeps
// pushes and pops at both ends amortized O(1) even under adversarial
// alternating insert/delete patterns, while keeping the allocation compact.
package aadeque

import (
	"errors"
	"fmt"
	"math/bits"
	"slices"
)

// Deque is a double-ended queue that can be used for either LIFO or FIFO
// ordering, or something in between. It also supports random access, bulk
// deletion, concatenation and slicing.
//
// To create a Deque you must use one of the constructors, New(), NewLen(n),
// or FromSlice(s). nil Deques panic when called, except for Len. Creating a
// Deque in the following way is wrong:
//
//	var d aadeque.Deque[int] // wrong
//
// Only the element buffer is ever reallocated; the Deque struct itself is
// stable, so a *Deque handle stays valid across every operation, and any
// struct wrapping a Deque carries its extra fields across reallocations for
// free.
//
// A Deque has a single logical owner. It is not safe for concurrent use;
// callers sharing one across goroutines must serialize access externally.
type Deque[T any] struct {
	buf []T  // backing array; len(buf) is the capacity, a power of two
	off uint // slot of the first logical element, in [0, cap)
	n   uint // number of logical elements

	minCap       uint
	clearRemoved bool
	alloc        Allocator[T]
	onOOM        func(n uint)
}

/*****************************************************************************
 * CONSTRUCTORS
 *****************************************************************************/

// New creates an empty Deque at the minimum capacity.
func New[T any](opts ...Option[T]) *Deque[T] {
	d, _ := NewLen[T](0, opts...)
	return d
}

// NewLen creates a Deque holding length zero-valued elements, with capacity
// the next power of two that fits both length and the minimum capacity.
// Returns an error if passed a negative length.
func NewLen[T any](length int, opts ...Option[T]) (*Deque[T], error) {
	if length < 0 {
		return nil, ErrNegativeLength
	}
	d := &Deque[T]{
		minCap: DefaultMinCapacity,
		alloc:  heapAllocator[T]{},
		onOOM:  defaultOOM,
	}
	for _, opt := range opts {
		opt(d)
	}
	c := d.minCap
	for c < uint(length) {
		c <<= 1
	}
	d.buf = d.allocBuf(c)
	d.n = uint(length)
	return d, nil
}

// FromSlice creates a Deque with a copy of the slice's elements. Memory is
// not shared with the slice.
func FromSlice[T any](s []T, opts ...Option[T]) *Deque[T] {
	d, _ := NewLen[T](len(s), opts...)
	copy(d.buf, s)
	return d
}

// Destroy releases the backing buffer through the allocator. The Deque must
// not be used afterwards. Calling Destroy is only required when a bookkeeping
// allocator needs to see the buffer go; with the default allocator the
// garbage collector reclaims everything regardless.
func (d *Deque[T]) Destroy() {
	d.alloc.Free(d.buf, d.cap())
	d.buf = nil
	d.off, d.n = 0, 0
}

/*****************************************************************************
 * DEQUE API
 *****************************************************************************/

// Len returns the number of elements in the Deque or 0 if nil.
func (d *Deque[T]) Len() int {
	if d == nil {
		return 0
	}
	return int(d.n)
}

// Cap returns the current Deque capacity.
func (d *Deque[T]) Cap() int { return len(d.buf) }

// Empty returns whether the Deque is empty.
func (d *Deque[T]) Empty() bool { return d.n == 0 }

// Full returns whether the Deque is full. Pushing to a full Deque
// reallocates.
func (d *Deque[T]) Full() bool { return d.n == d.cap() }

// At returns the element at the i-th logical position. Panics if out of
// bounds.
func (d *Deque[T]) At(i int) T {
	d.checkBounds(i)
	return d.AtUnsafe(i)
}

// AtUnsafe returns the element at the i-th logical position. It never
// panics, but worse: silently returns garbage if i is out of bounds.
func (d *Deque[T]) AtUnsafe(i int) T {
	return d.buf[d.idx(uint(i))]
}

// Set overwrites the element at the i-th logical position. Panics if out of
// bounds.
func (d *Deque[T]) Set(i int, v T) {
	d.checkBounds(i)
	d.SetUnsafe(i, v)
}

// SetUnsafe overwrites the element at the i-th logical position. It never
// panics, but overwrites some other element if i is out of bounds.
func (d *Deque[T]) SetUnsafe(i int, v T) {
	d.buf[d.idx(uint(i))] = v
}

// PeekFront returns the first element in the Deque. If the Deque is empty,
// it returns false.
func (d *Deque[T]) PeekFront() (v T, ok bool) {
	if d.n == 0 {
		return
	}
	return d.buf[d.off], true
}

// PeekBack returns the last element in the Deque. If the Deque is empty, it
// returns false.
func (d *Deque[T]) PeekBack() (v T, ok bool) {
	if d.n == 0 {
		return
	}
	return d.buf[d.idx(d.n-1)], true
}

// PushBack appends its arguments at the back of the Deque. The last argument
// becomes the new back. Use PushBack with PopFront for FIFO ordering, or
// with PopBack for LIFO ordering.
//
// PushBack reallocates at most once no matter how many arguments, so pushing
// several elements at once is more efficient than one at a time.
func (d *Deque[T]) PushBack(vals ...T) {
	d.reserve(uint(len(vals)))
	for i, v := range vals {
		d.buf[d.idx(d.n+uint(i))] = v
	}
	d.n += uint(len(vals))
}

// PushFront prepends its arguments at the front of the Deque. The last
// argument becomes the new front.
//
// PushFront reallocates at most once no matter how many arguments, so
// pushing several elements at once is more efficient than one at a time.
func (d *Deque[T]) PushFront(vals ...T) {
	n := uint(len(vals))
	d.reserve(n)
	mask := d.cap() - 1
	base := d.off + d.cap() - 1
	for i, v := range vals {
		d.buf[(base-uint(i))&mask] = v
	}
	d.off = (d.off + d.cap() - n) & mask
	d.n += n
}

// PopBack removes the last element in the Deque and returns it. If the Deque
// is empty, it returns false. The capacity shrinks automatically when
// utilization drops to 25% or less.
func (d *Deque[T]) PopBack() (v T, ok bool) {
	if d.n == 0 {
		return
	}
	v = d.buf[d.idx(d.n-1)]
	d.DropBack(1)
	return v, true
}

// PopFront removes the first element in the Deque and returns it. If the
// Deque is empty, it returns false. The capacity shrinks automatically when
// utilization drops to 25% or less.
func (d *Deque[T]) PopFront() (v T, ok bool) {
	if d.n == 0 {
		return
	}
	v = d.buf[d.off]
	d.DropFront(1)
	return v, true
}

// DropFront removes the n first elements of the Deque. If the Deque has
// fewer than n elements, it drops every element. If n is negative, no
// element is dropped. Vacated slots are zeroed only under the ClearRemoved
// policy.
func (d *Deque[T]) DropFront(n int) {
	if n <= 0 {
		return
	}
	un := min(uint(n), d.n)
	if d.clearRemoved {
		d.clearRange(0, un)
	}
	d.off = d.idx(un)
	d.n -= un
	d.compactSome()
}

// DropBack removes the n last elements of the Deque. If the Deque has fewer
// than n elements, it drops every element. If n is negative, no element is
// dropped. Vacated slots are zeroed only under the ClearRemoved policy.
func (d *Deque[T]) DropBack(n int) {
	if n <= 0 {
		return
	}
	un := min(uint(n), d.n)
	if d.clearRemoved {
		d.clearRange(d.n-un, un)
	}
	d.n -= un
	d.compactSome()
}

// Crop retains only the logical sub-range [i, i+n) and deletes everything
// outside it. Panics if the range is out of bounds. Vacated slots are zeroed
// only under the ClearRemoved policy.
func (d *Deque[T]) Crop(i, n int) {
	d.checkRange(i, n)
	ui, un := uint(i), uint(n)
	if d.clearRemoved {
		d.clearRange(ui+un, d.n-(ui+un))
		d.clearRange(0, ui)
	}
	d.off = d.idx(ui)
	d.n = un
	d.compactSome()
}

// GrowBack extends the Deque with n elements of unspecified contents after
// the last element, reallocating if needed. Nothing happens if n is not
// positive. Use Set to give the new elements values.
func (d *Deque[T]) GrowBack(n int) {
	if n <= 0 {
		return
	}
	d.reserve(uint(n))
	d.n += uint(n)
}

// GrowFront extends the Deque with n elements of unspecified contents before
// the first element, reallocating if needed. Nothing happens if n is not
// positive. Use Set to give the new elements values.
func (d *Deque[T]) GrowFront(n int) {
	if n <= 0 {
		return
	}
	d.reserve(uint(n))
	d.off = (d.off + d.cap() - uint(n)) & (d.cap() - 1)
	d.n += uint(n)
}

// Append copies every element of other onto the back of d. other is not
// modified. Appending a Deque to itself duplicates its contents.
func (d *Deque[T]) Append(other *Deque[T]) {
	n := other.Len()
	d.GrowBack(n)
	base := d.n - uint(n)
	for i := 0; i < n; i++ {
		d.buf[d.idx(base+uint(i))] = other.AtUnsafe(i)
	}
}

// Prepend copies every element of other, in order, before the front of d.
// other is not modified. Prepending a Deque to itself duplicates its
// contents.
func (d *Deque[T]) Prepend(other *Deque[T]) {
	n := other.Len()
	src := 0
	if other == d {
		// Growing shifts our own old elements n logical positions up.
		src = n
	}
	d.GrowFront(n)
	for i := 0; i < n; i++ {
		d.buf[d.idx(uint(i))] = other.AtUnsafe(src + i)
	}
}

// Slice returns a new independent Deque holding a copy of the logical
// sub-range [i, i+n), configured like d. Panics if the range is out of
// bounds. Mutating the copy does not affect d and vice versa.
func (d *Deque[T]) Slice(i, n int) *Deque[T] {
	d.checkRange(i, n)
	out := &Deque[T]{
		minCap:       d.minCap,
		clearRemoved: d.clearRemoved,
		alloc:        d.alloc,
		onOOM:        d.onOOM,
	}
	c := out.minCap
	for c < uint(n) {
		c <<= 1
	}
	out.buf = out.allocBuf(c)
	out.n = uint(n)
	d.CopySlice(i, out.buf[:n])
	return out
}

// Reserve ensures there's enough capacity to add at least n more elements to
// the Deque, reallocating if necessary. It returns an error if n is
// negative.
func (d *Deque[T]) Reserve(n int) error {
	if n < 0 {
		return ErrNegativeCount
	}
	d.reserve(uint(n))
	return nil
}

/*****************************************************************************
 * SLICE API
 *****************************************************************************/

// slices returns the content as one or two slices of the backing buffer, in
// logical order. The second slice is nil unless the content warps.
func (d *Deque[T]) slices() (a, b []T) {
	if d == nil || d.n == 0 {
		return nil, nil
	}
	if !d.warped() {
		return d.buf[d.off : d.off+d.n], nil
	}
	return d.buf[d.off:], d.buf[:d.off+d.n-d.cap()]
}

// CopySlice has the same semantics as the copy() built-in function. It
// copies elements of the Deque starting at the logical index start, until
// the buffer is full or the Deque is over, whichever happens first, and
// returns the number of elements copied.
func (d *Deque[T]) CopySlice(start int, buf []T) int {
	s1, s2 := d.slices()
	l1 := len(s1)
	if start < l1 {
		copied := copy(buf, s1[start:])
		if start+len(buf) > l1 {
			copied += copy(buf[l1-start:], s2)
		}
		return copied
	}
	return copy(buf, s2[start-l1:])
}

// MakeSliceCopy allocates a slice to hold every Deque element and copies
// them. Memory is not shared with the Deque.
func (d *Deque[T]) MakeSliceCopy() []T {
	s := make([]T, d.Len())
	d.CopySlice(0, s)
	return s
}

// Equal returns whether both Deques have the same length and the same
// elements in the same order. Two nil Deques are equal, but an empty Deque
// and nil are not. This must not be a method, otherwise Deque would be
// constrained to comparable elements.
func Equal[T comparable](d1, d2 *Deque[T]) bool {
	if d1 == nil || d2 == nil {
		return d1 == d2
	}
	if d1.n != d2.n {
		return false
	}
	for i := uint(0); i < d1.n; i++ {
		if d1.buf[d1.idx(i)] != d2.buf[d2.idx(i)] {
			return false
		}
	}
	return true
}

// EqualSlice returns whether the Deque holds the same elements as the slice,
// in the same order. A nil Deque equals an empty slice. This must not be a
// method, otherwise Deque would be constrained to comparable elements.
func EqualSlice[T comparable](d *Deque[T], s []T) bool {
	if d.Len() != len(s) {
		return false
	}
	a, b := d.slices()
	return slices.Equal(a, s[:len(a)]) && slices.Equal(b, s[len(a):])
}

/*****************************************************************************
 * SENTINEL ERRORS
 *****************************************************************************/

// ErrNegativeLength is returned when trying to create a Deque with a
// negative length.
var ErrNegativeLength = errors.New("length cannot be negative")

// ErrNegativeCount is returned when trying to reserve room for a negative
// number of elements.
var ErrNegativeCount = errors.New("count cannot be negative")

/*****************************************************************************
 * HELPERS
 *****************************************************************************/

func ceilPow2(x uint) uint {
	// For our purposes, 0 is invalid.
	if x == 0 {
		return 1
	}
	const arch = bits.UintSize
	msb := arch - 1 - bits.LeadingZeros(x)
	var result uint = 1 << msb
	if result < x {
		result <<= 1
	}
	return result
}

func (d *Deque[T]) checkBounds(i int) {
	if i < 0 || i >= d.Len() {
		panic(fmt.Sprintf("aadeque: index %d out of bounds with length %d", i, d.Len()))
	}
}

func (d *Deque[T]) checkRange(i, n int) {
	if i < 0 || n < 0 || i+n > d.Len() {
		panic(fmt.Sprintf("aadeque: range [%d, %d) out of bounds with length %d", i, i+n, d.Len()))
	}
}
