package aadeque

import "fmt"

/*****************************************************************************
 * ALLOCATION
 *****************************************************************************/

// Allocator is the seam through which a Deque obtains, resizes and releases
// its backing buffer. Realloc receives the old element count so bookkeeping
// allocators can balance their accounts; Free receives the count for the same
// reason. An Allocator may return nil to signal exhaustion, in which case the
// Deque's out-of-memory handler is invoked.
//
// Implementations must return slices of exactly n elements and must not
// retain the buffers passed to Realloc or Free.
type Allocator[T any] interface {
	Alloc(n uint) []T
	Realloc(buf []T, oldn, n uint) []T
	Free(buf []T, n uint)
}

// heapAllocator is the default Allocator, backed by make. The Go runtime
// aborts on genuine exhaustion before Alloc can observe it, so the nil-return
// path is only ever taken by custom allocators.
type heapAllocator[T any] struct{}

func (heapAllocator[T]) Alloc(n uint) []T { return make([]T, n) }

func (heapAllocator[T]) Realloc(buf []T, oldn, n uint) []T {
	newBuf := make([]T, n)
	copy(newBuf, buf)
	return newBuf
}

func (heapAllocator[T]) Free(buf []T, n uint) {}

func defaultOOM(n uint) {
	panic(fmt.Sprintf("aadeque: cannot allocate buffer of %d elements", n))
}

func (d *Deque[T]) allocBuf(n uint) []T {
	buf := d.alloc.Alloc(n)
	if buf == nil {
		d.onOOM(n)
		panic("aadeque: out-of-memory handler returned")
	}
	return buf
}

func (d *Deque[T]) reallocBuf(oldn, n uint) []T {
	buf := d.alloc.Realloc(d.buf, oldn, n)
	if buf == nil {
		d.onOOM(n)
		panic("aadeque: out-of-memory handler returned")
	}
	return buf
}

/*****************************************************************************
 * OPTIONS
 *****************************************************************************/

// DefaultMinCapacity is the smallest capacity a Deque shrinks to unless
// configured otherwise with WithMinCapacity.
const DefaultMinCapacity = 4

// An Option configures a Deque at construction time. Options are not
// applicable after construction; the configuration is fixed for the lifetime
// of the Deque.
type Option[T any] func(*Deque[T])

// WithMinCapacity sets the minimum capacity. If c is not a power of two, it
// is increased to the next power of two. Values below 1 are treated as 1.
func WithMinCapacity[T any](c int) Option[T] {
	return func(d *Deque[T]) {
		d.minCap = ceilPow2(uint(max(1, c)))
	}
}

// WithAllocator substitutes the allocator used for the backing buffer.
func WithAllocator[T any](a Allocator[T]) Option[T] {
	return func(d *Deque[T]) { d.alloc = a }
}

// WithOOMHandler substitutes the handler called when the allocator returns
// nil. The handler receives the element count that could not be allocated and
// must not return; panicking (the default) or terminating the process are the
// expected behaviors.
func WithOOMHandler[T any](fn func(n uint)) Option[T] {
	return func(d *Deque[T]) { d.onOOM = fn }
}

// WithClearRemoved makes every operation that vacates slots (pops, drops,
// crop, and the relocations performed while resizing) zero them. Enable this
// when T holds references, so removed elements become collectable; without
// it, removal is cheaper but vacated slots keep their old values alive until
// overwritten or until the buffer is reallocated.
func WithClearRemoved[T any]() Option[T] {
	return func(d *Deque[T]) { d.clearRemoved = true }
}
