package aadeque

/*****************************************************************************
 * BUFFER MANAGEMENT
 *
 * Everything in this file manipulates the backing buffer directly. The
 * content occupies the physical slots (off+i)&(cap-1) for i in [0, n). When
 * off+n > cap the content "warps": it runs past the end of the buffer and
 * continues at slot 0. Warping is a normal state, not an error, but growth
 * and shrink must relocate parts of the content to keep the logical order
 * intact across a capacity change.
 *****************************************************************************/

func (d *Deque[T]) cap() uint { return uint(len(d.buf)) }

// idx translates a logical index to a physical slot. The bitmask is exact
// because the capacity is always a power of two.
func (d *Deque[T]) idx(i uint) uint { return (d.off + i) & (d.cap() - 1) }

// warped reports whether the content runs past the end of the buffer.
func (d *Deque[T]) warped() bool { return d.off+d.n > d.cap() }

// clearRange zeroes the slots of the logical range [i, i+n), which is one or
// two physical regions depending on whether the range straddles the end of
// the buffer.
func (d *Deque[T]) clearRange(i, n uint) {
	if n == 0 {
		return
	}
	first, last := d.idx(i), d.idx(i+n-1)
	if first > last {
		clear(d.buf[:last+1])
		clear(d.buf[first:])
	} else {
		clear(d.buf[first : first+n])
	}
}

// reserve grows the buffer, if needed, so that at least n more elements fit.
// The capacity doubles until sufficient.
func (d *Deque[T]) reserve(n uint) {
	oldCap := d.cap()
	if oldCap >= d.n+n {
		return
	}
	if oldCap == 0 {
		// Only Destroy leaves the buffer empty; doubling from zero would
		// never terminate.
		panic("aadeque: use of a destroyed Deque")
	}
	newCap := oldCap
	for newCap < d.n+n {
		newCap <<= 1
	}
	buf := d.reallocBuf(oldCap, newCap)
	if d.warped() {
		// The content warped around the old boundary. Move the head part up
		// so it warps around the new boundary instead; this shifts one part
		// rather than de-warping the whole content.
		//
		//	          0      oldCap    newCap
		//	         /        /         /
		//	before: |-->  o--|
		//	after:  |-->     |      o--|
		delta := newCap - oldCap
		copy(buf[d.off+delta:], buf[d.off:oldCap])
		if d.clearRemoved {
			clear(buf[d.off:oldCap])
		}
		d.off += delta
	}
	d.buf = buf
}

// compactTo reduces the capacity to a power of two that is at least mincap.
// The caller guarantees mincap >= d.n. No-op when the capacity is below
// 2*mincap already, or at the configured minimum.
func (d *Deque[T]) compactTo(mincap uint) {
	oldCap := d.cap()
	if oldCap < mincap<<1 || oldCap <= d.minCap {
		return
	}
	newCap := oldCap
	for newCap >= mincap<<1 && newCap > d.minCap {
		newCap >>= 1
	}
	// Relocate the content into the first newCap slots. Exactly one of four
	// disjoint cases applies, and they must be checked in this order.
	switch {
	case d.off+d.n > oldCap:
		// Still warped at the smaller capacity. Move the head part down so
		// it warps around the new boundary.
		//
		//	          0     newCap    oldCap
		//	         /        /         /
		//	before: |-->     |      o--|
		//	after:  |-->  o--|
		delta := oldCap - newCap
		copy(d.buf[d.off-delta:], d.buf[d.off:oldCap])
		d.off -= delta
	case d.off >= newCap:
		// Contiguous, but entirely beyond the new boundary. Move it to
		// slot 0.
		//
		//	          0     newCap    oldCap
		//	         /        /         /
		//	before: |        |  o----> |
		//	after:  |o---->  |
		copy(d.buf, d.buf[d.off:d.off+d.n])
		d.off = 0
	case d.off+d.n > newCap:
		// The tail overflows the new boundary. Wrap the overflow down to
		// slot 0; the content becomes warped where it was not before.
		//
		//	          0     newCap    oldCap
		//	         /        /         /
		//	before: |     o--|-->      |
		//	after:  |-->  o--|
		copy(d.buf, d.buf[newCap:d.off+d.n])
	default:
		// Already fits within the first newCap slots. Nothing to move.
	}
	d.buf = d.reallocBuf(oldCap, newCap)
}

// compactSome halves the capacity when utilization has dropped to 25% or
// less. Called after every deletion. Growing at 100% but shrinking only at
// 25% keeps alternating insert/delete at a capacity boundary from resizing on
// every operation, which is what makes both ends amortized O(1).
func (d *Deque[T]) compactSome() {
	d.compactTo(d.n << 1)
}

// Compact shrinks the capacity as far as the length and the configured
// minimum allow, freeing unused memory. It returns the resulting capacity.
func (d *Deque[T]) Compact() int {
	d.compactTo(d.n)
	return d.Cap()
}

// ContiguousUnordered joins a warped content into one contiguous block
// starting at slot 0 and returns a view over it. The elements may end up in
// the wrong logical order (tail before head): this is intended for handing
// the buffer to array-based algorithms that reorder or don't care about
// order, such as sorts. If the content is not warped it is left where it is
// and the returned view is in logical order.
func (d *Deque[T]) ContiguousUnordered() []T {
	if d.warped() {
		//	               0   end  off   cap
		//	              /   /    /     /
		//	before:      |-->     o-----|
		//	after:       |o------->     |
		copy(d.buf[d.off+d.n-d.cap():], d.buf[d.off:])
		if d.clearRemoved {
			clear(d.buf[d.n:])
		}
		d.off = 0
	}
	return d.buf[d.off : d.off+d.n]
}
