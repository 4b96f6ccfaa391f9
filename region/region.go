// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package region provides typed access to the binary parameter regions that
configure a core. Regions are sequences of little-endian 32-bit words;
variable-size blocks are padded to a whole number of words.

Reader keeps a sticky error: after the first out-of-bounds access every read
returns zero, and Err reports the failure, so a structured record can be
decoded field by field and checked once.
*/
package region

import (
	"encoding/binary"

	"github.com/emer/spikecore/fault"
	"github.com/emer/spikecore/fixpt"
)

// WordBytes is the size of a region word
const WordBytes = 4

// PaddedWords returns the number of whole words needed to hold n bytes
func PaddedWords(n int) int {
	return (n + WordBytes - 1) / WordBytes
}

// PaddedBytes returns n rounded up to a whole number of words
func PaddedBytes(n int) int {
	return PaddedWords(n) * WordBytes
}

var order = binary.LittleEndian

// Codec is a fixed-size record stored in a region
type Codec interface {

	// Size is the record size in bytes, before padding
	Size() int

	// Decode reads the record from r
	Decode(r *Reader)

	// Encode appends the record to w
	Encode(w *Writer)
}

// Reader is a bounds-checked cursor over a region
type Reader struct {
	buf []byte
	pos int
	err error
}

// NewReader returns a Reader at the start of buf
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Err returns the first error encountered, if any
func (r *Reader) Err() error { return r.err }

// Pos returns the current byte offset
func (r *Reader) Pos() int { return r.pos }

// Len returns the number of unread bytes
func (r *Reader) Len() int { return len(r.buf) - r.pos }

// take returns the next n bytes or nil, recording a Corrupt fault
func (r *Reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || r.pos+n > len(r.buf) {
		r.err = fault.New(fault.Corrupt, "region.Read", "need %d bytes at offset %d, region is %d bytes", n, r.pos, len(r.buf))
		return nil
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b
}

// Uint32 reads one word
func (r *Reader) Uint32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return order.Uint32(b)
}

// Int32 reads one signed word
func (r *Reader) Int32() int32 { return int32(r.Uint32()) }

// Uint16 reads a half word
func (r *Reader) Uint16() uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}
	return order.Uint16(b)
}

// Accum reads an s16.15 word
func (r *Reader) Accum() fixpt.Accum { return fixpt.Accum(r.Int32()) }

// Decay reads a u0.32 word
func (r *Reader) Decay() fixpt.Decay { return fixpt.Decay(r.Uint32()) }

// Words reads n words into a new slice
func (r *Reader) Words(n int) []uint32 {
	b := r.take(n * 4)
	if b == nil {
		return nil
	}
	ws := make([]uint32, n)
	for i := range ws {
		ws[i] = order.Uint32(b[i*4:])
	}
	return ws
}

// Bytes returns the next n bytes, aliasing the region
func (r *Reader) Bytes(n int) []byte { return r.take(n) }

// Skip advances n bytes
func (r *Reader) Skip(n int) { r.take(n) }

// Align advances to the next word boundary
func (r *Reader) Align() {
	if pad := PaddedBytes(r.pos) - r.pos; pad > 0 {
		r.take(pad)
	}
}

// Writer appends words to a growing region
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer with capacity for n bytes
func NewWriter(n int) *Writer {
	return &Writer{buf: make([]byte, 0, n)}
}

// Bytes returns the region written so far
func (w *Writer) Bytes() []byte { return w.buf }

// Len returns the number of bytes written
func (w *Writer) Len() int { return len(w.buf) }

func (w *Writer) PutUint32(v uint32) { w.buf = order.AppendUint32(w.buf, v) }
func (w *Writer) PutInt32(v int32)   { w.PutUint32(uint32(v)) }
func (w *Writer) PutUint16(v uint16) { w.buf = order.AppendUint16(w.buf, v) }

func (w *Writer) PutAccum(v fixpt.Accum) { w.PutInt32(int32(v)) }
func (w *Writer) PutDecay(v fixpt.Decay) { w.PutUint32(uint32(v)) }

// PutWords appends all of ws
func (w *Writer) PutWords(ws []uint32) {
	for _, v := range ws {
		w.PutUint32(v)
	}
}

// PutBytes appends raw bytes
func (w *Writer) PutBytes(b []byte) { w.buf = append(w.buf, b...) }

// Align pads with zero bytes to the next word boundary
func (w *Writer) Align() {
	for len(w.buf)%WordBytes != 0 {
		w.buf = append(w.buf, 0)
	}
}

// Words converts a word-aligned byte region to words
func Words(b []byte) []uint32 {
	ws := make([]uint32, len(b)/WordBytes)
	for i := range ws {
		ws[i] = order.Uint32(b[i*4:])
	}
	return ws
}

// FromWords converts words to a byte region
func FromWords(ws []uint32) []byte {
	w := NewWriter(len(ws) * WordBytes)
	w.PutWords(ws)
	return w.Bytes()
}
