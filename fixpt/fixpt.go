// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package fixpt provides the fixed-point numeric substrate used by all of the
per-timestep kernels: a signed s16.15 accumulator type (Accum), an unsigned
u0.32 fractional decay multiplier (Decay), and the 16x16 fixed-point multiply
used by the weight update rules.

All Accum arithmetic is deterministic and saturating: results are clamped to
the int32 range instead of wrapping, so repeated runs over the same inputs are
bit-identical.
*/
package fixpt

import "math"

// FracBits is the number of fractional bits in an Accum
const FracBits = 15

// One is the raw Accum representation of 1.0
const One = 1 << FracBits

// Accum is a signed fixed-point number with 16 integer and 15 fractional bits.
// The raw int32 value is the wire representation in parameter regions.
type Accum int32

const (
	// MaxAccum is the largest representable Accum (just under 65536.0)
	MaxAccum = Accum(math.MaxInt32)

	// MinAccum is the smallest representable Accum (-65536.0)
	MinAccum = Accum(math.MinInt32)

	// Zero is 0.0
	Zero = Accum(0)
)

// sat clamps a 64-bit intermediate to the Accum range
func sat(v int64) Accum {
	switch {
	case v > math.MaxInt32:
		return MaxAccum
	case v < math.MinInt32:
		return MinAccum
	}
	return Accum(v)
}

// FromInt returns the Accum for integer value i, saturating
func FromInt(i int32) Accum {
	return sat(int64(i) << FracBits)
}

// FromFloat returns the Accum nearest to f, saturating
func FromFloat(f float32) Accum {
	return sat(int64(math.Round(float64(f) * One)))
}

// Float returns the value as a float32
func (a Accum) Float() float32 {
	return float32(float64(a) / One)
}

// Raw returns the wire representation
func (a Accum) Raw() int32 {
	return int32(a)
}

// Add returns a + b, saturating
func Add(a, b Accum) Accum {
	return sat(int64(a) + int64(b))
}

// Sub returns a - b, saturating
func Sub(a, b Accum) Accum {
	return sat(int64(a) - int64(b))
}

// Mul returns a * b, truncating the 15 discarded fraction bits toward
// negative infinity and saturating the result.
func Mul(a, b Accum) Accum {
	return sat((int64(a) * int64(b)) >> FracBits)
}

// Half returns a / 2 by arithmetic shift
func Half(a Accum) Accum {
	return a >> 1
}

// Neg returns -a, saturating
func Neg(a Accum) Accum {
	return sat(-int64(a))
}

// Min returns the smaller of a and b
func Min(a, b Accum) Accum {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of a and b
func Max(a, b Accum) Accum {
	if a > b {
		return a
	}
	return b
}

// ChannelMax is the value a synapse channel current clamps to when the
// two-term product sum overflows.
var ChannelMax = FromInt(0xffff)

// MulAcc returns g1*r1 + g2*r2, with the sum of the products taken
// exactly before truncation to Accum precision, so equal and opposite
// terms cancel to zero. If the sum is negative or does not fit the
// positive Accum range, it returns ChannelMax and true: a negative sum is
// treated as an overflow artifact, so channel currents are never negative.
func MulAcc(g1, r1, g2, r2 Accum) (Accum, bool) {
	sum := (int64(g1)*int64(r1) + int64(g2)*int64(r2)) >> FracBits
	if sum < 0 || sum > math.MaxInt32 {
		return ChannelMax, true
	}
	return Accum(sum), false
}
