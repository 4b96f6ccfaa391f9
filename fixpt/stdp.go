// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fixpt

// STDPFixedPoint is the number of fractional bits used by weight update
// arithmetic on 16-bit quantities.
const STDPFixedPoint = 11

// STDPOne is 1.0 in STDP fixed point
const STDPOne = 1 << STDPFixedPoint

// Mul16 multiplies the low signed 16 bits of a and b and shifts the 32-bit
// product right by fp bits.
func Mul16(a, b int32, fp uint) int32 {
	return (int32(int16(a)) * int32(int16(b))) >> fp
}

// STDPMul is Mul16 at STDPFixedPoint
func STDPMul(a, b int32) int32 {
	return Mul16(a, b, STDPFixedPoint)
}

// WeightToInput converts a ring-buffer weight sum to an Accum input,
// given the per-synapse-type left shift that aligns weight fixed point
// with the accumulator. The result saturates at MaxAccum.
func WeightToInput(w uint32, leftShift uint) Accum {
	return sat(int64(w) << leftShift)
}
