// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fixpt

import "math"

// Decay is an unsigned fraction in [0, 1) with 32 fractional bits (u0.32),
// used as a per-timestep multiplicative decay factor.
type Decay uint32

// MaxDecay is the largest decay factor, just under 1.0
const MaxDecay = Decay(math.MaxUint32)

// DecayFromFloat returns the Decay nearest to f, clamped to [0, MaxDecay]
func DecayFromFloat(f float32) Decay {
	if f <= 0 {
		return 0
	}
	v := math.Round(float64(f) * (1 << 32))
	if v >= math.MaxUint32 {
		return MaxDecay
	}
	return Decay(v)
}

// Float returns the decay factor as a float32
func (d Decay) Float() float32 {
	return float32(float64(d) / (1 << 32))
}

// DecayAccum returns x * d, truncated. For d < 1.0 the magnitude of the
// result never exceeds the magnitude of x.
func DecayAccum(x Accum, d Decay) Accum {
	return Accum((int64(x) * int64(d)) >> 32)
}
