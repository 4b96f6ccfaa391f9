// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plasticity

import "github.com/chewxy/math32"

// DvNMDAParams are the host-side parameters of the weight dependence,
// with weights in the same units as the connection weights.
type DvNMDAParams struct {

	// minimum weight
	WMin float32 `def:"0"`

	// maximum weight
	WMax float32 `def:"1"`

	// learning rate as a fraction of WMax
	Scale float32 `def:"0.1"`

	// boost as a fraction of WMax
	Boost float32 `def:"0"`

	// voltage derivative above which boost applies
	BoostThresh float32 `def:"1000"`

	// whether only causal updates are applied
	Causal bool `def:"true"`
}

func (dp *DvNMDAParams) Defaults() {
	dp.WMin = 0
	dp.WMax = 1
	dp.Scale = 0.1
	dp.Boost = 0
	dp.BoostThresh = 1000
	dp.Causal = true
}

func roundInt(f float32) int32 {
	return int32(math32.Round(f))
}

// Region returns the fixed-point region for a synapse type whose weights
// are multiplied by weightScale when stored.
func (dp *DvNMDAParams) Region(weightScale float32) Region {
	wr := Region{
		MinWeight:   roundInt(dp.WMin * weightScale),
		MaxWeight:   roundInt(dp.WMax * weightScale),
		Scale:       roundInt(dp.Scale * dp.WMax * weightScale),
		Boost:       roundInt(dp.Boost * dp.WMax * weightScale),
		BoostThresh: roundInt(dp.BoostThresh * float32(1<<15)),
	}
	if dp.Causal {
		wr.Causal = 1
	}
	return wr
}
