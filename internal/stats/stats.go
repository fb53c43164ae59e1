// Copyright (C) 2020 Markus L. Noga
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.


package stats

import (
	"fmt"
	"math"
	"github.com/valyala/fastrand"
)

// Basic statistics on 8-bit pixel data arrays
type BasicStats struct {
	Min    uint8   // Minimum
	Max    uint8   // Maximum
	Mean   float64 // Mean (average)
	StdDev float64 // Standard deviation (norm 2, sigma)
}

// Pretty print basic stats to string
func (s *BasicStats) String() string {
	return fmt.Sprintf("Min %d Max %d Mean %.2f StdDev %.2f", s.Min, s.Max, s.Mean, s.StdDev)
}

// Calculate basic statistics for a pixel data array
func CalcBasicStats(data []uint8) (s *BasicStats) {
	s=&BasicStats{}
	if len(data)==0 { return s }

	s.Min, s.Max=data[0], data[0]
	sum:=int64(0)
	for _, d:=range data {
		if d<s.Min { s.Min=d }
		if d>s.Max { s.Max=d }
		sum+=int64(d)
	}
	s.Mean=float64(sum)/float64(len(data))

	sumSqDiff:=float64(0)
	for _, d:=range data {
		diff:=float64(d)-s.Mean
		sumSqDiff+=diff*diff
	}
	s.StdDev=math.Sqrt(sumSqDiff/float64(len(data)))

	return s
}

// Calculates a fast approximate mean of the (presumably large) data
// by subsampling the given number of values
func FastApproxMean(data []uint8, numSamples int) float64 {
	max:=uint32(len(data))
	rng:=fastrand.RNG{}
	sum:=int64(0)
	for i:=0; i<numSamples; i++ {
		sum+=int64(data[rng.Uint32n(max)])
	}
	return float64(sum)/float64(numSamples)
}

// Calculates a fast approximate standard deviation of the (presumably large) data
// around the given location by subsampling the given number of values
func FastApproxStdDev(data []uint8, location float64, numSamples int) float64 {
	max:=uint32(len(data))
	rng:=fastrand.RNG{}
	sumSqDiff:=float64(0)
	for i:=0; i<numSamples; i++ {
		diff:=float64(data[rng.Uint32n(max)])-location
		sumSqDiff+=diff*diff
	}
	variance:=sumSqDiff/float64(numSamples)
	return math.Sqrt(variance)
}
