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


package filter

import (
	"github.com/mlnoga/pixlight/internal/rgb"
)

// Row-parallel transform variants. Every output row depends only on the
// immutable input, so sharding the row range across goroutines yields
// bitwise-identical results to the sequential functions.

// Applies a 3x3 Gaussian blur with interior rows sharded across up to
// maxThreads goroutines. Output is identical to GaussianBlur
func GaussianBlurParallel(src *rgb.Image, maxThreads int) *rgb.Image {
	res:=rgb.NewImageFromImage(src)
	copyBorder(res, src)
	forEachRowBatch(1, src.Height-1, maxThreads, func(lo, hi int) {
		convolveRows(res, src, &KernelGaussianBlur, false, lo, hi)
	})
	return res
}

// Applies a 3x3 sharpening filter with interior rows sharded across up to
// maxThreads goroutines. Output is identical to SharpenFilter
func SharpenFilterParallel(src *rgb.Image, maxThreads int) *rgb.Image {
	res:=rgb.NewImageFromImage(src)
	copyBorder(res, src)
	forEachRowBatch(1, src.Height-1, maxThreads, func(lo, hi int) {
		convolveRows(res, src, &KernelSharpen, true, lo, hi)
	})
	return res
}

// Applies Sobel edge detection with interior rows sharded across up to
// maxThreads goroutines. Output is identical to EdgeDetection
func EdgeDetectionParallel(src *rgb.Image, maxThreads int) *rgb.Image {
	res:=rgb.NewImageFromImage(src)
	forEachRowBatch(1, src.Height-1, maxThreads, func(lo, hi int) {
		sobelRows(res, src, lo, hi)
	})
	return res
}

// Scales pixel values by the given factor with rows sharded across up to
// maxThreads goroutines. Output is identical to AdjustBrightness
func AdjustBrightnessParallel(src *rgb.Image, factor float64, maxThreads int) *rgb.Image {
	res:=rgb.NewImageFromImage(src)
	forEachRowBatch(0, src.Height, maxThreads, func(lo, hi int) {
		brightnessRows(res, src, factor, lo, hi)
	})
	return res
}

// Splits the row range [yLo, yHi) into batches and runs fn on them with at most
// maxThreads goroutines in flight, limited by a buffered channel semaphore.
// Runs fn inline for maxThreads<=1 or an empty range
func forEachRowBatch(yLo, yHi, maxThreads int, fn func(lo, hi int)) {
	if yHi<=yLo { return }
	if maxThreads<=1 {
		fn(yLo, yHi)
		return
	}

	// split into 8*maxThreads work packages, limit parallelism to maxThreads
	numBatches:=8*maxThreads
	batchSize :=(yHi-yLo+numBatches-1)/numBatches
	sem       :=make(chan bool, maxThreads)
	for lo:=yLo; lo<yHi; lo+=batchSize {
		hi:=lo+batchSize
		if hi>yHi { hi=yHi }

		sem <- true
		go func(lo, hi int) {
			fn(lo, hi)
			<-sem
		}(lo, hi)
	}

	for i:=0; i<cap(sem); i++ {  // wait for goroutines to finish
		sem <- true
	}
}
