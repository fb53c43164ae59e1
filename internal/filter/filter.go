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
	"math"
	"github.com/mlnoga/pixlight/internal/rgb"
)

// A fixed 3x3 convolution kernel, row-major
type Kernel3x3 [3][3]float64

// Normalized Gaussian blur kernel. Weights are non-negative and sum to 1,
// so convolution results stay within [0,255] for 8-bit inputs
var KernelGaussianBlur=Kernel3x3{
	{1.0/16, 2.0/16, 1.0/16},
	{2.0/16, 4.0/16, 2.0/16},
	{1.0/16, 2.0/16, 1.0/16},
}

// Sharpening kernel. Weights sum to 1 but include negative taps,
// so results must be clamped to [0,255] before truncation
var KernelSharpen=Kernel3x3{
	{ 0, -1,  0},
	{-1,  5, -1},
	{ 0, -1,  0},
}

// Sobel horizontal gradient kernel
var KernelSobelX=Kernel3x3{
	{-1, 0, 1},
	{-2, 0, 2},
	{-1, 0, 1},
}

// Sobel vertical gradient kernel
var KernelSobelY=Kernel3x3{
	{-1, -2, -1},
	{ 0,  0,  0},
	{ 1,  2,  1},
}

// Applies a 3x3 Gaussian blur to the image and returns the result in a
// newly allocated image of the same shape. The input is not modified.
// The one-pixel border is copied over from the input unfiltered
func GaussianBlur(src *rgb.Image) *rgb.Image {
	res:=rgb.NewImageFromImage(src)
	copyBorder(res, src)
	convolveRows(res, src, &KernelGaussianBlur, false, 1, src.Height-1)
	return res
}

// Applies a 3x3 sharpening filter to the image and returns the result in a
// newly allocated image of the same shape. The input is not modified.
// Convolution sums are clamped to [0,255] before truncation.
// The one-pixel border is copied over from the input unfiltered
func SharpenFilter(src *rgb.Image) *rgb.Image {
	res:=rgb.NewImageFromImage(src)
	copyBorder(res, src)
	convolveRows(res, src, &KernelSharpen, true, 1, src.Height-1)
	return res
}

// Applies Sobel edge detection to the image and returns the gradient magnitudes
// in a newly allocated image of the same shape. The input is not modified.
// Unlike blur and sharpen, the one-pixel border is not copied over; it remains
// at its initialized zero value
func EdgeDetection(src *rgb.Image) *rgb.Image {
	res:=rgb.NewImageFromImage(src)
	sobelRows(res, src, 1, src.Height-1)
	return res
}

// Scales every pixel value of the image by the given factor, clamps to [0,255]
// and truncates. Returns the result in a newly allocated image of the same shape.
// Operates on the full frame including borders. The factor is not validated;
// out-of-range products rely entirely on the clamp
func AdjustBrightness(src *rgb.Image, factor float64) *rgb.Image {
	res:=rgb.NewImageFromImage(src)
	brightnessRows(res, src, factor, 0, src.Height)
	return res
}

// Convolves interior pixels of output rows [yLo, yHi) with the given kernel,
// all channels independently. Accumulates in float64 to avoid intermediate
// overflow, optionally clamps the sum to [0,255], and truncates toward zero
// on the final write. Interior columns are 1..width-2; for images narrower
// or shorter than 3 pixels the loops perform zero iterations
func convolveRows(res, src *rgb.Image, kernel *Kernel3x3, clamp bool, yLo, yHi int) {
	width:=src.Width
	for y:=yLo; y<yHi; y++ {
		for x:=1; x<width-1; x++ {
			for c:=0; c<rgb.Channels; c++ {
				sum:=float64(0)
				for ky:=0; ky<3; ky++ {
					off:=((y+ky-1)*width+x-1)*rgb.Channels + c
					sum+=float64(src.Data[off                 ])*kernel[ky][0] +
					     float64(src.Data[off+  rgb.Channels  ])*kernel[ky][1] +
					     float64(src.Data[off+2*rgb.Channels  ])*kernel[ky][2]
				}
				if clamp {
					if sum<0   { sum=0   }
					if sum>255 { sum=255 }
				}
				res.Data[(y*width+x)*rgb.Channels+c]=uint8(sum)
			}
		}
	}
}

// Computes Sobel gradient magnitudes for interior pixels of output rows [yLo, yHi),
// all channels independently. Magnitudes are clamped to a maximum of 255; no lower
// clamp is needed as the magnitude is non-negative by construction
func sobelRows(res, src *rgb.Image, yLo, yHi int) {
	width:=src.Width
	for y:=yLo; y<yHi; y++ {
		for x:=1; x<width-1; x++ {
			for c:=0; c<rgb.Channels; c++ {
				gx, gy:=float64(0), float64(0)
				for ky:=0; ky<3; ky++ {
					off:=((y+ky-1)*width+x-1)*rgb.Channels + c
					v0:=float64(src.Data[off               ])
					v1:=float64(src.Data[off+  rgb.Channels])
					v2:=float64(src.Data[off+2*rgb.Channels])
					gx+=v0*KernelSobelX[ky][0] + v1*KernelSobelX[ky][1] + v2*KernelSobelX[ky][2]
					gy+=v0*KernelSobelY[ky][0] + v1*KernelSobelY[ky][1] + v2*KernelSobelY[ky][2]
				}
				magnitude:=math.Sqrt(gx*gx + gy*gy)
				if magnitude>255 { magnitude=255 }
				res.Data[(y*width+x)*rgb.Channels+c]=uint8(magnitude)
			}
		}
	}
}

// Scales all pixel values of rows [yLo, yHi) by the given factor,
// clamping to [0,255] and truncating toward zero
func brightnessRows(res, src *rgb.Image, factor float64, yLo, yHi int) {
	lower, upper:=yLo*src.Width*rgb.Channels, yHi*src.Width*rgb.Channels
	for i:=lower; i<upper; i++ {
		v:=float64(src.Data[i])*factor
		if v<0   { v=0   }
		if v>255 { v=255 }
		res.Data[i]=uint8(v)
	}
}

// Copies the outermost one-pixel border frame from the input into the output.
// Convolution leaves the border uncomputed as no out-of-bounds neighbor policy
// is defined; blur and sharpen carry the input border over verbatim instead
func copyBorder(res, src *rgb.Image) {
	copy(res.Row(0), src.Row(0))
	copy(res.Row(src.Height-1), src.Row(src.Height-1))
	for y:=0; y<src.Height; y++ {
		o:=y*src.Width*rgb.Channels
		copy(res.Data[o:o+rgb.Channels], src.Data[o:o+rgb.Channels])
		o+=(src.Width-1)*rgb.Channels
		copy(res.Data[o:o+rgb.Channels], src.Data[o:o+rgb.Channels])
	}
}
