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
	"testing"
	"github.com/mlnoga/pixlight/internal/rgb"
)

// Creates a width x height image with all channels set to value, failing the test on error
func newFlatImage(t *testing.T, width, height int, value uint8) *rgb.Image {
	t.Helper()
	img, err:=rgb.NewImage(width, height)
	if err!=nil { t.Fatalf("NewImage(%d,%d)=%s", width, height, err.Error()) }
	for i:=range img.Data { img.Data[i]=value }
	return img
}

// Creates a width x height image with a deterministic non-uniform fill, failing the test on error
func newRampImage(t *testing.T, width, height int) *rgb.Image {
	t.Helper()
	img, err:=rgb.NewImage(width, height)
	if err!=nil { t.Fatalf("NewImage(%d,%d)=%s", width, height, err.Error()) }
	for i:=range img.Data { img.Data[i]=uint8((i*7)%256) }
	return img
}

func TestShapePreservation(t *testing.T) {
	src:=newRampImage(t, 17, 11)
	transforms:=map[string]*rgb.Image{
		"blur":       GaussianBlur(src),
		"sharpen":    SharpenFilter(src),
		"edge":       EdgeDetection(src),
		"brightness": AdjustBrightness(src, 1.2),
	}
	for name, res:=range transforms {
		if res.Width!=src.Width || res.Height!=src.Height || len(res.Data)!=len(src.Data) {
			t.Errorf("%s: output shape %s; want %s", name, res.DimensionsToString(), src.DimensionsToString())
		}
	}
}

func TestInputNotMutated(t *testing.T) {
	src:=newRampImage(t, 9, 9)
	orig:=src.Clone()
	GaussianBlur(src)
	SharpenFilter(src)
	EdgeDetection(src)
	AdjustBrightness(src, 0.5)
	if !src.EqualTo(orig) { t.Errorf("input image was mutated by a transform") }
}

func TestDeterminism(t *testing.T) {
	src:=newRampImage(t, 13, 8)
	if !GaussianBlur(src).EqualTo(GaussianBlur(src))           { t.Errorf("blur is not deterministic") }
	if !SharpenFilter(src).EqualTo(SharpenFilter(src))         { t.Errorf("sharpen is not deterministic") }
	if !EdgeDetection(src).EqualTo(EdgeDetection(src))         { t.Errorf("edge detection is not deterministic") }
	if !AdjustBrightness(src, 1.7).EqualTo(AdjustBrightness(src, 1.7)) { t.Errorf("brightness is not deterministic") }
}

func TestGaussianBlurConstantImage(t *testing.T) {
	src:=newFlatImage(t, 7, 5, 100)
	res:=GaussianBlur(src)
	if !res.EqualTo(src) { t.Errorf("blur of constant image differs from input") }
}

func TestGaussianBlurSinglePixel(t *testing.T) {
	// a single center spike of 16 spreads per the kernel weights; all results are exact sixteenths
	src:=newFlatImage(t, 3, 3, 0)
	src.Set(1,1,0, 16)
	res:=GaussianBlur(src)
	if got:=res.At(1,1,0); got!=4 { t.Errorf("blurred center=%d; want 4", got) }
	if got:=res.At(0,0,0); got!=0 { t.Errorf("blurred border=%d; want 0 (copied from input)", got) }
	for c:=1; c<rgb.Channels; c++ {
		if got:=res.At(1,1,c); got!=0 { t.Errorf("channel %d=%d; want 0, channels must not mix", c, got) }
	}
}

func TestGaussianBlurTruncates(t *testing.T) {
	// one neighbor of 15 contributes 15/16=0.9375 to the center, which must truncate to 0, not round to 1
	src:=newFlatImage(t, 3, 3, 0)
	src.Set(0,0,1, 15)
	res:=GaussianBlur(src)
	if got:=res.At(1,1,1); got!=0 { t.Errorf("blurred center=%d; want 0 (truncation, not rounding)", got) }
}

func TestGaussianBlurBorderCopy(t *testing.T) {
	src:=newRampImage(t, 8, 6)
	res:=GaussianBlur(src)
	checkBorderCopied(t, res, src, "blur")
}

func TestSharpenFlatField(t *testing.T) {
	// kernel taps sum to 1, so sharpening a constant field is the identity
	src:=newFlatImage(t, 5, 5, 100)
	res:=SharpenFilter(src)
	if !res.EqualTo(src) { t.Errorf("sharpen of constant image differs from input") }
}

type sharpenClampTestCase struct {
	Name     string
	Center   uint8
	Neighbor uint8
	Want     uint8
}

func TestSharpenClamp(t *testing.T) {
	tcs:=[]sharpenClampTestCase{
		{"negative sum clamps to zero",  0, 255,   0},  // 5*0   - 4*255 = -1020
		{"overflow sum clamps to 255", 255,   0, 255},  // 5*255 - 0     =  1275
	}
	for _, tc:=range tcs {
		src:=newFlatImage(t, 3, 3, tc.Neighbor)
		for c:=0; c<rgb.Channels; c++ { src.Set(1,1,c, tc.Center) }
		res:=SharpenFilter(src)
		if got:=res.At(1,1,0); got!=tc.Want { t.Errorf("%s: center=%d; want %d", tc.Name, got, tc.Want) }
	}
}

func TestSharpenBorderCopy(t *testing.T) {
	src:=newRampImage(t, 6, 9)
	res:=SharpenFilter(src)
	checkBorderCopied(t, res, src, "sharpen")
}

func TestEdgeDetectionConstantImage(t *testing.T) {
	src:=newFlatImage(t, 6, 6, 200)
	res:=EdgeDetection(src)
	for i, v:=range res.Data {
		if v!=0 { t.Fatalf("edge detection of constant image: data[%d]=%d; want 0", i, v) }
	}
}

func TestEdgeDetectionStep(t *testing.T) {
	// a hard vertical step saturates the horizontal gradient
	src:=newFlatImage(t, 4, 3, 0)
	for y:=0; y<3; y++ {
		for x:=2; x<4; x++ {
			for c:=0; c<rgb.Channels; c++ { src.Set(x,y,c, 255) }
		}
	}
	res:=EdgeDetection(src)
	if got:=res.At(1,1,0); got!=255 { t.Errorf("edge at step=%d; want 255 (clamped magnitude)", got) }
}

func TestEdgeDetectionBorderZero(t *testing.T) {
	src:=newRampImage(t, 8, 7)
	res:=EdgeDetection(src)
	w, h:=res.Width, res.Height
	for x:=0; x<w; x++ {
		for c:=0; c<rgb.Channels; c++ {
			if res.At(x,0,c)!=0   { t.Fatalf("edge output first row at x=%d c=%d is nonzero", x, c) }
			if res.At(x,h-1,c)!=0 { t.Fatalf("edge output last row at x=%d c=%d is nonzero", x, c) }
		}
	}
	for y:=0; y<h; y++ {
		for c:=0; c<rgb.Channels; c++ {
			if res.At(0,y,c)!=0   { t.Fatalf("edge output first column at y=%d c=%d is nonzero", y, c) }
			if res.At(w-1,y,c)!=0 { t.Fatalf("edge output last column at y=%d c=%d is nonzero", y, c) }
		}
	}
}

type brightnessTestCase struct {
	Name   string
	Value  uint8
	Factor float64
	Want   uint8
}

func TestAdjustBrightness(t *testing.T) {
	tcs:=[]brightnessTestCase{
		{"identity",            123,  1.0, 123},
		{"halving truncates",   101,  0.5,  50},
		{"clamps high",         200,  2.0, 255},
		{"scales up",            50,  1.2,  60},
		{"zero factor",         255,  0.0,   0},
		{"negative factor",     200, -1.0,   0},
	}
	for _, tc:=range tcs {
		src:=newFlatImage(t, 4, 4, tc.Value)
		res:=AdjustBrightness(src, tc.Factor)
		for i, v:=range res.Data {
			if v!=tc.Want { t.Errorf("%s: data[%d]=%d; want %d", tc.Name, i, v, tc.Want); break }
		}
	}
}

func TestAdjustBrightnessIdentityExact(t *testing.T) {
	src:=newRampImage(t, 11, 13)
	res:=AdjustBrightness(src, 1.0)
	if !res.EqualTo(src) { t.Errorf("brightness with factor 1.0 is not the identity") }
}

func TestAdjustBrightnessFullFrame(t *testing.T) {
	// brightness operates on borders too, unlike the convolution-based filters
	src:=newFlatImage(t, 1, 1, 200)
	res:=AdjustBrightness(src, 2.0)
	for c:=0; c<rgb.Channels; c++ {
		if got:=res.At(0,0,c); got!=255 { t.Errorf("1x1 brightness c=%d: %d; want 255", c, got) }
	}
}

type degenerateSizeTestCase struct {
	Width  int
	Height int
}

func TestDegenerateSizes(t *testing.T) {
	// images smaller than 3x3 in either dimension have an empty interior:
	// blur and sharpen degrade to a straight copy, edge detection to all zeros
	tcs:=[]degenerateSizeTestCase{ {1,1}, {2,2}, {1,5}, {5,1}, {2,7}, {7,2} }
	for _, tc:=range tcs {
		src:=newRampImage(t, tc.Width, tc.Height)
		if res:=GaussianBlur(src); !res.EqualTo(src) {
			t.Errorf("%dx%d blur: output differs from straight copy", tc.Height, tc.Width)
		}
		if res:=SharpenFilter(src); !res.EqualTo(src) {
			t.Errorf("%dx%d sharpen: output differs from straight copy", tc.Height, tc.Width)
		}
		res:=EdgeDetection(src)
		for i, v:=range res.Data {
			if v!=0 { t.Errorf("%dx%d edge: data[%d]=%d; want 0", tc.Height, tc.Width, i, v); break }
		}
	}
}

// Verifies the one-pixel border frame of res is copied verbatim from src
func checkBorderCopied(t *testing.T, res, src *rgb.Image, name string) {
	t.Helper()
	w, h:=src.Width, src.Height
	for x:=0; x<w; x++ {
		for c:=0; c<rgb.Channels; c++ {
			if res.At(x,0,c)!=src.At(x,0,c)     { t.Fatalf("%s: first row not copied at x=%d c=%d", name, x, c) }
			if res.At(x,h-1,c)!=src.At(x,h-1,c) { t.Fatalf("%s: last row not copied at x=%d c=%d", name, x, c) }
		}
	}
	for y:=0; y<h; y++ {
		for c:=0; c<rgb.Channels; c++ {
			if res.At(0,y,c)!=src.At(0,y,c)     { t.Fatalf("%s: first column not copied at y=%d c=%d", name, y, c) }
			if res.At(w-1,y,c)!=src.At(w-1,y,c) { t.Fatalf("%s: last column not copied at y=%d c=%d", name, y, c) }
		}
	}
}
