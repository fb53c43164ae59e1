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


package rgb

import (
	"fmt"
	"strconv"
	"strings"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/valyala/fastrand"
)

// Synthesizes a sample RGB image of the given dimensions. Supported patterns are
// "gradient" (red horizontal ramp, green vertical ramp, blue diagonal wrap),
// "hue" (HSV hue wheel across the diagonal), "noise" (uniform random values)
// and "flat:v" (all channels set to the constant v in [0,255])
func NewSampleImage(width, height int, pattern string) (*Image, error) {
	img, err:=NewImage(width, height)
	if err!=nil { return nil, err }

	switch {
	case pattern=="gradient":
		synthGradient(img)
	case pattern=="hue":
		synthHueWheel(img)
	case pattern=="noise":
		synthNoise(img)
	case strings.HasPrefix(pattern, "flat:"):
		v, err:=strconv.ParseUint(strings.TrimPrefix(pattern, "flat:"), 10, 8)
		if err!=nil { return nil, fmt.Errorf("invalid flat pattern value in %q: %s", pattern, err.Error()) }
		synthFlat(img, uint8(v))
	default:
		return nil, fmt.Errorf("unknown sample image pattern %q", pattern)
	}
	return img, nil
}

// Fills the image with the demonstration gradient: red is a horizontal ramp,
// green a vertical ramp, and blue a diagonal pattern wrapping at the image width
func synthGradient(img *Image) {
	for y:=0; y<img.Height; y++ {
		row:=img.Row(y)
		g:=uint8(255*y/img.Height)
		for x:=0; x<img.Width; x++ {
			row[x*Channels  ]=uint8(255*x/img.Width)
			row[x*Channels+1]=g
			row[x*Channels+2]=uint8(255*((x+y)%img.Width)/img.Width)
		}
	}
}

// Fills the image with a fully saturated HSV hue wheel sweeping along the diagonal
func synthHueWheel(img *Image) {
	diag:=float64(img.Width+img.Height)
	for y:=0; y<img.Height; y++ {
		row:=img.Row(y)
		for x:=0; x<img.Width; x++ {
			hue:=360.0*float64(x+y)/diag
			r, g, b:=colorful.Hsv(hue, 1, 1).RGB255()
			row[x*Channels  ]=r
			row[x*Channels+1]=g
			row[x*Channels+2]=b
		}
	}
}

// Fills the image with uniform random noise
func synthNoise(img *Image) {
	rng:=fastrand.RNG{}
	for i:=range img.Data {
		img.Data[i]=uint8(rng.Uint32n(256))
	}
}

// Fills all channels of the image with the given constant value
func synthFlat(img *Image, value uint8) {
	for i:=range img.Data {
		img.Data[i]=value
	}
}
