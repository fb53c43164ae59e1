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
)

// Number of color channels per pixel. Fixed to interleaved RGB
const Channels = 3

// An 8-bit RGB image stored as a dense row-major byte array.
// Pixel (y,x) channel c lives at Data[(y*Width+x)*Channels+c].
// Construct via the New* factories, which validate the shape once;
// all pixel operations then assume a conformant image
type Image struct {
	Width  int     // Image width in pixels
	Height int     // Image height in pixels

	Data   []uint8 // The image data, Width*Height*Channels bytes
}

// Creates a zero-filled RGB image of the given dimensions
func NewImage(width, height int) (*Image, error) {
	if width<=0 || height<=0 {
		return nil, fmt.Errorf("invalid image dimensions %dx%d", width, height)
	}
	return &Image{
		Width:  width,
		Height: height,
		Data:   make([]uint8, width*height*Channels),
	}, nil
}

// Creates an RGB image wrapping the given data. Data is not copied.
// Fails with a descriptive error if the data length does not match
// width*height*Channels, so out-of-bounds reads cannot occur later
func NewImageFromData(width, height int, data []uint8) (*Image, error) {
	if width<=0 || height<=0 {
		return nil, fmt.Errorf("invalid image dimensions %dx%d", width, height)
	}
	if len(data)!=width*height*Channels {
		return nil, fmt.Errorf("data length %d does not match %dx%dx%d image", len(data), height, width, Channels)
	}
	return &Image{
		Width:  width,
		Height: height,
		Data:   data,
	}, nil
}

// Creates a zero-filled RGB image with the same dimensions as the given image.
// The data array is newly allocated
func NewImageFromImage(img *Image) *Image {
	return &Image{
		Width:  img.Width,
		Height: img.Height,
		Data:   make([]uint8, len(img.Data)),
	}
}

// Returns the offset of pixel (y,x) channel c in the data array
func (f *Image) Offset(x, y, c int) int {
	return (y*f.Width+x)*Channels + c
}

// Returns the value of pixel (y,x) channel c
func (f *Image) At(x, y, c int) uint8 {
	return f.Data[(y*f.Width+x)*Channels+c]
}

// Sets the value of pixel (y,x) channel c
func (f *Image) Set(x, y, c int, value uint8) {
	f.Data[(y*f.Width+x)*Channels+c]=value
}

// Returns row y as a slice of the underlying data, all channels interleaved
func (f *Image) Row(y int) []uint8 {
	return f.Data[y*f.Width*Channels : (y+1)*f.Width*Channels]
}

// Creates a deep copy of the image
func (f *Image) Clone() *Image {
	res:=NewImageFromImage(f)
	copy(res.Data, f.Data)
	return res
}

// EqualTo tells whether both images have the same shape and identical pixel values
func (f *Image) EqualTo(other *Image) bool {
	if f.Width!=other.Width || f.Height!=other.Height { return false }
	if len(f.Data)!=len(other.Data) { return false }
	for i, v:=range f.Data {
		if v!=other.Data[i] { return false }
	}
	return true
}

func (f *Image) DimensionsToString() string {
	return fmt.Sprintf("%dx%dx%d", f.Height, f.Width, Channels)
}
