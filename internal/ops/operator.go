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


package ops

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"github.com/pbnjay/memory"
	"github.com/mlnoga/pixlight/internal/filter"
	"github.com/mlnoga/pixlight/internal/rgb"
)

// An execution context for operators
type Context struct {
	Log        io.Writer
	MemoryMB   int          // memory.TotalMemory()/1024/1024
	MaxThreads int          `json:"maxThreads"`
}

func NewContext(log io.Writer) *Context {
	memoryMB:=int(memory.TotalMemory()/1024/1024)
	return &Context{
		Log        : log,
		MemoryMB   : memoryMB,
		MaxThreads : runtime.GOMAXPROCS(0),
	}
}

// An image processing operator: takes an RGB image and produces a new one,
// or an error. Operators never modify their input
type Operator interface {
	GetType() string
	IsActive() bool
	Apply(f *rgb.Image, c *Context) (fOut *rgb.Image, err error)
}

// Base type for operators, including type information for JSON serializing/deserializing
type OpBase struct {
	Type   string `json:"type"`
	Active bool   `json:"active"`
}

func (op *OpBase) GetType() string { return op.Type }
func (op *OpBase) IsActive() bool  { return op.Active }

// Factory method for operators. For JSON serializing/deserializing
type OperatorFactory func() Operator

// Mapping from operator type strings to factory method for the type
var operatorFactories=map[string]OperatorFactory{}

// Returns the operator factory for a given type string
func GetOperatorFactory(t string) OperatorFactory {
	return operatorFactories[t]
}

// Registers a given type string for a given type of Operator, identified via an exemplar generator
func SetOperatorFactory(f OperatorFactory) {
	op:=f()
	t:=op.GetType()
	if GetOperatorFactory(t)!=nil { panic(fmt.Sprintf("error: re-registering operator key %s\n", t)) }
	operatorFactories[t]=f
}

// Creates the operator for the given operation name, using the given brightness
// factor where applicable. Fails with a descriptive error for unknown names
func NewOperator(operation string, factor float64) (Operator, error) {
	switch operation {
	case "blur":
		return NewOpGaussianBlur(), nil
	case "sharpen":
		return NewOpSharpen(), nil
	case "edge_detect":
		return NewOpEdgeDetect(), nil
	case "brightness":
		return NewOpBrightness(factor), nil
	}
	return nil, fmt.Errorf("unknown operation: %s", operation)
}


// Applies a 3x3 Gaussian blur
type OpGaussianBlur struct {
	OpBase
}

func init() { SetOperatorFactory(func() Operator { return NewOpGaussianBlur() }) } // register the operator for JSON decoding

func NewOpGaussianBlur() *OpGaussianBlur {
	return &OpGaussianBlur{OpBase{Type: "blur", Active: true}}
}

func (op *OpGaussianBlur) Apply(f *rgb.Image, c *Context) (*rgb.Image, error) {
	if !op.Active { return f, nil }
	if c.MaxThreads>1 { return filter.GaussianBlurParallel(f, c.MaxThreads), nil }
	return filter.GaussianBlur(f), nil
}


// Applies a 3x3 sharpening filter
type OpSharpen struct {
	OpBase
}

func init() { SetOperatorFactory(func() Operator { return NewOpSharpen() }) } // register the operator for JSON decoding

func NewOpSharpen() *OpSharpen {
	return &OpSharpen{OpBase{Type: "sharpen", Active: true}}
}

func (op *OpSharpen) Apply(f *rgb.Image, c *Context) (*rgb.Image, error) {
	if !op.Active { return f, nil }
	if c.MaxThreads>1 { return filter.SharpenFilterParallel(f, c.MaxThreads), nil }
	return filter.SharpenFilter(f), nil
}


// Applies Sobel edge detection
type OpEdgeDetect struct {
	OpBase
}

func init() { SetOperatorFactory(func() Operator { return NewOpEdgeDetect() }) } // register the operator for JSON decoding

func NewOpEdgeDetect() *OpEdgeDetect {
	return &OpEdgeDetect{OpBase{Type: "edge_detect", Active: true}}
}

func (op *OpEdgeDetect) Apply(f *rgb.Image, c *Context) (*rgb.Image, error) {
	if !op.Active { return f, nil }
	if c.MaxThreads>1 { return filter.EdgeDetectionParallel(f, c.MaxThreads), nil }
	return filter.EdgeDetection(f), nil
}


// Scales pixel brightness by a constant factor
type OpBrightness struct {
	OpBase
	Factor float64 `json:"factor"`
}

func init() { SetOperatorFactory(func() Operator { return NewOpBrightnessDefault() }) } // register the operator for JSON decoding

func NewOpBrightnessDefault() *OpBrightness { return NewOpBrightness(1.2) }

func NewOpBrightness(factor float64) *OpBrightness {
	return &OpBrightness{
		OpBase: OpBase{Type: "brightness", Active: true},
		Factor: factor,
	}
}

func (op *OpBrightness) Apply(f *rgb.Image, c *Context) (*rgb.Image, error) {
	if !op.Active { return f, nil }
	if c.MaxThreads>1 { return filter.AdjustBrightnessParallel(f, op.Factor, c.MaxThreads), nil }
	return filter.AdjustBrightness(f, op.Factor), nil
}


// Applies a list of operators in sequence
type OpSequence struct {
	OpBase
	Steps    []Operator        `json:"-"`
	StepsRaw []json.RawMessage `json:"steps"`
}

func init() { SetOperatorFactory(func() Operator { return NewOpSequence() }) } // register the operator for JSON decoding

func NewOpSequence(steps ...Operator) *OpSequence {
	return &OpSequence{
		OpBase: OpBase{Type: "seq", Active: true},
		Steps:  steps,
	}
}

func (op *OpSequence) Apply(f *rgb.Image, c *Context) (*rgb.Image, error) {
	if !op.Active { return f, nil }
	var err error
	for _, step:=range op.Steps {
		if f, err=step.Apply(f, c); err!=nil { return nil, err }
	}
	return f, nil
}

// Marshals the sequence, materializing the typed steps into raw JSON
func (op *OpSequence) MarshalJSON() ([]byte, error) {
	op.StepsRaw=make([]json.RawMessage, len(op.Steps))
	for i, step:=range op.Steps {
		m, err:=json.Marshal(step)
		if err!=nil { return nil, err }
		op.StepsRaw[i]=json.RawMessage(m)
	}
	type alias OpSequence  // break marshaling recursion
	return json.Marshal((*alias)(op))
}

// Unmarshals the sequence, reconstructing typed steps from raw JSON via the operator factories
func (op *OpSequence) UnmarshalJSON(data []byte) error {
	type alias OpSequence  // break unmarshaling recursion
	if err:=json.Unmarshal(data, (*alias)(op)); err!=nil { return err }

	op.Steps=make([]Operator, len(op.StepsRaw))
	for i, raw:=range op.StepsRaw {
		var base OpBase
		if err:=json.Unmarshal(raw, &base); err!=nil { return err }
		factory:=GetOperatorFactory(base.Type)
		if factory==nil { return fmt.Errorf("unknown operation: %s", base.Type) }
		step:=factory()
		if err:=json.Unmarshal(raw, step); err!=nil { return err }
		op.Steps[i]=step
	}
	return nil
}
