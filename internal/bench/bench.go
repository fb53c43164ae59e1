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


package bench

import (
	"fmt"
	"io"
	"time"
	"github.com/klauspost/cpuid"
	"github.com/pbnjay/memory"
	"gonum.org/v1/gonum/stat"
	"github.com/mlnoga/pixlight/internal/ops"
	"github.com/mlnoga/pixlight/internal/rgb"
	"github.com/mlnoga/pixlight/internal/stats"
)

// Benchmark configuration
type Config struct {
	Sizes      []int    // Square image edge lengths to test
	Pattern    string   // Sample image pattern
	Operations []string // Operation names to benchmark
	Factor     float64  // Brightness factor
	Iterations int      // Timed iterations per operation
	MaxThreads int      // Threads for the parallel variants, 1=sequential
}

func NewConfigDefault() *Config {
	return &Config{
		Sizes:      []int{128, 256, 512},
		Pattern:    "gradient",
		Operations: []string{"blur", "sharpen", "edge_detect", "brightness"},
		Factor:     1.2,
		Iterations: 5,
		MaxThreads: 1,
	}
}

// Times the configured operations over synthetic sample images and reports
// mean and standard deviation of the wall times, throughput in megapixels
// per second, and input/output pixel statistics
func Run(logWriter io.Writer, cfg *Config) error {
	if cfg.Iterations<1 { return fmt.Errorf("invalid iteration count %d", cfg.Iterations) }
	fmt.Fprintf(logWriter, "CPU: %s, %d physical %d logical cores, AVX2 %t\n",
		cpuid.CPU.BrandName, cpuid.CPU.PhysicalCores, cpuid.CPU.LogicalCores, cpuid.CPU.AVX2())
	fmt.Fprintf(logWriter, "Memory: %d MiB physical\n", memory.TotalMemory()/1024/1024)
	fmt.Fprintf(logWriter, "Using %d threads and %d iterations per operation\n\n", cfg.MaxThreads, cfg.Iterations)

	c:=ops.NewContext(logWriter)
	c.MaxThreads=cfg.MaxThreads

	for _, size:=range cfg.Sizes {
		img, err:=rgb.NewSampleImage(size, size, cfg.Pattern)
		if err!=nil { return err }
		s:=stats.CalcBasicStats(img.Data)
		fmt.Fprintf(logWriter, "%s %s image: %s\n", img.DimensionsToString(), cfg.Pattern, s.String())

		for _, operation:=range cfg.Operations {
			op, err:=ops.NewOperator(operation, cfg.Factor)
			if err!=nil { return err }

			var res *rgb.Image
			times:=make([]float64, cfg.Iterations)
			for i:=0; i<cfg.Iterations; i++ {
				start:=time.Now()
				res, err=op.Apply(img, c)
				if err!=nil { return err }
				times[i]=time.Since(start).Seconds()
			}

			mean, stdDev:=stat.MeanStdDev(times, nil)
			mpixPerSec:=float64(size*size)/mean/1e6
			sOut:=stats.CalcBasicStats(res.Data)
			fmt.Fprintf(logWriter, "  %-11s %8.3f ms +/- %6.3f, %7.1f Mpix/s, output %s\n",
				operation, mean*1000, stdDev*1000, mpixPerSec, sOut.String())
		}
		fmt.Fprintln(logWriter)
	}
	return nil
}
