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

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/pprof"
	"strconv"
	"strings"
	"time"
	pl "github.com/mlnoga/pixlight/internal"
	"github.com/mlnoga/pixlight/internal/bench"
	"github.com/mlnoga/pixlight/internal/ops"
	"github.com/mlnoga/pixlight/internal/rest"
	"github.com/mlnoga/pixlight/internal/rgb"
	"github.com/mlnoga/pixlight/internal/stats"
)

const version = "0.1.0"

var cpuprofile = flag.String("cpuprofile", "", "write cpu profile to `file`")
var memprofile = flag.String("memprofile", "", "write memory profile to `file`")

var log        = flag.String("log", "", "save log output to `file` in addition to stdout")

var width      = flag.Int("width",  256, "sample image width in pixels")
var height     = flag.Int("height", 256, "sample image height in pixels")
var pattern    = flag.String("pattern", "gradient", "sample image pattern, one of gradient, hue, noise, flat:v")
var factor     = flag.Float64("factor", 1.2, "brightness scaling factor")
var maxThreads = flag.Int("maxThreads", 1, "number of threads for row-parallel processing, 1=sequential reference")

var iterations = flag.Int("iterations", 5, "timed iterations per operation for the bench command")
var sizes      = flag.String("sizes", "128,256,512", "comma-separated square image sizes for the bench command")

var chroot     = flag.String("chroot", "", "serve command: change filesystem root to `dir` before serving (requires root)")
var setuid     = flag.Int("setuid", -1, "serve command: change user id before serving, -1=no change")

func main() {
	logWriter:=io.Writer(os.Stdout)
	start:=time.Now()
	flag.Usage=func(){
		fmt.Fprintf(logWriter, `Pixlight Copyright (c) 2020 Markus L. Noga
This program comes with ABSOLUTELY NO WARRANTY.
This is free software, and you are welcome to redistribute it under certain conditions.
Refer to https://www.gnu.org/licenses/gpl-3.0.en.html for details.

Usage: %s [-flag value] (blur|sharpen|edge_detect|brightness|bench|serve|legal|version)

Commands:
  blur        Apply a 3x3 Gaussian blur to a synthetic sample image
  sharpen     Apply a 3x3 sharpening filter to a synthetic sample image
  edge_detect Apply Sobel edge detection to a synthetic sample image
  brightness  Scale pixel brightness of a synthetic sample image by -factor
  bench       Benchmark all operations across the -sizes image sizes
  serve       Serve the processing API via REST on port 8080
  legal       Show license and attribution information
  version     Show version information

Flags:
`, os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	// Initialize logging to file in addition to stdout, if selected
	if *log!="" {
		err:=pl.LogAlsoToFile(*log)
		if err!=nil { pl.LogFatalf("Unable to open logfile '%s'\n", *log) }
	}

	// Enable CPU profiling if flagged
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			pl.LogFatal("Could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			pl.LogFatal("Could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	args:=flag.Args()
	if len(args)<1 {
		flag.Usage()
		return
	}

	// run actions
	var err error
	switch args[0] {
	case "blur", "sharpen", "edge_detect", "brightness":
		err=cmdProcess(args[0], logWriter)

	case "bench":
		cfg:=bench.NewConfigDefault()
		cfg.Pattern   =*pattern
		cfg.Factor    =*factor
		cfg.Iterations=*iterations
		cfg.MaxThreads=*maxThreads
		cfg.Sizes, err=parseSizes(*sizes)
		if err==nil { err=bench.Run(logWriter, cfg) }

	case "serve":
		if err=rest.MakeSandbox(logWriter, *chroot, *setuid); err!=nil {
			pl.LogFatalf("Unable to sandbox server process: %s\n", err.Error())
		}
		rest.Serve()

	case "legal":
		fmt.Fprintf(logWriter, "%s\n", legal)

	case "version":
		fmt.Fprintf(logWriter, "Version %s\n", version)

	case "help", "?":
		flag.Usage()

	default:
		fmt.Fprintf(logWriter, "Unknown command '%s'\n\n", args[0])
		flag.Usage()
		return
	}

	elapsed:=time.Since(start)
	fmt.Fprintf(logWriter, "\nDone after %v\n", elapsed)

	// Store memory profile if flagged
	if *memprofile != "" {
		f, err := os.Create(*memprofile)
		if err != nil {
			pl.LogFatal("Could not create memory profile: ", err)
		}
		defer f.Close()
		runtime.GC() // get up-to-date statistics
		if err := pprof.Lookup("allocs").WriteTo(f,0); err != nil {
			pl.LogFatal("Could not write allocation profile: ", err)
		}
	}

	if err!=nil {
		fmt.Fprintf(logWriter, "Error: %s\n", err.Error())
		os.Exit(-1)
	}
	pl.LogSync()
}

// Synthesizes a sample image, applies the given operation to it,
// and prints shape and pixel statistics for input and output
func cmdProcess(operation string, logWriter io.Writer) error {
	fmt.Fprintf(logWriter, "Creating %dx%d sample image with pattern %s...\n", *width, *height, *pattern)
	img, err:=rgb.NewSampleImage(*width, *height, *pattern)
	if err!=nil { return err }

	op, err:=ops.NewOperator(operation, *factor)
	if err!=nil { return err }

	c:=ops.NewContext(logWriter)
	c.MaxThreads=*maxThreads

	fmt.Fprintf(logWriter, "Applying %s filter...\n", operation)
	processed, err:=op.Apply(img, c)
	if err!=nil { return err }

	fmt.Fprintf(logWriter, "Original  image: shape %s, %s\n", img.DimensionsToString(), stats.CalcBasicStats(img.Data).String())
	fmt.Fprintf(logWriter, "Processed image: shape %s, %s\n", processed.DimensionsToString(), stats.CalcBasicStats(processed.Data).String())
	return nil
}

// Parses a comma-separated list of positive integer image sizes
func parseSizes(s string) ([]int, error) {
	parts:=strings.Split(s, ",")
	res:=make([]int, len(parts))
	for i, p:=range parts {
		v, err:=strconv.Atoi(strings.TrimSpace(p))
		if err!=nil || v<=0 { return nil, fmt.Errorf("invalid image size '%s'", p) }
		res[i]=v
	}
	return res, nil
}
