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


package rest

import (
	"net/http"
	"time"
	"github.com/gin-gonic/gin"

	"github.com/mlnoga/pixlight/internal/ops"
	"github.com/mlnoga/pixlight/internal/rgb"
	"github.com/mlnoga/pixlight/internal/stats"
)

// Serves the image processing API until the process is terminated
func Serve() {
	r := gin.Default()
	api := r.Group("/api")
	{
		v1 := api.Group("/v1")
		{
			v1.GET ("/ping",    getPing)
			v1.POST("/process", postProcess)
		}
	}
	r.Run() // listen and serve on 0.0.0.0:8080
}

func getPing(c *gin.Context) {
	c.JSON(200, gin.H{
		"message": "pong",
	})
}

type postProcessArgs struct {
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Pattern    string  `json:"pattern"`
	Operation  string  `json:"operation"`
	Factor     float64 `json:"factor"`
	MaxThreads int     `json:"maxThreads"`
}

// Synthesizes a sample image of the requested size and pattern, applies the
// requested operation to it, and responds with image shape, before/after pixel
// statistics and the processing wall time. No image data crosses the wire
func postProcess(c *gin.Context) {
	args:=postProcessArgs{Width: 256, Height: 256, Pattern: "gradient", Operation: "blur", Factor: 1.2, MaxThreads: 1}
	if err:=c.ShouldBind(&args); err!=nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	op, err:=ops.NewOperator(args.Operation, args.Factor)
	if err!=nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	img, err:=rgb.NewSampleImage(args.Width, args.Height, args.Pattern)
	if err!=nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx:=ops.NewContext(c.Writer)
	if args.MaxThreads>0 { ctx.MaxThreads=args.MaxThreads }

	start:=time.Now()
	res, err:=op.Apply(img, ctx)
	if err!=nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	elapsed:=time.Since(start)

	c.JSON(http.StatusOK, gin.H{
		"operation":   op.GetType(),
		"shape":       res.DimensionsToString(),
		"inputStats":  stats.CalcBasicStats(img.Data).String(),
		"outputStats": stats.CalcBasicStats(res.Data).String(),
		"millis":      float64(elapsed.Microseconds())/1000.0,
	})
}
