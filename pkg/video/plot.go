package video

import (
	"fmt"
	"image"
	"image/color"
	"runtime"

	"github.com/chenBenjamin97/court-tracker/pkg/tracking"
	"gocv.io/x/gocv"
)

var frameCounterColor = color.RGBA{255, 255, 255, 0}

//overlayHeatmap colorizes given density map (JET) and blends it over frame into dst: (1-alpha)*frame + alpha*heatmap
func overlayHeatmap(frame gocv.Mat, density *tracking.DensityMap, alpha float64, dst *gocv.Mat) error {
	if density.Width() != frame.Cols() || density.Height() != frame.Rows() {
		return fmt.Errorf("overlayHeatmap: Heatmap is %dx%d but frame is %dx%d", density.Width(), density.Height(), frame.Cols(), frame.Rows())
	}

	//the mat shares memory with gray
	gray := density.Gray8()
	grayMat, err := gocv.NewMatFromBytes(density.Height(), density.Width(), gocv.MatTypeCV8U, gray)
	if err != nil {
		return fmt.Errorf("overlayHeatmap: Could not create heatmap mat, got '%v'", err)
	}
	defer grayMat.Close()

	colorMat := gocv.NewMat()
	defer colorMat.Close()

	gocv.ApplyColorMap(grayMat, &colorMat, gocv.ColormapJet)
	runtime.KeepAlive(gray)

	gocv.AddWeighted(frame, 1-alpha, colorMat, alpha, 0, dst)

	return nil
}

//plotPlayerOnFrame plots player's bounding box, a dot on its centroid and its label above the box
func plotPlayerOnFrame(frame *gocv.Mat, player tracking.Player, plotColor color.RGBA) {
	gocv.Rectangle(frame, player.Box, plotColor, 2)
	gocv.Circle(frame, player.Centroid, 5, plotColor, -1) //thickness -1 == filled circle

	labelPoint := image.Pt(player.Box.Min.X, player.Box.Min.Y-10)
	gocv.PutText(frame, player.Identity.Label(), labelPoint, gocv.FontHersheySimplex, 0.6, plotColor, 2)
}

//plotFrameCounter writes the current frame number at the top left corner
func plotFrameCounter(frame *gocv.Mat, frameNumber int) {
	gocv.PutText(frame, fmt.Sprintf("Frame: %d", frameNumber), image.Pt(10, 30), gocv.FontHersheySimplex, 0.7, frameCounterColor, 2)
}
