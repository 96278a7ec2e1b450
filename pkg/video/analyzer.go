package video

import (
	"fmt"
	"log"

	"github.com/chenBenjamin97/court-tracker/pkg/tracking"
	"github.com/chenBenjamin97/court-tracker/pkg/utils"
	"github.com/spf13/viper"
	"gocv.io/x/gocv"
)

//Analyzer runs the per frame pipeline: detect, select players, record positions, render the heatmap and plot everything.
//It is not safe for concurrent use, every session owns its own analyzer.
type Analyzer struct {
	detector   Detector
	filter     tracking.FilterConfig
	selector   *tracking.Selector
	renderer   *tracking.HeatmapRenderer
	colors     PlayerColors
	alpha      float64
	frameCount int
}

//AnalyzerConfig holds everything the analyzer needs besides the detector
type AnalyzerConfig struct {
	Filter  tracking.FilterConfig
	Heatmap tracking.HeatmapConfig
	Colors  PlayerColors
	Alpha   float64 //heatmap weight when blended over the frame
}

//AnalyzerConfigFromViper reads the 'tracking', 'heatmap' and 'colors' sections of the configuration
func AnalyzerConfigFromViper() (AnalyzerConfig, error) {
	player1Color, err := utils.ColorFromConfig("colors.player1", utils.Player1DefaultColor)
	if err != nil {
		return AnalyzerConfig{}, fmt.Errorf("AnalyzerConfigFromViper: colors.player1: %w", err)
	}

	player2Color, err := utils.ColorFromConfig("colors.player2", utils.Player2DefaultColor)
	if err != nil {
		return AnalyzerConfig{}, fmt.Errorf("AnalyzerConfigFromViper: colors.player2: %w", err)
	}

	return AnalyzerConfig{
		Filter: tracking.FilterConfig{
			PersonClass: viper.GetInt("tracking.person_class"),
			MinWidth:    viper.GetInt("tracking.min_width"),
			MinHeight:   viper.GetInt("tracking.min_height"),
		},
		Heatmap: tracking.HeatmapConfig{
			Window:     viper.GetInt("heatmap.window"),
			Radius:     viper.GetInt("heatmap.radius"),
			KernelSize: viper.GetInt("heatmap.kernel"),
		},
		Colors: PlayerColors{
			tracking.Player1: player1Color,
			tracking.Player2: player2Color,
		},
		Alpha: viper.GetFloat64("heatmap.alpha"),
	}, nil
}

//NewAnalyzer returns an analyzer with empty trajectories using given detector
func NewAnalyzer(detector Detector, cfg AnalyzerConfig) (*Analyzer, error) {
	if cfg.Alpha < 0 || cfg.Alpha > 1 {
		return nil, fmt.Errorf("NewAnalyzer: heatmap alpha must be in [0,1], got %v", cfg.Alpha)
	}

	renderer, err := tracking.NewHeatmapRenderer(cfg.Heatmap)
	if err != nil {
		return nil, err
	}

	return &Analyzer{
		detector: detector,
		filter:   cfg.Filter,
		selector: tracking.NewSelector(tracking.NewStore()),
		renderer: renderer,
		colors:   cfg.Colors,
		alpha:    cfg.Alpha,
	}, nil
}

//NewAnalyzerFromConfig loads the detector and the analyzer settings from the configuration
func NewAnalyzerFromConfig() (*Analyzer, error) {
	cfg, err := AnalyzerConfigFromViper()
	if err != nil {
		return nil, err
	}

	detector, err := NewYOLODetector(DetectorConfigFromViper())
	if err != nil {
		return nil, err
	}

	analyzer, err := NewAnalyzer(detector, cfg)
	if err != nil {
		detector.Close()
		return nil, err
	}

	return analyzer, nil
}

//ProcessFrame detects and records the players of given frame and composes the annotated frame into display.
//A detector failure is logged and the frame is handled as a frame without players.
func (a *Analyzer) ProcessFrame(frame gocv.Mat, display *gocv.Mat) ([]tracking.Player, error) {
	detections, err := a.detector.Detect(frame)
	if err != nil {
		log.Printf("ProcessFrame: Error detecting players on frame %d, got '%v'. Skipping detections.", a.frameCount, err)
		detections = nil
	}

	players := a.selector.Select(tracking.FilterCandidates(detections, a.filter))

	if err := a.Compose(frame, players, display); err != nil {
		return players, err
	}

	return players, nil
}

//Compose draws heatmap, players and frame counter over frame into display. It does not change any trajectory.
func (a *Analyzer) Compose(frame gocv.Mat, players []tracking.Player, display *gocv.Mat) error {
	density, err := a.renderer.Render(frame.Cols(), frame.Rows(), a.selector.Store())
	if err != nil {
		return fmt.Errorf("Compose: %w", err)
	}

	if err := overlayHeatmap(frame, density, a.alpha, display); err != nil {
		return fmt.Errorf("Compose: %w", err)
	}

	for _, p := range players {
		plotPlayerOnFrame(display, p, a.colors[p.Identity])
	}

	plotFrameCounter(display, a.frameCount)
	return nil
}

//Advance counts a frame as processed
func (a *Analyzer) Advance() {
	a.frameCount++
}

//FrameCount returns how many frames were processed
func (a *Analyzer) FrameCount() int {
	return a.frameCount
}

//Store returns the trajectories recorded so far
func (a *Analyzer) Store() *tracking.Store {
	return a.selector.Store()
}

//Colors returns the color of each player
func (a *Analyzer) Colors() PlayerColors {
	return a.colors
}

//Close releases the detector
func (a *Analyzer) Close() error {
	return a.detector.Close()
}
