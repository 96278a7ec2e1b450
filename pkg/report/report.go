// Package report writes the results of a tracking session: a JSON summary, the trajectory of every player as a
// numpy array and a plot of both trajectories.
package report

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/chenBenjamin97/court-tracker/pkg/tracking"
	"github.com/chenBenjamin97/court-tracker/pkg/utils"
	"github.com/sbinet/npyio"
)

//TrajectoryDType is the numpy dtype of saved trajectories (little endian int64)
const TrajectoryDType = "<i8"

//Summary is the persisted outcome of a session
type Summary struct {
	FramesProcessed  int `json:"frames_processed"`
	Player1Positions int `json:"player1_positions"`
	Player2Positions int `json:"player2_positions"`
}

//NewSummary counts the recorded positions of both players
func NewSummary(framesProcessed int, store *tracking.Store) Summary {
	return Summary{
		FramesProcessed:  framesProcessed,
		Player1Positions: store.Len(tracking.Player1),
		Player2Positions: store.Len(tracking.Player2),
	}
}

//TrajectoryFileName returns the file name of given player's trajectory ("player1_positions.npy")
func TrajectoryFileName(id tracking.Identity) string {
	return id.String() + "_positions.npy"
}

//Save writes summary, trajectories and trajectories plot of a session into dir, creating it if needed
func Save(dir string, framesProcessed int, store *tracking.Store, colors map[tracking.Identity]color.RGBA) (Summary, error) {
	summary := NewSummary(framesProcessed, store)

	if err := utils.EnsureDir(dir); err != nil {
		return summary, fmt.Errorf("Save: %w", err)
	}

	if err := WriteSummary(filepath.Join(dir, utils.SummaryFileName), summary); err != nil {
		return summary, err
	}

	for _, id := range tracking.Identities {
		if err := WriteTrajectory(filepath.Join(dir, TrajectoryFileName(id)), store.Positions(id)); err != nil {
			return summary, err
		}
	}

	if err := PlotTrajectories(filepath.Join(dir, utils.TrajectoryPlotFileName), store, colors); err != nil {
		return summary, err
	}

	return summary, nil
}

//WriteSummary writes given summary as indented JSON
func WriteSummary(path string, summary Summary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("WriteSummary: %w", err)
	}

	if err := ioutil.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("WriteSummary: Could not write '%s', got '%w'", path, err)
	}

	return nil
}

//ReadSummary reads a summary written by WriteSummary
func ReadSummary(path string) (Summary, error) {
	var summary Summary

	data, err := ioutil.ReadFile(path)
	if err != nil {
		return summary, fmt.Errorf("ReadSummary: %w", err)
	}

	if err := json.Unmarshal(data, &summary); err != nil {
		return summary, fmt.Errorf("ReadSummary: Could not parse '%s', got '%w'", path, err)
	}

	return summary, nil
}

//WriteTrajectory writes given positions as a (N, 2) int64 numpy array of x,y pairs.
//An empty trajectory is written as an empty 1D array, the same way numpy saves an empty list.
func WriteTrajectory(path string, points []image.Point) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("WriteTrajectory: %w", err)
	}
	defer f.Close()

	w, err := npyio.NewWriter(f)
	if err != nil {
		return fmt.Errorf("WriteTrajectory: %w", err)
	}

	var value interface{} = []float64{}
	if len(points) > 0 {
		data := make([]int64, 0, 2*len(points))
		for _, p := range points {
			data = append(data, int64(p.X), int64(p.Y))
		}
		w.Header.Descr.Shape = []int{len(points), 2}
		value = data
	}

	if err := w.Write(value); err != nil {
		return fmt.Errorf("WriteTrajectory: Could not write '%s', got '%w'", path, err)
	}

	return f.Close()
}

//ReadTrajectory reads positions written by WriteTrajectory
func ReadTrajectory(path string) ([]image.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ReadTrajectory: %w", err)
	}
	defer f.Close()

	r, err := npyio.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("ReadTrajectory: Could not parse '%s', got '%w'", path, err)
	}

	shape := r.Header.Descr.Shape
	if len(shape) == 1 && shape[0] == 0 {
		return []image.Point{}, nil
	}

	if len(shape) != 2 || shape[1] != 2 {
		return nil, fmt.Errorf("ReadTrajectory: Unexpected shape %v in '%s'", shape, path)
	}

	if r.Header.Descr.Type != TrajectoryDType {
		return nil, fmt.Errorf("ReadTrajectory: Unexpected dtype '%s' in '%s'", r.Header.Descr.Type, path)
	}

	var data []int64
	if err := r.Read(&data); err != nil {
		return nil, fmt.Errorf("ReadTrajectory: Could not read '%s', got '%w'", path, err)
	}

	if len(data) != 2*shape[0] {
		return nil, fmt.Errorf("ReadTrajectory: '%s' holds %d values for shape %v", path, len(data), shape)
	}

	points := make([]image.Point, shape[0])
	for i := range points {
		points[i] = image.Pt(int(data[2*i]), int(data[2*i+1]))
	}

	return points, nil
}
