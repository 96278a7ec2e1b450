package report

import (
	"image"
	"image/color"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/chenBenjamin97/court-tracker/pkg/tracking"
	"github.com/chenBenjamin97/court-tracker/pkg/utils"
	"github.com/sbinet/npyio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testColors = map[tracking.Identity]color.RGBA{
	tracking.Player1: utils.Player1DefaultColor,
	tracking.Player2: utils.Player2DefaultColor,
}

func TestSave(t *testing.T) {
	store := tracking.NewStore()
	selector := tracking.NewSelector(store)
	selector.Select([]tracking.Candidate{
		tracking.NewCandidate(image.Rect(0, 0, 100, 200)),
		tracking.NewCandidate(image.Rect(300, 100, 500, 500)),
	})
	selector.Select([]tracking.Candidate{
		tracking.NewCandidate(image.Rect(310, 110, 510, 510)),
	})

	dir := filepath.Join(t.TempDir(), "results", "match")
	summary, err := Save(dir, 3, store, testColors)
	require.NoError(t, err)
	assert.Equal(t, Summary{FramesProcessed: 3, Player1Positions: 2, Player2Positions: 1}, summary)

	read, err := ReadSummary(filepath.Join(dir, utils.SummaryFileName))
	require.NoError(t, err)
	assert.Equal(t, summary, read)

	p1, err := ReadTrajectory(filepath.Join(dir, TrajectoryFileName(tracking.Player1)))
	require.NoError(t, err)
	assert.Equal(t, []image.Point{{X: 400, Y: 300}, {X: 410, Y: 310}}, p1)

	p2, err := ReadTrajectory(filepath.Join(dir, TrajectoryFileName(tracking.Player2)))
	require.NoError(t, err)
	assert.Equal(t, []image.Point{{X: 50, Y: 100}}, p2)

	info, err := os.Stat(filepath.Join(dir, utils.TrajectoryPlotFileName))
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestSave_EmptySession(t *testing.T) {
	dir := t.TempDir()
	summary, err := Save(dir, 0, tracking.NewStore(), testColors)
	require.NoError(t, err)
	assert.Equal(t, Summary{}, summary)

	for _, id := range tracking.Identities {
		points, err := ReadTrajectory(filepath.Join(dir, TrajectoryFileName(id)))
		require.NoError(t, err)
		assert.Empty(t, points)
	}
}

func TestWriteSummary_Format(t *testing.T) {
	path := filepath.Join(t.TempDir(), utils.SummaryFileName)
	require.NoError(t, WriteSummary(path, Summary{FramesProcessed: 120, Player1Positions: 118, Player2Positions: 97}))

	data, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"frames_processed\": 120,\n  \"player1_positions\": 118,\n  \"player2_positions\": 97\n}", string(data))
}

func TestWriteTrajectory_Int64Pairs(t *testing.T) {
	path := filepath.Join(t.TempDir(), TrajectoryFileName(tracking.Player1))
	points := []image.Point{{X: 1, Y: 2}, {X: 3, Y: 4}, {X: -5, Y: 6}}
	require.NoError(t, WriteTrajectory(path, points))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	r, err := npyio.NewReader(f)
	require.NoError(t, err)
	assert.Equal(t, TrajectoryDType, r.Header.Descr.Type)
	assert.Equal(t, []int{3, 2}, r.Header.Descr.Shape)

	var data []int64
	require.NoError(t, r.Read(&data))
	assert.Equal(t, []int64{1, 2, 3, 4, -5, 6}, data)

	read, err := ReadTrajectory(path)
	require.NoError(t, err)
	assert.Equal(t, points, read)
}

func TestReadTrajectory_RejectsFloats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "floats.npy")
	f, err := os.Create(path)
	require.NoError(t, err)

	w, err := npyio.NewWriter(f)
	require.NoError(t, err)
	w.Header.Descr.Shape = []int{1, 2}
	require.NoError(t, w.Write([]float64{1.5, 2.5}))
	require.NoError(t, f.Close())

	_, err = ReadTrajectory(path)
	assert.Error(t, err)
}

func TestReadTrajectory_Missing(t *testing.T) {
	_, err := ReadTrajectory(filepath.Join(t.TempDir(), "nope.npy"))
	assert.Error(t, err)
}

func TestTrajectoryFileName(t *testing.T) {
	assert.Equal(t, "player1_positions.npy", TrajectoryFileName(tracking.Player1))
	assert.Equal(t, "player2_positions.npy", TrajectoryFileName(tracking.Player2))
}
