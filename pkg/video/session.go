package video

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/chenBenjamin97/court-tracker/pkg/db"
	"github.com/chenBenjamin97/court-tracker/pkg/report"
	"github.com/chenBenjamin97/court-tracker/pkg/tracking"
	"github.com/chenBenjamin97/court-tracker/pkg/utils"
	"github.com/google/uuid"
	"github.com/spf13/viper"
	"gocv.io/x/gocv"
)

//Run plays given video in a window with the players and their heatmap plotted over it, until the video ends or
//the user quits ('q'). 'p' pauses/resumes; while paused the last frame stays on screen and nothing is recorded.
//Results are written to the results directory and the session is recorded when recorder is not nil.
func Run(videoPath string, recorder SessionRecorder) (db.Session, error) {
	if _, err := os.Stat(videoPath); err != nil {
		return db.Session{}, fmt.Errorf("Run: '%s': %w", videoPath, ErrVideoNotFound)
	}

	cap, err := gocv.VideoCaptureFile(videoPath)
	if err != nil {
		return db.Session{}, fmt.Errorf("Run: Could not open '%s', got '%v'", videoPath, err)
	}
	defer cap.Close()

	if !cap.IsOpened() {
		return db.Session{}, fmt.Errorf("Run: Could not open '%s'", videoPath)
	}

	analyzer, err := NewAnalyzerFromConfig()
	if err != nil {
		return db.Session{}, err
	}
	defer analyzer.Close()

	width := int(cap.Get(gocv.VideoCaptureFrameWidth))
	height := int(cap.Get(gocv.VideoCaptureFrameHeight))
	fps := cap.Get(gocv.VideoCaptureFPS)
	log.Printf("Video: %dx%d @ %.1f FPS", width, height, fps)
	log.Printf("Press '%c' to quit, '%c' to pause", utils.QuitKey, utils.PauseKey)

	window := gocv.NewWindow(viper.GetString("video.window_title"))
	defer window.Close()

	run := sessionRun{video: videoPath, startedAt: time.Now(), analyzer: analyzer}

	playLoop(analyzer, cap.Read, func(display gocv.Mat, delay int) int {
		window.IMShow(display)
		return window.WaitKey(delay)
	})

	return run.finish(recorder)
}

//playLoop processes the frames given by read until it runs out of frames or the quit key is pressed.
//show displays a composite and waits for a key press (-1 when none), delay 0 waits forever.
//While paused the last composite is shown again and no frame is read, detected or counted.
func playLoop(analyzer *Analyzer, read func(*gocv.Mat) bool, show func(display gocv.Mat, delay int) int) {
	frame := gocv.NewMat()
	defer frame.Close()

	display := gocv.NewMat()
	defer display.Close()

	paused := false

	for {
		if !paused {
			if ok := read(&frame); !ok || frame.Empty() {
				break
			}

			if _, err := analyzer.ProcessFrame(frame, &display); err != nil {
				log.Printf("playLoop: Error composing frame %d, got '%v'", analyzer.FrameCount(), err)
				frame.CopyTo(&display)
			}
			analyzer.Advance()
		}

		delay := 1
		if paused {
			delay = 0 //block until a key is pressed
		}

		key := show(display, delay)
		if key == utils.QuitKey {
			break
		}
		if key == utils.PauseKey {
			paused = !paused
		}
	}
}

//finish persists the results of the run and records it
func (r sessionRun) finish(recorder SessionRecorder) (db.Session, error) {
	id := uuid.New().String()
	resultsDir := filepath.Join(viper.GetString("directory.results"), resultsDirName(r.video, id))

	summary, err := report.Save(resultsDir, r.analyzer.FrameCount(), r.analyzer.Store(), r.analyzer.Colors())
	if err != nil {
		return db.Session{}, err
	}

	session := db.Session{
		ID:               id,
		Video:            filepath.Base(r.video),
		StartedAt:        r.startedAt.UTC(),
		FinishedAt:       time.Now().UTC(),
		FramesProcessed:  summary.FramesProcessed,
		Player1Positions: summary.Player1Positions,
		Player2Positions: summary.Player2Positions,
		ResultsDir:       resultsDir,
	}

	log.Printf("Analysis of '%s' complete: %d frames, %d %s positions, %d %s positions. Saved to '%s'",
		session.Video, summary.FramesProcessed,
		summary.Player1Positions, tracking.Player1, summary.Player2Positions, tracking.Player2, resultsDir)

	if recorder != nil {
		if err := recorder.RecordSession(session); err != nil {
			return session, err
		}
	}

	return session, nil
}

//resultsDirName names the results directory of a session ("games/final.mp4" => "final-<id>"), so reruns of
//a video never overwrite each other
func resultsDirName(videoPath, sessionID string) string {
	return utils.VideoBaseName(videoPath) + "-" + sessionID
}
