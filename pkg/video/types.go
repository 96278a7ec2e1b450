package video

import (
	"errors"
	"image/color"
	"time"

	"github.com/chenBenjamin97/court-tracker/pkg/db"
	"github.com/chenBenjamin97/court-tracker/pkg/tracking"
	"gocv.io/x/gocv"
)

//ErrVideoNotFound is returned when the video to analyze does not exist
var ErrVideoNotFound = errors.New("video file not found")

//ErrModelNotLoaded is returned when the detection model could not be read
var ErrModelNotLoaded = errors.New("detection model not loaded")

//Detector finds objects in a single frame
type Detector interface {
	Detect(frame gocv.Mat) ([]tracking.Detection, error)
	Close() error
}

//SessionRecorder stores finished sessions, *db.DB implements it
type SessionRecorder interface {
	RecordSession(s db.Session) error
}

//PlayerColors maps each player slot to the color it is plotted with
type PlayerColors map[tracking.Identity]color.RGBA

//sessionRun holds what is needed to persist a session once its last frame was processed
type sessionRun struct {
	video     string
	startedAt time.Time
	analyzer  *Analyzer
}
