package tracking

import (
	"image"

	"github.com/chenBenjamin97/court-tracker/pkg/utils"
)

//FilterConfig holds the thresholds a detection has to pass in order to become a candidate
type FilterConfig struct {
	PersonClass int
	MinWidth    int //exclusive
	MinHeight   int //exclusive
}

//DefaultFilterConfig returns the person class and size thresholds used for players
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		PersonClass: utils.PersonClass,
		MinWidth:    utils.MinPlayerWidth,
		MinHeight:   utils.MinPlayerHeight,
	}
}

//NewCandidate computes area and centroid of given box
func NewCandidate(box image.Rectangle) Candidate {
	return Candidate{
		Box:      box,
		Area:     box.Dx() * box.Dy(),
		Centroid: midpoint(box),
	}
}

//FilterCandidates keeps detections of the person class which are wider than MinWidth and taller than MinHeight.
//Order of given detections is preserved, the selector relies on it to break ties.
func FilterCandidates(detections []Detection, cfg FilterConfig) []Candidate {
	candidates := make([]Candidate, 0, len(detections))
	for _, det := range detections {
		if det.ClassID != cfg.PersonClass {
			continue
		}

		if det.Box.Dx() <= cfg.MinWidth || det.Box.Dy() <= cfg.MinHeight {
			continue
		}

		candidates = append(candidates, NewCandidate(det.Box))
	}

	return candidates
}

//midpoint floors towards negative infinity, boxes may start left/above the frame
func midpoint(box image.Rectangle) image.Point {
	return image.Pt((box.Min.X+box.Max.X)>>1, (box.Min.Y+box.Max.Y)>>1)
}
