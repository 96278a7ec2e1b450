package video

import (
	"fmt"
	"image"
	"os"

	"github.com/chenBenjamin97/court-tracker/pkg/tracking"
	"github.com/spf13/viper"
	"gocv.io/x/gocv"
)

//DetectorConfig holds the YOLOv8 model parameters
type DetectorConfig struct {
	ModelPath        string
	ConfidenceThresh float32
	NMSThresh        float32
	InputSize        int
}

//DetectorConfigFromViper reads the 'detector' section of the configuration
func DetectorConfigFromViper() DetectorConfig {
	return DetectorConfig{
		ModelPath:        viper.GetString("detector.model"),
		ConfidenceThresh: float32(viper.GetFloat64("detector.confidence")),
		NMSThresh:        float32(viper.GetFloat64("detector.nms")),
		InputSize:        viper.GetInt("detector.input_size"),
	}
}

//YOLODetector runs a YOLOv8 ONNX model through OpenCV's dnn module.
//It reports every class, filtering people is up to the caller.
type YOLODetector struct {
	net       gocv.Net
	cfg       DetectorConfig
	inputSize image.Point
}

//NewYOLODetector loads the model at cfg.ModelPath
func NewYOLODetector(cfg DetectorConfig) (*YOLODetector, error) {
	if _, err := os.Stat(cfg.ModelPath); err != nil {
		return nil, fmt.Errorf("NewYOLODetector: '%s': %w", cfg.ModelPath, ErrModelNotLoaded)
	}

	if cfg.InputSize <= 0 {
		return nil, fmt.Errorf("NewYOLODetector: input size must be positive, got %d", cfg.InputSize)
	}

	net := gocv.ReadNetFromONNX(cfg.ModelPath)
	if net.Empty() {
		return nil, fmt.Errorf("NewYOLODetector: could not read '%s': %w", cfg.ModelPath, ErrModelNotLoaded)
	}

	net.SetPreferableBackend(gocv.NetBackendDefault)
	net.SetPreferableTarget(gocv.NetTargetCPU)

	return &YOLODetector{
		net:       net,
		cfg:       cfg,
		inputSize: image.Pt(cfg.InputSize, cfg.InputSize),
	}, nil
}

//Detect runs the model on given BGR frame and returns the boxes that survived non maximum suppression,
//in frame coordinates
func (d *YOLODetector) Detect(frame gocv.Mat) ([]tracking.Detection, error) {
	if frame.Empty() {
		return nil, fmt.Errorf("Detect: empty frame")
	}

	blob := gocv.BlobFromImage(frame, 1.0/255.0, d.inputSize, gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	d.net.SetInput(blob, "")
	output := d.net.Forward("")
	defer output.Close()

	return d.parseOutput(output, float32(frame.Cols()), float32(frame.Rows()))
}

//parseOutput decodes the [1, 4+classes, anchors] output tensor.
//Each anchor is (cx, cy, w, h) in model input pixels followed by one score per class.
func (d *YOLODetector) parseOutput(output gocv.Mat, frameW, frameH float32) ([]tracking.Detection, error) {
	dims := output.Size()
	if len(dims) != 3 || dims[1] <= 4 {
		return nil, fmt.Errorf("parseOutput: unexpected output shape %v", dims)
	}
	attrs, anchors := dims[1], dims[2]

	data, err := output.DataPtrFloat32()
	if err != nil {
		return nil, fmt.Errorf("parseOutput: %w", err)
	}

	scaleX := frameW / float32(d.inputSize.X)
	scaleY := frameH / float32(d.inputSize.Y)

	boxes := make([]image.Rectangle, 0)
	scores := make([]float32, 0)
	classIDs := make([]int, 0)

	for i := 0; i < anchors; i++ {
		bestScore := float32(0)
		bestClass := 0
		for c := 4; c < attrs; c++ {
			if score := data[c*anchors+i]; score > bestScore {
				bestScore = score
				bestClass = c - 4
			}
		}

		if bestScore < d.cfg.ConfidenceThresh {
			continue
		}

		cx, cy := data[i], data[anchors+i]
		w, h := data[2*anchors+i], data[3*anchors+i]

		//rectangle literal, image.Rect would reorder the corners
		boxes = append(boxes, image.Rectangle{
			Min: image.Pt(int((cx-w/2)*scaleX), int((cy-h/2)*scaleY)),
			Max: image.Pt(int((cx+w/2)*scaleX), int((cy+h/2)*scaleY)),
		})
		scores = append(scores, bestScore)
		classIDs = append(classIDs, bestClass)
	}

	detections := make([]tracking.Detection, 0)
	if len(boxes) == 0 {
		return detections, nil
	}

	for _, idx := range gocv.NMSBoxes(boxes, scores, d.cfg.ConfidenceThresh, d.cfg.NMSThresh) {
		detections = append(detections, tracking.Detection{
			ClassID:    classIDs[idx],
			Confidence: scores[idx],
			Box:        boxes[idx],
		})
	}

	return detections, nil
}

//Close releases the model
func (d *YOLODetector) Close() error {
	return d.net.Close()
}
