package video

import (
	"log"
	"os"
	"os/exec"
	"path"
	"time"

	"github.com/chenBenjamin97/court-tracker/pkg/utils"
	"github.com/spf13/viper"
	"gocv.io/x/gocv"
)

//Tag reads a video from the 'source' directory, plots the players and their heatmap over each frame and saves the
//tagged video under the same name in the 'ready' directory. The tagged frames are first written as XVID ('.avi') to the
//'temp' directory and then converted by ffmpeg. Tracking results are persisted the same way as for an interactive run.
//srcVideoName should include file's extension ('.mp4', etc.)
func Tag(srcVideoName string, recorder SessionRecorder) {
	srcVideoPath := path.Join(viper.GetString("directory.source"), srcVideoName)
	tmpVideoPath := tempVideoPath(srcVideoName)
	outputVideoPath := path.Join(viper.GetString("directory.ready"), srcVideoName)

	cap, err := gocv.VideoCaptureFile(srcVideoPath)
	if err != nil {
		log.Printf("Tag: Error, Got '%v'", err)
		return
	}
	defer cap.Close()

	videoWriter, err := gocv.VideoWriterFile(tmpVideoPath, "XVID", cap.Get(gocv.VideoCaptureFPS), int(cap.Get(gocv.VideoCaptureFrameWidth)), int(cap.Get(gocv.VideoCaptureFrameHeight)), true)
	if err != nil {
		log.Printf("Tag: Error, Got '%v'", err)
		return
	}
	defer os.Remove(tmpVideoPath) //remove '.avi' temp file at the end of this function

	analyzer, err := NewAnalyzerFromConfig()
	if err != nil {
		videoWriter.Close()
		log.Printf("Tag: Error, Got '%v'", err)
		return
	}
	defer analyzer.Close()

	frameMat := gocv.NewMat()
	defer frameMat.Close()

	displayMat := gocv.NewMat()
	defer displayMat.Close()

	run := sessionRun{video: srcVideoName, startedAt: time.Now(), analyzer: analyzer}

	for cap.Read(&frameMat) {
		if frameMat.Empty() {
			break
		}

		if _, err := analyzer.ProcessFrame(frameMat, &displayMat); err != nil {
			log.Printf("Tag: Error tagging video file '%v': Could not compose frame number %v, got '%v'. Writing it untagged.", srcVideoPath, analyzer.FrameCount(), err)
			frameMat.CopyTo(&displayMat)
		}

		videoWriter.Write(displayMat)
		analyzer.Advance()
	}

	//the writer must be flushed before ffmpeg reads the file
	videoWriter.Close()

	//Convert to from 'avi' to 'mp4'. example:ffmpeg -i testBasketball.avi testBasketball.mp4
	cmd := exec.Command("ffmpeg", "-y", "-i", tmpVideoPath, outputVideoPath)
	if err := cmd.Run(); err != nil {
		log.Printf("Tag: Error from ffmpeg, got '%v'", err)
	}

	if _, err := run.finish(recorder); err != nil {
		log.Printf("Tag: Error saving results of '%s', got '%v'", srcVideoName, err)
	}
}

//tempVideoPath returns where the tagged frames of given source video are written before conversion
func tempVideoPath(srcVideoName string) string {
	return path.Join(viper.GetString("directory.temp"), utils.VideoBaseName(srcVideoName)+".avi")
}
