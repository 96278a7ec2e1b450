package api

import (
	"errors"
	"io/ioutil"
	"log"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/chenBenjamin97/court-tracker/pkg/db"
	"github.com/chenBenjamin97/court-tracker/pkg/utils"
	"github.com/chenBenjamin97/court-tracker/pkg/video"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

//SessionStore is the part of the session repository the API reads from, *db.DB implements it
type SessionStore interface {
	video.SessionRecorder
	Sessions() ([]db.Session, error)
	Session(id string) (db.Session, error)
}

//TagFunc analyzes an uploaded video in the background, video.Tag in production
type TagFunc func(srcVideoName string, recorder video.SessionRecorder)

func SetRouter(sessions SessionStore) *gin.Engine {
	return setRouter(sessions, video.Tag)
}

func setRouter(sessions SessionStore, tag TagFunc) *gin.Engine {
	r := gin.Default()

	//serve html pages to client
	r.Static("/client", viper.GetString("frontend.static-files-path"))
	r.StaticFile("/", viper.GetString("frontend.static-files-path")+"home_page/dist/index.html")

	apiRoutes := r.Group("/api")

	apiRoutes.GET("/ReadyVideosNames", func(ctx *gin.Context) {
		if names, err := utils.ListDir(viper.GetString("directory.ready")); err != nil {
			ctx.Status(http.StatusInternalServerError)
		} else {
			ctx.JSON(http.StatusOK, names)
		}
	})

	apiRoutes.GET("/UserUploadsVideosNames", func(ctx *gin.Context) {
		if names, err := utils.ListDir(viper.GetString("directory.source")); err != nil {
			ctx.Status(http.StatusInternalServerError)
		} else {
			ctx.JSON(http.StatusOK, names)
		}
	})

	apiRoutes.GET("/Play", func(ctx *gin.Context) {
		videoName := ctx.Request.URL.Query().Get("name")
		if videoName == "" {
			ctx.Status(http.StatusNotAcceptable) //missing url parameter
			return
		}

		analyzed := ctx.Request.URL.Query().Get("analyzed")
		if analyzed != "true" && analyzed != "false" {
			ctx.Status(http.StatusNotAcceptable) //missing url parameter
			return
		}

		var videoPath string
		if analyzed == "true" {
			videoPath = path.Join(viper.GetString("directory.ready"), videoName+"."+viper.GetString("video.prod_format"))
		} else {
			videoPath = path.Join(viper.GetString("directory.source"), videoName+"."+viper.GetString("video.prod_format"))
		}

		if _, err := os.Stat(videoPath); err != nil {
			if os.IsNotExist(err) {
				ctx.Status(http.StatusNotFound)
				return
			} else {
				ctx.Status(http.StatusInternalServerError)
				return
			}
		}

		ctx.Header("Content-Type", "video/mp4")
		http.ServeFile(ctx.Writer, ctx.Request, videoPath)
	})

	apiRoutes.POST("/Upload", func(ctx *gin.Context) {
		file, fHeader, err := ctx.Request.FormFile("video")
		if err != nil {
			ctx.Status(http.StatusBadRequest)
			return
		}
		defer file.Close()

		//only plain file names, uploads must land in the source directory
		if fHeader.Filename != filepath.Base(fHeader.Filename) || fHeader.Filename == "." || fHeader.Filename == ".." {
			ctx.Status(http.StatusNotAcceptable)
			return
		}

		if existNames, err := utils.ListDir(viper.GetString("directory.source")); err != nil {
			ctx.Status(http.StatusInternalServerError)
			return
		} else {
			if utils.InSlice(fHeader.Filename, existNames) {
				ctx.Status(http.StatusNotAcceptable)
				return
			}
		}

		log.Printf("api/Upload: Recived new file: name - '%s', size - %v Bytes", fHeader.Filename, fHeader.Size)

		fileBytes, err := ioutil.ReadAll(file)
		if err != nil {
			log.Printf("api/Upload: Could not read request's body, got '%v'", err)
			ctx.Status(http.StatusInternalServerError)
			return
		}

		srcFilePath := path.Join(viper.GetString("directory.source"), fHeader.Filename)

		if err = ioutil.WriteFile(srcFilePath, fileBytes, 0444); err != nil {
			log.Printf("api/Upload: Could not write '%s' file, got '%v'", srcFilePath, err)
			ctx.Status(http.StatusInternalServerError)
			return
		}

		go tag(fHeader.Filename, sessions)
		ctx.Status(http.StatusAccepted)
	})

	apiRoutes.GET("/Sessions", func(ctx *gin.Context) {
		if list, err := sessions.Sessions(); err != nil {
			log.Printf("api/Sessions: Could not list sessions, got '%v'", err)
			ctx.Status(http.StatusInternalServerError)
		} else {
			ctx.JSON(http.StatusOK, list)
		}
	})

	apiRoutes.GET("/Sessions/:id", func(ctx *gin.Context) {
		session, ok := lookupSession(ctx, sessions)
		if !ok {
			return
		}

		ctx.JSON(http.StatusOK, session)
	})

	apiRoutes.GET("/Sessions/:id/heatmap", func(ctx *gin.Context) {
		session, ok := lookupSession(ctx, sessions)
		if !ok {
			return
		}

		plotPath := filepath.Join(session.ResultsDir, utils.TrajectoryPlotFileName)
		if _, err := os.Stat(plotPath); err != nil {
			ctx.Status(http.StatusNotFound)
			return
		}

		ctx.File(plotPath)
	})

	return r
}

//lookupSession writes the error status itself when the session could not be returned
func lookupSession(ctx *gin.Context, sessions SessionStore) (db.Session, bool) {
	session, err := sessions.Session(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, db.ErrSessionNotFound) {
			ctx.Status(http.StatusNotFound)
		} else {
			log.Printf("api/Sessions: Could not read session '%s', got '%v'", ctx.Param("id"), err)
			ctx.Status(http.StatusInternalServerError)
		}
		return db.Session{}, false
	}

	return session, true
}
