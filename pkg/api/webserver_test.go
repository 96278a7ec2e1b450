package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chenBenjamin97/court-tracker/pkg/db"
	"github.com/chenBenjamin97/court-tracker/pkg/utils"
	"github.com/chenBenjamin97/court-tracker/pkg/video"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessions struct {
	sessions []db.Session
}

func (f *fakeSessions) RecordSession(s db.Session) error {
	f.sessions = append(f.sessions, s)
	return nil
}

func (f *fakeSessions) Sessions() ([]db.Session, error) {
	return f.sessions, nil
}

func (f *fakeSessions) Session(id string) (db.Session, error) {
	for _, s := range f.sessions {
		if s.ID == id {
			return s, nil
		}
	}
	return db.Session{}, fmt.Errorf("Session %q: %w", id, db.ErrSessionNotFound)
}

func setupConfig(t *testing.T) string {
	t.Helper()
	gin.SetMode(gin.TestMode)

	root := t.TempDir()
	viper.Reset()
	t.Cleanup(viper.Reset)

	for _, dir := range []string{"source", "ready", "results"} {
		path := filepath.Join(root, dir)
		require.NoError(t, os.MkdirAll(path, 0755))
		viper.Set("directory."+dir, path)
	}
	viper.Set("frontend.static-files-path", root+"/")
	viper.Set("video.prod_format", "mp4")

	return root
}

func TestSessionsRoutes(t *testing.T) {
	root := setupConfig(t)

	resultsDir := filepath.Join(root, "results", "final")
	require.NoError(t, os.MkdirAll(resultsDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(resultsDir, utils.TrajectoryPlotFileName), []byte("png"), 0644))

	store := &fakeSessions{}
	require.NoError(t, store.RecordSession(db.Session{
		ID:               "s1",
		Video:            "final.mp4",
		StartedAt:        time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		FinishedAt:       time.Date(2026, 10, 1, 0, 5, 0, 0, time.UTC),
		FramesProcessed:  42,
		Player1Positions: 40,
		Player2Positions: 12,
		ResultsDir:       resultsDir,
	}))

	r := setRouter(store, func(string, video.SessionRecorder) {})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/Sessions", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var list []db.Session
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, 42, list[0].FramesProcessed)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/Sessions/s1", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var got db.Session
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, store.sessions[0], got)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/Sessions/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/Sessions/s1/heatmap", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "png", w.Body.String())
}

func newUploadRequest(t *testing.T, name string, content []byte) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("video", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/Upload", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUpload(t *testing.T) {
	root := setupConfig(t)

	tagged := make(chan string, 1)
	r := setRouter(&fakeSessions{}, func(name string, _ video.SessionRecorder) {
		tagged <- name
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, newUploadRequest(t, "match.mp4", []byte("video")))
	require.Equal(t, http.StatusAccepted, w.Code)

	select {
	case name := <-tagged:
		assert.Equal(t, "match.mp4", name)
	case <-time.After(5 * time.Second):
		t.Fatal("uploaded video was not tagged")
	}

	data, err := os.ReadFile(filepath.Join(root, "source", "match.mp4"))
	require.NoError(t, err)
	assert.Equal(t, "video", string(data))

	//same name twice is refused
	w = httptest.NewRecorder()
	r.ServeHTTP(w, newUploadRequest(t, "match.mp4", []byte("video")))
	assert.Equal(t, http.StatusNotAcceptable, w.Code)

	names, err := utils.ListDir(filepath.Join(root, "source"))
	require.NoError(t, err)
	assert.Equal(t, []string{"match.mp4"}, names)
}

func TestPlay(t *testing.T) {
	root := setupConfig(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "ready", "match.mp4"), []byte("tagged"), 0644))

	r := setRouter(&fakeSessions{}, func(string, video.SessionRecorder) {})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/Play?name=match&analyzed=true", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "tagged", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/Play?name=match&analyzed=false", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/Play?name=match", nil))
	assert.Equal(t, http.StatusNotAcceptable, w.Code)
}
