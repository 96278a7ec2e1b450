// Package db keeps the history of tracking sessions in sqlite.
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

//ErrSessionNotFound is returned when no session with given id was recorded
var ErrSessionNotFound = errors.New("session not found")

//DB is the sessions repository
type DB struct {
	*sql.DB
}

//Session is one finished run over a video
type Session struct {
	ID               string    `json:"id"`
	Video            string    `json:"video"`
	StartedAt        time.Time `json:"started_at"`
	FinishedAt       time.Time `json:"finished_at"`
	FramesProcessed  int       `json:"frames_processed"`
	Player1Positions int       `json:"player1_positions"`
	Player2Positions int       `json:"player2_positions"`
	ResultsDir       string    `json:"results_dir"`
}

//NewDB opens the sqlite database at path and creates the sessions table when missing
func NewDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("NewDB: Could not open '%s': %w", path, err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			video TEXT NOT NULL,
			started_at INTEGER NOT NULL,
			finished_at INTEGER NOT NULL,
			frames_processed INTEGER NOT NULL,
			player1_positions INTEGER NOT NULL,
			player2_positions INTEGER NOT NULL,
			results_dir TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("NewDB: Could not create sessions table in '%s': %w", path, err)
	}

	return &DB{db}, nil
}

//RecordSession stores a finished session
func (db *DB) RecordSession(s Session) error {
	_, err := db.Exec(`INSERT INTO sessions (id, video, started_at, finished_at, frames_processed, player1_positions, player2_positions, results_dir)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.Video, s.StartedAt.UnixNano(), s.FinishedAt.UnixNano(), s.FramesProcessed, s.Player1Positions, s.Player2Positions, s.ResultsDir)
	if err != nil {
		return fmt.Errorf("RecordSession: %w", err)
	}
	return nil
}

//Sessions returns all recorded sessions, most recently started first
func (db *DB) Sessions() ([]Session, error) {
	rows, err := db.Query(`SELECT id, video, started_at, finished_at, frames_processed, player1_positions, player2_positions, results_dir
		FROM sessions ORDER BY started_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]Session, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}

	return sessions, rows.Err()
}

//Session returns the session with given id
func (db *DB) Session(id string) (Session, error) {
	row := db.QueryRow(`SELECT id, video, started_at, finished_at, frames_processed, player1_positions, player2_positions, results_dir
		FROM sessions WHERE id = ?`, id)

	s, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, fmt.Errorf("Session %q: %w", id, ErrSessionNotFound)
	}

	return s, err
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSession(row scanner) (Session, error) {
	var s Session
	var started, finished int64
	if err := row.Scan(&s.ID, &s.Video, &started, &finished, &s.FramesProcessed, &s.Player1Positions, &s.Player2Positions, &s.ResultsDir); err != nil {
		return Session{}, err
	}

	s.StartedAt = time.Unix(0, started).UTC()
	s.FinishedAt = time.Unix(0, finished).UTC()
	return s, nil
}
