package tracking

import "image"

//Store keeps the full position history of both players.
//Positions are only added through Append, readers always get copies.
type Store struct {
	trajectories [NumIdentities][]image.Point
}

//NewStore returns an empty store
func NewStore() *Store {
	return &Store{}
}

//Append adds a position at the end of given player's trajectory. Unknown identities are ignored.
func (s *Store) Append(id Identity, centroid image.Point) {
	if !id.Valid() {
		return
	}

	s.trajectories[id] = append(s.trajectories[id], centroid)
}

//Recent returns up to window most recent positions of given player, oldest first
func (s *Store) Recent(id Identity, window int) []image.Point {
	if !id.Valid() || window <= 0 {
		return []image.Point{}
	}

	trajectory := s.trajectories[id]
	start := len(trajectory) - window
	if start < 0 {
		start = 0
	}

	recent := make([]image.Point, len(trajectory)-start)
	copy(recent, trajectory[start:])
	return recent
}

//Positions returns the whole trajectory of given player
func (s *Store) Positions(id Identity) []image.Point {
	if !id.Valid() {
		return []image.Point{}
	}

	return s.Recent(id, len(s.trajectories[id]))
}

//Len returns how many positions were recorded for given player
func (s *Store) Len(id Identity) int {
	if !id.Valid() {
		return 0
	}

	return len(s.trajectories[id])
}
