// Package tracking selects the two main players of every frame, keeps their
// trajectories and turns the most recent positions into a density map.
package tracking

import (
	"fmt"
	"image"
)

//Identity is one of the two fixed player slots
type Identity int

const (
	Player1 Identity = iota
	Player2
)

//NumIdentities is the number of player slots, there is never a third one
const NumIdentities = 2

//Identities lists the player slots in rank order
var Identities = [NumIdentities]Identity{Player1, Player2}

//Valid returns true for Player1 and Player2
func (id Identity) Valid() bool {
	return id >= Player1 && id < NumIdentities
}

//String returns the identity key used for file names and JSON ("player1", "player2")
func (id Identity) String() string {
	if !id.Valid() {
		return fmt.Sprintf("identity(%d)", int(id))
	}

	return fmt.Sprintf("player%d", int(id)+1)
}

//Label returns the text plotted above the player's bounding box ("Player1", "Player2")
func (id Identity) Label() string {
	if !id.Valid() {
		return id.String()
	}

	return fmt.Sprintf("Player%d", int(id)+1)
}

//Detection is a single raw object returned by the detector for one frame.
//Box is kept exactly as reported (it is not canonicalized), so a degenerate box has a non-positive width or height.
type Detection struct {
	ClassID    int
	Confidence float32
	Box        image.Rectangle
}

//Candidate is a detection that passed the person class and minimum size filters for the current frame
type Candidate struct {
	Box      image.Rectangle
	Area     int
	Centroid image.Point
}

//Player is a candidate that got a player slot in the current frame
type Player struct {
	Identity Identity
	Box      image.Rectangle
	Centroid image.Point
}
