package tracking

import "sort"

//RankByArea returns at most NumIdentities players: the largest candidate is Player1, the second largest Player2.
//Candidates with equal areas keep their original order. Given slice is not modified.
func RankByArea(candidates []Candidate) []Player {
	ranked := make([]Candidate, len(candidates))
	copy(ranked, candidates)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Area > ranked[j].Area
	})

	if len(ranked) > NumIdentities {
		ranked = ranked[:NumIdentities]
	}

	players := make([]Player, 0, len(ranked))
	for i, c := range ranked {
		players = append(players, Player{
			Identity: Identities[i],
			Box:      c.Box,
			Centroid: c.Centroid,
		})
	}

	return players
}

//Selector assigns player slots to the candidates of each frame and records the selected positions
type Selector struct {
	store *Store
}

//NewSelector returns a selector recording into given store
func NewSelector(store *Store) *Selector {
	return &Selector{store: store}
}

//Select ranks given candidates of the current frame (see RankByArea) and appends the centroid of every
//selected player to its trajectory. No candidates is a valid frame: nothing is returned and nothing is recorded.
func (s *Selector) Select(candidates []Candidate) []Player {
	players := RankByArea(candidates)
	for _, p := range players {
		s.store.Append(p.Identity, p.Centroid)
	}

	return players
}

//Store returns the store the selector records into
func (s *Selector) Store() *Store {
	return s.store
}
