package tracking

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidate(area, cx, cy int) Candidate {
	return Candidate{
		Box:      box(cx-10, cy-10, cx+10, cy+10),
		Area:     area,
		Centroid: image.Pt(cx, cy),
	}
}

func TestRankByArea(t *testing.T) {
	t.Run("largest two win", func(t *testing.T) {
		candidates := []Candidate{
			candidate(500, 100, 100),
			candidate(900, 200, 200),
			candidate(300, 300, 300),
		}

		players := RankByArea(candidates)
		require.Len(t, players, 2)
		assert.Equal(t, Player1, players[0].Identity)
		assert.Equal(t, image.Pt(200, 200), players[0].Centroid)
		assert.Equal(t, Player2, players[1].Identity)
		assert.Equal(t, image.Pt(100, 100), players[1].Centroid)

		//input untouched
		assert.Equal(t, 500, candidates[0].Area)
	})

	t.Run("single candidate", func(t *testing.T) {
		players := RankByArea([]Candidate{candidate(100, 1, 1)})
		require.Len(t, players, 1)
		assert.Equal(t, Player1, players[0].Identity)
	})

	t.Run("no candidates", func(t *testing.T) {
		assert.Empty(t, RankByArea(nil))
	})

	t.Run("ties keep encounter order", func(t *testing.T) {
		players := RankByArea([]Candidate{
			candidate(100, 1, 1),
			candidate(400, 2, 2),
			candidate(400, 3, 3),
			candidate(400, 4, 4),
		})
		require.Len(t, players, 2)
		assert.Equal(t, image.Pt(2, 2), players[0].Centroid)
		assert.Equal(t, image.Pt(3, 3), players[1].Centroid)
	})

	t.Run("deterministic", func(t *testing.T) {
		candidates := []Candidate{
			candidate(700, 5, 5),
			candidate(700, 6, 6),
			candidate(800, 7, 7),
		}
		first := RankByArea(candidates)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, RankByArea(candidates))
		}
	})
}

func TestSelector_Select(t *testing.T) {
	store := NewStore()
	selector := NewSelector(store)

	players := selector.Select([]Candidate{
		candidate(500, 100, 100),
		candidate(900, 200, 200),
		candidate(300, 300, 300),
	})
	require.Len(t, players, 2)

	assert.Equal(t, []image.Point{{X: 200, Y: 200}}, store.Recent(Player1, 30))
	assert.Equal(t, []image.Point{{X: 100, Y: 100}}, store.Recent(Player2, 30))

	//empty frame records nothing
	assert.Empty(t, selector.Select(nil))
	assert.Equal(t, 1, store.Len(Player1))
	assert.Equal(t, 1, store.Len(Player2))

	//a lone candidate only extends Player1
	selector.Select([]Candidate{candidate(50, 7, 8)})
	assert.Equal(t, 2, store.Len(Player1))
	assert.Equal(t, 1, store.Len(Player2))
	assert.Equal(t, image.Pt(7, 8), store.Recent(Player1, 1)[0])
}
