package main

import (
	"encoding/json"
	"strconv"

	"github.com/vancomm/maze-server/internal/maze"
	"github.com/vancomm/maze-server/internal/repository"
)

// MazeSession is a stored session with its decoded grid.
type MazeSession struct {
	*repository.MazeSession
	State *maze.State
}

func loadSession(s *repository.MazeSession) (*MazeSession, error) {
	state, err := s.Maze()
	if err != nil {
		return nil, err
	}
	return &MazeSession{s, state}, nil
}

type MazeSessionJSON struct {
	SessionId string `json:"session_id"`
	Owned     bool   `json:"owned"`
	Length    int    `json:"length"`
	Height    int    `json:"height"`
	Seed      string `json:"seed"`
	Aerations int    `json:"aerations"`
	Edges     int    `json:"edges"`
	// Walls holds one bitmask per cell, bit d set when direction d is a wall.
	Walls     []int  `json:"walls"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}

func wallMask(c *maze.Cell) (mask int) {
	for _, d := range maze.Directions {
		if c.Slot(d).State != maze.Link {
			mask |= 1 << d
		}
	}
	return
}

func (s MazeSession) MarshalJSON() ([]byte, error) {
	g := &s.State.Grid
	walls := make([]int, len(g.Cells))
	for i := range g.Cells {
		walls[i] = wallMask(&g.Cells[i])
	}
	return json.Marshal(MazeSessionJSON{
		SessionId: strconv.FormatInt(s.MazeSessionId, 10),
		Owned:     s.PlayerId != nil,
		Length:    g.Length,
		Height:    g.Height,
		Seed:      strconv.FormatUint(s.State.Seed, 10),
		Aerations: s.State.Aerations,
		Edges:     g.Edges(),
		Walls:     walls,
		CreatedAt: s.CreatedAt.Time.UnixMilli(),
		UpdatedAt: s.UpdatedAt.Time.UnixMilli(),
	})
}
