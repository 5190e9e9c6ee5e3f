package maze

import (
	"bytes"
	"encoding/gob"
	"math/rand/v2"
)

// State is a maze together with what is needed to replay it: the seed it
// was carved from and the number of aeration batches applied since.
type State struct {
	Grid      Grid
	Seed      uint64
	Aerations int
}

// Rand returns the source for stream k of s. Stream 0 carves the maze,
// stream k > 0 drives the k-th aeration batch.
func (s *State) Rand(k int) *rand.Rand {
	return rand.New(rand.NewPCG(s.Seed, uint64(k)))
}

// New allocates a length x height grid and carves it from seed.
func New(length, height int, seed uint64, opts ...GenerateOption) (*State, error) {
	g, err := NewGrid(length, height)
	if err != nil {
		return nil, err
	}
	s := &State{Seed: seed}
	if err := Generate(g, s.Rand(0), opts...); err != nil {
		return nil, err
	}
	s.Grid = *g
	return s, nil
}

// Aerate removes n walls using a source derived from the seed and the number
// of batches applied so far, so replaying the same calls rebuilds the same maze.
func (s *State) Aerate(n int, opts ...AerateOption) (int, error) {
	opened, err := Aerate(&s.Grid, s.Rand(s.Aerations+1), n, opts...)
	if opened > 0 {
		s.Aerations++
	}
	return opened, err
}

func DecodeState(buf []byte) (*State, error) {
	var s State
	if err := gob.NewDecoder(bytes.NewBuffer(buf)).Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s State) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
