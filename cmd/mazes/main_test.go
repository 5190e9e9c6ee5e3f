package main

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"io"
	"os"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/maze-server/internal/config"
	"github.com/vancomm/maze-server/internal/maze"
	"github.com/vancomm/maze-server/internal/repository"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	maze.Log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// memStore keeps players and sessions in maps.
type memStore struct {
	mu       sync.Mutex
	players  map[string]*repository.Player
	sessions map[int64]*repository.MazeSession
	lastId   int64
}

func newMemStore() *memStore {
	return &memStore{
		players:  make(map[string]*repository.Player),
		sessions: make(map[int64]*repository.MazeSession),
	}
}

func (s *memStore) nextId() int64 {
	s.lastId++
	return s.lastId
}

func now() pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: time.Now(), Valid: true}
}

func (s *memStore) CreatePlayer(ctx context.Context, params repository.CreatePlayerParams) (*repository.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.players[params.Username]; ok {
		return nil, &pgconn.PgError{Code: pgerrcode.UniqueViolation}
	}
	p := &repository.Player{
		PlayerId:     s.nextId(),
		Username:     params.Username,
		PasswordHash: params.PasswordHash,
		CreatedAt:    now(),
		UpdatedAt:    now(),
	}
	s.players[p.Username] = p
	return p, nil
}

func (s *memStore) FetchPlayer(ctx context.Context, username string) (*repository.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.players[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return p, nil
}

func (s *memStore) CreateMazeSession(ctx context.Context, state *maze.State, params repository.CreateMazeSessionParams) (*repository.MazeSession, error) {
	data, err := state.Bytes()
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	row := &repository.MazeSession{
		MazeSessionId: s.nextId(),
		PlayerId:      params.PlayerId,
		Length:        state.Grid.Length,
		Height:        state.Grid.Height,
		Seed:          int64(state.Seed),
		Aerations:     state.Aerations,
		Edges:         state.Grid.Edges(),
		State:         data,
		CreatedAt:     now(),
		UpdatedAt:     now(),
	}
	s.sessions[row.MazeSessionId] = row
	copied := *row
	return &copied, nil
}

func (s *memStore) FetchMazeSession(ctx context.Context, id int64) (*repository.MazeSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.sessions[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *row
	return &copied, nil
}

func (s *memStore) UpdateMazeSession(ctx context.Context, id int64, params repository.UpdateMazeSessionParams) (*repository.MazeSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.sessions[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if params.Aerations != nil {
		row.Aerations = *params.Aerations
	}
	if params.Edges != nil {
		row.Edges = *params.Edges
	}
	if params.State != nil {
		row.State = *params.State
	}
	row.UpdatedAt = now()
	copied := *row
	return &copied, nil
}

func (s *memStore) ListMazeSessions(ctx context.Context, opts ...repository.ListOption) ([]repository.MazeSummary, error) {
	f, err := repository.NewFilters(opts...)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	usernames := make(map[int64]string)
	for _, p := range s.players {
		usernames[p.PlayerId] = p.Username
	}
	var summaries []repository.MazeSummary
	for _, row := range s.sessions {
		if f.PlayerId != nil && (row.PlayerId == nil || *row.PlayerId != *f.PlayerId) {
			continue
		}
		if f.Length != nil && row.Length != *f.Length {
			continue
		}
		if f.Height != nil && row.Height != *f.Height {
			continue
		}
		summary := repository.MazeSummary{
			MazeSessionId: row.MazeSessionId,
			Length:        row.Length,
			Height:        row.Height,
			Aerations:     row.Aerations,
			Edges:         row.Edges,
			CreatedAt:     row.CreatedAt,
		}
		if row.PlayerId != nil {
			username := usernames[*row.PlayerId]
			summary.Username = &username
		}
		summaries = append(summaries, summary)
	}
	slices.SortFunc(summaries, func(a, b repository.MazeSummary) int {
		return int(b.MazeSessionId - a.MazeSessionId)
	})
	if len(summaries) > f.Limit {
		summaries = summaries[:f.Limit]
	}
	return summaries, nil
}

func newTestApp(t *testing.T) *application {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	cfg := config.Default()
	cfg.Maze = config.MazeConfig{MaxLength: 50, MaxHeight: 50, MaxAerations: 100}
	return &application{
		cfg:      cfg,
		store:    newMemStore(),
		cookies:  config.NewCookies(*cfg, config.NewJWTFromKeys(key, &key.PublicKey, time.Hour)),
		upgrader: config.NewUpgrader(*cfg),
	}
}
