package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/vancomm/maze-server/internal/maze"
)

type MazeSession struct {
	MazeSessionId int64
	PlayerId      *int64
	Length        int
	Height        int
	Seed          int64
	Aerations     int
	Edges         int
	State         []byte
	CreatedAt     pgtype.Timestamptz
	UpdatedAt     pgtype.Timestamptz
}

// Maze decodes the stored grid.
func (s MazeSession) Maze() (*maze.State, error) {
	return maze.DecodeState(s.State)
}

// Foreign reports whether the session belongs to a player other than playerId.
// Anonymous sessions are never foreign.
func (s MazeSession) Foreign(playerId *int64) bool {
	if s.PlayerId == nil {
		return false
	}
	return playerId == nil || *playerId != *s.PlayerId
}

type CreateMazeSessionParams struct {
	PlayerId *int64
}

func (p CreateMazeSessionParams) UpdateArgs(args pgx.NamedArgs) pgx.NamedArgs {
	if p.PlayerId != nil {
		args["player_id"] = *p.PlayerId
	} else {
		args["player_id"] = nil
	}
	return args
}

func (q *Queries) CreateMazeSession(
	ctx context.Context, state *maze.State, params CreateMazeSessionParams,
) (*MazeSession, error) {
	data, err := state.Bytes()
	if err != nil {
		return nil, err
	}

	args := params.UpdateArgs(pgx.NamedArgs{
		"length":    state.Grid.Length,
		"height":    state.Grid.Height,
		"seed":      int64(state.Seed),
		"aerations": state.Aerations,
		"edges":     state.Grid.Edges(),
		"state":     data,
	})

	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO maze_session (
			player_id, length, height, seed, aerations, edges, state
		)
		VALUES (
			@player_id, @length, @height, @seed, @aerations, @edges, @state
		)
		RETURNING *;`,
		args,
	)
	return pgx.CollectExactlyOneRow(
		rows, pgx.RowToAddrOfStructByName[MazeSession],
	)
}

func (q *Queries) FetchMazeSession(ctx context.Context, mazeSessionId int64) (*MazeSession, error) {
	rows, _ := q.db.Query(
		ctx,
		"SELECT * FROM maze_session WHERE maze_session_id = $1",
		mazeSessionId,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[MazeSession])
}

type UpdateMazeSessionParams struct {
	Aerations *int
	Edges     *int
	State     *[]byte
}

// StateParams fills every column derived from state.
func StateParams(state *maze.State) (UpdateMazeSessionParams, error) {
	data, err := state.Bytes()
	if err != nil {
		return UpdateMazeSessionParams{}, err
	}
	edges := state.Grid.Edges()
	return UpdateMazeSessionParams{
		Aerations: &state.Aerations,
		Edges:     &edges,
		State:     &data,
	}, nil
}

func (p UpdateMazeSessionParams) SetClause() (string, pgx.NamedArgs) {
	parts := []string{"updated_at = now()"}
	args := pgx.NamedArgs{}

	if p.Aerations != nil {
		parts = append(parts, "aerations = @aerations")
		args["aerations"] = *p.Aerations
	}
	if p.Edges != nil {
		parts = append(parts, "edges = @edges")
		args["edges"] = *p.Edges
	}
	if p.State != nil {
		parts = append(parts, "state = @state")
		args["state"] = *p.State
	}

	return strings.Join(parts, ", "), args
}

func (q *Queries) UpdateMazeSession(
	ctx context.Context, mazeSessionId int64, params UpdateMazeSessionParams,
) (*MazeSession, error) {
	setClause, args := params.SetClause()
	args["maze_session_id"] = mazeSessionId
	rows, _ := q.db.Query(
		ctx,
		"UPDATE maze_session SET "+setClause+" WHERE maze_session_id = @maze_session_id RETURNING *",
		args,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[MazeSession])
}
