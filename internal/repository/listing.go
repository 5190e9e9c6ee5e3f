package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type MazeSummary struct {
	MazeSessionId int64              `json:"maze_session_id"`
	Username      *string            `json:"username"`
	Length        int                `json:"length"`
	Height        int                `json:"height"`
	Aerations     int                `json:"aerations"`
	Edges         int                `json:"edges"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
}

type Filters struct {
	PlayerId *int64
	Length   *int
	Height   *int
	Limit    int
}

type ListOption = func(*Filters) error

func WithPlayer(playerId int64) ListOption {
	return func(f *Filters) error {
		f.PlayerId = &playerId
		return nil
	}
}

func WithLength(length int) ListOption {
	return func(f *Filters) error {
		if length <= 0 {
			return fmt.Errorf("invalid length %d", length)
		}
		f.Length = &length
		return nil
	}
}

func WithHeight(height int) ListOption {
	return func(f *Filters) error {
		if height <= 0 {
			return fmt.Errorf("invalid height %d", height)
		}
		f.Height = &height
		return nil
	}
}

func WithLimit(limit int) ListOption {
	return func(f *Filters) error {
		if limit <= 0 {
			return fmt.Errorf("invalid limit %d", limit)
		}
		f.Limit = limit
		return nil
	}
}

const defaultLimit = 50

func NewFilters(opts ...ListOption) (*Filters, error) {
	f := &Filters{Limit: defaultLimit}
	for _, op := range opts {
		if err := op(f); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func (f Filters) WhereClause() (string, pgx.NamedArgs) {
	clauses := make([]string, 0)
	args := pgx.NamedArgs{}
	if f.PlayerId != nil {
		clauses = append(clauses, "player_id = @player_id")
		args["player_id"] = *f.PlayerId
	}
	if f.Length != nil {
		clauses = append(clauses, "length = @length")
		args["length"] = *f.Length
	}
	if f.Height != nil {
		clauses = append(clauses, "height = @height")
		args["height"] = *f.Height
	}
	return strings.Join(clauses, " AND "), args
}

func (q *Queries) ListMazeSessions(
	ctx context.Context, opts ...ListOption,
) ([]MazeSummary, error) {
	filters, err := NewFilters(opts...)
	if err != nil {
		return nil, err
	}

	query := `
	SELECT
		maze_session_id,
		username,
		length,
		height,
		aerations,
		edges,
		maze_session.created_at
	FROM maze_session
		LEFT OUTER JOIN player USING (player_id)
	`

	whereClause, args := filters.WhereClause()
	if whereClause != "" {
		query += " WHERE " + whereClause
	}
	query += " ORDER BY maze_session_id DESC LIMIT @limit;"
	args["limit"] = filters.Limit

	rows, err := q.db.Query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[MazeSummary])
}
