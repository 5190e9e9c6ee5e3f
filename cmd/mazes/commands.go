package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vancomm/maze-server/internal/maze"
)

var errCommand = errors.New("invalid command")

// Maps known commands to the accepted numbers of arguments
var commandNargs = map[string][]int{
	"a": {1},    // aerate n
	"u": {1},    // aerate n, uniform over all walls
	"s": {0, 2}, // solve [start finish]
	"r": {0, 2}, // shortest route [start finish]
	"p": {0},    // print
}

type reply struct {
	Command string `json:"command"`
	Opened  *int   `json:"opened,omitempty"`
	Trace   []int  `json:"trace,omitempty"`
	Route   []int  `json:"route,omitempty"`
	Text    string `json:"text,omitempty"`
	Error   string `json:"error,omitempty"`
}

func parseInts(strs []string) ([]int, error) {
	ints := make([]int, len(strs))
	for i, s := range strs {
		v, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("%w: argument %d must be an int", errCommand, i+1)
		}
		ints[i] = v
	}
	return ints, nil
}

func endpoints(args []int) []maze.SolveOption {
	if len(args) != 2 {
		return nil
	}
	return []maze.SolveOption{maze.From(args[0]), maze.To(args[1])}
}

// executeCommand runs c against s. The reply is filled in as far as the
// command got, including a partial aeration.
func executeCommand(s *maze.State, c string, maxAerations int) (r reply, err error) {
	r.Command = c
	parts := strings.Fields(c)
	if len(parts) == 0 {
		return r, fmt.Errorf("%w: empty", errCommand)
	}
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return r, fmt.Errorf("%w: unknown command %q", errCommand, parts[0])
	}
	args, err := parseInts(parts[1:])
	if err != nil {
		return r, err
	}
	valid := false
	for _, n := range nargs {
		valid = valid || n == len(args)
	}
	if !valid {
		return r, fmt.Errorf("%w: invalid number of arguments", errCommand)
	}

	switch parts[0] {
	case "a", "u":
		n := args[0]
		if n > maxAerations {
			return r, fmt.Errorf("%w: at most %d walls per command", errTooLarge, maxAerations)
		}
		var opts []maze.AerateOption
		if parts[0] == "u" {
			opts = append(opts, maze.UniformWalls())
		}
		opened, err := s.Aerate(n, opts...)
		r.Opened = &opened
		return r, err
	case "s":
		r.Trace, err = maze.Solve(&s.Grid, endpoints(args)...)
		return r, err
	case "r":
		r.Route, err = maze.ShortestPath(&s.Grid, endpoints(args)...)
		return r, err
	case "p":
		r.Text = s.Grid.String()
		return r, nil
	}
	return r, errCommand
}

type batchResult struct {
	Session *MazeSession `json:"session"`
	Replies []reply      `json:"replies"`
}

// executeBatch runs newline separated commands until one fails. It reports
// whether the maze changed so callers know to persist it.
func executeBatch(s *maze.State, text string, maxAerations int) (replies []reply, changed bool, err error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, false, fmt.Errorf("%w: empty", errCommand)
	}
	for _, c := range byPiece(text, "\n") {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		r, err := executeCommand(s, c, maxAerations)
		if r.Opened != nil && *r.Opened > 0 {
			changed = true
		}
		if err != nil {
			r.Error = err.Error()
			replies = append(replies, r)
			return replies, changed, err
		}
		replies = append(replies, r)
	}
	return replies, changed, nil
}
