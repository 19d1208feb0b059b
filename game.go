package main

import (
	"errors"
	"sync"
	"time"

	"github.com/bodul/puzzlepack/puzzle"
)

var (
	errOutOfBounds   = errors.New("cell out of bounds")
	errNotLetterCell = errors.New("cell is not part of an entry")
)

// Player represents a connected player.
type Player struct {
	Pseudo   string    `json:"pseudo"`
	Color    string    `json:"color"`
	JoinedAt time.Time `json:"joined_at"`
}

// Clue is a crossword entry without its answer.
type Clue struct {
	Number    int              `json:"number"`
	Direction puzzle.Direction `json:"direction"`
	Row       int              `json:"row"`
	Col       int              `json:"col"`
	Length    int              `json:"length"`
	ClueType  puzzle.ClueType  `json:"clue_type"`
	ClueText  string           `json:"clue_text"`
}

// CrosswordLayout is what players see: which cells take a letter, and the clues.
type CrosswordLayout struct {
	Rows  int      `json:"rows"`
	Cols  int      `json:"cols"`
	Open  [][]bool `json:"open"`
	Clues []Clue   `json:"clues"`
}

// NewCrosswordLayout hides the answers of g.
func NewCrosswordLayout(g puzzle.CrosswordGrid) CrosswordLayout {
	open := make([][]bool, g.Rows)
	for r := range open {
		open[r] = make([]bool, g.Cols)
		for c := range open[r] {
			open[r][c] = g.IsLetterCell(r, c)
		}
	}
	clues := make([]Clue, 0, len(g.PlacedWords))
	for _, d := range []puzzle.Direction{puzzle.Across, puzzle.Down} {
		for _, w := range g.Clues(d) {
			clues = append(clues, Clue{
				Number:    w.Number,
				Direction: w.Direction,
				Row:       w.Row,
				Col:       w.Col,
				Length:    len([]rune(w.Word)),
				ClueType:  w.ClueType,
				ClueText:  w.ClueText,
			})
		}
	}
	return CrosswordLayout{Rows: g.Rows, Cols: g.Cols, Open: open, Clues: clues}
}

// CheckResult is the outcome of a self-check.
type CheckResult struct {
	Wrong    []puzzle.Position `json:"wrong"`
	Filled   int               `json:"filled"`
	Total    int               `json:"total"`
	Complete bool              `json:"complete"`
}

// GameSession is a collaborative fill-in of one crossword.
type GameSession struct {
	ID         string             `json:"id"`
	ActivityID string             `json:"activity_id"`
	Players    map[string]*Player `json:"players"`
	State      [][]string         `json:"state"` // current letters [row][col]
	CreatedAt  time.Time          `json:"created_at"`

	solution puzzle.CrosswordGrid
	solved   bool
	mu       sync.Mutex
}

// playerColors is the palette assigned to players in order.
var playerColors = []string{
	"#2563eb", "#dc2626", "#16a34a", "#9333ea",
	"#ea580c", "#0891b2", "#c026d3", "#ca8a04",
}

// NewGameSession starts an empty session on solution.
func NewGameSession(id, activityID string, solution puzzle.CrosswordGrid) *GameSession {
	state := make([][]string, solution.Rows)
	for i := range state {
		state[i] = make([]string, solution.Cols)
	}
	return &GameSession{
		ID:         id,
		ActivityID: activityID,
		Players:    make(map[string]*Player),
		State:      state,
		CreatedAt:  time.Now(),
		solution:   solution,
	}
}

// Layout returns the blank grid and the clues of the session.
func (g *GameSession) Layout() CrosswordLayout {
	return NewCrosswordLayout(g.solution)
}

// AddPlayer adds a player to the session and returns the player.
func (g *GameSession) AddPlayer(pseudo string) *Player {
	g.mu.Lock()
	defer g.mu.Unlock()

	if p, ok := g.Players[pseudo]; ok {
		return p
	}

	p := &Player{
		Pseudo:   pseudo,
		Color:    playerColors[len(g.Players)%len(playerColors)],
		JoinedAt: time.Now(),
	}
	g.Players[pseudo] = p
	return p
}

// RemovePlayer removes a player from the session.
func (g *GameSession) RemovePlayer(pseudo string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.Players, pseudo)
}

// PlayerList returns a copy of the players, safe to encode while others join.
func (g *GameSession) PlayerList() []Player {
	g.mu.Lock()
	defer g.mu.Unlock()

	list := make([]Player, 0, len(g.Players))
	for _, p := range g.Players {
		list = append(list, *p)
	}
	return list
}

// SetCell writes a letter, or erases with "", in a letter cell.
func (g *GameSession) SetCell(row, col int, value string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.setCell(row, col, value)
}

// Play is SetCell for a player move. solved is true only for the move that
// completes the grid; moves on an already complete grid report false.
func (g *GameSession) Play(row, col int, value string) (solved bool, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.setCell(row, col, value); err != nil {
		return false, err
	}
	complete := g.check().Complete
	solved = complete && !g.solved
	g.solved = complete
	return solved, nil
}

func (g *GameSession) setCell(row, col int, value string) error {
	if row < 0 || row >= len(g.State) || col < 0 || col >= len(g.State[row]) {
		return errOutOfBounds
	}
	if !g.solution.IsLetterCell(row, col) {
		return errNotLetterCell
	}
	g.State[row][col] = value
	return nil
}

// GetState returns a copy of the current game state.
func (g *GameSession) GetState() [][]string {
	g.mu.Lock()
	defer g.mu.Unlock()

	cp := make([][]string, len(g.State))
	for i, row := range g.State {
		cp[i] = make([]string, len(row))
		copy(cp[i], row)
	}
	return cp
}

// Check compares the filled letters with the solution. Empty cells are not
// counted as wrong.
func (g *GameSession) Check() CheckResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.check()
}

func (g *GameSession) check() CheckResult {
	res := CheckResult{Wrong: []puzzle.Position{}}
	for r, row := range g.solution.Cells {
		for c, want := range row {
			if want == "" {
				continue
			}
			res.Total++
			got := g.State[r][c]
			if got == "" {
				continue
			}
			res.Filled++
			if got != want {
				res.Wrong = append(res.Wrong, puzzle.Position{Row: r, Col: c})
			}
		}
	}
	res.Complete = res.Total > 0 && res.Filled == res.Total && len(res.Wrong) == 0
	return res
}
