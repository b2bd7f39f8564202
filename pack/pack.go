package pack

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"log"
	"math"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/milk9111/cursorpal/component"
)

// Frame is the size of one sheet cell in pixels.
type Frame struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// RowTable maps facings to the sheet row authored for them. It may cover only
// some of the eight facings.
type RowTable map[component.Direction]int

// Distinct returns how many different rows the table references, never less
// than 1.
func (t RowTable) Distinct() int {
	seen := make(map[int]struct{}, len(t))
	for _, r := range t {
		seen[r] = struct{}{}
	}
	if len(seen) == 0 {
		return 1
	}
	return len(seen)
}

// State describes one animation (idle, walk, sleep) of a pack.
type State struct {
	Sheet  string
	Frame  Frame
	FPS    float64
	Frames int
	Rows   RowTable

	// AuthoredFrame is the frame size written in the descriptor. It is only a
	// hint; Frame is recomputed from the decoded sheet.
	AuthoredFrame Frame
	// SheetPath is the asset path the sheet resolves to.
	SheetPath string
	// SheetSize is the decoded sheet size, zero if it failed to decode.
	SheetSize image.Point

	legacyRowCount int
}

type stateJSON struct {
	Sheet  string          `json:"sheet"`
	Frame  Frame           `json:"frame"`
	FPS    float64         `json:"fps"`
	Frames int             `json:"frames"`
	Rows   json.RawMessage `json:"rows"`
	Row    *int            `json:"row"`
}

// UnmarshalJSON accepts both the direction table form of "rows" and the
// older form where "rows" is the sheet's row count and "row" picks one row.
func (s *State) UnmarshalJSON(data []byte) error {
	var raw stateJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.Sheet = raw.Sheet
	s.Frame = raw.Frame
	s.AuthoredFrame = raw.Frame
	s.FPS = raw.FPS
	s.Frames = raw.Frames
	s.Rows = RowTable{}
	s.legacyRowCount = 0

	rows := bytes.TrimSpace(raw.Rows)
	switch {
	case len(rows) == 0 || bytes.Equal(rows, []byte("null")):
	case rows[0] == '{':
		var table map[string]int
		if err := json.Unmarshal(rows, &table); err != nil {
			return fmt.Errorf("rows: %w", err)
		}
		for k, v := range table {
			s.Rows[component.Direction(k)] = v
		}
	default:
		var count int
		if err := json.Unmarshal(rows, &count); err != nil {
			return fmt.Errorf("rows: %w", err)
		}
		s.legacyRowCount = count
	}
	if len(s.Rows) == 0 && raw.Row != nil {
		s.Rows[component.Front] = *raw.Row
	}
	return nil
}

// DistinctRows is the number of sheet rows the cell height is derived from.
func (s *State) DistinctRows() int {
	if s.legacyRowCount > 0 {
		return s.legacyRowCount
	}
	return s.Rows.Distinct()
}

func (s *State) validate() error {
	if s == nil {
		return fmt.Errorf("state is null")
	}
	if strings.TrimSpace(s.Sheet) == "" {
		return fmt.Errorf("sheet is required")
	}
	if s.Frames < 1 {
		return fmt.Errorf("frames must be at least 1, got %d", s.Frames)
	}
	if s.FPS <= 0 || math.IsNaN(s.FPS) || math.IsInf(s.FPS, 0) {
		return fmt.Errorf("fps must be a positive number, got %v", s.FPS)
	}
	for dir, row := range s.Rows {
		if !dir.Valid() {
			return fmt.Errorf("unknown direction %q in rows", dir)
		}
		if row < 0 {
			return fmt.Errorf("row for %s must not be negative, got %d", dir, row)
		}
	}
	return nil
}

// Generation is the pack's generation tag. Descriptors write it either as a
// string or a number.
type Generation string

func (g *Generation) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*g = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*g = Generation(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("generation: %w", err)
	}
	*g = Generation(n.String())
	return nil
}

// Pack is one animated skin: its states, sheets and facing rows.
type Pack struct {
	ID          string                         `json:"-"`
	Name        string                         `json:"name"`
	Generation  Generation                     `json:"generation"`
	RawPath     string                         `json:"rawPath"`
	FlipX       bool                           `json:"flipX"`
	States      map[component.StateName]*State `json:"states"`
	SheetErrors map[component.StateName]error  `json:"-"`
}

// Decode parses a pack descriptor and validates it. id is the index id the
// descriptor was read under.
func Decode(id string, data []byte) (*Pack, error) {
	var p Pack
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse descriptor: %w", err)
	}
	p.ID = id
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks that idle and walk exist and are playable. A malformed
// optional state is dropped rather than failing the pack.
func (p *Pack) Validate() error {
	if p == nil {
		return fmt.Errorf("%w: pack is nil", ErrMissingState)
	}
	for _, name := range []component.StateName{component.StateIdle, component.StateWalk} {
		st, ok := p.States[name]
		if !ok || st == nil {
			return fmt.Errorf("%w: %s", ErrMissingState, name)
		}
		if err := st.validate(); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidState, name, err)
		}
	}
	for _, name := range p.StateNames() {
		if name.Required() {
			continue
		}
		if err := p.States[name].validate(); err != nil {
			log.Printf("pack: %s: dropping state %s: %v", p.ID, name, err)
			delete(p.States, name)
		}
	}
	return nil
}

// State returns the named state if the pack defines it.
func (p *Pack) State(name component.StateName) (*State, bool) {
	if p == nil {
		return nil, false
	}
	st, ok := p.States[name]
	return st, ok && st != nil
}

func (p *Pack) HasState(name component.StateName) bool {
	_, ok := p.State(name)
	return ok
}

// StateNames returns the defined state names in a stable order.
func (p *Pack) StateNames() []component.StateName {
	if p == nil {
		return nil
	}
	names := make([]component.StateName, 0, len(p.States))
	for name := range p.States {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Slug is the last segment of the pack id, e.g. "009-blastoise" for
// "retro/009-blastoise".
func Slug(id string) string {
	return path.Base(strings.TrimSuffix(id, "/"))
}

// SheetPath resolves a state's sheet file to an asset path. Sheets live under
// the pack's rawPath, or raw/<slug> when the descriptor does not set one.
func (p *Pack) SheetPath(sheet string) string {
	dir := strings.TrimPrefix(path.Clean("/"+p.RawPath), "/")
	dir = strings.TrimPrefix(dir, "assets/")
	if dir == "" || dir == "." {
		dir = path.Join("raw", Slug(p.ID))
	}
	return path.Join(dir, sheet)
}

// DexNumber parses the leading number of a slug such as "009-blastoise".
func DexNumber(slug string) (int, bool) {
	head, _, _ := strings.Cut(slug, "-")
	n, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil {
		return 0, false
	}
	return n, true
}
