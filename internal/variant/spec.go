// Package variant describes Hanabi-family suit/variant catalogs.
//
// A VariantSpec is read-only once loaded and may be shared across
// concurrent solves; it carries no mutable state.
package variant

import "fmt"

// SuitSpec describes a single suit within a variant.
type SuitSpec struct {
	Name         string `json:"name"`
	ID           string `json:"id,omitempty"`
	Abbreviation string `json:"abbreviation,omitempty"`
	OneOfEach    bool   `json:"oneOfEach,omitempty"`
	Reversed     bool   `json:"reversed,omitempty"`
}

// Spec describes a Hanabi variant: its suits and the scoring/clue rules
// needed to build a Deck and to run the infeasibility solver.
type Spec struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	Suits        []SuitSpec `json:"suits"`
	ClueRanks    []int      `json:"clueRanks,omitempty"`
	StackSize    int        `json:"stackSize,omitempty"`
	Sudoku       bool       `json:"sudoku,omitempty"`
	UpOrDown     bool       `json:"upOrDown,omitempty"`
	CriticalRank int        `json:"criticalRank,omitempty"`
}

// NumSuits returns S, the number of suits in the variant.
func (s *Spec) NumSuits() int {
	return len(s.Suits)
}

// TopRank returns R, the top playable rank (5 unless StackSize overrides it).
func (s *Spec) TopRank() int {
	if s.StackSize > 0 {
		return s.StackSize
	}
	return 5
}

// MaxScore returns S*R, the maximum possible team score.
func (s *Spec) MaxScore() int {
	return s.NumSuits() * s.TopRank()
}

// SuitIndex returns the index of the suit matching name, abbreviation,
// or id (case-insensitively), or -1 if none match.
func (s *Spec) SuitIndex(token string) int {
	for i, suit := range s.Suits {
		if equalFold(suit.Abbreviation, token) || equalFold(suit.ID, token) || equalFold(suit.Name, token) {
			return i
		}
	}
	return -1
}

func equalFold(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

// NoVariant is the built-in "No Variant" five-suit catalog entry used
// whenever no catalog file is available yet.
func NoVariant() *Spec {
	return &Spec{
		ID:   0,
		Name: "No Variant",
		Suits: []SuitSpec{
			{Name: "Red", Abbreviation: "r"},
			{Name: "Yellow", Abbreviation: "y"},
			{Name: "Green", Abbreviation: "g"},
			{Name: "Blue", Abbreviation: "b"},
			{Name: "Purple", Abbreviation: "p"},
		},
		ClueRanks: []int{1, 2, 3, 4, 5},
		StackSize: 5,
	}
}

func (s SuitSpec) String() string {
	if s.Abbreviation != "" {
		return s.Abbreviation
	}
	if s.ID != "" {
		return s.ID
	}
	return s.Name
}

func (s *Spec) String() string {
	return fmt.Sprintf("%s (%d suits)", s.Name, s.NumSuits())
}
