package domain

import (
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// CreatedAtLayout is the timestamp format persisted in Note.CreatedAt
const CreatedAtLayout = "2006-01-02T15:04:05.000Z"

// ErrEmptyText is returned when a note is created from blank text
var ErrEmptyText = errors.New("note text is empty")

// Creator builds new notes. The identifier and clock sources are
// injectable so tests can supply fixed values.
type Creator struct {
	NewID func() string
	Now   func() time.Time
}

// NewCreator returns a Creator backed by uuid and the system clock
func NewCreator() *Creator {
	return &Creator{NewID: uuid.NewString, Now: time.Now}
}

// New creates a note from text, trimming surrounding whitespace.
// Text that is empty after trimming is rejected with ErrEmptyText.
func (c *Creator) New(text string) (Note, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Note{}, ErrEmptyText
	}
	return Note{
		ID:        c.NewID(),
		Text:      text,
		Done:      false,
		CreatedAt: c.Now().UTC().Format(CreatedAtLayout),
	}, nil
}

// Toggle returns a copy of the note with the done flag negated
func Toggle(n Note) Note {
	n.Done = !n.Done
	return n
}

// Search returns the notes whose text contains the trimmed query as a
// case-insensitive substring, preserving order. An empty query returns
// the input unchanged.
func Search(notes []Note, query string) []Note {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return notes
	}
	var out []Note
	for _, n := range notes {
		if strings.Contains(strings.ToLower(n.Text), q) {
			out = append(out, n)
		}
	}
	return out
}

// Sort returns a new slice ordered by the given criterion. The input
// slice is never reordered. Sorting is stable, so equal keys keep
// their original relative order.
func Sort(notes []Note, by SortBy) []Note {
	out := make([]Note, len(notes))
	copy(out, notes)

	switch by {
	case SortByAlpha:
		cl := collate.New(language.Und)
		sort.SliceStable(out, func(i, j int) bool {
			return cl.CompareString(out[i].Text, out[j].Text) < 0
		})
	case SortByStatus:
		// Open notes first, newest first within each group
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Done != out[j].Done {
				return !out[i].Done
			}
			return out[i].CreatedAt > out[j].CreatedAt
		})
	default:
		// Newest first
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt > out[j].CreatedAt
		})
	}

	return out
}

// FilterByStatus returns the notes matching the given status.
// StatusAll (and any unrecognized status) returns the input unchanged.
func FilterByStatus(notes []Note, st Status) []Note {
	switch st {
	case StatusOpen, StatusDone:
		wantDone := st == StatusDone
		var out []Note
		for _, n := range notes {
			if n.Done == wantDone {
				out = append(out, n)
			}
		}
		return out
	default:
		return notes
	}
}

// CalcStats computes aggregate counts over a collection
func CalcStats(notes []Note) Stats {
	s := Stats{Total: len(notes)}
	for _, n := range notes {
		if n.Done {
			s.Completed++
		}
	}
	s.Pending = s.Total - s.Completed
	if s.Total > 0 {
		s.CompletionRate = int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
	}
	return s
}
