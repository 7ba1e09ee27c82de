package domain

// Note represents a single note in the collection
type Note struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Done bool   `json:"done"`
	// CreatedAt is an ISO-8601 UTC instant with millisecond precision
	// (e.g. "2023-01-01T10:00:00.000Z"). Lexicographic order on this
	// string equals chronological order, so comparisons use it directly.
	CreatedAt string `json:"createdAt"`
}

// Status selects a subset of the collection by completion state
type Status string

const (
	StatusAll  Status = "all"
	StatusOpen Status = "open"
	StatusDone Status = "done"
)

// ParseStatus maps a raw string to a Status, falling back to StatusAll
func ParseStatus(s string) Status {
	switch Status(s) {
	case StatusOpen:
		return StatusOpen
	case StatusDone:
		return StatusDone
	default:
		return StatusAll
	}
}

// SortBy selects the ordering criterion for a collection
type SortBy string

const (
	SortByDate   SortBy = "date"
	SortByAlpha  SortBy = "alphabetical"
	SortByStatus SortBy = "status"
)

// ParseSortBy maps a raw string to a SortBy, falling back to SortByDate
func ParseSortBy(s string) SortBy {
	switch SortBy(s) {
	case SortByAlpha:
		return SortByAlpha
	case SortByStatus:
		return SortByStatus
	default:
		return SortByDate
	}
}

// Stats holds aggregate counts over a collection
type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
	// CompletionRate is the completed share as a whole percentage,
	// rounded half away from zero; 0 for an empty collection
	CompletionRate int `json:"completionRate"`
}
