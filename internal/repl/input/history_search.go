package input

// HistorySearcher returns history entries matching a query, best match
// first.
type HistorySearcher func(query string) []string

// HistorySearchState holds the state of a reverse history search
// (Ctrl+R): the query, the matches and the input to restore on cancel.
type HistorySearchState struct {
	active        bool
	query         string
	matches       []string
	matchIndex    int
	originalInput string
}

// NewHistorySearchState creates an inactive search state.
func NewHistorySearchState() *HistorySearchState {
	return &HistorySearchState{}
}

// IsActive reports whether a search is in progress.
func (s *HistorySearchState) IsActive() bool {
	return s.active
}

// Query returns the current search query.
func (s *HistorySearchState) Query() string {
	return s.query
}

// CurrentMatch returns the selected match, or the empty string.
func (s *HistorySearchState) CurrentMatch() string {
	if s.matchIndex < 0 || s.matchIndex >= len(s.matches) {
		return ""
	}
	return s.matches[s.matchIndex]
}

// MatchCount returns the number of matches for the current query.
func (s *HistorySearchState) MatchCount() int {
	return len(s.matches)
}

// Start begins a search session, saving the current input for Cancel.
func (s *HistorySearchState) Start(currentInput string) {
	s.active = true
	s.query = ""
	s.matches = nil
	s.matchIndex = 0
	s.originalInput = currentInput
}

// SetMatches replaces the match list and resets the selection.
func (s *HistorySearchState) SetMatches(matches []string) {
	s.matches = matches
	s.matchIndex = 0
}

// NextMatch selects the next (older) match. It reports whether the
// selection moved.
func (s *HistorySearchState) NextMatch() bool {
	if s.matchIndex < len(s.matches)-1 {
		s.matchIndex++
		return true
	}
	return false
}

// AddChar extends the query by one rune.
func (s *HistorySearchState) AddChar(r rune) {
	s.query += string(r)
	s.matchIndex = 0
}

// DeleteChar removes the last rune of the query. It reports whether
// anything was deleted.
func (s *HistorySearchState) DeleteChar() bool {
	if s.query == "" {
		return false
	}
	runes := []rune(s.query)
	s.query = string(runes[:len(runes)-1])
	s.matchIndex = 0
	return true
}

// Cancel exits the search and returns the input to restore.
func (s *HistorySearchState) Cancel() string {
	original := s.originalInput
	s.Reset()
	return original
}

// Accept exits the search keeping the selected match. With no match it
// returns the original input.
func (s *HistorySearchState) Accept() string {
	result := s.CurrentMatch()
	if result == "" {
		result = s.originalInput
	}
	s.Reset()
	return result
}

// Reset clears all search state.
func (s *HistorySearchState) Reset() {
	*s = HistorySearchState{}
}
