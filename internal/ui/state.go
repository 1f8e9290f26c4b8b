package ui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/desertthunder/roster/internal/models"
	"github.com/desertthunder/roster/internal/shared"
)

// Phase is the load state of a [RecordState].
type Phase int

const (
	Idle Phase = iota
	Loading
	Loaded
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	default:
		return "idle"
	}
}

// NoticeLevel distinguishes success feedback from failures.
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeError
)

// Notice is the single user feedback channel. Every mutation outcome, success or failure, lands here.
type Notice struct {
	Level NoticeLevel
	Text  string
}

// RecordState is the client view model: the fetched records, the selection, and the filter.
//
// It never talks to the API. Callers issue requests and report the outcome through the Apply methods,
// which change the records only after a successful response. The selection only ever holds ids of loaded records.
type RecordState struct {
	phase      Phase
	records    []models.Record
	selected   map[string]struct{}
	search     string
	level      string
	importMode string
	notice     *Notice
}

// NewRecordState creates an idle state. importMode is [shared.ImportReplace] or [shared.ImportMerge].
func NewRecordState(importMode string) *RecordState {
	if importMode != shared.ImportMerge {
		importMode = shared.ImportReplace
	}
	return &RecordState{
		phase:      Idle,
		records:    []models.Record{},
		selected:   map[string]struct{}{},
		importMode: importMode,
	}
}

func (s *RecordState) Phase() Phase             { return s.phase }
func (s *RecordState) Records() []models.Record { return slices.Clone(s.records) }
func (s *RecordState) Search() string           { return s.search }
func (s *RecordState) Level() string            { return s.level }
func (s *RecordState) Notice() *Notice          { return s.notice }
func (s *RecordState) ClearNotice()             { s.notice = nil }

// BeginLoad moves to [Loading].
func (s *RecordState) BeginLoad() {
	s.phase = Loading
}

// ApplyLoaded stores a fetched record set. A failed fetch returns to [Idle] and keeps the previous records.
func (s *RecordState) ApplyLoaded(records []models.Record, err error) {
	if err != nil {
		s.phase = Idle
		s.fail("Failed to load records", err)
		return
	}

	s.phase = Loaded
	s.records = slices.Clone(records)
	s.prune()
}

// SetSearch replaces the search text.
func (s *RecordState) SetSearch(text string) {
	s.search = text
}

// SetLevel replaces the level filter. An empty level disables it.
func (s *RecordState) SetLevel(level string) {
	s.level = level
}

// CycleLevel steps the level filter through "" and [models.Levels].
func (s *RecordState) CycleLevel() string {
	options := append([]string{""}, models.Levels...)
	idx := slices.IndexFunc(options, func(l string) bool { return strings.EqualFold(l, s.level) })
	s.level = options[(idx+1)%len(options)]
	return s.level
}

// Filtered derives the visible records from the current filter.
func (s *RecordState) Filtered() []models.Record {
	return FilterRecords(s.records, s.search, s.level)
}

// FilterRecords keeps the records whose name or position contains search (case-insensitive) and,
// when level is set, whose level equals it case-insensitively.
func FilterRecords(records []models.Record, search, level string) []models.Record {
	needle := strings.ToLower(search)
	out := []models.Record{}

	for _, r := range records {
		matches := strings.Contains(strings.ToLower(r.Name), needle) ||
			strings.Contains(strings.ToLower(r.Position), needle)
		if !matches {
			continue
		}
		if level != "" && !strings.EqualFold(r.Level, level) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// IsSelected reports whether id is in the selection.
func (s *RecordState) IsSelected(id string) bool {
	_, ok := s.selected[id]
	return ok
}

// SelectionSize is the number of selected records.
func (s *RecordState) SelectionSize() int {
	return len(s.selected)
}

// Selected returns the selected ids in record order.
func (s *RecordState) Selected() []string {
	ids := make([]string, 0, len(s.selected))
	for _, r := range s.records {
		if s.IsSelected(r.ID) {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

// ToggleSelect flips one id in the selection. Ids that are not loaded are ignored.
func (s *RecordState) ToggleSelect(id string) {
	if s.IsSelected(id) {
		delete(s.selected, id)
		return
	}
	if s.index(id) >= 0 {
		s.selected[id] = struct{}{}
	}
}

// ToggleSelectAll clears the selection when every loaded record is selected, otherwise selects every
// loaded record. The active filter does not narrow it.
func (s *RecordState) ToggleSelectAll() {
	if len(s.selected) == len(s.records) {
		clear(s.selected)
		return
	}
	for _, r := range s.records {
		s.selected[r.ID] = struct{}{}
	}
}

// ApplyDeleted removes one record after a successful delete, pruning it from the selection.
func (s *RecordState) ApplyDeleted(id string, err error) {
	if err != nil {
		s.fail("Failed to delete record", err)
		return
	}

	s.remove(id)
	s.inform("Record deleted")
}

// ApplyBulkDeleted removes the requested ids the server did not skip, then clears the selection.
func (s *RecordState) ApplyBulkDeleted(ids, skipped []string, deleted int64, err error) {
	if err != nil {
		s.fail("Failed to delete records", err)
		return
	}

	s.remove(slices.DeleteFunc(slices.Clone(ids), func(id string) bool { return slices.Contains(skipped, id) })...)
	clear(s.selected)
	s.inform(fmt.Sprintf("Deleted %d records", deleted))
}

// RequireSelection returns the selected ids, raising a notice when nothing is selected.
func (s *RecordState) RequireSelection() ([]string, bool) {
	ids := s.Selected()
	if len(ids) == 0 {
		s.notice = &Notice{Level: NoticeError, Text: "No records selected"}
		return nil, false
	}
	return ids, true
}

// RequireFile reports whether an import can start, raising a notice when no file was chosen.
func (s *RecordState) RequireFile(path string) bool {
	if strings.TrimSpace(path) == "" {
		s.notice = &Notice{Level: NoticeError, Text: "Please select a file to upload"}
		return false
	}
	return true
}

// ApplyImported merges an import result according to the import mode.
//
// In replace mode the imported records become the whole record set; in merge mode they are appended.
func (s *RecordState) ApplyImported(records []models.Record, err error) {
	if err != nil {
		s.fail("Failed to import records", err)
		return
	}

	if s.importMode == shared.ImportMerge {
		s.records = append(s.records, records...)
	} else {
		s.records = slices.Clone(records)
	}
	s.prune()
	s.inform(fmt.Sprintf("Imported %d records", len(records)))
}

func (s *RecordState) remove(ids ...string) {
	s.records = slices.DeleteFunc(s.records, func(r models.Record) bool { return slices.Contains(ids, r.ID) })
	for _, id := range ids {
		delete(s.selected, id)
	}
}

// prune drops selected ids that are no longer loaded.
func (s *RecordState) prune() {
	for id := range s.selected {
		if s.index(id) < 0 {
			delete(s.selected, id)
		}
	}
}

func (s *RecordState) index(id string) int {
	return slices.IndexFunc(s.records, func(r models.Record) bool { return r.ID == id })
}

func (s *RecordState) inform(text string) {
	s.notice = &Notice{Level: NoticeInfo, Text: text}
}

func (s *RecordState) fail(text string, err error) {
	s.notice = &Notice{Level: NoticeError, Text: fmt.Sprintf("%s: %v", text, err)}
}
