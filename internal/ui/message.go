package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/roster/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgRecordsLoaded MsgKind = iota
	MsgRecordDeleted
	MsgRecordsBulkDeleted
	MsgRecordsImported
)

type loadedData struct {
	records []models.Record
	err     error
}

type deletedData struct {
	id  string
	err error
}

type bulkDeletedData struct {
	ids     []string
	skipped []string
	deleted int64
	err     error
}

type importedData struct {
	records []models.Record
	err     error
}

// recordsLoadedMsg is the constructor for [MsgRecordsLoaded]
func recordsLoadedMsg(records []models.Record, err error) Msg {
	return Msg{kind: MsgRecordsLoaded, data: loadedData{records, err}}
}

// recordDeletedMsg is the constructor for [MsgRecordDeleted]
func recordDeletedMsg(id string, err error) Msg {
	return Msg{kind: MsgRecordDeleted, data: deletedData{id, err}}
}

// recordsBulkDeletedMsg is the constructor for [MsgRecordsBulkDeleted]
func recordsBulkDeletedMsg(ids, skipped []string, deleted int64, err error) Msg {
	return Msg{kind: MsgRecordsBulkDeleted, data: bulkDeletedData{ids, skipped, deleted, err}}
}

// recordsImportedMsg is the constructor for [MsgRecordsImported]
func recordsImportedMsg(records []models.Record, err error) Msg {
	return Msg{kind: MsgRecordsImported, data: importedData{records, err}}
}
