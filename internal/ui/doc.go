// Package ui implements the record list client using bubbletea's Elm architecture.
//
// [RecordState] is the view model: the fetched records, the selection set, and the search and level
// filter. It holds no network code and is driven by the outcome of each API call, so it can be tested
// on its own.
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern. API calls run as
// commands and report back through the [Msg] union type; the state only changes once a response arrives.
//
// Keyboard navigation uses vim-style bindings (j/k, space, /, x, q) with contextual help displayed via
// charmbracelet/bubbles/help.
package ui
