// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for catalog import:
//  1. [SearchView] : Type-ahead catalog search with selection toggling
//  2. [ConfirmView] : Review the selection before submitting
//  3. [JobView] : Monitor the submitted job until it finishes
//  4. [RecentView] : Browse recent import jobs
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// State changes from the orchestration components arrive over a [tasks.Event]
// channel; each event wakes the model, which re-reads the owning component's
// snapshot, so the render path never races the background goroutines.
//
// Keyboard navigation uses vim-style bindings (j/k, space, enter, esc, y/n, q)
// with contextual help displayed via charmbracelet/bubbles/help.
package ui
