// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for browsing the catalog cache:
//  1. [SearchView] : Enter a fuzzy name query against cached games
//  2. [ResultListView] : Browse matching games
//  3. [DetailView] : Inspect a game's achievements and reconciled DLC
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via typed message structs.
// Achievement and DLC lookups run as bubbletea commands so the remote calls never block rendering.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
