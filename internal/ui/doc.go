// Package ui renders the Lectern terminal interface.
//
// The interface mirrors the course hierarchy as three stacked views:
// the course list, the subjects of the opened course, and the contents
// of the opened subject with a body pane beside the list. All data
// access goes through the state store; store operations run inside
// Bubble Tea commands so the event loop never blocks on the network.
package ui
