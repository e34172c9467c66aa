// Package ui is the terminal front end: three screens (bank IFSC lookup,
// cocktail browser, meal finder) under a tab bar, built on Bubble Tea.
//
// Core abstractions:
//   - View: a screen or modal with its own model, update, view (Elm-style)
//   - FocusManager: tracks and rotates focus across the panels of a screen
//   - Overlay: modal views stacked above the current screen
//   - KeyHandler: ctrl+x leader sequences dispatched through a registry
//
// Fetches run as tea.Cmds and report back as typed messages. Each result
// carries the generation it was issued under, and a view drops any result
// that has been superseded.
package ui
