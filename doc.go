// Package motion animates entrance, exit and position changes of keyed
// items in a terminal UI.
//
// The package has two halves:
//
//   - Node is a per-element animation controller. It snapshots layout
//     around each render pass, synthesizes FLIP-style glides when the
//     element moves, plays a fade-in after mounting and animates towards
//     requested Targets.
//   - AnimPresence reconciles the caller's keyed list with the list still
//     on screen. Removed items stay rendered, flagged as absent, until
//     something in their subtree reports they are safe to remove.
//
// Animation playback is delegated to a host through the Element and
// Animation interfaces; package screen provides one for terminals.
//
// Everything in this package runs on the host's render loop and is not
// safe for concurrent use.
package motion
