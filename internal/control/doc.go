// Package control turns user input into edits of a running simulation.
//
// Hosts (the terminal view and the window) translate their own key and
// pointer events and hand them to a [Controller]:
//
//   - [KeyAction] maps a key name to an [Action]
//   - [Controller.Do] applies an action: pause, zoom, recenter, strategy
//     switch, reverse, flip, delete, copy, paste, cut
//   - [Controller.Press], [Controller.Move], [Controller.Drag] grab and
//     edit particle handles with the pointer
//
// # Handles
//
// Every particle is drawn as a circle whose radius shows its mass, plus an
// arrow from its position showing its velocity. The circle, the arrow tail
// and the arrow head are handles: dragging the tail moves the particle,
// dragging the head sets its velocity and dragging the circle scales its
// mass. Pressing an already selected tail hollows it, after which dragging
// scales charge instead.
package control
