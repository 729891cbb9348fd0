// Package app provides application services that orchestrate use cases by
// coordinating between domain logic and infrastructure through port interfaces.
//
// AccountService covers sign-up, log-in and log-out. TodoView holds one
// session's lists page: its local copy of the user's lists and tasks, the
// pending form inputs, and the drag-and-drop state. Views owns the TodoView
// of every live session.
package app
