// Package editor implements the pointer-driven interaction state machine of
// the block canvas.
//
// An [Editor] is an immutable value: the ordered block sequence, the action
// state, the active block id and the current tool. Every transition is a
// method that returns the next Editor together with the [Effects] the host
// must act on (cursor to show, text-edit overlay to open). The receiver is
// never modified, so a host may keep old values around for inspection and
// readers never observe a half-applied transition.
//
// # States
//
//	Idle ──down(create)──▶ Drawing ──up──▶ EditingText ──commit──▶ Idle
//	Idle ──down(handle)──▶ Resizing ──up──▶ Idle | EditingText
//	Idle ──down(inside)──▶ Moving ──up──▶ Idle
//
// [Transitions] lists the full table.
//
// # Hosts
//
// [Session] is a thin mutable adapter for hosts that prefer an object with
// state: it holds the current Editor, a text [textfit.Measurer] for commits,
// a logger, and reports every transition to the observability hooks.
//
// Transitions run to completion on the caller's goroutine. Neither Editor
// nor Session starts goroutines; a Session must not be shared between
// goroutines without external locking.
//
// # Edit overlay
//
// Entering EditingText yields an [EditRequest]. Hosts typically focus the
// overlay input in a deferred task; that task should check
// [Editor.Editing] with the request's Seq first, because a commit may have
// closed the edit before the task ran.
//
// An interrupted gesture (a pointer-up that never arrives) is not cancelled:
// the block keeps its last interactive geometry and the editor stays in the
// gesture state until the next pointer-up.
package editor
