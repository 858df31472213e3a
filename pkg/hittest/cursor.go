package hittest

// Cursor is the pointer affordance a host should display. Values follow the
// CSS cursor keywords.
type Cursor string

const (
	CursorDefault Cursor = "default"
	CursorMove    Cursor = "move"
	CursorNWSE    Cursor = "nwse-resize"
	CursorNESW    Cursor = "nesw-resize"
)

// CursorFor maps a hit classification to its cursor.
func CursorFor(h Hit) Cursor {
	switch h {
	case TopLeft, BottomRight:
		return CursorNWSE
	case TopRight, BottomLeft:
		return CursorNESW
	case Inside:
		return CursorMove
	}
	return CursorDefault
}
