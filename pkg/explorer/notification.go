package explorer

// Level grades a notification.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notification is a transient, non-blocking message for the user. Seq
// identifies it so a delayed dismissal never clears a newer message.
type Notification struct {
	Message string
	Level   Level
	Seq     uint64
}
