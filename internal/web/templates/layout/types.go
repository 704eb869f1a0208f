package layout

// FlashKind classifies a flash message for styling
type FlashKind string

// Flash kinds
const (
	FlashSuccess FlashKind = "success"
	FlashError   FlashKind = "error"
	FlashInfo    FlashKind = "info"
)

// FlashMessage is a one-shot notice shown at the top of the next page render
type FlashMessage struct {
	Kind    FlashKind
	Message string
}

// PageData holds the fields every page needs
type PageData struct {
	Title      string
	GameName   string
	ServerName string
	// LoggedIn is true when an operator session is active.
	// Always false while auth is disabled.
	LoggedIn bool
	Flash    *FlashMessage
}
