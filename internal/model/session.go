package model

// Session is the currently authenticated user for the running process.
// It is set on a successful credential check and cleared on logout.
type Session struct {
	User          *User `json:"user"`
	Authenticated bool  `json:"authenticated"`
}
