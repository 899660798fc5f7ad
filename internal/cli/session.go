package cli

// Session identifies the authenticated caller for the duration of one
// interactive login. It is an explicit value owned by the App and handed to
// command handlers, never ambient global state.
type Session struct {
	Username string
	Name     string
}
