// Package routepath centralizes web route constants.
package routepath

const (
	// AppRoot is the authenticated dashboard landing page.
	AppRoot = "/"
	// AuthPage is the combined sign-in/sign-up page.
	AuthPage = "/auth.html"
	// AuthSubmit receives credential form posts.
	AuthSubmit = "/auth/submit"
	// AuthPrefix mounts auth form actions.
	AuthPrefix = "/auth/"
	// Logout revokes the current session.
	Logout = "/logout"
	// PlansRecent serves the deferred study-plan fragment.
	PlansRecent = "/plans/recent"
	// SessionEvents streams session-change notifications to the shell.
	SessionEvents = "/session/events"
	// StaticPrefix mounts shared static assets.
	StaticPrefix = "/static/"
)
