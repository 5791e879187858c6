package services

import "ftms-portal/internal/core/domain"

// RouteDecision is the outcome of resolving a route against the
// current session state.
type RouteDecision int

const (
	// RouteWait means the session is still bootstrapping; render a
	// neutral waiting indicator and nothing else.
	RouteWait RouteDecision = iota
	// RouteAllow grants access to the route.
	RouteAllow
	// RouteLogin means the session is unauthenticated and the caller
	// should be redirected to the login view.
	RouteLogin
	// RouteDeny means the user is authenticated but their role is not
	// in the route's allowed set.
	RouteDeny
)

// Route describes a navigable view and the roles allowed to see it.
// An empty Roles set means any authenticated user.
type Route struct {
	Path  string
	Roles []domain.Role
}

// LoginPath is the only path reachable without authentication
const LoginPath = "/login"

// Routes is the portal's route table
var Routes = []Route{
	{Path: "/"},
	{Path: "/tasks"},
	{Path: "/tasks/create", Roles: []domain.Role{domain.RoleHOD, domain.RoleAdmin}},
	{Path: "/analytics"},
	{Path: "/faculty"},
	{Path: "/settings"},
	{Path: LoginPath},
}

// RouteByPath looks up a route in the table
func RouteByPath(path string) (Route, bool) {
	for _, r := range Routes {
		if r.Path == path {
			return r, true
		}
	}
	return Route{}, false
}

// ResolveRoute decides whether the session may render a route. It is
// a pure function of the session's observable state.
func ResolveRoute(sess *SessionService, route Route) RouteDecision {
	if sess.Loading() {
		return RouteWait
	}

	if !sess.IsAuthenticated() {
		// Only the login view is reachable; everything else
		// redirects there.
		if route.Path == LoginPath {
			return RouteAllow
		}
		return RouteLogin
	}

	if len(route.Roles) == 0 {
		return RouteAllow
	}
	user := sess.User()
	for _, role := range route.Roles {
		if user.Role == role {
			return RouteAllow
		}
	}
	return RouteDeny
}
