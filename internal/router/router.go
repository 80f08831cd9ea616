// Package router tracks the current page and its history. It implements
// registration.Navigator.
package router

import (
	"slices"
	"sync"

	"github.com/enernova/enernova/internal/log"
	"github.com/enernova/enernova/internal/registration"
)

// Known routes.
const (
	Register    = "/register"
	Contributor = registration.DefaultLandingRoute
	Login       = "/login"
)

// Routes lists every route the app can show.
var Routes = []string{Register, Contributor, Login}

// Router is safe for concurrent use.
type Router struct {
	mu      sync.Mutex
	current string
	history []string
}

var _ registration.Navigator = (*Router)(nil)

// New returns a router positioned at start.
func New(start string) *Router {
	return &Router{current: start}
}

// GoTo moves to route. Unknown routes are logged and still followed so a
// misrouted page is visible instead of silently ignored.
func (r *Router) GoTo(route string) {
	if !Known(route) {
		log.Warn(log.CatNav, "navigating to unknown route", "route", route)
	}

	r.mu.Lock()
	from := r.current
	if from == route {
		r.mu.Unlock()
		return
	}
	r.history = append(r.history, from)
	r.current = route
	r.mu.Unlock()

	log.Info(log.CatNav, "navigate", "from", from, "to", route)
}

// Back returns to the previous route. It reports false when there is none.
func (r *Router) Back() bool {
	r.mu.Lock()
	if len(r.history) == 0 {
		r.mu.Unlock()
		return false
	}
	from := r.current
	r.current = r.history[len(r.history)-1]
	r.history = r.history[:len(r.history)-1]
	to := r.current
	r.mu.Unlock()

	log.Info(log.CatNav, "back", "from", from, "to", to)
	return true
}

// Replace moves to route without recording history.
func (r *Router) Replace(route string) {
	r.mu.Lock()
	r.current = route
	r.mu.Unlock()
}

// Current returns the current route.
func (r *Router) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Known reports whether route is one of Routes.
func Known(route string) bool {
	return slices.Contains(Routes, route)
}
