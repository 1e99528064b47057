package web

import (
	"net/http"

	"teamroster/internal/adapters/http/middleware"
)

// registerRoutes wires each URL to its handler. Mutating routes are wrapped
// in RequireAuth so unauthenticated requests redirect to the login form
// before the handler runs.
func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/", handleHome)
	mux.HandleFunc("/team/", handleTeamDetail)
	mux.Handle("/add", middleware.RequireAuth(http.HandlerFunc(handleAddTeam)))
	mux.Handle("/add-player/", middleware.RequireAuth(http.HandlerFunc(handleAddPlayer)))
	mux.Handle("/delete/", middleware.RequireAuth(http.HandlerFunc(handleDeleteTeam)))
	mux.HandleFunc("/register", handleRegisterForm)
	mux.HandleFunc("/login", handleLoginForm)
	// Trailing-slash alias kept for old bookmarks.
	mux.HandleFunc("/login/", handleLoginForm)
	mux.HandleFunc("/add-user", handleAddUser)
	mux.HandleFunc("/login-user", handleLoginUser)
	mux.HandleFunc("/logout", handleLogout)
}
