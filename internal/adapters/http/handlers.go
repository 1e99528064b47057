package web

import (
	"bytes"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"teamroster/internal/adapters/http/middleware"
	teamStore "teamroster/internal/adapters/storage/team"
	"teamroster/internal/application/orchestrators"
	"teamroster/internal/domain/player"
	"teamroster/internal/domain/team"
)

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// isValidationError reports whether err is a domain validation failure rather
// than an infrastructure fault. Validation failures are shown to the user;
// everything else becomes a generic 500.
func isValidationError(err error) bool {
	for _, target := range []error{
		team.ErrEmptyCode, team.ErrCodeTooLong, team.ErrEmptyName, team.ErrNameTooLong, team.ErrNoManager,
		player.ErrEmptyName, player.ErrNameTooLong, player.ErrEmptyTeam,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// templatesDir is a variable so tests can point it at the package-local
// templates directory.
var templatesDir = "internal/adapters/http/templates"

func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) {
	sess, loggedIn := middleware.GetSessionFromContext(r.Context())

	var flash *middleware.FlashMessage
	if f, ok := middleware.GetFlash(r.Context()); ok {
		flash = &f
	}

	funcMap := template.FuncMap{
		"isLoggedIn":      func() bool { return loggedIn },
		"currentUserName": func() string { return sess.UserName },
		"currentUserID":   func() int64 { return sess.UserID },
		"csrfToken":       func() string { return csrf.Token(r) },
		"flash":           func() *middleware.FlashMessage { return flash },
		"renderMarkdown": func(md string) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(buf.String())
		},
	}

	layoutPath := filepath.Join(templatesDir, "layout.html")
	pagePath := filepath.Join(templatesDir, templateName)
	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFiles(layoutPath, pagePath)
	if err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.Execute(w, data); err != nil {
		http.Error(w, "Render error: "+err.Error(), http.StatusInternalServerError)
		return
	}
}

// renderNotFound renders the not-found page with a 404 status.
func renderNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	renderTemplate(w, r, "notfound.html", nil)
}

// handleHome handles GET / and renders the team list.
func handleHome(w http.ResponseWriter, r *http.Request) {
	// The root pattern catches every unmatched path.
	if r.URL.Path != "/" {
		renderNotFound(w, r)
		return
	}
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	teams, err := stores.TeamStore.List(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}

	renderTemplate(w, r, "home.html", map[string]any{
		"Teams": teams,
	})
}

// handleTeamDetail handles GET /team/{code} and renders one team's roster.
func handleTeamDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	code := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/team/"), "/")
	if code == "" || strings.Contains(code, "/") {
		renderNotFound(w, r)
		return
	}

	found, err := stores.TeamStore.GetByCode(r.Context(), code)
	if errors.Is(err, teamStore.ErrNotFound) {
		renderNotFound(w, r)
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}

	players, err := stores.PlayerStore.ListByTeam(r.Context(), code)
	if err != nil {
		internalError(w, err)
		return
	}

	renderTemplate(w, r, "team.html", map[string]any{
		"Team":    found,
		"Players": players,
	})
}

// handleAddTeam handles POST /add. Auth is enforced by RequireAuth in the
// route table, so a session is always present here.
func handleAddTeam(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	session, _ := middleware.GetSessionFromContext(r.Context())
	name := r.FormValue("name")

	input := orchestrators.CreateTeamInput{
		Code:            r.FormValue("code"),
		Name:            name,
		Description:     r.FormValue("description"),
		Website:         r.FormValue("website"),
		ManagerID:       session.UserID,
		SanitizeWebsite: SanitizeWebsite,
	}
	deps := orchestrators.CreateTeamDeps{
		TeamStore: stores.TeamStore,
	}

	_, err := orchestrators.ExecuteCreateTeam(r.Context(), input, deps)
	if errors.Is(err, orchestrators.ErrTeamCodeExists) {
		middleware.SetFlash(w, middleware.FlashError, "Team code already exists. Try again with a different code")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if isValidationError(err) {
		middleware.SetFlash(w, middleware.FlashError, err.Error())
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}

	middleware.SetFlash(w, middleware.FlashSuccess, "Team '"+name+"' added")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleAddPlayer handles POST /add-player/{code}.
func handleAddPlayer(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	code := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/add-player/"), "/")
	if code == "" || strings.Contains(code, "/") {
		renderNotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	name := r.FormValue("name")

	input := orchestrators.AddPlayerInput{
		Name:     name,
		Notes:    r.FormValue("notes"),
		TeamCode: code,
	}
	deps := orchestrators.AddPlayerDeps{
		PlayerStore: stores.PlayerStore,
	}

	err := orchestrators.ExecuteAddPlayer(r.Context(), input, deps)
	if errors.Is(err, orchestrators.ErrTeamNotFound) {
		renderNotFound(w, r)
		return
	}
	if isValidationError(err) {
		middleware.SetFlash(w, middleware.FlashError, err.Error())
		http.Redirect(w, r, "/team/"+code, http.StatusSeeOther)
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}

	middleware.SetFlash(w, middleware.FlashSuccess, "Player '"+name+"' added")
	http.Redirect(w, r, "/team/"+code, http.StatusSeeOther)
}

// handleDeleteTeam handles GET /delete/{id}. Only the managing user's teams
// are deleted; anyone else's id is a silent no-op.
func handleDeleteTeam(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	idStr := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/delete/"), "/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		renderNotFound(w, r)
		return
	}

	session, _ := middleware.GetSessionFromContext(r.Context())

	_, err = orchestrators.ExecuteDeleteTeam(r.Context(), orchestrators.DeleteTeamInput{
		TeamID:    id,
		ManagerID: session.UserID,
	}, orchestrators.DeleteTeamDeps{
		TeamStore: stores.TeamStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	// Flash success even on a no-op so the response reveals nothing about
	// other users' teams. The log keeps the distinction.
	middleware.SetFlash(w, middleware.FlashSuccess, "Team and players deleted")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleRegisterForm handles GET /register.
func handleRegisterForm(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	renderTemplate(w, r, "register.html", nil)
}

// handleLoginForm handles GET /login (and the /login/ alias). The form is
// rendered even for a logged-in visitor.
func handleLoginForm(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	renderTemplate(w, r, "login.html", nil)
}

// handleAddUser handles POST /add-user (registration form submission).
func handleAddUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	input := orchestrators.RegisterUserInput{
		Name:     r.FormValue("name"),
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
	}
	deps := orchestrators.RegisterUserDeps{
		UserStore:   stores.UserStore,
		EmailSender: emailSender,
		EmailFrom:   emailFromAddress,
		NotifyTo:    notifyAddress,
	}

	_, err := orchestrators.ExecuteRegisterUser(r.Context(), input, deps)
	if errors.Is(err, orchestrators.ErrUsernameExists) {
		middleware.SetFlash(w, middleware.FlashError, "Username already exists. Try again with a different username")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}
	if errors.Is(err, orchestrators.ErrMissingFields) {
		middleware.SetFlash(w, middleware.FlashError, "All fields are required")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}

	middleware.SetFlash(w, middleware.FlashSuccess, "Registration successful")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// handleLoginUser handles POST /login-user (login form submission).
func handleLoginUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	input := orchestrators.LoginInput{
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
	}
	deps := orchestrators.LoginDeps{
		UserStore: stores.UserStore,
	}

	result, err := orchestrators.ExecuteLogin(r.Context(), input, deps)
	if errors.Is(err, orchestrators.ErrInvalidCredentials) {
		middleware.SetFlash(w, middleware.FlashError, "Invalid credentials")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}

	token := sessions.Create(result.UserID, result.Name)
	middleware.SetSessionCookie(w, token)
	middleware.SetFlash(w, middleware.FlashSuccess, "Login successful")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleLogout handles GET /logout.
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if token := middleware.SessionToken(r); token != "" {
		sessions.Delete(token)
	}
	middleware.ClearSessionCookie(w)
	middleware.SetFlash(w, middleware.FlashSuccess, "Logged out successfully")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
