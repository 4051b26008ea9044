package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
)

// FakeAPIPassword is the only password the fake login endpoint accepts.
const FakeAPIPassword = "correct-horse"

// RecordedCall is one request seen by FakeAPI.
type RecordedCall struct {
	Method string
	Path   string
	Route  string
	Auth   string
	Body   []byte
}

// JSON decodes the recorded request body into v.
func (c RecordedCall) JSON(v any) error {
	return json.Unmarshal(c.Body, v)
}

type cannedResponse struct {
	status int
	body   any
}

// FakeAPI is an in-process stand-in for the companion REST API. It keeps
// just enough state (tokens, moods, progress) for end-to-end tests and lets
// tests override any route's response.
type FakeAPI struct {
	Server *httptest.Server

	mu          sync.Mutex
	calls       []RecordedCall
	overrides   map[string]cannedResponse
	accessToken string
	tokenSeq    int
	moods       []map[string]any
	progress    []map[string]any
}

// NewFakeAPI starts a FakeAPI that is shut down when the test completes.
func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()
	f := &FakeAPI{overrides: map[string]cannedResponse{}}

	r := mux.NewRouter()
	r.Use(f.record)

	r.HandleFunc("/auth/login", f.login).Methods(http.MethodPost).Name("POST /auth/login")
	r.HandleFunc("/auth/signup", f.signup).Methods(http.MethodPost).Name("POST /auth/signup")
	r.HandleFunc("/auth/refresh", f.refresh).Methods(http.MethodPost).Name("POST /auth/refresh")
	r.HandleFunc("/chat/public", f.chat).Methods(http.MethodPost).Name("POST /chat/public")

	authed := r.NewRoute().Subrouter()
	authed.Use(f.requireToken)
	authed.HandleFunc("/auth/me", f.me).Methods(http.MethodGet).Name("GET /auth/me")
	authed.HandleFunc("/chat", f.chat).Methods(http.MethodPost).Name("POST /chat")
	authed.HandleFunc("/mood", f.logMood).Methods(http.MethodPost).Name("POST /mood")
	authed.HandleFunc("/mood/history", f.moodHistory).Methods(http.MethodGet).Name("GET /mood/history")
	authed.HandleFunc("/mood/insights", f.moodInsights).Methods(http.MethodGet).Name("GET /mood/insights")
	authed.HandleFunc("/progress", f.submitProgress).Methods(http.MethodPost).Name("POST /progress")
	authed.HandleFunc("/progress", f.listProgress).Methods(http.MethodGet).Name("GET /progress")
	authed.HandleFunc("/progress/category/{category}", f.categoryStats).Methods(http.MethodGet).Name("GET /progress/category/{category}")
	authed.HandleFunc("/recommendations", f.recommendations).Methods(http.MethodGet).Name("GET /recommendations")
	authed.HandleFunc("/resources/{id}", f.resource).Methods(http.MethodGet).Name("GET /resources/{id}")

	f.Server = httptest.NewServer(r)
	t.Cleanup(f.Server.Close)
	return f
}

// URL returns the server base URL.
func (f *FakeAPI) URL() string { return f.Server.URL }

// Respond makes route (e.g. "POST /progress") answer with status and body
// instead of its default behavior.
func (f *FakeAPI) Respond(route string, status int, body any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.overrides[route] = cannedResponse{status: status, body: body}
}

// ExpireAccessToken makes the currently issued access token invalid so the
// next authenticated call gets a 401.
func (f *FakeAPI) ExpireAccessToken() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accessToken = ""
}

// IssueToken returns a valid access token without a login round trip.
func (f *FakeAPI) IssueToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.issueLocked()
}

// Calls returns a copy of every recorded call.
func (f *FakeAPI) Calls() []RecordedCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]RecordedCall, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallsTo returns the recorded calls matching route.
func (f *FakeAPI) CallsTo(route string) []RecordedCall {
	var out []RecordedCall
	for _, c := range f.Calls() {
		if c.Route == route {
			out = append(out, c)
		}
	}
	return out
}

func (f *FakeAPI) issueLocked() string {
	f.tokenSeq++
	f.accessToken = fmt.Sprintf("access-%d", f.tokenSeq)
	return f.accessToken
}

func (f *FakeAPI) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		route := r.Method + " " + r.URL.Path
		if cur := mux.CurrentRoute(r); cur != nil && cur.GetName() != "" {
			route = cur.GetName()
		}

		f.mu.Lock()
		f.calls = append(f.calls, RecordedCall{
			Method: r.Method,
			Path:   r.URL.Path,
			Route:  route,
			Auth:   r.Header.Get("Authorization"),
			Body:   body,
		})
		canned, ok := f.overrides[route]
		f.mu.Unlock()

		if ok {
			writeJSON(w, canned.status, canned.body)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *FakeAPI) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		valid := f.accessToken != "" && r.Header.Get("Authorization") == "Bearer "+f.accessToken
		f.mu.Unlock()
		if !valid {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Could not validate credentials"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *FakeAPI) user(email string) map[string]any {
	return map[string]any{
		"id":        42,
		"email":     email,
		"name":      "Sam",
		"last_name": "Rivera",
		"user_type": "teen",
	}
}

func (f *FakeAPI) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "bad form"})
		return
	}
	email, _, _ := strings.Cut(r.PostForm.Get("username"), ":")
	if r.PostForm.Get("password") != FakeAPIPassword {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Incorrect email or password"})
		return
	}
	f.mu.Lock()
	token := f.issueLocked()
	f.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{
		"access_token":  token,
		"refresh_token": "refresh-42",
		"token_type":    "bearer",
		"user":          f.user(email),
	})
}

// signup answers without a refresh token, the way the real API does.
func (f *FakeAPI) signup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)
	f.mu.Lock()
	token := f.issueLocked()
	f.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{
		"access_token": token,
		"user":         f.user(req.Email),
	})
}

func (f *FakeAPI) refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.RefreshToken == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Invalid refresh token"})
		return
	}
	f.mu.Lock()
	token := f.issueLocked()
	f.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"access_token": token})
}

func (f *FakeAPI) me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, f.user("sam@example.com"))
}

func (f *FakeAPI) chat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)
	writeJSON(w, http.StatusOK, map[string]string{"response": "I hear you: " + req.Text})
}

func (f *FakeAPI) logMood(w http.ResponseWriter, r *http.Request) {
	var entry map[string]any
	_ = json.NewDecoder(r.Body).Decode(&entry)
	f.mu.Lock()
	entry["id"] = len(f.moods) + 1
	f.moods = append(f.moods, entry)
	f.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged"})
}

func (f *FakeAPI) moodHistory(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	entries := append([]map[string]any{}, f.moods...)
	f.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (f *FakeAPI) moodInsights(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	counts := map[string]int{}
	for _, m := range f.moods {
		if s, ok := m["mood"].(string); ok {
			counts[s]++
		}
	}
	total := len(f.moods)
	f.mu.Unlock()

	most := ""
	for mood, n := range counts {
		if most == "" || n > counts[most] || (n == counts[most] && mood < most) {
			most = mood
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total_entries":    total,
		"most_common_mood": most,
		"mood_counts":      counts,
	})
}

func (f *FakeAPI) submitProgress(w http.ResponseWriter, r *http.Request) {
	var rec map[string]any
	_ = json.NewDecoder(r.Body).Decode(&rec)
	f.mu.Lock()
	rec["id"] = len(f.progress) + 1
	f.progress = append(f.progress, rec)
	f.mu.Unlock()
	writeJSON(w, http.StatusCreated, map[string]any{"status": "recorded"})
}

func (f *FakeAPI) listProgress(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	f.mu.Lock()
	var out []map[string]any
	for _, p := range f.progress {
		if category == "" || p["category"] == category {
			out = append(out, p)
		}
	}
	f.mu.Unlock()
	if out == nil {
		out = []map[string]any{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"progress": out})
}

func (f *FakeAPI) categoryStats(w http.ResponseWriter, r *http.Request) {
	category := mux.Vars(r)["category"]
	f.mu.Lock()
	sessions, minutes := 0, 0
	for _, p := range f.progress {
		if p["category"] == category {
			sessions++
			if d, ok := p["duration"].(float64); ok {
				minutes += int(d)
			}
		}
	}
	f.mu.Unlock()
	avg := 0.0
	if sessions > 0 {
		avg = float64(minutes) / float64(sessions)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"category":        category,
		"total_sessions":  sessions,
		"total_minutes":   minutes,
		"average_minutes": avg,
	})
}

func (f *FakeAPI) recommendations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"recommendations": []map[string]any{
		{"id": 1, "title": "Box breathing", "description": "Four counts in, hold, out, hold.", "category": "anxiety-management", "resource_id": 7},
		{"id": 2, "title": "Wind-down routine", "description": "Screens off thirty minutes before bed.", "category": "sleep-hygiene"},
	}})
}

func (f *FakeAPI) resource(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id != "7" {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Resource not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":          7,
		"title":       "Box breathing",
		"type":        "exercise",
		"description": "A steadying breath pattern.",
		"content":     "## Steps\n\n1. Breathe in for four.\n2. Hold for four.\n3. Breathe out for four.\n4. Hold for four.",
		"updated_at":  time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}
