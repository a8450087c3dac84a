// Package main implements a mock Wialon AJAX server for local development.
// It answers token/login, token/list, token/update, and core/search_items
// from a JSON unit fixture so the service can run without a real Wialon
// account.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path"
	"sort"
	"sync"
	"time"
)

// Wialon error codes returned by the mock.
const (
	errInvalidSession = 1
	errInvalidService = 2
	errInvalidInput   = 4
	errAccessDenied   = 7
	errBadToken       = 8
)

type fixtureUnit struct {
	ID       int64  `json:"id"`
	Name     string `json:"nm"`
	UniqueID string `json:"uid"`
}

type fixture struct {
	Units []fixtureUnit `json:"units"`
}

type token struct {
	Value      string `json:"h"`
	App        string `json:"app"`
	Activation int64  `json:"at"`
	Duration   int64  `json:"dur"`
	Flags      int64  `json:"fl"`
	Params     string `json:"p"`
	CreatedAt  int64  `json:"ct"`
	LastLogin  int64  `json:"ll"`
}

type searchSpec struct {
	ItemsType     string `json:"itemsType"`
	PropName      string `json:"propName"`
	PropValueMask string `json:"propValueMask"`
}

// server holds the mock's mutable state: live sessions and issued tokens.
type server struct {
	log         *slog.Logger
	units       []fixtureUnit
	accessToken string
	omitEID     bool

	mu       sync.Mutex
	sessions map[string]struct{}
	tokens   []token
}

func main() {
	port := flag.Int("port", 8090, "port to listen on")
	fixtureFile := flag.String("fixture", "tools/mock-server/testdata/units.json", "path to unit fixture")
	accessToken := flag.String("token", "mock-access-token", "access token accepted by token/login")
	omitEID := flag.Bool("omit-eid", false, "answer token/login without an eid")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	fx, err := loadFixture(*fixtureFile)
	if err != nil {
		logger.Error("failed to load fixture", "path", *fixtureFile, "error", err)
		os.Exit(1)
	}
	logger.Info("loaded fixture", "units", len(fx.Units))

	s := newServer(logger, fx, *accessToken)
	s.omitEID = *omitEID

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock wialon server", "addr", addr, "endpoint", "/wialon/ajax.html")

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, s.routes()),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newServer(logger *slog.Logger, fx *fixture, accessToken string) *server {
	return &server{
		log:         logger,
		units:       fx.Units,
		accessToken: accessToken,
		sessions:    map[string]struct{}{},
	}
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /wialon/ajax.html", s.ajaxHandler)
	mux.HandleFunc("POST /wialon/ajax.html", s.ajaxHandler)
	return mux
}

func loadFixture(path string) (*fixture, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var fx fixture
	if err := json.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return &fx, nil
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "svc", r.FormValue("svc"))
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(v)
}

// writeError answers with a Wialon error body. Wialon reports failures
// with status 200.
func writeError(w http.ResponseWriter, code int, reason string) {
	body := map[string]any{"error": code}
	if reason != "" {
		body["reason"] = reason
	}
	writeJSON(w, body)
}

func (s *server) ajaxHandler(w http.ResponseWriter, r *http.Request) {
	svc := r.FormValue("svc")
	params := r.FormValue("params")

	if svc == "token/login" {
		s.login(w, params)
		return
	}

	if !s.validSession(r.FormValue("sid")) {
		s.log.Warn("rejected call with unknown sid", "svc", svc)
		writeError(w, errInvalidSession, "")
		return
	}

	switch svc {
	case "token/list":
		s.listTokens(w)
	case "token/update":
		s.updateToken(w, params)
	case "core/search_items":
		s.searchItems(w, params)
	default:
		writeError(w, errInvalidService, "unknown service "+svc)
	}
}

func (s *server) login(w http.ResponseWriter, params string) {
	var p struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal([]byte(params), &p); err != nil {
		writeError(w, errInvalidInput, "malformed params")
		return
	}
	if p.Token != s.accessToken {
		s.log.Warn("login with unknown token")
		writeError(w, errBadToken, "invalid token")
		return
	}

	if s.omitEID {
		writeJSON(w, map[string]any{"host": "127.0.0.1"})
		return
	}

	sid := randomHex(16)
	s.mu.Lock()
	s.sessions[sid] = struct{}{}
	s.mu.Unlock()

	writeJSON(w, map[string]any{
		"eid":  sid,
		"host": "127.0.0.1",
		"user": map[string]any{"id": 1, "nm": "mock"},
	})
	s.log.Info("issued mock session")
}

func (s *server) validSession(sid string) bool {
	if sid == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[sid]
	return ok
}

func (s *server) listTokens(w http.ResponseWriter) {
	s.mu.Lock()
	out := make([]token, len(s.tokens))
	copy(out, s.tokens)
	s.mu.Unlock()

	writeJSON(w, out)
}

func (s *server) updateToken(w http.ResponseWriter, params string) {
	var p struct {
		CallMode   string `json:"callMode"`
		App        string `json:"app"`
		Activation int64  `json:"at"`
		Duration   int64  `json:"dur"`
		Flags      int64  `json:"fl"`
		Params     string `json:"p"`
	}
	if err := json.Unmarshal([]byte(params), &p); err != nil {
		writeError(w, errInvalidInput, "malformed params")
		return
	}
	if p.CallMode != "create" {
		writeError(w, errAccessDenied, "only callMode create is supported")
		return
	}

	tok := token{
		Value:      randomHex(36),
		App:        p.App,
		Activation: p.Activation,
		Duration:   p.Duration,
		Flags:      p.Flags,
		Params:     p.Params,
		CreatedAt:  time.Now().Unix(),
	}
	s.mu.Lock()
	s.tokens = append(s.tokens, tok)
	s.mu.Unlock()

	writeJSON(w, tok)
	s.log.Info("created mock token", "app", p.App, "duration", p.Duration)
}

func (s *server) searchItems(w http.ResponseWriter, params string) {
	var p struct {
		Spec searchSpec `json:"spec"`
	}
	if err := json.Unmarshal([]byte(params), &p); err != nil {
		writeError(w, errInvalidInput, "malformed params")
		return
	}
	if p.Spec.ItemsType != "avl_unit" {
		writeError(w, errInvalidInput, "unsupported itemsType "+p.Spec.ItemsType)
		return
	}

	matched, err := s.match(p.Spec)
	if err != nil {
		writeError(w, errInvalidInput, err.Error())
		return
	}

	items := make([]map[string]any, 0, len(matched))
	for _, u := range matched {
		items = append(items, map[string]any{"id": u.ID, "nm": u.Name, "cls": 2, "mu": 0})
	}

	writeJSON(w, map[string]any{
		"searchSpec":      p.Spec,
		"dataFlags":       1,
		"totalItemsCount": len(items),
		"indexFrom":       0,
		"indexTo":         max(len(items)-1, 0),
		"items":           items,
	})
	s.log.Info("search", "prop", p.Spec.PropName, "mask", p.Spec.PropValueMask, "matched", len(items))
}

// match filters fixture units by spec. Masks use shell-style wildcards,
// matching Wialon's propValueMask.
func (s *server) match(spec searchSpec) ([]fixtureUnit, error) {
	var out []fixtureUnit
	for _, u := range s.units {
		var value string
		switch spec.PropName {
		case "sys_name":
			value = u.Name
		case "sys_unique_id":
			value = u.UniqueID
		default:
			return nil, fmt.Errorf("unsupported propName %s", spec.PropName)
		}

		ok, err := path.Match(spec.PropValueMask, value)
		if err != nil {
			return nil, fmt.Errorf("bad mask %q: %w", spec.PropValueMask, err)
		}
		if ok {
			out = append(out, u)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func randomHex(n int) string {
	b := make([]byte, n/2)
	//nolint:errcheck,gosec // crypto/rand.Read never fails on supported platforms
	rand.Read(b)
	return hex.EncodeToString(b)
}
