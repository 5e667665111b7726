// Package fakebigip is an in-memory stand-in for the iControl REST endpoints
// used by mcp-bigip. It keeps rules, pools, virtual servers and internal data
// groups keyed by full path and bumps a generation counter on every write.
package fakebigip

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"slices"
	"strings"
	"sync"
)

// Collections served under /mgmt/tm/ltm.
const (
	Rules      = "rule"
	Pools      = "pool"
	Virtuals   = "virtual"
	DataGroups = "data-group/internal"
)

const (
	authHeader = "X-F5-Auth-Token"

	// DefaultLogOutput is returned by /mgmt/tm/util/bash unless overridden.
	DefaultLogOutput = "stub log line"
)

// createDefaults fills fields the device would report for a new object.
var createDefaults = map[string]map[string]any{
	Rules:      {"apiAnonymous": ""},
	Pools:      {"loadBalancingMode": "round-robin", "monitor": "default", "description": "", "members": []any{}},
	Virtuals:   {"destination": "0.0.0.0:0", "rules": []any{}},
	DataGroups: {"type": "string", "description": "", "records": []any{}},
}

type Option func(*Server)

// WithCredentials makes the fake require the given token on every call and
// issue it from the login endpoint for the given username and password.
func WithCredentials(username, password, token string) Option {
	return func(s *Server) {
		s.username = username
		s.password = password
		s.token = token
	}
}

// WithLogOutput sets the commandResult returned for bash commands.
func WithLogOutput(out string) Option {
	return func(s *Server) {
		s.logOutput = out
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// Server is an http.Handler; wrap it in httptest.NewServer or http.Server.
type Server struct {
	mu          sync.Mutex
	generation  int64
	collections map[string]map[string]map[string]any
	commands    []string
	logins      int

	username, password, token string
	logOutput                 string
	logger                    *slog.Logger

	mux *http.ServeMux
}

// New returns a fake seeded with the virtual server /Common/TestVs.
func New(opts ...Option) *Server {
	s := &Server{
		generation:  1,
		collections: map[string]map[string]map[string]any{},
		logOutput:   DefaultLogOutput,
		logger:      slog.New(slog.DiscardHandler),
		mux:         http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(s)
	}

	for resource := range createDefaults {
		s.collections[resource] = map[string]map[string]any{}
		base := "/mgmt/tm/ltm/" + resource
		s.mux.HandleFunc("GET "+base, s.authorized(s.handleList(resource)))
		s.mux.HandleFunc("POST "+base, s.authorized(s.handleCreate(resource)))
		s.mux.HandleFunc("GET "+base+"/{name}", s.authorized(s.handleGet(resource)))
		s.mux.HandleFunc("PATCH "+base+"/{name}", s.authorized(s.handlePatch(resource)))
		s.mux.HandleFunc("DELETE "+base+"/{name}", s.authorized(s.handleDelete(resource)))
	}
	s.mux.HandleFunc("POST /mgmt/shared/authn/login", s.handleLogin)
	s.mux.HandleFunc("POST /mgmt/tm/util/bash", s.authorized(s.handleBash))

	s.Seed(Virtuals, map[string]any{"name": "TestVs", "partition": "Common", "destination": "0.0.0.0:0", "rules": []any{}})
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.logger.Debug("fake BIG-IP request", "method", r.Method, "path", r.URL.Path)
	s.mux.ServeHTTP(w, r)
}

// Seed stores item in resource, filling name-derived fields and defaults.
func (s *Server) Seed(resource string, item map[string]any) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(resource, item)
}

// Item returns a copy of the object stored under fullPath.
func (s *Server) Item(resource, fullPath string) (map[string]any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.collections[resource][fullPath]
	if !ok {
		return nil, false
	}
	return maps.Clone(item), true
}

// Commands returns the utilCmdArgs of every bash call received.
func (s *Server) Commands() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.commands)
}

// Logins returns the number of successful logins.
func (s *Server) Logins() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logins
}

// RotateToken invalidates the current token; the next request gets a 401
// until the client logs in again.
func (s *Server) RotateToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

func (s *Server) insertLocked(resource string, item map[string]any) map[string]any {
	stored := maps.Clone(createDefaults[resource])
	for k, v := range item {
		stored[k] = v
	}
	partition, _ := stored["partition"].(string)
	if partition == "" {
		partition = "Common"
	}
	name, _ := stored["name"].(string)
	fullPath := "/" + partition + "/" + name
	stored["partition"] = partition
	stored["fullPath"] = fullPath
	s.generation++
	stored["generation"] = s.generation
	s.collections[resource][fullPath] = stored
	return maps.Clone(stored)
}

func (s *Server) authorized(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		want := s.token
		s.mu.Unlock()
		if want != "" && r.Header.Get(authHeader) != want {
			writeError(w, http.StatusUnauthorized, "Authorization failed: no user authentication header or token detected.")
			return
		}
		next(w, r)
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.username != "" && (body.Username != s.username || body.Password != s.password) {
		writeError(w, http.StatusUnauthorized, "Authentication failed.")
		return
	}
	s.logins++
	token := s.token
	if token == "" {
		token = fmt.Sprintf("fake-token-%d", s.logins)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"username": body.Username,
		"token":    map[string]any{"token": token, "timeout": 1200},
	})
}

func (s *Server) handleBash(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Command     string `json:"command"`
		UtilCmdArgs string `json:"utilCmdArgs"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if body.Command != "run" {
		writeError(w, http.StatusBadRequest, "unsupported command "+body.Command)
		return
	}

	s.mu.Lock()
	s.commands = append(s.commands, body.UtilCmdArgs)
	out := s.logOutput
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"kind":          "tm:util:bash:runstate",
		"command":       "run",
		"utilCmdArgs":   body.UtilCmdArgs,
		"commandResult": out,
	})
}

func (s *Server) handleList(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		keys := slices.Sorted(maps.Keys(s.collections[resource]))
		items := make([]any, 0, len(keys))
		for _, k := range keys {
			items = append(items, maps.Clone(s.collections[resource][k]))
		}
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{"items": items})
	}
}

func (s *Server) handleCreate(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		name, _ := body["name"].(string)
		if name == "" {
			writeError(w, http.StatusBadRequest, "name is required")
			return
		}
		partition, _ := body["partition"].(string)
		if partition == "" {
			partition = "Common"
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		fullPath := "/" + partition + "/" + name
		if _, exists := s.collections[resource][fullPath]; exists {
			writeError(w, http.StatusConflict, fmt.Sprintf("01020066:3: The requested %s (%s) already exists in partition %s.", resource, fullPath, partition))
			return
		}
		writeJSON(w, http.StatusOK, s.insertLocked(resource, body))
	}
}

func (s *Server) handleGet(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fullPath := decodeName(r.PathValue("name"))
		item, ok := s.Item(resource, fullPath)
		if !ok {
			notFound(w, resource, fullPath)
			return
		}
		writeJSON(w, http.StatusOK, item)
	}
}

func (s *Server) handlePatch(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		fullPath := decodeName(r.PathValue("name"))

		s.mu.Lock()
		defer s.mu.Unlock()
		item, ok := s.collections[resource][fullPath]
		if !ok {
			notFound(w, resource, fullPath)
			return
		}
		for k, v := range body {
			switch k {
			case "name", "partition", "fullPath", "generation":
				continue
			}
			if v != nil {
				item[k] = v
			}
		}
		s.generation++
		item["generation"] = s.generation
		writeJSON(w, http.StatusOK, maps.Clone(item))
	}
}

func (s *Server) handleDelete(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fullPath := decodeName(r.PathValue("name"))

		s.mu.Lock()
		_, ok := s.collections[resource][fullPath]
		delete(s.collections[resource], fullPath)
		s.mu.Unlock()

		if !ok {
			notFound(w, resource, fullPath)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
	}
}

// decodeName turns ~Partition~Folder~Name into /Partition/Folder/Name.
func decodeName(component string) string {
	if !strings.HasPrefix(component, "~") {
		return component
	}
	var parts []string
	for _, p := range strings.Split(component, "~") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return "/" + strings.Join(parts, "/")
}

func notFound(w http.ResponseWriter, resource, fullPath string) {
	writeError(w, http.StatusNotFound, fmt.Sprintf("01020036:3: The requested %s (%s) was not found.", resource, fullPath))
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"code":       status,
		"message":    message,
		"errorStack": []any{},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
