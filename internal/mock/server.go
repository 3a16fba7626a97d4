// Package mock is a stand-in HR assistant backend for local development.
// It speaks the real wire contract: form login issuing a signed JWT, an
// SSE chat endpoint framing `data: <json>` events, and dashboard stats.
package mock

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var signingKey = []byte("mock-hr-backend")

type Server struct {
	port int
}

func NewServer(port int) *Server {
	return &Server{port: port}
}

// Handler returns the backend routes, for Start and for in-process tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/auth/login", s.loginHandler)
	mux.HandleFunc("/api/v1/chat", s.chatHandler)
	mux.HandleFunc("/api/v1/analytics/dashboard-stats", s.statsHandler)
	return mux
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	fmt.Printf("Mock HR backend starting on http://localhost%s\n", addr)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	w.Header().Set("Content-Type", "application/json")
	if username == "" || password != "demo" {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{
			"detail": "Invalid credentials (hint: any username, password \"demo\")",
		})
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": username,
		"exp": time.Now().Add(8 * time.Hour).Unix(),
	})
	signed, err := token.SignedString(signingKey)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	name := username
	if at := strings.IndexByte(name, '@'); at > 0 {
		name = name[:at]
	}
	json.NewEncoder(w).Encode(map[string]string{
		"access_token": signed,
		"user_name":    name,
		"role":         "admin",
	})
}

func (s *Server) chatHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !s.authorized(r) {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	var req struct {
		Message  string `json:"message"`
		ThreadID string `json:"thread_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}

	s.respond(w, flusher, req.Message)
}

func (s *Server) authorized(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	raw, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok {
		return false
	}
	_, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		return signingKey, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	return err == nil
}

// respond scripts a streamed turn keyed off the user's message, covering
// every event kind the client has to handle.
func (s *Server) respond(w http.ResponseWriter, flusher http.Flusher, userMessage string) {
	lowerMsg := strings.ToLower(userMessage)

	switch {
	case strings.Contains(lowerMsg, "employee"):
		s.runTool(w, flusher, "list_employees_tool", map[string]any{},
			`[{"name":"Priya Sharma","department":"Engineering"},{"name":"Tom Alvarez","department":"Sales"}]`)
		s.streamTokens(w, flusher,
			"Here are the employees:\n\n- **Priya Sharma** — Engineering\n- **Tom Alvarez** — Sales")

	case strings.Contains(lowerMsg, "apply") && strings.Contains(lowerMsg, "leave"):
		s.runTool(w, flusher, "apply_leave_tool", map[string]any{"days": 5},
			`{"status":"awaiting_approval"}`)
		sendFrame(w, flusher, map[string]any{
			"type":    "response",
			"content": "APPROVAL REQUIRED: I am about to file 5 days of leave on your behalf. Send another message to confirm.",
		})

	case strings.Contains(lowerMsg, "leave"):
		s.runTool(w, flusher, "get_leave_balance_tool", map[string]any{},
			`{"remaining": 12}`)
		s.streamTokens(w, flusher, "You have **12** leave days remaining this year.")

	case strings.Contains(lowerMsg, "fail"):
		sendFrame(w, flusher, map[string]any{
			"type":    "error",
			"content": "The HR agent crashed while planning this request.",
		})

	default:
		s.streamTokens(w, flusher,
			"I can help with employee records and leave management. Try \"list all employees\" or \"apply for leave\".")
	}
}

func (s *Server) runTool(w http.ResponseWriter, flusher http.Flusher, name string, input map[string]any, output string) {
	runID := uuid.NewString()
	sendFrame(w, flusher, map[string]any{
		"type":   "tool_start",
		"run_id": runID,
		"name":   name,
		"input":  input,
	})
	time.Sleep(400 * time.Millisecond)

	sendFrame(w, flusher, map[string]any{
		"type":   "tool_end",
		"run_id": runID,
		"output": output,
	})
	time.Sleep(100 * time.Millisecond)
}

func (s *Server) streamTokens(w http.ResponseWriter, flusher http.Flusher, response string) {
	batchSize := 3
	runes := []rune(response)

	for i := 0; i < len(runes); i += batchSize {
		end := i + batchSize
		if end > len(runes) {
			end = len(runes)
		}
		sendFrame(w, flusher, map[string]any{
			"type":    "token",
			"content": string(runes[i:end]),
		})
		time.Sleep(15 * time.Millisecond)
	}
}

func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"total_employees": 42,
		"department_distribution": []map[string]any{
			{"department": "Engineering", "count": 20},
			{"department": "Sales", "count": 12},
			{"department": "People Ops", "count": 10},
		},
		"leave_stats": map[string]any{
			"pending":  3,
			"approved": 7,
			"distribution": []map[string]any{
				{"status": "approved", "count": 7},
				{"status": "pending", "count": 3},
				{"status": "rejected", "count": 1},
			},
		},
	})
}

func sendFrame(w http.ResponseWriter, flusher http.Flusher, data any) {
	jsonData, _ := json.Marshal(data)
	fmt.Fprintf(w, "data: %s\n\n", jsonData)
	flusher.Flush()
}
