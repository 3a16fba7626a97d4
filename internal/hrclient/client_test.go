package hrclient_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hr-tui/internal/hrclient"
)

func testSession() *hrclient.Session {
	return hrclient.NewSession("test-token", "Amrita", "admin")
}

// collectEvents drains a chat stream into a slice, failing the test on
// stream errors.
func collectEvents(t *testing.T, eventCh <-chan hrclient.Event, errCh <-chan error) []hrclient.Event {
	t.Helper()

	var events []hrclient.Event
	for eventCh != nil || errCh != nil {
		select {
		case ev, ok := <-eventCh:
			if !ok {
				eventCh = nil
				continue
			}
			events = append(events, ev)
		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			if err != nil {
				t.Fatalf("stream error: %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for stream")
		}
	}
	return events
}

func writeFrame(w http.ResponseWriter, flusher http.Flusher, payload any) {
	data, _ := json.Marshal(payload)
	fmt.Fprintf(w, "data: %s\n\n", data)
	flusher.Flush()
}

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/auth/login" {
			http.NotFound(w, r)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if r.PostFormValue("username") != "amrita@corp.io" || r.PostFormValue("password") != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid credentials"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{
			"access_token": "tok-123",
			"user_name":    "Amrita",
			"role":         "admin",
		})
	}))
	defer srv.Close()

	client := hrclient.NewClient(srv.URL)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		sess, err := client.Login(ctx, "amrita@corp.io", "secret")
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if sess.Token != "tok-123" {
			t.Errorf("expected token tok-123, got %s", sess.Token)
		}
		if sess.UserName != "Amrita" || sess.Role != "admin" {
			t.Errorf("unexpected user descriptor: %s/%s", sess.UserName, sess.Role)
		}
		if sess.ThreadID == "" {
			t.Error("expected a thread id")
		}
	})

	t.Run("rejected credentials surface the detail", func(t *testing.T) {
		_, err := client.Login(ctx, "amrita@corp.io", "wrong")
		if err == nil {
			t.Fatal("expected error for bad credentials")
		}
		if got := err.Error(); got != "login failed: Invalid credentials" {
			t.Errorf("unexpected error message: %s", got)
		}
	})
}

func TestChatStreamsEventsInOrder(t *testing.T) {
	var gotAuth, gotThreadID string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/chat" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		gotAuth = r.Header.Get("Authorization")

		var req struct {
			Message  string `json:"message"`
			ThreadID string `json:"thread_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		gotThreadID = req.ThreadID

		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)

		writeFrame(w, flusher, map[string]any{"type": "tool_start", "run_id": "t1", "name": "list_employees_tool", "input": map[string]any{}})
		writeFrame(w, flusher, map[string]any{"type": "tool_end", "run_id": "t1", "output": "[...]"})
		for _, tok := range []string{"Here ", "are ", "the ", "employees."} {
			writeFrame(w, flusher, map[string]any{"type": "token", "content": tok})
		}
	}))
	defer srv.Close()

	client := hrclient.NewClient(srv.URL)
	sess := testSession()

	eventCh, errCh, err := client.Chat(context.Background(), sess, "list employees")
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	events := collectEvents(t, eventCh, errCh)

	if gotAuth != "Bearer test-token" {
		t.Errorf("expected bearer header, got %q", gotAuth)
	}
	if gotThreadID != sess.ThreadID {
		t.Errorf("expected thread id %s, got %s", sess.ThreadID, gotThreadID)
	}
	if len(events) != 6 {
		t.Fatalf("expected 6 events, got %d: %#v", len(events), events)
	}
	if _, ok := events[0].(hrclient.ToolStart); !ok {
		t.Errorf("expected ToolStart first, got %T", events[0])
	}
	if _, ok := events[1].(hrclient.ToolEnd); !ok {
		t.Errorf("expected ToolEnd second, got %T", events[1])
	}
	if tok, ok := events[2].(hrclient.Token); !ok || tok.Text != "Here " {
		t.Errorf("unexpected third event: %#v", events[2])
	}
}

func TestChatSkipsMalformedFrames(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)

		fmt.Fprint(w, "data: {not json\n\n")
		flusher.Flush()
		writeFrame(w, flusher, map[string]any{"type": "token", "content": "ok"})
	}))
	defer srv.Close()

	client := hrclient.NewClient(srv.URL)
	eventCh, errCh, err := client.Chat(context.Background(), testSession(), "hi")
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}

	events := collectEvents(t, eventCh, errCh)
	if len(events) != 1 {
		t.Fatalf("expected the malformed frame to be dropped, got %d events", len(events))
	}
	if tok := events[0].(hrclient.Token); tok.Text != "ok" {
		t.Errorf("unexpected event: %#v", events[0])
	}
}

func TestChatNonOKStatusFailsUpFront(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "token expired", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := hrclient.NewClient(srv.URL)
	_, _, err := client.Chat(context.Background(), testSession(), "hi")
	if err == nil {
		t.Fatal("expected error for 401 response")
	}
}

func TestChatConnectionRefused(t *testing.T) {
	// Point at a server that is already gone.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := hrclient.NewClient(url)
	_, _, err := client.Chat(context.Background(), testSession(), "hi")
	if err == nil {
		t.Fatal("expected error when the backend is unreachable")
	}
}

func TestChatDiscardsIncompleteTail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)

		writeFrame(w, flusher, map[string]any{"type": "token", "content": "whole"})
		// Unterminated frame: the connection closes before the delimiter.
		fmt.Fprint(w, `data: {"type":"token","content":"cut off`)
		flusher.Flush()
	}))
	defer srv.Close()

	client := hrclient.NewClient(srv.URL)
	eventCh, errCh, err := client.Chat(context.Background(), testSession(), "hi")
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}

	events := collectEvents(t, eventCh, errCh)
	if len(events) != 1 {
		t.Fatalf("expected only the complete frame, got %d events", len(events))
	}
}

func TestChatContextCancellation(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		writeFrame(w, flusher, map[string]any{"type": "token", "content": "first"})
		<-release
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	client := hrclient.NewClient(srv.URL)
	eventCh, errCh, err := client.Chat(ctx, testSession(), "hi")
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}

	select {
	case <-eventCh:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for first event")
	}

	cancel()

	// Channels must close without reporting the cancellation as a stream error.
	for errCh != nil || eventCh != nil {
		select {
		case _, ok := <-eventCh:
			if !ok {
				eventCh = nil
			}
		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			if err != nil {
				t.Errorf("unexpected stream error after cancel: %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("stream did not shut down after cancel")
		}
	}
}

func TestDashboardStats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/analytics/dashboard-stats" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"total_employees": 42,
			"department_distribution": [
				{"department": "Engineering", "count": 20},
				{"department": "Sales", "count": 12}
			],
			"leave_stats": {
				"pending": 3,
				"approved": 7,
				"distribution": [
					{"status": "approved", "count": 7},
					{"status": "pending", "count": 3},
					{"status": "rejected", "count": 1}
				]
			}
		}`)
	}))
	defer srv.Close()

	client := hrclient.NewClient(srv.URL)
	stats, err := client.DashboardStats(context.Background(), testSession())
	if err != nil {
		t.Fatalf("DashboardStats() error = %v", err)
	}

	if stats.TotalEmployees != 42 {
		t.Errorf("expected 42 employees, got %d", stats.TotalEmployees)
	}
	if stats.PendingLeaves != 3 || stats.ApprovedLeaves != 7 {
		t.Errorf("unexpected leave counts: %+v", stats)
	}
	if len(stats.Departments) != 2 || stats.Departments[0].Label != "Engineering" || stats.Departments[0].Count != 20 {
		t.Errorf("unexpected departments: %+v", stats.Departments)
	}
	if len(stats.LeaveStatus) != 3 {
		t.Errorf("unexpected leave distribution: %+v", stats.LeaveStatus)
	}
}

func TestTransportFailureEndsTurnWithErrorStep(t *testing.T) {
	// End to end through the reducer: a backend that dies before the first
	// frame must still leave the assistant message in a terminal state.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := hrclient.NewClient(url)
	tr := hrclient.NewTranscript()
	turn := tr.Begin("hi")

	_, _, err := client.Chat(context.Background(), testSession(), "hi")
	if err == nil {
		t.Fatal("expected transport error")
	}
	tr.Apply(turn, hrclient.ErrorEvent{Text: err.Error()})
	tr.Finalize(turn)

	msg := tr.Messages()[1]
	if msg.IsThinking {
		t.Error("message left in loading state")
	}
	if len(msg.Steps) != 1 || msg.Steps[0].Kind != hrclient.StepError {
		t.Errorf("expected a single error step, got %+v", msg.Steps)
	}
}
