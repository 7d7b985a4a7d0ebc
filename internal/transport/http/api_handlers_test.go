package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

func postJSON(t *testing.T, url, body string) (*http.Response, []byte) {
	t.Helper()

	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, buf.Bytes()
}

func TestHealthEndpoint(t *testing.T) {
	ts, _ := startTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
}

func TestCORSAllowsConfiguredOriginOnly(t *testing.T) {
	ts, _ := startTestServer(t)

	// Default config allows the local frontend origin.
	req, err := http.NewRequest(http.MethodGet, ts.URL+"/health", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Origin", "http://localhost:5173")

	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("Access-Control-Allow-Origin = %q, want allowed origin", got)
	}
	if !strings.Contains(resp.Header.Get("Vary"), "Origin") {
		t.Fatalf("Vary = %q, want Origin", resp.Header.Get("Vary"))
	}

	// An unknown origin gets no allow header.
	req, err = http.NewRequest(http.MethodGet, ts.URL+"/health", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Origin", "http://evil.example")

	resp, err = ts.Client().Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("Access-Control-Allow-Origin = %q for disallowed origin, want none", got)
	}
}

func TestCORSPreflight(t *testing.T) {
	ts, _ := startTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/ai-chat", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("preflight failed: %v", err)
	}
	resp.Body.Close()

	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("Access-Control-Allow-Origin = %q, want allowed origin", got)
	}
	if !strings.Contains(resp.Header.Get("Access-Control-Allow-Methods"), "POST") {
		t.Fatalf("Access-Control-Allow-Methods = %q, want POST", resp.Header.Get("Access-Control-Allow-Methods"))
	}
	if resp.Header.Get("Access-Control-Allow-Credentials") != "true" {
		t.Fatal("preflight missing Access-Control-Allow-Credentials")
	}
}

func TestCreateRoomEndpoint(t *testing.T) {
	ts, st := startTestServer(t)

	resp, body := postJSON(t, ts.URL+"/rooms", "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("unexpected status: %d (%s)", resp.StatusCode, body)
	}

	var created CreateRoomResponse
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if created.RoomID == "" {
		t.Fatal("empty roomId in response")
	}

	room, err := st.GetRoom(context.Background(), created.RoomID)
	if err != nil {
		t.Fatalf("created room not in store: %v", err)
	}
	if room.Code != "" {
		t.Fatalf("new room code = %q, want empty", room.Code)
	}
}

func TestAutocompleteEndpoint(t *testing.T) {
	ts, _ := startTestServer(t)

	resp, body := postJSON(t, ts.URL+"/autocomplete", `{"code":"def","cursorPosition":3,"language":"python"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d (%s)", resp.StatusCode, body)
	}

	var got AutocompleteResponse
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !strings.HasPrefix(got.Suggestion, " function_name(") {
		t.Fatalf("suggestion = %q", got.Suggestion)
	}
}

func TestAIChatEndpoint(t *testing.T) {
	ts, _ := startTestServer(t)

	resp, body := postJSON(t, ts.URL+"/ai-chat", `{"prompt":"how do I debug?"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d (%s)", resp.StatusCode, body)
	}

	var got AIChatResponse
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got.Provider != "mock" || got.Reply == "" {
		t.Fatalf("unexpected reply: %+v", got)
	}
}

func TestAIChatMissingPrompt(t *testing.T) {
	ts, _ := startTestServer(t)

	resp, _ := postJSON(t, ts.URL+"/ai-chat", `{"code":"x=1"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
}

func TestAIChatBroadcastsIntoRoom(t *testing.T) {
	ts, st := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	room, err := st.CreateRoom(ctx)
	if err != nil {
		t.Fatalf("create room: %v", err)
	}

	conn, _, err := websocket.Dial(ctx, wsURL(ts.URL, room.ID), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "done")
	readMsg(ctx, t, conn) // state
	readMsg(ctx, t, conn) // presence

	resp, body := postJSON(t, ts.URL+"/ai-chat", `{"prompt":"help","roomId":"`+room.ID+`"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d (%s)", resp.StatusCode, body)
	}

	var reply AIChatResponse
	if err := json.Unmarshal(body, &reply); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}

	var msg wireMsg
	if err := wsjson.Read(ctx, conn, &msg); err != nil {
		t.Fatalf("read injected chat: %v", err)
	}
	if msg.Type != "chat" || msg.User != reply.Provider || msg.Text != reply.Reply {
		t.Fatalf("unexpected injected message: %+v", msg)
	}
}
