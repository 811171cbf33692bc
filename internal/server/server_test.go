package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/aidir/internal/catalog"
	"github.com/ziadkadry99/aidir/internal/site"
)

func setupTest(t *testing.T, cfg Config) *Server {
	t.Helper()
	store := catalog.NewStore(nil)
	store.Replace(catalog.Document{
		Meta: catalog.Meta{LastUpdated: "2024-06-01"},
		Tools: []catalog.Tool{
			{ID: "1", Title: "ChatGPT", Category: "text", Rating: 4.5, IsFree: true,
				Link: "https://chat.openai.com", Description: "Conversational assistant", Added: "2023-01-15"},
			{ID: "2", Title: "Midjourney", Category: "image", Rating: 4, Link: "https://midjourney.com"},
			{ID: "3", Title: "Whisper", Category: "audio", IsFree: true},
		},
	})
	c := site.NewController("Test Directory", store, nil)
	c.ReadyTimeout = 50 * time.Millisecond
	c.Pages = []site.MarkdownPage{{Slug: "about", Title: "About", Source: []byte("# About\n\nHello.")}}
	return New(cfg, c, nil)
}

func get(t *testing.T, srv *Server, target string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	srv := setupTest(t, Config{Port: 0})

	w := get(t, srv, "/healthz", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", body["status"])
	}
}

func TestCORSHeaders(t *testing.T) {
	srv := setupTest(t, Config{Port: 0, AllowAll: true})

	req := httptest.NewRequest("OPTIONS", "/healthz", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected CORS Allow-Origin header")
	}
}

func TestIndex(t *testing.T) {
	srv := setupTest(t, Config{})

	w := get(t, srv, "/", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q", ct)
	}
	body := w.Body.String()
	for _, want := range []string{`lang="de"`, `data-id="1"`, `data-id="2"`, `data-id="3"`, `id="tool-modal"`} {
		if !strings.Contains(body, want) {
			t.Errorf("index missing %s", want)
		}
	}
	if strings.Contains(body, "/ws/reload") {
		t.Error("live reload script rendered while disabled")
	}
}

func TestIndexFilter(t *testing.T) {
	srv := setupTest(t, Config{})

	body := get(t, srv, "/?category=audio&free=1", nil).Body.String()
	if !strings.Contains(body, `data-id="3"`) || strings.Contains(body, `data-id="1"`) {
		t.Error("filter did not select exactly tool 3")
	}
}

func TestLanguageSelection(t *testing.T) {
	srv := setupTest(t, Config{})

	tests := []struct {
		name   string
		target string
		header map[string]string
		want   string
	}{
		{"default", "/", nil, `lang="de"`},
		{"query", "/?lang=en", nil, `lang="en"`},
		{"cookie", "/", map[string]string{"Cookie": "lang=en"}, `lang="en"`},
		{"accept language", "/", map[string]string{"Accept-Language": "en-US,en;q=0.9"}, `lang="en"`},
		{"query beats cookie", "/?lang=de", map[string]string{"Cookie": "lang=en"}, `lang="de"`},
		{"invalid query ignored", "/?lang=fr", map[string]string{"Cookie": "lang=en"}, `lang="en"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(t, srv, tt.target, tt.header)
			if !strings.Contains(w.Body.String(), tt.want) {
				t.Errorf("page does not contain %s", tt.want)
			}
		})
	}
}

func TestLanguageCookieSet(t *testing.T) {
	srv := setupTest(t, Config{})

	w := get(t, srv, "/?lang=en", nil)
	var found bool
	for _, c := range w.Result().Cookies() {
		if c.Name == langCookie && c.Value == "en" {
			found = true
		}
	}
	if !found {
		t.Error("expected lang cookie to be set")
	}

	w = get(t, srv, "/", nil)
	if len(w.Result().Cookies()) != 0 {
		t.Error("cookie set without explicit choice")
	}
}

func TestToolPages(t *testing.T) {
	srv := setupTest(t, Config{})

	for _, target := range []string{"/tool.html?id=1", "/tools/1.html"} {
		w := get(t, srv, target, map[string]string{"Accept-Language": "en"})
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", target, w.Code)
		}
		if !strings.Contains(w.Body.String(), "ChatGPT") {
			t.Errorf("%s: tool title missing", target)
		}
	}

	if w := get(t, srv, "/tools/404.html", nil); w.Code != http.StatusNotFound {
		t.Errorf("unknown tool: expected 404, got %d", w.Code)
	}
	if w := get(t, srv, "/tools/1.txt", nil); w.Code != http.StatusNotFound {
		t.Errorf("bad suffix: expected 404, got %d", w.Code)
	}
	if w := get(t, srv, "/tool.html", nil); w.Code != http.StatusFound {
		t.Errorf("missing id: expected redirect, got %d", w.Code)
	}
}

func TestMarkdownPage(t *testing.T) {
	srv := setupTest(t, Config{})

	w := get(t, srv, "/pages/about.html", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Hello.") {
		t.Error("page content missing")
	}
	if w := get(t, srv, "/pages/missing.html", nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestStaticAssets(t *testing.T) {
	srv := setupTest(t, Config{})

	css := get(t, srv, "/style.css", nil)
	if !strings.HasPrefix(css.Header().Get("Content-Type"), "text/css") || css.Body.Len() == 0 {
		t.Error("stylesheet not served")
	}
	js := get(t, srv, "/script.js", nil)
	if !strings.HasPrefix(js.Header().Get("Content-Type"), "text/javascript") || js.Body.Len() == 0 {
		t.Error("script not served")
	}
}

func TestSitemap(t *testing.T) {
	srv := setupTest(t, Config{BaseURL: "https://tools.example"})

	w := get(t, srv, "/sitemap.xml", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{
		"<loc>https://tools.example/</loc>",
		"<loc>https://tools.example/tool.html?id=1</loc>",
		"<lastmod>2023-01-15</lastmod>",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("sitemap missing %s", want)
		}
	}
}

func TestAPITools(t *testing.T) {
	srv := setupTest(t, Config{})

	w := get(t, srv, "/api/tools?free=1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var entries []site.SearchEntry
	if err := json.Unmarshal(w.Body.Bytes(), &entries); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 free tools, got %d", len(entries))
	}
	for _, e := range entries {
		if !e.IsFree {
			t.Errorf("tool %s is not free", e.ID)
		}
	}

	w = get(t, srv, "/api/tools/2", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var tool catalog.Tool
	if err := json.Unmarshal(w.Body.Bytes(), &tool); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if tool.Title != "Midjourney" {
		t.Errorf("title = %q", tool.Title)
	}

	if w := get(t, srv, "/api/tools/999", nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestLiveReloadScript(t *testing.T) {
	srv := setupTest(t, Config{LiveReload: true})

	if !strings.Contains(get(t, srv, "/", nil).Body.String(), "/ws/reload") {
		t.Error("live reload script missing")
	}
}

func TestWebSocketReload(t *testing.T) {
	srv := setupTest(t, Config{LiveReload: true})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	srv.WatchCatalog(ctx)

	server := httptest.NewServer(srv.Router())
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/reload"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial: %v", err)
	}
	defer conn.Close()
	if resp.StatusCode != http.StatusSwitchingProtocols {
		t.Fatalf("expected 101, got %d", resp.StatusCode)
	}

	deadline := time.Now().Add(2 * time.Second)
	for srv.hub.count() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("connection never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	snap := srv.store.Replace(catalog.Document{Tools: []catalog.Tool{{ID: "9", Title: "New"}}})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg reloadMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	if msg.Type != "reload" || msg.Revision != snap.Revision {
		t.Errorf("got %+v, want reload at revision %d", msg, snap.Revision)
	}
}

func TestWebSocketDisabled(t *testing.T) {
	srv := setupTest(t, Config{})

	if w := get(t, srv, "/ws/reload", nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
