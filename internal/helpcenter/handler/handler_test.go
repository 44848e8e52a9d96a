package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Damatnic/astral-turf-helpcenter/internal/analytics"
	"github.com/Damatnic/astral-turf-helpcenter/internal/docstore"
	"github.com/Damatnic/astral-turf-helpcenter/internal/helpcenter"
	"github.com/Damatnic/astral-turf-helpcenter/pkg/health"
)

func testDocs() []docstore.Document {
	return []docstore.Document{
		{
			ID:          "formations",
			Title:       "Formation Presets",
			Content:     "Formation presets let you arrange your squad quickly.",
			Category:    docstore.CategoryGuide,
			Tags:        []string{"formations", "tactics"},
			Version:     "1.0",
			Status:      docstore.StatusPublished,
			Difficulty:  docstore.DifficultyBeginner,
			Popularity:  80,
			Rating:      4.5,
			RelatedDocs: []string{"players"},
		},
		{
			ID:         "players",
			Title:      "Player Cards",
			Content:    "Player cards summarise each squad member.",
			Category:   docstore.CategoryComponent,
			Tags:       []string{"players", "tactics"},
			Version:    "1.0",
			Status:     docstore.StatusPublished,
			Difficulty: docstore.DifficultyIntermediate,
			Popularity: 60,
			Rating:     4.0,
		},
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	recorder := analytics.NewRecorder(nil)
	svc := helpcenter.New(testDocs(), recorder, nil, nil)
	t.Cleanup(svc.Close)

	router := NewRouter(New(svc, Config{}), health.NewChecker(), nil, 5*time.Second)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, srv *httptest.Server, path string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp, body
}

func do(t *testing.T, srv *httptest.Server, method, path string, payload any) (*http.Response, []byte) {
	t.Helper()
	var reqBody io.Reader
	if payload != nil {
		data, _ := json.Marshal(payload)
		reqBody = bytes.NewReader(data)
	}
	req, _ := http.NewRequest(method, srv.URL+path, reqBody)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp, body
}

func TestSearchEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv, "/api/v1/search?q=formation")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}

	var result struct {
		Query string `json:"query"`
		Total int    `json:"total"`
		Items []struct {
			Document docstore.Document `json:"document"`
			Score    float64           `json:"score"`
			Excerpt  string            `json:"excerpt"`
		} `json:"items"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("unmarshaling: %v", err)
	}
	if result.Total == 0 || result.Items[0].Document.ID != "formations" {
		t.Errorf("result = %+v", result)
	}
	if result.Items[0].Excerpt == "" {
		t.Error("excerpt missing")
	}
}

func TestSearchEndpointFilters(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv, "/api/v1/search?q=squad&category=component&difficulty=intermediate")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	var result struct {
		Total int `json:"total"`
		Items []struct {
			Document docstore.Document `json:"document"`
		} `json:"items"`
	}
	json.Unmarshal(body, &result)
	if result.Total != 1 || result.Items[0].Document.ID != "players" {
		t.Errorf("filtered result = %+v", result)
	}
}

func TestSearchEndpointValidation(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := get(t, srv, "/api/v1/search?limit=abc")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("non-integer limit status = %d, want 400", resp.StatusCode)
	}

	resp, body := get(t, srv, "/api/v1/search?sortBy=title")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad sortBy status = %d, want 400", resp.StatusCode)
	}
	var errResp struct {
		Fields map[string]string `json:"fields"`
	}
	json.Unmarshal(body, &errResp)
	if _, ok := errResp.Fields["sortBy"]; !ok {
		t.Errorf("error fields = %v, want sortBy", errResp.Fields)
	}
}

func TestSearchEndpointClampsLimit(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv, "/api/v1/search?q=squad&limit=9999")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	var result struct {
		Limit int `json:"limit"`
	}
	json.Unmarshal(body, &result)
	if result.Limit != 100 {
		t.Errorf("limit = %d, want clamped to 100", result.Limit)
	}
}

func TestGetDocumentEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv, "/api/v1/documents/formations")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var doc docstore.Document
	json.Unmarshal(body, &doc)
	if doc.ID != "formations" || doc.Metadata.Views != 1 {
		t.Errorf("doc = %s views = %d", doc.ID, doc.Metadata.Views)
	}

	// A second fetch bumps the counter again.
	_, body = get(t, srv, "/api/v1/documents/formations")
	json.Unmarshal(body, &doc)
	if doc.Metadata.Views != 2 {
		t.Errorf("views after second fetch = %d, want 2", doc.Metadata.Views)
	}

	resp, _ = get(t, srv, "/api/v1/documents/missing")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing doc status = %d, want 404", resp.StatusCode)
	}
}

func TestPatchDocumentEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, body := do(t, srv, http.MethodPatch, "/api/v1/documents/formations", map[string]any{
		"content":      "Rewritten formation guide.",
		"versionLabel": "1.1",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	var doc docstore.Document
	json.Unmarshal(body, &doc)
	if doc.Content != "Rewritten formation guide." || doc.Version != "1.1" {
		t.Errorf("updated doc = content %q version %q", doc.Content, doc.Version)
	}

	resp, _ = do(t, srv, http.MethodPatch, "/api/v1/documents/formations", map[string]any{
		"popularity": 500,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("out-of-range popularity status = %d, want 400", resp.StatusCode)
	}

	resp, _ = do(t, srv, http.MethodPatch, "/api/v1/documents/missing", map[string]any{
		"title": "New Title",
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing doc status = %d, want 404", resp.StatusCode)
	}
}

func TestVersionEndpoints(t *testing.T) {
	srv := newTestServer(t)

	do(t, srv, http.MethodPatch, "/api/v1/documents/formations", map[string]any{
		"content":      "Version two content.",
		"versionLabel": "2.0",
	})

	resp, body := get(t, srv, "/api/v1/documents/formations/versions")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("versions status = %d", resp.StatusCode)
	}
	var history struct {
		Versions []struct {
			Label string `json:"version"`
		} `json:"versions"`
	}
	json.Unmarshal(body, &history)
	if len(history.Versions) != 1 || history.Versions[0].Label != "2.0" {
		t.Errorf("versions = %+v", history.Versions)
	}

	resp, body = get(t, srv, "/api/v1/documents/formations/versions/2.0")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("version status = %d", resp.StatusCode)
	}
	var doc docstore.Document
	json.Unmarshal(body, &doc)
	if doc.Content != "Version two content." {
		t.Errorf("version content = %q", doc.Content)
	}

	resp, _ = get(t, srv, "/api/v1/documents/formations/versions/9.9")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown label status = %d, want 404", resp.StatusCode)
	}
}

func TestRelatedEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv, "/api/v1/documents/formations/related")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var related struct {
		Related []docstore.Document `json:"related"`
	}
	json.Unmarshal(body, &related)
	if len(related.Related) == 0 || related.Related[0].ID != "players" {
		t.Errorf("related = %+v", related.Related)
	}

	resp, _ = get(t, srv, "/api/v1/documents/missing/related")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing doc status = %d, want 404", resp.StatusCode)
	}
}

func TestHelpfulEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := do(t, srv, http.MethodPost, "/api/v1/documents/players/helpful", map[string]any{
		"helpful": true,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	// Body defaults to a positive vote.
	resp, _ = do(t, srv, http.MethodPost, "/api/v1/documents/players/helpful", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("empty body status = %d", resp.StatusCode)
	}

	_, body := get(t, srv, "/api/v1/documents/players")
	var doc docstore.Document
	json.Unmarshal(body, &doc)
	if doc.Metadata.Helpful != 2 {
		t.Errorf("helpful = %d, want 2", doc.Metadata.Helpful)
	}

	resp, _ = do(t, srv, http.MethodPost, "/api/v1/documents/missing/helpful", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing doc status = %d, want 404", resp.StatusCode)
	}
}

func TestBookmarkEndpoints(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := do(t, srv, http.MethodPost, "/api/v1/documents/players/bookmark", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("bookmark status = %d", resp.StatusCode)
	}

	resp, body := get(t, srv, "/api/v1/bookmarks")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("bookmarks status = %d", resp.StatusCode)
	}
	var bookmarks struct {
		Total     int                 `json:"total"`
		Documents []docstore.Document `json:"documents"`
	}
	json.Unmarshal(body, &bookmarks)
	if bookmarks.Total != 1 || bookmarks.Documents[0].ID != "players" {
		t.Errorf("bookmarks = %+v", bookmarks)
	}
}

func TestDiscoveryEndpoints(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv, "/api/v1/documents/popular?limit=1")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("popular status = %d", resp.StatusCode)
	}
	var listing struct {
		Total     int                 `json:"total"`
		Documents []docstore.Document `json:"documents"`
	}
	json.Unmarshal(body, &listing)
	if listing.Total != 1 {
		t.Errorf("popular limit ignored: %+v", listing)
	}

	resp, _ = get(t, srv, "/api/v1/documents/recent")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("recent status = %d", resp.StatusCode)
	}

	resp, body = get(t, srv, "/api/v1/categories")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("categories status = %d", resp.StatusCode)
	}
	var categories struct {
		Categories map[string]int `json:"categories"`
	}
	json.Unmarshal(body, &categories)
	if categories.Categories["guide"] != 1 || categories.Categories["component"] != 1 {
		t.Errorf("categories = %v", categories.Categories)
	}
}

func TestAnalyticsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	get(t, srv, "/api/v1/documents/formations")
	get(t, srv, "/api/v1/search?q=squad")

	resp, body := get(t, srv, "/api/v1/analytics?event=view")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var events struct {
		Total  int `json:"total"`
		Events []struct {
			DocumentID string `json:"documentId"`
			Kind       string `json:"event"`
		} `json:"events"`
	}
	json.Unmarshal(body, &events)
	if events.Total != 1 || events.Events[0].DocumentID != "formations" {
		t.Errorf("view events = %+v", events)
	}

	resp, _ = get(t, srv, "/api/v1/analytics?from=not-a-time")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad timestamp status = %d, want 400", resp.StatusCode)
	}

	resp, body = get(t, srv, "/api/v1/analytics/stats")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("stats status = %d", resp.StatusCode)
	}
	var stats struct {
		TotalEvents int `json:"total_events"`
	}
	json.Unmarshal(body, &stats)
	if stats.TotalEvents != 2 {
		t.Errorf("total events = %d, want 2", stats.TotalEvents)
	}
}

func TestExportEndpoints(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv, "/api/v1/export/json")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("json export status = %d", resp.StatusCode)
	}
	var export struct {
		Documents []json.RawMessage `json:"documents"`
	}
	if err := json.Unmarshal(body, &export); err != nil {
		t.Fatalf("export not valid JSON: %v", err)
	}
	if len(export.Documents) != 2 {
		t.Errorf("exported documents = %d, want 2", len(export.Documents))
	}

	resp, body = get(t, srv, "/api/v1/export/markdown")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("markdown export status = %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), "# Help Center Export") {
		t.Error("markdown export missing header")
	}

	resp, _ = get(t, srv, "/api/v1/export/xml")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("unsupported format status = %d, want 400", resp.StatusCode)
	}
}

func TestCacheEndpointsWithoutCache(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := get(t, srv, "/api/v1/cache/stats")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("cache stats status = %d, want 404", resp.StatusCode)
	}

	resp, _ = do(t, srv, http.MethodPost, "/api/v1/cache/invalidate", nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("cache invalidate status = %d, want 200 no-op", resp.StatusCode)
	}
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := get(t, srv, "/health/live")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("live status = %d", resp.StatusCode)
	}
	resp, _ = get(t, srv, "/health/ready")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("ready status = %d", resp.StatusCode)
	}
}

// TestErrorResponseMapping checks that sentinel and wrapped errors surface
// with the right status code and caller-facing message.
func TestErrorResponseMapping(t *testing.T) {
	srv := newTestServer(t)

	cases := []struct {
		path       string
		wantStatus int
		wantError  string
	}{
		{"/api/v1/documents/nope", http.StatusNotFound, "document not found"},
		{"/api/v1/documents/formations/versions/9.9", http.StatusNotFound, "version not found"},
		{"/api/v1/search?limit=abc", http.StatusBadRequest, "limit must be an integer"},
		{"/api/v1/export/xml", http.StatusBadRequest, `unsupported export format "xml"`},
		{"/api/v1/cache/stats", http.StatusNotFound, "search cache not configured"},
	}
	for _, tc := range cases {
		resp, body := get(t, srv, tc.path)
		if resp.StatusCode != tc.wantStatus {
			t.Errorf("GET %s status = %d, want %d", tc.path, resp.StatusCode, tc.wantStatus)
		}
		var payload struct {
			Error     string `json:"error"`
			RequestID string `json:"requestId"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			t.Fatalf("GET %s: decoding error body: %v", tc.path, err)
		}
		if payload.Error != tc.wantError {
			t.Errorf("GET %s error = %q, want %q", tc.path, payload.Error, tc.wantError)
		}
		if payload.RequestID == "" {
			t.Errorf("GET %s error body missing request id", tc.path)
		}
	}
}

func TestRequestIDEchoed(t *testing.T) {
	srv := newTestServer(t)

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/v1/categories", nil)
	req.Header.Set("X-Request-ID", "test-request-1")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("X-Request-ID"); got != "test-request-1" {
		t.Errorf("X-Request-ID = %q, want echoed value", got)
	}

	// Absent header gets a generated ID.
	resp2, _ := http.Get(srv.URL + "/api/v1/categories")
	resp2.Body.Close()
	if resp2.Header.Get("X-Request-ID") == "" {
		t.Error("generated request ID missing")
	}
}
