package api_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/safemarkup/internal/api"
	"github.com/ajitpratap0/safemarkup/pkg/markup"
)

// newTestServer creates a strict test HTTP server with the default escaper.
func newTestServer(t *testing.T, authToken string) *httptest.Server {
	t.Helper()
	return newTestServerWithLimit(t, authToken, 1<<20)
}

func newTestServerWithLimit(t *testing.T, authToken string, maxBody int64) *httptest.Server {
	t.Helper()
	return newTestServerWithEscaper(t, markup.NewEscaper(), authToken, maxBody)
}

func newTestServerWithEscaper(t *testing.T, esc *markup.Escaper, authToken string, maxBody int64) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	srv := api.NewServer(esc, true, logger, authToken, maxBody)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func doRequest(t *testing.T, method, url string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequestWithContext(context.Background(), method, url, body)
	} else {
		req, err = http.NewRequestWithContext(context.Background(), method, url, http.NoBody)
	}
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeMap(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var result map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return result
}

// TestAPI_Healthz verifies that GET /healthz returns 200 {"status":"ok"}.
func TestAPI_Healthz(t *testing.T) {
	ts := newTestServer(t, "")

	resp := doRequest(t, http.MethodGet, ts.URL+"/healthz", nil, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decodeMap(t, resp)["status"])
	assert.NotEmpty(t, resp.Header.Get(api.RequestIDHeader))
}

// TestAPI_RequestIDPropagated verifies a caller-supplied request ID is echoed.
func TestAPI_RequestIDPropagated(t *testing.T) {
	ts := newTestServer(t, "")

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, ts.URL+"/healthz", http.NoBody)
	require.NoError(t, err)
	req.Header.Set(api.RequestIDHeader, "req-123")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "req-123", resp.Header.Get(api.RequestIDHeader))
}

func TestAPI_Escape(t *testing.T) {
	ts := newTestServer(t, "")

	body := jsonBody(t, map[string]any{"input": `<script>alert("xss")</script>`})
	resp := doRequest(t, http.MethodPost, ts.URL+"/v1/escape", body, "")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "&lt;script&gt;alert(&quot;xss&quot;)&lt;/script&gt;", decodeMap(t, resp)["result"])
}

func TestAPI_Escape_ControlCharacter(t *testing.T) {
	ts := newTestServer(t, "")

	body := jsonBody(t, map[string]any{"input": "a\x01b"})
	resp := doRequest(t, http.MethodPost, ts.URL+"/v1/escape", body, "")
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	result := decodeMap(t, resp)
	assert.Equal(t, float64(1), result["codepoint"])
	assert.Equal(t, float64(1), result["offset"])
	assert.Contains(t, result["error"], "U+0001")
}

func TestAPI_Escape_Silent(t *testing.T) {
	ts := newTestServer(t, "")

	body := jsonBody(t, map[string]any{"input": "a\x01<", "silent": true})
	resp := doRequest(t, http.MethodPost, ts.URL+"/v1/escape", body, "")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "a\x01&lt;", decodeMap(t, resp)["result"])
}

func TestAPI_Escape_Absent(t *testing.T) {
	ts := newTestServer(t, "")

	resp := doRequest(t, http.MethodPost, ts.URL+"/v1/escape", jsonBody(t, map[string]any{}), "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp2 := doRequest(t, http.MethodPost, ts.URL+"/v1/escape", jsonBody(t, map[string]any{"input": nil, "silent": true}), "")
	defer resp2.Body.Close()
	require.Equal(t, http.StatusOK, resp2.StatusCode)
	assert.Equal(t, "", decodeMap(t, resp2)["result"])
}

func TestAPI_Escape_Base64(t *testing.T) {
	ts := newTestServer(t, "")

	in := base64.StdEncoding.EncodeToString([]byte("<x>"))
	body := jsonBody(t, map[string]any{"input": map[string]string{"base64": in}})
	resp := doRequest(t, http.MethodPost, ts.URL+"/v1/escape", body, "")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	out, err := base64.StdEncoding.DecodeString(decodeMap(t, resp)["result_base64"].(string))
	require.NoError(t, err)
	assert.Equal(t, "&lt;x&gt;", string(out))
}

func TestAPI_Escape_InvalidInputType(t *testing.T) {
	ts := newTestServer(t, "")

	for _, input := range []any{42, true, []string{"a"}, map[string]string{"text": "a"}} {
		resp := doRequest(t, http.MethodPost, ts.URL+"/v1/escape", jsonBody(t, map[string]any{"input": input}), "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, decodeMap(t, resp)["error"], markup.ErrInvalidInputType.Error())
		resp.Body.Close()
	}
}

func TestAPI_Unescape(t *testing.T) {
	ts := newTestServer(t, "")

	body := jsonBody(t, map[string]any{"input": "&lt;b&gt;bold&lt;/b&gt; &notanentity;"})
	resp := doRequest(t, http.MethodPost, ts.URL+"/v1/unescape", body, "")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "<b>bold</b> &notanentity;", decodeMap(t, resp)["result"])

	resp2 := doRequest(t, http.MethodPost, ts.URL+"/v1/unescape", jsonBody(t, map[string]any{}), "")
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp2.StatusCode)
}

func TestAPI_Join(t *testing.T) {
	ts := newTestServer(t, "")

	body := jsonBody(t, map[string]any{"separator": "<br>", "items": []string{"<tag1>", "safe", "<tag2>"}})
	resp := doRequest(t, http.MethodPost, ts.URL+"/v1/join", body, "")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "&lt;tag1&gt;<br>safe<br>&lt;tag2&gt;", decodeMap(t, resp)["result"])
}

func TestAPI_Format(t *testing.T) {
	ts := newTestServer(t, "")

	body := jsonBody(t, map[string]any{"template": "<em>%s</em> (%v)", "args": []any{"<b>", 3}})
	resp := doRequest(t, http.MethodPost, ts.URL+"/v1/format", body, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "<em>&lt;b&gt;</em> (3)", decodeMap(t, resp)["result"])

	body = jsonBody(t, map[string]any{"template": "<p>${who}</p>", "vars": map[string]any{"who": "<Bob>"}})
	resp2 := doRequest(t, http.MethodPost, ts.URL+"/v1/format", body, "")
	defer resp2.Body.Close()
	require.Equal(t, http.StatusOK, resp2.StatusCode)
	assert.Equal(t, "<p>&lt;Bob&gt;</p>", decodeMap(t, resp2)["result"])

	resp3 := doRequest(t, http.MethodPost, ts.URL+"/v1/format", jsonBody(t, map[string]any{}), "")
	defer resp3.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp3.StatusCode)
}

// TestAPI_ConfiguredApostrophe verifies that every composing endpoint uses the
// server's escaper rather than the package default.
func TestAPI_ConfiguredApostrophe(t *testing.T) {
	esc := markup.NewEscaper(markup.WithApostrophe(markup.ApostropheNamed))
	ts := newTestServerWithEscaper(t, esc, "", 1<<20)

	tests := []struct {
		path string
		body map[string]any
		want string
	}{
		{"/v1/escape", map[string]any{"input": "it's"}, "it&apos;s"},
		{"/v1/join", map[string]any{"separator": "<br>", "items": []string{"it's", "x"}}, "it&apos;s<br>x"},
		{"/v1/format", map[string]any{"template": "<p>%s</p>", "args": []any{"it's"}}, "<p>it&apos;s</p>"},
		{"/v1/format", map[string]any{"template": "<p>$who</p>", "vars": map[string]any{"who": "'"}}, "<p>&apos;</p>"},
	}
	for _, tt := range tests {
		resp := doRequest(t, http.MethodPost, ts.URL+tt.path, jsonBody(t, tt.body), "")
		require.Equal(t, http.StatusOK, resp.StatusCode, tt.path)
		assert.Equal(t, tt.want, decodeMap(t, resp)["result"], tt.path)
		resp.Body.Close()
	}
}

func TestAPI_Entity(t *testing.T) {
	ts := newTestServer(t, "")

	resp := doRequest(t, http.MethodGet, ts.URL+"/v1/entities/copy", nil, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := decodeMap(t, resp)
	assert.Equal(t, "copy", result["name"])
	assert.Equal(t, float64(0xA9), result["codepoint"])
	assert.Equal(t, "©", result["char"])

	resp2 := doRequest(t, http.MethodGet, ts.URL+"/v1/entities/Amp", nil, "")
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp2.StatusCode)
}

func TestAPI_Auth(t *testing.T) {
	ts := newTestServer(t, "s3cret")

	body := jsonBody(t, map[string]any{"input": "x"})
	resp := doRequest(t, http.MethodPost, ts.URL+"/v1/escape", body, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body = jsonBody(t, map[string]any{"input": "x"})
	resp2 := doRequest(t, http.MethodPost, ts.URL+"/v1/escape", body, "wrong")
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp2.StatusCode)

	body = jsonBody(t, map[string]any{"input": "x"})
	resp3 := doRequest(t, http.MethodPost, ts.URL+"/v1/escape", body, "s3cret")
	defer resp3.Body.Close()
	assert.Equal(t, http.StatusOK, resp3.StatusCode)

	// Health check stays open.
	resp4 := doRequest(t, http.MethodGet, ts.URL+"/healthz", nil, "")
	defer resp4.Body.Close()
	assert.Equal(t, http.StatusOK, resp4.StatusCode)
}

func TestAPI_BodyTooLarge(t *testing.T) {
	ts := newTestServerWithLimit(t, "", 64)

	body := jsonBody(t, map[string]any{"input": strings.Repeat("a", 1024)})
	resp := doRequest(t, http.MethodPost, ts.URL+"/v1/escape", body, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestAPI_InvalidJSON(t *testing.T) {
	ts := newTestServer(t, "")

	resp := doRequest(t, http.MethodPost, ts.URL+"/v1/escape", bytes.NewBufferString("{not json"), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_DebugVars(t *testing.T) {
	ts := newTestServer(t, "")

	// Ensure at least one counter moved.
	escResp := doRequest(t, http.MethodPost, ts.URL+"/v1/escape", jsonBody(t, map[string]any{"input": "x"}), "")
	escResp.Body.Close()

	resp := doRequest(t, http.MethodGet, ts.URL+"/debug/vars", nil, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(b), "safemarkup_escape_total")
}
