package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yokitheyo/bracketdecode/internal/config"
	"github.com/yokitheyo/bracketdecode/notation"
)

type envelope struct {
	Result json.RawMessage `json:"result"`
	Error  string          `json:"error"`
	Detail json.RawMessage `json:"detail"`
}

func newTestRouter(opts ...notation.Option) http.Handler {
	return NewRouter(notation.NewDecoder(opts...), 32, zap.NewNop())
}

func do(t *testing.T, h http.Handler, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func postJSON(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/decode", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestDecodeJSON(t *testing.T) {
	h := newTestRouter()

	rec, env := do(t, h, postJSON(`{"notation":"2[b3[a]]"}`))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))

	var res decodeResult
	require.NoError(t, json.Unmarshal(env.Result, &res))
	assert.Equal(t, "baaabaaa", res.Output)
	assert.Equal(t, 8, res.Size)
	assert.Equal(t, "compat", res.Mode)
}

func TestDecodeModeOverride(t *testing.T) {
	h := newTestRouter()

	_, env := do(t, h, postJSON(`{"notation":"4[ab]2[c]","mode":"nested"}`))
	var res decodeResult
	require.NoError(t, json.Unmarshal(env.Result, &res))
	assert.Equal(t, "ababababcc", res.Output)

	_, env = do(t, h, postJSON(`{"notation":"4[ab]2[c]"}`))
	require.NoError(t, json.Unmarshal(env.Result, &res))
	assert.Equal(t, "cababababcabababab", res.Output)

	rec, env := do(t, h, postJSON(`{"notation":"4[ab]","mode":"weird"}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Error, "unknown decode mode")
}

func TestDecodeForm(t *testing.T) {
	h := newTestRouter()

	form := url.Values{"notation": {"4[ab]"}}
	req := httptest.NewRequest(http.MethodPost, "/decode", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec, env := do(t, h, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var res decodeResult
	require.NoError(t, json.Unmarshal(env.Result, &res))
	assert.Equal(t, "abababab", res.Output)
}

func TestDecodeErrors(t *testing.T) {
	h := newTestRouter(notation.WithMaxOutput(10))

	tests := []struct {
		name   string
		body   string
		status int
		errMsg string
	}{
		{"bad json", `{"notation":`, http.StatusBadRequest, "invalid request body"},
		{"invalid grammar", `{"notation":"2[b3[a]"}`, http.StatusUnprocessableEntity, "invalid notation"},
		{"too long", `{"notation":"` + strings.Repeat("a", 33) + `"}`, http.StatusRequestEntityTooLarge, "notation too long"},
		{"output limit", `{"notation":"6[ab]"}`, http.StatusRequestEntityTooLarge, "expanded output too large"},
		{"multiplier range", `{"notation":"` + strings.Repeat("9", 25) + `[a]"}`, http.StatusUnprocessableEntity, "multiplier out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := do(t, h, postJSON(tt.body))
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, env.Error, tt.errMsg)
			assert.Empty(t, env.Result)
		})
	}
}

func TestDecodeGrammarDetail(t *testing.T) {
	h := newTestRouter()

	_, env := do(t, h, postJSON(`{"notation":"[b3[a]]"}`))
	var detail grammarDetail
	require.NoError(t, json.Unmarshal(env.Detail, &detail))
	assert.Equal(t, notation.ReasonLeadingBracket.String(), detail.Reason)
	assert.Equal(t, 0, detail.Pos)
}

func TestValidateEndpoint(t *testing.T) {
	h := newTestRouter()

	tests := []struct {
		input  string
		valid  bool
		reason string
	}{
		{"4[ab]", true, ""},
		{"", true, ""},
		{"4[ab]]]", false, notation.ReasonUnmatchedClose.String()},
		{"2[b3[]]", false, notation.ReasonBadGroupStart.String()},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/validate?notation="+url.QueryEscape(tt.input), nil)
			rec, env := do(t, h, req)
			require.Equal(t, http.StatusOK, rec.Code)

			var res validateResult
			require.NoError(t, json.Unmarshal(env.Result, &res))
			assert.Equal(t, tt.valid, res.Valid)
			assert.Equal(t, tt.reason, res.Reason)
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestRouter()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/decode", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRequestIDIsPropagated(t *testing.T) {
	h := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec, env := do(t, h, req)
	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
	assert.JSONEq(t, `"ok"`, string(env.Result))
}

func TestServeShutsDownOnCancel(t *testing.T) {
	cfg := config.Default().Server
	cfg.Addr = "127.0.0.1:0"
	cfg.MaxConns = 4

	srv := New(cfg, notation.NewDecoder(), zap.NewNop())
	ln, err := srv.Listen()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	body := strings.NewReader(`{"notation":"4[ab]"}`)
	resp, err := http.Post(fmt.Sprintf("http://%s/decode", ln.Addr()), "application/json", body)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(data), "abababab")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
