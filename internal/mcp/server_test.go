package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hashnotes/internal/api"
	"hashnotes/internal/store/sqlstore"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHash = "0123456789abcdef0123456789abcdef"

func newTestStore(t *testing.T) *sqlstore.SQLStore {
	t.Helper()
	s, err := sqlstore.New("sqlite3", ":memory:")
	require.NoError(t, err, "Failed to create store")
	t.Cleanup(func() { s.Close() })
	return s
}

func callTool(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
	result, err := handler(context.Background(), req)
	require.NoError(t, err, "Handler returned error")
	return result
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	textContent, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "Expected TextContent")
	return textContent.Text
}

func TestNotesTools(t *testing.T) {
	store := newTestStore(t)
	mcpServer := NewMCPServer(store)

	_, err := store.CreateAccount(context.Background(), testHash, "Note 1", "first")
	require.NoError(t, err)

	result := callTool(t, mcpServer.getNotesHandler, map[string]interface{}{"hash": testHash})
	require.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), "Found 1 note:")

	for _, title := range []string{"Note 2", "Note 3"} {
		result := callTool(t, mcpServer.addNoteHandler, map[string]interface{}{
			"hash":  testHash,
			"title": title,
			"text":  "body",
		})
		require.False(t, result.IsError, "Result is error: %v", result)
		assert.True(t, strings.HasPrefix(resultText(t, result), "Added note "))
	}

	result = callTool(t, mcpServer.getNotesHandler, map[string]interface{}{"hash": testHash})
	require.False(t, result.IsError)
	content := resultText(t, result)
	assert.Contains(t, content, "Found 3 notes:")
	for _, title := range []string{"Note 1", "Note 2", "Note 3"} {
		assert.Contains(t, content, title)
	}
}

func TestNotesToolsUnknownUser(t *testing.T) {
	mcpServer := NewMCPServer(newTestStore(t))

	result := callTool(t, mcpServer.getNotesHandler, map[string]interface{}{"hash": "nonexistent"})
	assert.True(t, result.IsError, "Expected error for nonexistent user")

	result = callTool(t, mcpServer.addNoteHandler, map[string]interface{}{"hash": "nonexistent", "title": "x"})
	assert.True(t, result.IsError, "Expected error for nonexistent user")

	result = callTool(t, mcpServer.getNotesHandler, map[string]interface{}{})
	assert.True(t, result.IsError, "Expected error for missing hash")
}

type rpcResponse struct {
	Result *struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
		IsError bool `json:"isError"`
	} `json:"result"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// postTool sends a JSON-RPC tools/call to /mcp through the full API router.
func postTool(t *testing.T, h http.Handler, id int, name string, args map[string]any) rpcResponse {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"method":  "tools/call",
		"params":  map[string]any{"name": name, "arguments": args},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	var resp rpcResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	require.Nil(t, resp.Error, w.Body.String())
	require.NotNil(t, resp.Result, w.Body.String())
	require.NotEmpty(t, resp.Result.Content)
	return resp
}

func TestRoutedTools(t *testing.T) {
	store := newTestStore(t)
	_, err := store.CreateAccount(context.Background(), testHash, "T", "X")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := api.NewRouter(api.NewHandlers(store, logger), api.RouterOptions{
		Logger: logger,
		MCP:    NewMCPServer(store).HTTPHandler(),
	})

	resp := postTool(t, h, 1, "get_notes", map[string]any{"hash": testHash})
	assert.False(t, resp.Result.IsError)
	assert.Equal(t, "Found 1 note:\n[1] T\nX", resp.Result.Content[0].Text)

	resp = postTool(t, h, 2, "add_note", map[string]any{"hash": testHash, "title": "C", "text": "D"})
	assert.False(t, resp.Result.IsError)
	assert.Equal(t, "Added note 2", resp.Result.Content[0].Text)

	resp = postTool(t, h, 3, "add_note", map[string]any{"hash": "nonexistent", "title": "C"})
	assert.True(t, resp.Result.IsError)

	// The note added over MCP is visible to the HTTP API.
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/notes/%s", testHash), nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"notes":[{"id":1,"title":"T","text":"X"},{"id":2,"title":"C","text":"D"}]}`, w.Body.String())
}
