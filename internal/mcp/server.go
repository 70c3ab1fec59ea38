package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hashnotes/internal/store"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MCPServer exposes the notes store as MCP tools.
type MCPServer struct {
	store store.Store
	mcp   *server.MCPServer
}

func NewMCPServer(s store.Store) *MCPServer {
	m := &MCPServer{
		store: s,
		mcp:   server.NewMCPServer("HashNotes", "1.0.0", server.WithToolCapabilities(false)),
	}

	getNotes := mcp.NewTool("get_notes",
		mcp.WithDescription("Retrieve every note stored under a hash."),
		mcp.WithString("hash", mcp.Required(), mcp.Description("The account hash returned when the first note was created")),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)
	m.mcp.AddTool(getNotes, m.getNotesHandler)

	addNote := mcp.NewTool("add_note",
		mcp.WithDescription("Add a note to the account identified by a hash."),
		mcp.WithString("hash", mcp.Required(), mcp.Description("The account hash")),
		mcp.WithString("title", mcp.Description("Note title")),
		mcp.WithString("text", mcp.Description("Note body")),
		mcp.WithIdempotentHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(false),
	)
	m.mcp.AddTool(addNote, m.addNoteHandler)

	return m
}

// HTTPHandler returns a stateless streamable-HTTP transport for the server.
func (m *MCPServer) HTTPHandler() *server.StreamableHTTPServer {
	return server.NewStreamableHTTPServer(m.mcp, server.WithStateLess(true))
}

func (m *MCPServer) getNotesHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	hash, err := request.RequireString("hash")
	if err != nil {
		return mcp.NewToolResultError("hash is required"), nil
	}

	notes, err := m.store.GetNotes(ctx, hash)
	if errors.Is(err, store.ErrNotFound) {
		return mcp.NewToolResultError("user not found"), nil
	} else if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("database error: %v", err)), nil
	}

	if len(notes) == 0 {
		return mcp.NewToolResultText("No notes found."), nil
	}

	var noteStrings []string
	for _, n := range notes {
		noteStrings = append(noteStrings, fmt.Sprintf("[%d] %s\n%s", n.ID, n.Title, n.Text))
	}

	noun := "notes"
	if len(notes) == 1 {
		noun = "note"
	}
	return mcp.NewToolResultText(fmt.Sprintf("Found %d %s:\n%s", len(notes), noun, strings.Join(noteStrings, "\n\n"))), nil
}

func (m *MCPServer) addNoteHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	hash, err := request.RequireString("hash")
	if err != nil {
		return mcp.NewToolResultError("hash is required"), nil
	}
	title := request.GetString("title", "")
	text := request.GetString("text", "")

	id, err := m.store.AddNote(ctx, hash, title, text)
	if errors.Is(err, store.ErrNotFound) {
		return mcp.NewToolResultError("user not found"), nil
	} else if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("database error: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Added note %d", id)), nil
}
