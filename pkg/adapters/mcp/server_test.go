package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aretw0/switchboard/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBoard struct {
	toggles   []*domain.Toggle
	reloadErr error
}

func (b *stubBoard) Toggles() []*domain.Toggle { return b.toggles }

func (b *stubBoard) Lookup(name string) (*domain.Toggle, error) {
	for _, t := range b.toggles {
		if t.Name() == name {
			return t, nil
		}
	}
	return nil, domain.ErrToggleNotFound
}

func (b *stubBoard) Reload(ctx context.Context) error { return b.reloadErr }

func newTestServer() (*Server, *stubBoard) {
	board := &stubBoard{toggles: []*domain.Toggle{
		domain.NewBoolean("dark-mode", true),
		domain.NewEstablished("login"),
	}}
	return NewServer(board, "test", nil), board
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text
}

func TestListToggles(t *testing.T) {
	s, _ := newTestServer()

	res, err := s.handleListToggles(context.Background(), callRequest(nil))
	require.NoError(t, err)

	var statuses []domain.Status
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &statuses))
	require.Len(t, statuses, 2)
	assert.Equal(t, "dark-mode", statuses[0].Name)
	assert.True(t, statuses[1].Enabled)
}

func TestCheckToggle(t *testing.T) {
	s, _ := newTestServer()

	res, err := s.handleCheckToggle(context.Background(), callRequest(map[string]any{"name": "dark-mode"}))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	var status domain.Status
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &status))
	assert.True(t, status.Enabled)
	assert.Equal(t, domain.KindBoolean, status.Kind)
}

func TestCheckToggle_Errors(t *testing.T) {
	s, _ := newTestServer()

	res, err := s.handleCheckToggle(context.Background(), callRequest(map[string]any{"name": "ghost"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = s.handleCheckToggle(context.Background(), callRequest(map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestReload(t *testing.T) {
	s, board := newTestServer()

	res, err := s.handleReload(context.Background(), callRequest(nil))
	require.NoError(t, err)
	assert.Equal(t, "loaded 2 toggles", resultText(t, res))

	board.reloadErr = errors.New("boom")
	res, err = s.handleReload(context.Background(), callRequest(nil))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestReadTogglesResource(t *testing.T) {
	s, _ := newTestServer()

	contents, err := s.readToggles(context.Background(), mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, TogglesURI, text.URI)
	assert.Contains(t, text.Text, `"name":"login"`)
}
