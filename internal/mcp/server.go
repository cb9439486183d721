// Package mcp implements the Model Context Protocol server for safemarkup.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/ajitpratap0/safemarkup/internal/metrics"
	"github.com/ajitpratap0/safemarkup/pkg/entity"
	"github.com/ajitpratap0/safemarkup/pkg/markup"
)

// Server wraps an MCPServer with safemarkup dependencies.
type Server struct {
	mcp     *mcpserver.MCPServer
	escaper *markup.Escaper
	strict  bool
	logger  *slog.Logger
}

// NewServer creates a new MCP server. strict is the default escape mode for
// calls that do not pass "silent".
func NewServer(esc *markup.Escaper, strict bool, logger *slog.Logger) *Server {
	s := &Server{
		escaper: esc,
		strict:  strict,
		logger:  logger,
	}

	mcpSrv := mcpserver.NewMCPServer(
		"safemarkup",
		"1.0.0",
		mcpserver.WithToolCapabilities(true),
	)

	mcpSrv.AddTool(buildEscapeTool(), s.handleEscape)
	mcpSrv.AddTool(buildUnescapeTool(), s.handleUnescape)
	mcpSrv.AddTool(buildJoinTool(), s.handleJoin)
	mcpSrv.AddTool(buildLookupEntityTool(), s.handleLookupEntity)

	s.mcp = mcpSrv
	return s
}

// MCPServer returns the underlying mcp-go MCPServer for use with ServeStdio.
func (s *Server) MCPServer() *mcpserver.MCPServer {
	return s.mcp
}

// HandleEscape is the exported handler for the "escape" tool.
// It is exposed for direct testing without the mcp-go transport layer.
func (s *Server) HandleEscape(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleEscape(ctx, req)
}

// HandleUnescape is the exported handler for the "unescape" tool.
func (s *Server) HandleUnescape(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleUnescape(ctx, req)
}

// HandleJoin is the exported handler for the "join" tool.
func (s *Server) HandleJoin(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleJoin(ctx, req)
}

// HandleLookupEntity is the exported handler for the "lookup_entity" tool.
func (s *Server) HandleLookupEntity(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleLookupEntity(ctx, req)
}

// --- helpers ---

// toolResultJSON marshals v to JSON and returns it as a tool text result.
func toolResultJSON(v any) (*mcpgo.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("mcp: marshaling result: %w", err)
	}
	return mcpgo.NewToolResultText(string(b)), nil
}

// stringArg returns a string argument and whether it was present. A present
// argument of another type yields markup.ErrInvalidInputType.
func stringArg(req mcpgo.CallToolRequest, key string) (string, bool, error) {
	raw, ok := req.GetArguments()[key]
	if !ok || raw == nil {
		return "", false, nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", true, fmt.Errorf("%w: %q must be a string, got %T", markup.ErrInvalidInputType, key, raw)
	}
	return s, true, nil
}

// stringSliceArg accepts []string or a []any holding only strings.
func stringSliceArg(req mcpgo.CallToolRequest, key string) ([]string, error) {
	switch v := req.GetArguments()[key].(type) {
	case nil:
		return nil, nil
	case []string:
		return v, nil
	case []any:
		out := make([]string, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s[%d] must be a string, got %T", markup.ErrInvalidInputType, key, i, item)
			}
			out[i] = s
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %q must be an array of strings, got %T", markup.ErrInvalidInputType, key, v)
	}
}

// --- tool definitions ---

func buildEscapeTool() mcpgo.Tool {
	return mcpgo.NewTool("escape",
		mcpgo.WithDescription("Escape text for embedding in HTML or XML. Replaces & < > \" and ' with character references."),
		mcpgo.WithString("text",
			mcpgo.Required(),
			mcpgo.Description("The plain text to escape"),
		),
		mcpgo.WithBoolean("silent",
			mcpgo.Description("Skip the control character check instead of failing (default: server setting)"),
		),
	)
}

func buildUnescapeTool() mcpgo.Tool {
	return mcpgo.NewTool("unescape",
		mcpgo.WithDescription("Decode named and numeric character references. Malformed references are left as written."),
		mcpgo.WithString("text",
			mcpgo.Required(),
			mcpgo.Description("The markup to decode"),
		),
	)
}

func buildJoinTool() mcpgo.Tool {
	return mcpgo.NewTool("join",
		mcpgo.WithDescription("Join plain-text items with a trusted markup separator. Items are escaped, the separator is not."),
		mcpgo.WithString("separator",
			mcpgo.Required(),
			mcpgo.Description("Trusted markup placed between items, e.g. <br>"),
		),
		mcpgo.WithArray("items",
			mcpgo.Required(),
			mcpgo.Description("Plain-text items to escape and join"),
		),
	)
}

func buildLookupEntityTool() mcpgo.Tool {
	return mcpgo.NewTool("lookup_entity",
		mcpgo.WithDescription("Look up a named character reference (case-sensitive), e.g. copy or AMP."),
		mcpgo.WithString("name",
			mcpgo.Required(),
			mcpgo.Description("Reference name without & and ;"),
		),
	)
}

// --- tool handlers ---

// handleEscape escapes text, strictly unless silent is requested.
func (s *Server) handleEscape(_ context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	text, ok, err := stringArg(req, "text")
	if err != nil {
		return mcpgo.NewToolResultError(err.Error()), nil
	}
	silent := req.GetBool("silent", !s.strict)

	metrics.Inc(metrics.EscapeTotal)

	if !ok {
		if silent {
			return toolResultJSON(map[string]any{"result": ""})
		}
		return mcpgo.NewToolResultError("text is required"), nil
	}
	if silent {
		return toolResultJSON(map[string]any{"result": s.escaper.Silent(&text)})
	}

	out, escErr := s.escaper.String(text)
	if escErr != nil {
		metrics.Inc(metrics.EscapeRejected)
		var cc *markup.ControlCharacterError
		if errors.As(escErr, &cc) {
			return mcpgo.NewToolResultErrorf("escape rejected: %s", cc.Error()), nil
		}
		return mcpgo.NewToolResultErrorf("escape failed: %s", escErr.Error()), nil
	}
	return toolResultJSON(map[string]any{"result": out})
}

// handleUnescape decodes references in text.
func (s *Server) handleUnescape(_ context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	text, ok, err := stringArg(req, "text")
	if err != nil {
		return mcpgo.NewToolResultError(err.Error()), nil
	}
	if !ok {
		return mcpgo.NewToolResultError("text is required"), nil
	}
	metrics.Inc(metrics.UnescapeTotal)
	return toolResultJSON(map[string]any{"result": markup.UnescapeString(text)})
}

// handleJoin escapes items and joins them with the trusted separator.
func (s *Server) handleJoin(_ context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	sep, _, err := stringArg(req, "separator")
	if err != nil {
		return mcpgo.NewToolResultError(err.Error()), nil
	}
	items, err := stringSliceArg(req, "items")
	if err != nil {
		return mcpgo.NewToolResultError(err.Error()), nil
	}
	metrics.Inc(metrics.ComposeTotal)

	joined := markup.JoinWith(s.escaper, markup.Trust(sep), items)
	s.logger.Debug("mcp: join", "items", len(items))
	return toolResultJSON(map[string]any{"result": joined.String()})
}

// handleLookupEntity returns the codepoint for a reference name.
func (s *Server) handleLookupEntity(_ context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	name, ok, err := stringArg(req, "name")
	if err != nil {
		return mcpgo.NewToolResultError(err.Error()), nil
	}
	if !ok || name == "" {
		return mcpgo.NewToolResultError("name is required"), nil
	}
	ref, found := entity.Get(name)
	if !found {
		return mcpgo.NewToolResultErrorf("unknown entity %q", name), nil
	}
	return toolResultJSON(map[string]any{
		"name":      ref.Name,
		"codepoint": ref.Codepoint,
		"char":      string(ref.Codepoint),
	})
}
