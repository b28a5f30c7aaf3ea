// Package mcptool exposes tools served by a Model Context Protocol server as
// agentmesh tools. A Toolbox connects to a streamable-HTTP MCP endpoint,
// lists the advertised tools and wraps each one so a model agent can call it
// like any locally registered function.
package mcptool

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hupe1980/agentmesh/core"
	"github.com/hupe1980/agentmesh/tool"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Options configure a Toolbox connection.
type Options struct {
	// ClientName reported to the server during initialization.
	ClientName string
	// ClientVersion reported to the server during initialization.
	ClientVersion string
}

// Toolbox holds an open MCP client session and the agentmesh tools derived
// from the server's tool list. Close releases the session; tools must not be
// called afterwards.
type Toolbox struct {
	session *mcp.ClientSession
	tools   []tool.Tool
}

// Connect dials a streamable-HTTP MCP server, lists its tools and returns a
// Toolbox wrapping them. The caller owns the Toolbox and must Close it.
func Connect(ctx context.Context, endpoint string, optFns ...func(o *Options)) (*Toolbox, error) {
	opts := Options{ClientName: "modelenv-mcp-client", ClientVersion: "0.1.0"}
	for _, fn := range optFns {
		fn(&opts)
	}
	if endpoint == "" {
		return nil, fmt.Errorf("mcptool: empty endpoint")
	}

	client := mcp.NewClient(&mcp.Implementation{Name: opts.ClientName, Version: opts.ClientVersion}, nil)
	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{Endpoint: endpoint}, nil)
	if err != nil {
		return nil, fmt.Errorf("mcptool: connect %s: %w", endpoint, err)
	}

	list, err := session.ListTools(ctx, &mcp.ListToolsParams{})
	if err != nil {
		_ = session.Close()
		return nil, fmt.Errorf("mcptool: list tools: %w", err)
	}

	tb := &Toolbox{session: session}
	for _, t := range list.Tools {
		tb.tools = append(tb.tools, &remoteTool{
			session:     session,
			name:        t.Name,
			description: t.Description,
			parameters:  schemaToParameters(t.InputSchema),
		})
	}
	return tb, nil
}

// Tools returns the agentmesh tools backed by the remote server.
func (tb *Toolbox) Tools() []tool.Tool { return tb.tools }

// Close terminates the underlying MCP session.
func (tb *Toolbox) Close() error { return tb.session.Close() }

// remoteTool proxies a single MCP tool through the agentmesh tool interface.
type remoteTool struct {
	session     *mcp.ClientSession
	name        string
	description string
	parameters  map[string]any
}

func (t *remoteTool) Name() string { return t.name }

func (t *remoteTool) Description() string { return t.description }

func (t *remoteTool) Parameters() map[string]any { return t.parameters }

// Call forwards the model-supplied arguments to the remote tool. Structured
// content is preferred when the server provides it; otherwise the text
// content blocks are concatenated.
func (t *remoteTool) Call(toolCtx *core.ToolContext, args map[string]any) (any, error) {
	ctx := context.Background()
	if toolCtx != nil {
		ctx = toolCtx.Context()
	}
	res, err := t.session.CallTool(ctx, &mcp.CallToolParams{Name: t.name, Arguments: args})
	if err != nil {
		return nil, fmt.Errorf("mcptool: call %s: %w", t.name, err)
	}
	if res.IsError {
		return nil, tool.NewToolError(t.name, textContent(res), "MCP_ERROR")
	}
	if res.StructuredContent != nil {
		return res.StructuredContent, nil
	}
	return textContent(res), nil
}

func textContent(res *mcp.CallToolResult) string {
	var b strings.Builder
	for _, c := range res.Content {
		if tc, ok := c.(*mcp.TextContent); ok {
			b.WriteString(tc.Text)
		}
	}
	return b.String()
}

// schemaToParameters converts the server's JSON schema into the plain map
// shape agentmesh validates arguments against. Any unusable schema collapses
// to an unconstrained object so the tool stays callable.
func schemaToParameters(schema any) map[string]any {
	fallback := map[string]any{"type": "object", "properties": map[string]any{}}
	if schema == nil {
		return fallback
	}
	raw, err := json.Marshal(schema)
	if err != nil || string(raw) == "null" {
		return fallback
	}
	var params map[string]any
	if err := json.Unmarshal(raw, &params); err != nil || len(params) == 0 {
		return fallback
	}
	return params
}
