package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Tool is a single MCP tool backed by a Go function.
type Tool struct {
	Name        string
	Description string

	Schema *jsonschema.Schema

	Execute func(ctx context.Context, args map[string]any) (any, error)
}

type Server struct {
	http.Handler

	server *mcp.Server
}

func New(name string, tools ...Tool) (*Server, error) {
	impl := &mcp.Implementation{
		Name: name,
	}

	opts := &mcp.ServerOptions{
		KeepAlive: time.Second * 30,
	}

	server := mcp.NewServer(impl, opts)

	for _, t := range tools {
		if t.Name == "" || t.Execute == nil {
			return nil, errors.New("invalid tool")
		}

		schema := t.Schema

		if schema == nil {
			schema = &jsonschema.Schema{
				Type: "object",
			}
		}

		tool := &mcp.Tool{
			Name:        t.Name,
			Description: t.Description,

			InputSchema: schema,
		}

		server.AddTool(tool, handleTool(t))
	}

	handler := mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{
		Stateless: true,
	})

	s := &Server{
		Handler: handler,

		server: server,
	}

	return s, nil
}

func handleTool(t Tool) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args map[string]any

		if data, err := json.Marshal(req.Params.Arguments); err == nil {
			json.Unmarshal(data, &args)
		}

		result, err := t.Execute(ctx, args)

		if err != nil {
			return &mcp.CallToolResult{
				IsError: true,

				Content: []mcp.Content{
					&mcp.TextContent{
						Text: err.Error(),
					},
				},
			}, nil
		}

		switch v := result.(type) {
		case *mcp.CallToolResult:
			return v, nil

		case string:
			return &mcp.CallToolResult{
				Content: []mcp.Content{
					&mcp.TextContent{
						Text: v,
					},
				},
			}, nil

		default:
			data, err := json.Marshal(v)

			if err != nil {
				return nil, err
			}

			return &mcp.CallToolResult{
				Content: []mcp.Content{
					&mcp.TextContent{
						Text: string(data),
					},
				},
			}, nil
		}
	}
}
