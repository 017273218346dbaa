package server

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/widgetlab/widget-cli/internal/model"
	"github.com/widgetlab/widget-cli/internal/selector"
	"gopkg.in/yaml.v3"
)

// matchInfo is a compact widget representation for tool responses.
type matchInfo struct {
	ID     int    `yaml:"i"              json:"i"`
	UID    string `yaml:"uid,omitempty"  json:"uid,omitempty"`
	Type   string `yaml:"t"              json:"t"`
	Name   string `yaml:"n,omitempty"    json:"n,omitempty"`
	Text   string `yaml:"x,omitempty"    json:"x,omitempty"`
	Bounds [4]int `yaml:"b"              json:"b"`
	Virt   string `yaml:"virt,omitempty" json:"virt,omitempty"`
}

func matchInfoFrom(n *model.Node) matchInfo {
	info := matchInfo{
		ID:     n.ID,
		UID:    n.UID,
		Type:   n.Type,
		Name:   n.Name,
		Text:   n.Text,
		Bounds: n.Bounds,
	}
	if n.IsVirtual() {
		info.Virt = n.Virtual.Kind
	}
	return info
}

func toYAMLResult(v interface{}) *mcp.CallToolResult {
	b, err := yaml.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error())
	}
	return mcp.NewToolResultText(string(b))
}

func (s *Server) fetch(ctx context.Context, params map[string]interface{}) (*model.Node, int, error) {
	root := stringParam(params, "root", "")
	depth := intParam(params, "depth", 0)
	tree, err := s.cache.Fetch(ctx, s.provider, root, depth)
	return tree, depth, err
}

func (s *Server) handleQuery(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	sel := stringParam(params, "selector", "")

	tree, depth, err := s.fetch(ctx, params)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	r := &selector.Resolver{Opts: s.resolver.Opts}
	r.Opts.MaxDepth = depth

	matches, err := r.FindAll(tree, sel)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	infos := make([]matchInfo, 0, len(matches))
	for _, m := range matches {
		infos = append(infos, matchInfoFrom(m))
	}
	return toYAMLResult(struct {
		Selector string      `yaml:"selector"`
		Total    int         `yaml:"total"`
		Matches  []matchInfo `yaml:"matches"`
	}{sel, len(infos), infos}), nil
}

func (s *Server) handleFind(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	sel := stringParam(params, "selector", "")

	tree, depth, err := s.fetch(ctx, params)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	r := &selector.Resolver{Opts: s.resolver.Opts}
	r.Opts.MaxDepth = depth

	match, err := r.FindOne(tree, sel)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return toYAMLResult(matchInfoFrom(match)), nil
}

func (s *Server) handleExists(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	sel := stringParam(params, "selector", "")

	tree, depth, err := s.fetch(ctx, params)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	r := &selector.Resolver{Opts: s.resolver.Opts}
	r.Opts.MaxDepth = depth

	found, err := r.Exists(tree, sel)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return toYAMLResult(struct {
		Selector string `yaml:"selector"`
		Exists   bool   `yaml:"exists"`
	}{sel, found}), nil
}

func (s *Server) handleTree(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	flat := boolParam(params, "flat", false)

	tree, _, err := s.fetch(ctx, params)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if flat {
		return toYAMLResult(model.Flatten(tree)), nil
	}
	return toYAMLResult(tree), nil
}

func (s *Server) handleExplain(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	sel := stringParam(params, "selector", "")

	result, err := selector.Explain(sel)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return toYAMLResult(result), nil
}

func (s *Server) handleRefresh(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	root := stringParam(params, "root", "")

	if root != "" {
		s.cache.Invalidate(root)
	} else {
		s.cache.InvalidateAll()
	}
	return mcp.NewToolResultText("cache invalidated"), nil
}

// Param helpers for MCP tool arguments, which arrive as loosely typed JSON.

func stringParam(params map[string]interface{}, key, def string) string {
	if v, ok := params[key].(string); ok {
		return v
	}
	return def
}

func intParam(params map[string]interface{}, key string, def int) int {
	if v, ok := params[key].(float64); ok {
		return int(v)
	}
	return def
}

func boolParam(params map[string]interface{}, key string, def bool) bool {
	if v, ok := params[key].(bool); ok {
		return v
	}
	return def
}
