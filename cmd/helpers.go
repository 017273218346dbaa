package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/widgetlab/widget-cli/internal/model"
	"github.com/widgetlab/widget-cli/internal/selector"
	"github.com/widgetlab/widget-cli/internal/snapshot"
)

// loadTree reads the snapshot named by --snapshot, scoped by --root and
// --max-depth. Every command resolves against the tree it returns, so one
// invocation sees one consistent snapshot.
func loadTree(cmd *cobra.Command) (*model.Node, error) {
	path, _ := cmd.Flags().GetString("snapshot")
	if path == "" {
		return nil, fmt.Errorf("--snapshot is required (path to an agent JSON dump)")
	}
	root, _ := cmd.Flags().GetString("root")
	maxDepth, _ := cmd.Flags().GetInt("max-depth")

	provider := &snapshot.FileProvider{Path: path}
	return provider.FetchTree(context.Background(), root, maxDepth)
}

// newResolver builds a resolver from the persistent matching flags.
func newResolver(cmd *cobra.Command) *selector.Resolver {
	ignoreCase, _ := cmd.Flags().GetBool("ignore-case")
	maxDepth, _ := cmd.Flags().GetInt("max-depth")
	return selector.New(selector.Options{
		MaxDepth:   maxDepth,
		IgnoreCase: ignoreCase,
	})
}

// nodeInfo is a compact widget representation for command output.
type nodeInfo struct {
	ID     int    `yaml:"i"              json:"i"`
	UID    string `yaml:"uid,omitempty"  json:"uid,omitempty"`
	Type   string `yaml:"t"              json:"t"`
	Name   string `yaml:"n,omitempty"    json:"n,omitempty"`
	Text   string `yaml:"x,omitempty"    json:"x,omitempty"`
	Bounds [4]int `yaml:"b"              json:"b"`
	Virt   string `yaml:"virt,omitempty" json:"virt,omitempty"`
	Path   string `yaml:"p,omitempty"    json:"p,omitempty"`
}

// nodeInfoFrom converts a matched node to its compact representation.
// Virtual entities report their kind and the path or position that
// addresses them.
func nodeInfoFrom(n *model.Node) nodeInfo {
	info := nodeInfo{
		ID:     n.ID,
		UID:    n.UID,
		Type:   n.Type,
		Name:   n.Name,
		Text:   n.Text,
		Bounds: n.Bounds,
	}
	if n.IsVirtual() {
		info.Virt = n.Virtual.Kind
		info.Path = n.Virtual.Path
	}
	return info
}

func nodeInfosFrom(matches []*model.Node) []nodeInfo {
	infos := make([]nodeInfo, 0, len(matches))
	for _, m := range matches {
		infos = append(infos, nodeInfoFrom(m))
	}
	return infos
}
