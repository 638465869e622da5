package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/taigrr/colorhash"

	"github.com/kitled/hyfs/attr"
	"github.com/kitled/hyfs/hyfs"
)

// NewTreeCmd creates and returns the tree subcommand for the hyfs CLI.
// It scans a tree and renders the derived hierarchical view.
func NewTreeCmd() *cobra.Command {
	var (
		rootPath string
		noColor  bool
	)

	cmd := &cobra.Command{
		Use:   "tree PATH",
		Short: "Render the derived hierarchical view of a scanned tree",
		Long: `Scan PATH and render the hierarchical view derived from the store's
parent/child index.

Each entity name is colored by its identifier, so the same entity keeps
the same color across runs and across renames (on filesystems with
extended attribute support).`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			runTree(args[0], rootPath, noColor)
		},
	}

	cmd.Flags().StringVarP(&rootPath, "root", "r", "", "Render from this subpath instead of the scan root")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable per-entity colors")

	return cmd
}

func runTree(path, rootPath string, noColor bool) {
	store, err := hyfs.Scan(path, attr.Xattr{})
	if err != nil {
		log.Fatalf("Failed to scan %s: %v", path, err)
	}

	root, err := store.Tree(rootPath)
	if err != nil {
		log.Fatalf("Failed to build tree: %v", err)
	}

	renderTree(os.Stdout, root, 0, !noColor)
}

// renderTree writes the subtree with four-space indentation, coloring
// each name by its eid when colored is set.
func renderTree(w io.Writer, node *hyfs.TreeNode, indent int, colored bool) {
	name := node.Name()
	if colored {
		name = colorizeEID(node.EID, name)
	}
	fmt.Fprintf(w, "%s%s\n", strings.Repeat("    ", indent), name)
	for _, child := range node.Children {
		renderTree(w, child, indent+1, colored)
	}
}

// colorizeEID wraps s in an ANSI 256-color escape derived from the
// eid, giving every entity a stable color.
func colorizeEID(eid, s string) string {
	// Skip the 16 base colors and the darkest grayscale tail for
	// readability; 216 cube colors remain.
	color := 16 + colorhash.HashString(eid)%216
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", color, s)
}
