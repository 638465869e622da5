package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/kitled/hyfs/attr"
	"github.com/kitled/hyfs/hyfs"
)

// NewFindCmd creates and returns the find subcommand for the hyfs CLI.
func NewFindCmd() *cobra.Command {
	var showEID bool

	cmd := &cobra.Command{
		Use:   "find PATH PATTERN",
		Short: "Find entities whose name matches a glob pattern",
		Long: `Scan PATH and print every entity whose name (final path segment)
matches PATTERN. Shell glob semantics: *, ?, and [...] are supported.

Quote the pattern to keep the shell from expanding it first:

  hyfs find ./data '*.txt'`,
		Args: cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			runFind(args[0], args[1], showEID)
		},
	}

	cmd.Flags().BoolVar(&showEID, "eid", false, "Print entity identifiers alongside paths")

	return cmd
}

func runFind(path, pattern string, showEID bool) {
	store, err := hyfs.Scan(path, attr.Xattr{})
	if err != nil {
		log.Fatalf("Failed to scan %s: %v", path, err)
	}

	matches, err := store.Find(pattern)
	if err != nil {
		log.Fatalf("Bad pattern: %v", err)
	}

	for _, node := range matches {
		if showEID {
			fmt.Printf("%s  %s\n", node.EID, node.Path)
		} else {
			fmt.Println(node.Path)
		}
	}
	fmt.Printf("%d matches\n", len(matches))
}
