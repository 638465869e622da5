package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/kitled/hyfs/attr"
	"github.com/kitled/hyfs/hyfs"
)

// NewHashCmd creates and returns the hash subcommand for the hyfs CLI.
// It computes content identifiers for files, using and refreshing the
// attribute-store cache.
func NewHashCmd() *cobra.Command {
	var (
		pattern string
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "hash PATH",
		Short: "Compute content identifiers for files in a tree",
		Long: `Scan PATH and compute the SHA-256 content identifier for every file,
or only those whose name matches --pattern.

Digests are cached in the user.hyfs.cid extended attribute; --refresh
discards cached digests and recomputes them from the file bytes.`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			runHash(args[0], pattern, refresh)
		},
	}

	cmd.Flags().StringVarP(&pattern, "pattern", "p", "", "Only hash files whose name matches this glob")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Invalidate cached digests and recompute from disk")

	return cmd
}

func runHash(path, pattern string, refresh bool) {
	store, err := hyfs.Scan(path, attr.Xattr{})
	if err != nil {
		log.Fatalf("Failed to scan %s: %v", path, err)
	}

	var nodes []*hyfs.Node
	if pattern != "" {
		nodes, err = store.Find(pattern)
		if err != nil {
			log.Fatalf("Bad pattern: %v", err)
		}
	} else {
		nodes = store.Filter(func(n *hyfs.Node) bool { return !n.IsDir() })
	}

	prints := hyfs.Fingerprinter{Attrs: store.Attrs()}
	if refresh {
		if err := prints.InvalidateAll(nodes); err != nil {
			log.Fatalf("Failed to invalidate caches: %v", err)
		}
	}

	hashed := 0
	for _, node := range nodes {
		cid, err := prints.ContentID(node)
		if err != nil {
			log.Fatalf("Failed to hash %s: %v", node.Path, err)
		}
		if cid == "" {
			continue // directory matched by pattern
		}
		fmt.Printf("%s  %s\n", cid, node.Path)
		hashed++
	}
	fmt.Printf("%d files hashed\n", hashed)
}
