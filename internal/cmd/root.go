package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kitled/hyfs/version"
)

// NewRootCmd creates and returns the root cobra command for the hyfs CLI.
// It sets up all subcommands, command groups, and basic configuration.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hyfs",
		Short: "hyfs - stable entity identities and indexed views over a filesystem tree",
		Long: `hyfs assigns a stable identifier to every file and directory, persisted
through extended attributes so it survives renames and moves, and keeps a
flat canonical store with path, parent/child, content-hash, and tag
indexes from which hierarchical and semantic views are derived on demand.

Use subcommands to perform different operations:
  - scan:  Scan a directory tree into the entity store and report stats
  - tree:  Render the derived hierarchical view of a scanned tree
  - find:  Find entities whose name matches a glob pattern
  - hash:  Compute or refresh content identifiers for files
  - watch: Keep a scanned tree's store current as files change
  - seed:  Generate a fixture tree for trying hyfs out`,
		Version: version.GetFullVersion(),
	}

	groupQuery := "query"
	groupUtilities := "utilities"

	// Add command groups for better organization
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupQuery,
		Title: "Store Operations",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	scanCmd := NewScanCmd()
	treeCmd := NewTreeCmd()
	findCmd := NewFindCmd()
	hashCmd := NewHashCmd()
	watchCmd := NewWatchCmd()
	seedCmd := NewSeedCmd()

	scanCmd.GroupID = groupQuery
	treeCmd.GroupID = groupQuery
	findCmd.GroupID = groupQuery
	hashCmd.GroupID = groupQuery
	watchCmd.GroupID = groupQuery
	seedCmd.GroupID = groupUtilities

	// Add subcommands
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(hashCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(seedCmd)

	return rootCmd
}
