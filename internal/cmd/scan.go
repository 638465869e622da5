package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/kitled/hyfs/attr"
	"github.com/kitled/hyfs/hyfs"
)

// NewScanCmd creates and returns the scan subcommand for the hyfs CLI.
// It walks a directory tree, assigns entity identities, and reports
// summary statistics.
func NewScanCmd() *cobra.Command {
	var (
		statsOut string
		verbose  bool
	)

	cmd := &cobra.Command{
		Use:   "scan PATH",
		Short: "Scan a directory tree into the entity store",
		Long: `Scan a directory tree into the entity store.

Every file and directory gets a stable entity identifier, persisted as a
user.hyfs.uuid extended attribute where the filesystem supports it. On
filesystems without attribute support, identities fall back to a
deterministic hash of stat fields and are not persisted.`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			runScan(args[0], statsOut, verbose)
		},
	}

	cmd.Flags().StringVarP(&statsOut, "stats-out", "o", "", "Write scan statistics as JSON to this file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print every scanned entity")

	return cmd
}

func runScan(path, statsOut string, verbose bool) {
	store, err := hyfs.Scan(path, attr.Xattr{})
	if err != nil {
		log.Fatalf("Failed to scan %s: %v", path, err)
	}

	if verbose {
		for _, node := range store.Filter(func(*hyfs.Node) bool { return true }) {
			fmt.Printf("%s  %-4s  %s\n", node.EID, node.Kind, node.Path)
		}
	}

	stats := store.GenerateStats()
	fmt.Println(stats)

	if statsOut != "" {
		if err := stats.Save(statsOut); err != nil {
			log.Fatalf("Failed to write stats: %v", err)
		}
		fmt.Printf("Stats written to %s\n", statsOut)
	}
}
