package cmd

import (
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/kitled/hyfs/attr"
	"github.com/kitled/hyfs/hyfs"
)

// NewWatchCmd creates and returns the watch subcommand for the hyfs CLI.
// It scans a tree and then keeps the store current as files change.
func NewWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch PATH",
		Short: "Keep a scanned tree's store current as files change",
		Long: `Scan PATH, then watch it for changes and re-ingest created or written
paths into the store. Because identity lives in the user.hyfs.uuid
attribute, a file edited or moved within the tree keeps its entity
identifier. Removed paths are logged; their records and tags remain.`,
		Args: cobra.ExactArgs(1),
		Run:  runWatch,
	}
}

func runWatch(cmd *cobra.Command, args []string) {
	path := args[0]

	store, err := hyfs.Scan(path, attr.Xattr{})
	if err != nil {
		log.Fatalf("Failed to scan %s: %v", path, err)
	}
	fmt.Println(store.GenerateStats())

	watcher, err := hyfs.NewWatcher(store, path)
	if err != nil {
		log.Fatalf("Failed to watch %s: %v", path, err)
	}
	go watcher.Start()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	log.Printf("watching %s", path)
	for {
		select {
		case batch := <-watcher.Applied():
			for _, change := range batch {
				log.Printf("ingested change: %s", change.Path)
			}
			log.Printf("store now: %s", store.GenerateStats())
		case <-sigChan:
			log.Println("Received interrupt signal, shutting down...")
			watcher.Close()
			return
		}
	}
}
