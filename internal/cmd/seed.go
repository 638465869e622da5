package cmd

import (
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// NewSeedCmd creates and returns the seed subcommand for the hyfs CLI.
// It generates a fixture tree with varied names, extensions, and nesting.
func NewSeedCmd() *cobra.Command {
	var (
		outputPath string
		fileCount  int
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate a fixture tree for trying hyfs out",
		Long: `Generate a directory tree of test files for exercising hyfs.

Files are distributed across nested directories with a mix of
extensions, dotfiles, names with spaces, and duplicate content, so
scans, globs, and content hashing all have something to chew on.`,
		Run: func(cmd *cobra.Command, args []string) {
			runSeed(outputPath, fileCount, verbose)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path to output directory (required)")
	cmd.Flags().IntVarP(&fileCount, "count", "c", 200, "Number of files to generate")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	cmd.MarkFlagRequired("output")

	return cmd
}

var (
	seedDirs = []string{
		"", "src", "src/models", "docs", "docs/api", "data/raw",
		"data/images/thumbnails", "config", "files with spaces",
		"special-chars", ".hidden", "a/b/c/d/e", "logs",
	}
	seedExts  = []string{".txt", ".md", ".json", ".csv", ".py", ".log", ""}
	seedNames = []string{
		"report", "notes", "config", "data", "main", "utils", "index",
		"README", "backup", "my file (copy)", "file@2024", ".env",
		"multiple.dots.in.name", "UPPERCASE",
	}
)

func runSeed(outputPath string, fileCount int, verbose bool) {
	if verbose {
		fmt.Printf("Generating %d test files in %s\n", fileCount, outputPath)
	}

	// Create output directory
	if err := os.MkdirAll(outputPath, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	// Content pool: a small pool guarantees duplicate content, so
	// content identifiers collide across distinct entities.
	contentPool := make([]string, 20)
	for i := range contentPool {
		contentPool[i] = uuid.New().String() + "\n"
	}

	filesCreated := 0
	dirFileCounts := make(map[string]int)

	for filesCreated < fileCount {
		dirIdx, _ := rand.Int(rand.Reader, big.NewInt(int64(len(seedDirs))))
		nameIdx, _ := rand.Int(rand.Reader, big.NewInt(int64(len(seedNames))))
		extIdx, _ := rand.Int(rand.Reader, big.NewInt(int64(len(seedExts))))
		serial, _ := rand.Int(rand.Reader, big.NewInt(0xFFFF))

		dirPath := filepath.Join(outputPath, seedDirs[dirIdx.Int64()])
		filename := fmt.Sprintf("%s_%04x%s",
			seedNames[nameIdx.Int64()], serial.Int64(), seedExts[extIdx.Int64()])
		filePath := filepath.Join(dirPath, filename)

		if err := os.MkdirAll(dirPath, 0755); err != nil {
			log.Printf("Warning: Failed to create directory %s: %v", dirPath, err)
			continue
		}

		// Skip if file already exists
		if _, err := os.Stat(filePath); err == nil {
			continue
		}

		contentIdx, _ := rand.Int(rand.Reader, big.NewInt(int64(len(contentPool))))
		if err := os.WriteFile(filePath, []byte(contentPool[contentIdx.Int64()]), 0644); err != nil {
			log.Printf("Warning: Failed to write file %s: %v", filePath, err)
			continue
		}

		dirFileCounts[dirPath]++
		filesCreated++

		if verbose && filesCreated%100 == 0 {
			fmt.Printf("Created %d/%d files...\n", filesCreated, fileCount)
		}
	}

	// A couple of genuinely empty directories round out the fixture.
	for _, empty := range []string{"truly_empty", "temp/cache/empty"} {
		if err := os.MkdirAll(filepath.Join(outputPath, empty), 0755); err != nil {
			log.Printf("Warning: Failed to create directory %s: %v", empty, err)
		}
	}

	if verbose {
		fmt.Printf("Successfully created %d files\n", filesCreated)
		fmt.Printf("Files distributed across %d directories\n", len(dirFileCounts))
	}
}
