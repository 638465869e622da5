// Package cmd provides the command-line interface implementation for hyfs.
//
// This package contains all the subcommand implementations for the hyfs CLI
// tool. It uses the Cobra library for command structure and Fang for styling.
//
// The package is organized into the following commands:
//   - root: Main command coordinator and entry point
//   - scan: Directory tree scanning and entity identity assignment
//   - tree: Hierarchical view rendering
//   - find: Glob matching over entity names
//   - hash: Content identifier computation and cache refresh
//   - watch: Continuous re-ingestion of changed paths
//   - seed: Fixture tree generation
//
// Each command is implemented as a separate file with its own constructor
// function that returns a *cobra.Command. The root command coordinates all
// subcommands.
//
// The package leverages the hyfs package for the entity store and the attr
// package for extended attribute access.
package cmd
