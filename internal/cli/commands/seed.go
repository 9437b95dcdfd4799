package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/contacts/internal/state"
	"github.com/leapstack-labs/contacts/pkg/core"
)

// SeedFile is the document read by the seed command.
type SeedFile struct {
	Contacts []core.Contact `yaml:"contacts"`
}

// NewSeedCommand creates the seed command.
func NewSeedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed <file.yaml>",
		Short: "Load contacts from a YAML file",
		Long: `Create one contact per entry of a YAML seed file.

Ids are allocated by the store. The file looks like:

  contacts:
    - first: Ada
      last: Lovelace
      twitter: "@ada"
      favorite: true`,
		Example: `  # Seed the configured database
  contacts seed testdata/contacts.yaml

  # Seed a specific SQLite file
  contacts seed contacts.yaml --database ./data/contacts.db`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, args[0])
		},
	}

	return cmd
}

// ReadSeedFile parses a seed file from disk.
func ReadSeedFile(path string) ([]core.Contact, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by the user
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var doc SeedFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}
	return doc.Contacts, nil
}

func runSeed(cmd *cobra.Command, path string) error {
	contacts, err := ReadSeedFile(path)
	if err != nil {
		return err
	}

	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	saved, err := state.Import(cmd.Context(), cmdCtx.Store, contacts)
	if err != nil {
		return err
	}

	cmdCtx.Logger.Debug("seeded contacts", "file", path, "count", len(saved))
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d contacts from %s\n", len(saved), path)
	return nil
}
