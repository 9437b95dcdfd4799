package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/contacts/pkg/core"
)

// ListOptions holds options for the list command.
type ListOptions struct {
	Query string
	JSON  bool
}

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	opts := &ListOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List contacts",
		Long: `List contacts in display order, optionally filtered by a search term.

The term matches first and last names the same way the UI search box does.`,
		Example: `  # List all contacts
  contacts list

  # List contacts matching "ada"
  contacts list -q ada

  # List contacts as JSON
  contacts list --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Query, "query", "q", "", "Search term")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output as JSON")

	return cmd
}

func runList(cmd *cobra.Command, opts *ListOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	term := core.NoTerm()
	if cmd.Flags().Changed("query") {
		term = core.TermOf(opts.Query)
	}

	contacts, err := cmdCtx.Store.ListContacts(cmd.Context(), term)
	if err != nil {
		return fmt.Errorf("failed to list contacts: %w", err)
	}

	if opts.JSON {
		return renderJSON(cmd.OutOrStdout(), contacts)
	}
	return renderTable(cmd.OutOrStdout(), contacts)
}

func renderTable(w io.Writer, contacts []core.Contact) error {
	if len(contacts) == 0 {
		_, _ = fmt.Fprintln(w, "No contacts")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Name", "Twitter", "Favorite"})

	for _, c := range contacts {
		name := c.DisplayName()
		if !c.HasName() {
			name = "No Name"
		}
		fav := ""
		if c.Favorite {
			fav = "★"
		}
		t.AppendRow(table.Row{c.ID, name, c.Twitter, fav})
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "%d contacts\n", len(contacts))
	return nil
}

func renderJSON(w io.Writer, contacts []core.Contact) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(contacts)
}
