package main

import (
	"encoding/json"
	"fmt"

	"phonebook/cmd/phonebook/app"
	"phonebook/cmd/phonebook/ui"
	"phonebook/internal/phonebook"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	listJSON bool

	addName   string
	addPhone  string
	addStreet string
	addCity   string
)

// listCmd prints every person once
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print all persons",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

// addCmd adds a person and prints the refetched list
var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a person",
	Long: `Adds a person through the addPerson mutation.

Name, street and city are required. An empty phone is sent as null.

Example:
  phonebook add --name "Ada Lovelace" --street "Main St" --city Metropolis`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Print JSON instead of text")

	addCmd.Flags().StringVar(&addName, "name", "", "Person name (required)")
	addCmd.Flags().StringVar(&addPhone, "phone", "", "Phone number")
	addCmd.Flags().StringVar(&addStreet, "street", "", "Street address (required)")
	addCmd.Flags().StringVar(&addCity, "city", "", "City (required)")
}

func runList(cmd *cobra.Command, args []string) error {
	persons, err := newPersonsAPI().AllPersons(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list persons: %w", err)
	}
	logger.Debug("listed persons", zap.Int("count", len(persons)), zap.String("endpoint", cfg.Endpoint))
	return printPersons(cmd, persons)
}

func runAdd(cmd *cobra.Command, args []string) error {
	draft := phonebook.Draft{Name: addName, Phone: addPhone, Street: addStreet, City: addCity}
	np, err := draft.ToNewPerson()
	if err != nil {
		return err
	}

	persons := newPersonsAPI()
	created, err := persons.AddPerson(cmd.Context(), np)
	if err != nil {
		return fmt.Errorf("failed to add person: %w", err)
	}
	logger.Info("person added", zap.String("id", created.ID), zap.String("name", created.Name))

	all, err := persons.AllPersons(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to refetch persons: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n\n", created.Name)
	return printPersons(cmd, all)
}

func printPersons(cmd *cobra.Command, persons []phonebook.Person) error {
	out := cmd.OutOrStdout()
	if listJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(persons)
	}
	styles := ui.NewStyles(ui.DetectTheme(cfg.Theme))
	fmt.Fprintln(out, app.RenderPersons(styles, persons, ui.DefaultContentWidth))
	return nil
}
