package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/accelerate/internal/pipeline"
	"github.com/jonathan/accelerate/internal/prompt"
	"github.com/jonathan/accelerate/internal/store"
	"github.com/jonathan/accelerate/internal/types"
)

var opportunitiesCmd = &cobra.Command{
	Use:     "opportunities",
	Aliases: []string{"opp"},
	Short:   "Manage accelerator, grant, and angel opportunities",
}

var opportunitiesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List opportunities",
	Args:  cobra.NoArgs,
	RunE:  runOpportunitiesList,
}

var opportunitiesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new opportunity interactively",
	Args:  cobra.NoArgs,
	RunE:  runOpportunitiesAdd,
}

var opportunitiesSearchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Search opportunities by name, description, focus area, or industry",
	Args:  cobra.ExactArgs(1),
	RunE:  runOpportunitiesSearch,
}

var (
	opportunitiesListType  string
	opportunitiesListStage string
)

func init() {
	opportunitiesListCmd.Flags().StringVarP(&opportunitiesListType, "type", "t", "", "Filter by type (accelerator, grant, angel)")
	opportunitiesListCmd.Flags().StringVarP(&opportunitiesListStage, "stage", "s", "", "Filter by accepted stage (idea, pre-seed, seed, series-a, series-b, growth)")

	opportunitiesCmd.AddCommand(opportunitiesListCmd, opportunitiesAddCmd, opportunitiesSearchCmd)
	rootCmd.AddCommand(opportunitiesCmd)
}

func runOpportunitiesList(_ *cobra.Command, _ []string) error {
	var filter store.Collection
	if opportunitiesListType != "" {
		t, err := types.ParseOpportunityType(opportunitiesListType)
		if err != nil {
			return err
		}
		if filter, err = store.CollectionFor(t); err != nil {
			return err
		}
	}

	opps := app.store.GetOpportunities(filter)

	if opportunitiesListStage != "" {
		stage, err := types.ParseStage(opportunitiesListStage)
		if err != nil {
			return err
		}
		opps = pipeline.FilterByStage(opps, stage)
	}

	if len(opps) == 0 {
		app.printer.Warn("No opportunities found.")
		app.printer.Hint(`Run "accelerate opportunities add" to add one.`)
		return nil
	}

	app.printer.PrintOpportunities(opps)
	return nil
}

func runOpportunitiesAdd(_ *cobra.Command, _ []string) error {
	return withPrompter(func(p *prompt.Prompter) error {
		o, err := p.Opportunity(types.Now())
		if err != nil {
			return err
		}
		if err := app.store.AddOpportunity(o); err != nil {
			return fmt.Errorf("failed to add opportunity: %w", err)
		}
		app.printer.Success("\nAdded opportunity: %s", o.Name)
		return nil
	})
}

func runOpportunitiesSearch(_ *cobra.Command, args []string) error {
	keyword := args[0]
	matches := pipeline.Search(app.store.GetOpportunities(""), keyword)

	if len(matches) == 0 {
		app.printer.Warn("No opportunities matching %q", keyword)
		return nil
	}

	app.printer.PrintSearchResults(keyword, matches)
	return nil
}

// withPrompter runs fn with a terminal prompt. Interrupting the prompt cancels the command quietly.
func withPrompter(fn func(p *prompt.Prompter) error) error {
	p, err := newPrompter()
	if err != nil {
		return err
	}
	defer func() { _ = p.Close() }()

	if err := fn(p); err != nil {
		if errors.Is(err, prompt.ErrAborted) {
			app.printer.Warn("Cancelled.")
			return nil
		}
		return err
	}
	return nil
}
