package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/accelerate/internal/observability"
	"github.com/jonathan/accelerate/internal/pipeline"
	"github.com/jonathan/accelerate/internal/prompt"
	"github.com/jonathan/accelerate/internal/types"
)

var applicationsCmd = &cobra.Command{
	Use:     "applications",
	Aliases: []string{"app"},
	Short:   "Track applications to opportunities",
}

var applicationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List applications grouped by status",
	Args:  cobra.NoArgs,
	RunE:  runApplicationsList,
}

var applicationsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Start tracking an application",
	Args:  cobra.NoArgs,
	RunE:  runApplicationsAdd,
}

var applicationsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update application status (partial id match supported)",
	Args:  cobra.ExactArgs(1),
	RunE:  runApplicationsUpdate,
}

var applicationsFollowUpCmd = &cobra.Command{
	Use:   "follow-up <id>",
	Short: "Log an email, call, meeting, or note against an application",
	Args:  cobra.ExactArgs(1),
	RunE:  runApplicationsFollowUp,
}

var applicationsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show application statistics",
	Args:  cobra.NoArgs,
	RunE:  runApplicationsStats,
}

var applicationsListStatus string

func init() {
	applicationsListCmd.Flags().StringVarP(&applicationsListStatus, "status", "s", "", "Filter by status")

	applicationsCmd.AddCommand(applicationsListCmd, applicationsAddCmd, applicationsUpdateCmd, applicationsFollowUpCmd, applicationsStatsCmd)
	rootCmd.AddCommand(applicationsCmd)
}

func runApplicationsList(_ *cobra.Command, _ []string) error {
	var status types.ApplicationStatus
	if applicationsListStatus != "" {
		s, err := types.ParseStatus(applicationsListStatus)
		if err != nil {
			return err
		}
		status = s
	}

	apps := pipeline.FilterByStatus(app.store.GetApplications(), status)
	if len(apps) == 0 {
		app.printer.Warn("No applications found.")
		app.printer.Hint(`Run "accelerate applications add" to track one.`)
		return nil
	}

	names := pipeline.NewNames(app.store.GetOpportunities(""), app.store.GetProducts())
	app.printer.PrintApplications(pipeline.GroupByStatus(apps), names)
	return nil
}

func runApplicationsAdd(_ *cobra.Command, _ []string) error {
	opps := app.store.GetOpportunities("")
	if len(opps) == 0 {
		app.printer.Warn("No opportunities found. Add one first:")
		app.printer.Hint("  accelerate opportunities add")
		return nil
	}
	products := app.store.GetProducts()
	if len(products) == 0 {
		app.printer.Warn("No products found. Add one first:")
		app.printer.Hint("  accelerate products add")
		return nil
	}

	return withPrompter(func(p *prompt.Prompter) error {
		a, err := p.Application(opps, products, types.Now())
		if err != nil {
			return err
		}
		if err := app.store.AddApplication(a); err != nil {
			return fmt.Errorf("failed to add application: %w", err)
		}

		names := pipeline.NewNames(opps, products)
		app.printer.Success("\nTracking application:")
		app.printer.Success("  %s → %s", names.Opportunity(&a), names.Product(&a))
		app.printer.Hint("  ID: %s", a.ID)
		return nil
	})
}

func runApplicationsUpdate(_ *cobra.Command, args []string) error {
	a, ok := pipeline.FindByIDPrefix(app.store.GetApplications(), args[0])
	if !ok {
		app.printer.Fail("No application found matching: %s", args[0])
		return nil
	}

	names := pipeline.NewNames(app.store.GetOpportunities(""), app.store.GetProducts())
	app.printer.Success("\nUpdating: %s → %s", names.Opportunity(a), names.Product(a))
	app.printer.Hint("Current status: %s\n", observability.StatusColor(a.Status))

	return withPrompter(func(p *prompt.Prompter) error {
		patch, err := p.StatusChange(a.Status)
		if err != nil {
			return err
		}
		found, err := app.store.UpdateApplication(a.ID.String(), patch)
		if err != nil {
			return fmt.Errorf("failed to update application: %w", err)
		}
		if !found {
			app.printer.Fail("No application found matching: %s", args[0])
			return nil
		}
		app.printer.PrintStatusChange(a.Status, *patch.Status)
		return nil
	})
}

func runApplicationsFollowUp(_ *cobra.Command, args []string) error {
	a, ok := pipeline.FindByIDPrefix(app.store.GetApplications(), args[0])
	if !ok {
		app.printer.Fail("No application found matching: %s", args[0])
		return nil
	}

	names := pipeline.NewNames(app.store.GetOpportunities(""), app.store.GetProducts())
	app.printer.Success("\nFollow-up for: %s → %s", names.Opportunity(a), names.Product(a))

	return withPrompter(func(p *prompt.Prompter) error {
		f, err := p.FollowUp(types.Now())
		if err != nil {
			return err
		}
		patch := types.ApplicationPatch{FollowUps: []types.FollowUp{f}}
		if _, err := app.store.UpdateApplication(a.ID.String(), patch); err != nil {
			return fmt.Errorf("failed to log follow-up: %w", err)
		}
		app.printer.Success("Logged %s: %s", f.Type, f.Summary)
		return nil
	})
}

func runApplicationsStats(_ *cobra.Command, _ []string) error {
	apps := app.store.GetApplications()
	if len(apps) == 0 {
		app.printer.Warn("No applications tracked yet.")
		return nil
	}

	app.printer.PrintStats(pipeline.ComputeStats(apps))
	return nil
}
