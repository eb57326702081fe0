package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/accelerate/internal/prompt"
	"github.com/jonathan/accelerate/internal/types"
)

var productsCmd = &cobra.Command{
	Use:     "products",
	Aliases: []string{"prod"},
	Short:   "Manage your products and startups",
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your products",
	Args:  cobra.NoArgs,
	RunE:  runProductsList,
}

var productsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new product interactively",
	Args:  cobra.NoArgs,
	RunE:  runProductsAdd,
}

var productsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show product details",
	Args:  cobra.ExactArgs(1),
	RunE:  runProductsShow,
}

func init() {
	productsCmd.AddCommand(productsListCmd, productsAddCmd, productsShowCmd)
	rootCmd.AddCommand(productsCmd)
}

func runProductsList(_ *cobra.Command, _ []string) error {
	products := app.store.GetProducts()
	if len(products) == 0 {
		app.printer.Warn("No products found.")
		app.printer.Hint(`Run "accelerate products add" to add one.`)
		return nil
	}

	app.printer.PrintProducts(products)
	return nil
}

func runProductsAdd(_ *cobra.Command, _ []string) error {
	return withPrompter(func(p *prompt.Prompter) error {
		prod, err := p.Product(types.Now())
		if err != nil {
			return err
		}
		if err := app.store.AddProduct(prod); err != nil {
			return fmt.Errorf("failed to add product: %w", err)
		}
		app.printer.Success("\nAdded product: %s", prod.Name)
		app.printer.Hint("ID: %s", prod.ID)
		return nil
	})
}

func runProductsShow(_ *cobra.Command, args []string) error {
	prod, ok := app.store.GetProduct(args[0])
	if !ok {
		app.printer.Fail("Product not found: %s", args[0])
		return nil
	}

	app.printer.PrintProduct(prod)
	return nil
}
