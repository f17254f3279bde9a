package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/savespree/savespree/internal/category"
)

var (
	categoryName   string
	categoryEmoji  string
	categoryColor  string
	categoryBudget float64
)

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage spending categories",
}

var categoryAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a category",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		cat, err := app.Categories.Add(categoryName, categoryEmoji, categoryColor, categoryBudget)
		if err != nil {
			return surfaceWarning(err)
		}
		fmt.Printf("New category added: %s\n", cat.Name)
		return nil
	},
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories in display order",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		for i, cat := range app.Categories.Categories() {
			budget := "no sub-budget"
			if cat.Budget > 0 {
				budget = fmt.Sprintf("budget %s%.1f", currencySymbol, cat.Budget)
			}
			fmt.Printf("%2d. %s %s (%s, %s)\n", i, cat.Emoji, cat.Name, cat.Color, budget)
		}
		return nil
	},
}

var categoryUpdateCmd = &cobra.Command{
	Use:   "update <index>",
	Short: "Replace the category at a position",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("index must be a number: %w", err)
		}

		app, err := newApp()
		if err != nil {
			return err
		}

		updated := category.Category{
			Name:   categoryName,
			Emoji:  categoryEmoji,
			Color:  categoryColor,
			Budget: categoryBudget,
		}
		if err := app.Categories.Update(index, updated); err != nil {
			return surfaceWarning(err)
		}
		fmt.Println("Category has been updated.")
		return nil
	},
}

var categoryDeleteCmd = &cobra.Command{
	Use:   "delete <index>",
	Short: "Delete the category at a position",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("index must be a number: %w", err)
		}

		if !deleteYes {
			if !defaultDialog.Confirm("Category Removed",
				"Transactions keep the deleted category name as plain text.") {
				fmt.Println("Kept the category.")
				return nil
			}
		}

		app, err := newApp()
		if err != nil {
			return err
		}

		if err := app.Categories.Delete(index); err != nil {
			return surfaceWarning(err)
		}
		fmt.Println("The selected category has been deleted.")
		return nil
	},
}

var categoryMoveCmd = &cobra.Command{
	Use:   "move <from> <to>",
	Short: "Move a category to a new position",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("from must be a number: %w", err)
		}
		to, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("to must be a number: %w", err)
		}

		app, err := newApp()
		if err != nil {
			return err
		}

		if err := app.Categories.Move(from, to); err != nil {
			return surfaceWarning(err)
		}
		fmt.Println("Category order updated.")
		return nil
	},
}

func registerCategoryFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&categoryName, "name", "", "category name (unique)")
	cmd.Flags().StringVar(&categoryEmoji, "emoji", "", "display glyph")
	cmd.Flags().StringVar(&categoryColor, "color", "", "display color, #RRGGBB")
	cmd.Flags().Float64Var(&categoryBudget, "budget", 0, "sub-budget (0 = none)")
}

func init() {
	registerCategoryFlags(categoryAddCmd)
	registerCategoryFlags(categoryUpdateCmd)
	categoryDeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip the confirmation prompt")

	categoryCmd.AddCommand(categoryAddCmd)
	categoryCmd.AddCommand(categoryListCmd)
	categoryCmd.AddCommand(categoryUpdateCmd)
	categoryCmd.AddCommand(categoryDeleteCmd)
	categoryCmd.AddCommand(categoryMoveCmd)
}
