package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/moneta-app/moneta/internal/cli"
	"github.com/moneta-app/moneta/internal/ledger"
	"github.com/moneta-app/moneta/internal/model"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage categories",
		Long:  `List, add, edit, and delete the categories used to classify transactions.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(editCategoryCmd())
	cmd.AddCommand(deleteCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, closeFn, err := openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			kindStr, _ := cmd.Flags().GetString("kind")
			kinds := []model.CategoryKind{model.CategoryKindExpense, model.CategoryKindIncome}
			if kindStr != "" {
				kinds = []model.CategoryKind{model.CategoryKind(kindStr)}
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Name"),
				cli.HeaderStyle.Render("Kind"))
			for _, kind := range kinds {
				for _, c := range engine.EditableCategories(kind) {
					fmt.Fprintf(w, "%s\t%s\t%s\n", c.ID, c.Name, c.Kind)
				}
			}
			return nil
		},
	}

	cmd.Flags().String("kind", "", "only list this kind (expense, income)")
	return cmd
}

func addCategoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a new category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, closeFn, err := openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			kind, _ := cmd.Flags().GetString("kind")
			icon, _ := cmd.Flags().GetString("icon")
			color, _ := cmd.Flags().GetString("color")

			cat, err := engine.SaveCategory(cmd.Context(), ledger.CategoryEdit{
				Name:  args[0],
				Icon:  icon,
				Color: color,
				Kind:  model.CategoryKind(kind),
			})
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added %s category %q (%s)", cat.Kind, cat.Name, cat.ID)))
			return nil
		},
	}

	cmd.Flags().String("kind", "expense", "category kind (expense, income); fixed after creation")
	cmd.Flags().String("icon", "Tag", "display icon")
	cmd.Flags().String("color", "#94a3b8", "display color")
	return cmd
}

func editCategoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Edit a category's name, icon or color",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, closeFn, err := openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			current, ok := engine.Store().CategoryByID(args[0])
			if !ok {
				return fmt.Errorf("category %s not found", args[0])
			}

			edit := ledger.CategoryEdit{
				ID:    current.ID,
				Name:  current.Name,
				Icon:  current.Icon,
				Color: current.Color,
			}
			if v, _ := cmd.Flags().GetString("name"); v != "" {
				edit.Name = v
			}
			if v, _ := cmd.Flags().GetString("icon"); v != "" {
				edit.Icon = v
			}
			if v, _ := cmd.Flags().GetString("color"); v != "" {
				edit.Color = v
			}

			cat, err := engine.SaveCategory(cmd.Context(), edit)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated category %q", cat.Name)))
			return nil
		},
	}

	cmd.Flags().String("name", "", "new name")
	cmd.Flags().String("icon", "", "new icon")
	cmd.Flags().String("color", "", "new color")
	return cmd
}

func deleteCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, closeFn, err := openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			if err := engine.DeleteCategory(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted category %s", args[0])))
			return nil
		},
	}
}
