package cmd

import "github.com/spf13/cobra"

var listCategoryCmd = &cobra.Command{
	Use:     "categories",
	Short:   "Показать категории и число задач",
	Aliases: []string{"cat"},
	RunE: func(cmd *cobra.Command, args []string) error {
		categories, err := newClient().Categories(cmd.Context())
		if err != nil {
			return failed(cmd, "Failed to load categories", err)
		}

		renderCategories(cmd.OutOrStdout(), categories)
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Сводка за сегодня и за неделю",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := newClient().Stats(cmd.Context())
		if err != nil {
			return failed(cmd, "Failed to load stats", err)
		}

		renderStats(cmd.OutOrStdout(), st)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCategoryCmd)
	rootCmd.AddCommand(statsCmd)
}
