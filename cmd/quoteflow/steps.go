package main

import (
	"fmt"

	"github.com/nkinsurance/quoteflow/internal/presentation/graph"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var stepsCmd = &cobra.Command{
	Use:   "steps",
	Short: "Print the form catalog",
	Long: `Prints the catalog in use as YAML after checking it. Use it as a starting point
for --steps. With --mermaid, prints the flow of the quote wizard instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cat, err := loadCatalog(cfg)
		if err != nil {
			return err
		}
		if err := cat.Validate(); err != nil {
			return err
		}

		if mermaid, _ := cmd.Flags().GetBool("mermaid"); mermaid {
			fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(cat.Quote, nil))
			return nil
		}

		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(cat); err != nil {
			return fmt.Errorf("failed to encode catalog: %w", err)
		}
		return enc.Close()
	},
}

func init() {
	rootCmd.AddCommand(stepsCmd)
	stepsCmd.Flags().Bool("mermaid", false, "Print the quote wizard as a Mermaid flowchart")
}
