package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/hr-scout/internal/scout"
	"github.com/spigell/hr-scout/internal/talent"
)

var queryCmd = &cobra.Command{
	Use:   "query [brief]",
	Short: "Print the web search query generated for a brief",
	Run: func(cmd *cobra.Command, args []string) {
		briefFile, _ := cmd.Flags().GetString("brief-file")
		brief, err := readBrief(args, briefFile, cmd.InOrStdin())
		if err != nil {
			log.Fatal(err)
		}

		value := viper.GetString("scope")
		if cmd.Flags().Changed("scope") {
			value, _ = cmd.Flags().GetString("scope")
		}
		scope, err := talent.ParseScope(value)
		if err != nil {
			log.Fatal(err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), scout.GenerateSearchQuery(brief, scope))
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)

	queryCmd.Flags().StringP("brief-file", "f", "", "read the brief from a file, - for stdin")
	queryCmd.Flags().StringP("scope", "s", "", "platform scope: linkedin or multi")
}
