package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/babua-dev/clipper/color"
	"github.com/babua-dev/clipper/history"
	"github.com/babua-dev/clipper/icon"
	"github.com/babua-dev/clipper/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	historyCmd.SetOut(os.Stdout)
}

// historyCmd lists recently played clips.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently played clips",
	Run: func(cmd *cobra.Command, args []string) {
		played, err := history.Recent()
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(played))
			return
		}

		if len(played) == 0 {
			cmd.Println(style.Faint("No clips played yet"))
			return
		}

		for _, p := range played {
			cmd.Printf("%s %s\n", icon.Get(icon.Play), p)
			cmd.Println(style.Faint("  " + p.Key()))
		}
	},
}

func init() {
	historyCmd.AddCommand(historyRemoveCmd)
}

var historyRemoveCmd = &cobra.Command{
	Use:     "rm [key]",
	Short:   "Forget one played clip",
	Aliases: []string{"remove"},
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(history.Remove(args[0]))
		fmt.Printf("%s Removed %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), style.Fg(color.Purple)(args[0]))
	},
}
