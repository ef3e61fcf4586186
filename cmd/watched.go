package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/AlecAivazis/survey/v2"
	"github.com/babua-dev/clipper/color"
	"github.com/babua-dev/clipper/icon"
	"github.com/babua-dev/clipper/style"
	"github.com/babua-dev/clipper/util"
	"github.com/babua-dev/clipper/watched"
	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(watchedCmd)
	watchedCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	watchedCmd.SetOut(os.Stdout)
}

// watchedCmd lists the clips that were played to their end.
var watchedCmd = &cobra.Command{
	Use:   "watched",
	Short: "List clips watched to the end",
	Run: func(cmd *cobra.Command, args []string) {
		records := lo.Values(watched.Default().All())
		sort.Slice(records, func(i, j int) bool {
			return records[i].CompletedAt.After(records[j].CompletedAt)
		})

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(records))
			return
		}

		if len(records) == 0 {
			cmd.Println(style.Faint("No watched clips yet"))
			return
		}

		for _, r := range records {
			cmd.Printf("%s %s\n", style.Fg(color.Green)(icon.Get(icon.Watched)), r)
			cmd.Println(style.Faint("  " + r.Key()))
		}
		cmd.Println()
		cmd.Println(style.Faint(util.Quantify(len(records), "clip", "clips")))
	},
}

func init() {
	watchedCmd.AddCommand(watchedSchemaCmd)
}

// watchedSchemaCmd prints the JSON Schema of `watched --json` output.
var watchedSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate the JSON schema of watched records",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		handleErr(json.NewEncoder(os.Stdout).Encode(reflector.Reflect([]*watched.Record{})))
	},
}

func init() {
	watchedCmd.AddCommand(watchedClearCmd)
	watchedClearCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}

// watchedClearCmd forgets every watched clip, locking their solutions again.
var watchedClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget all watched clips",
	Run: func(cmd *cobra.Command, args []string) {
		store := watched.Default()
		count := len(store.All())
		if count == 0 {
			fmt.Println(style.Faint("Nothing to clear"))
			return
		}

		if !lo.Must(cmd.Flags().GetBool("yes")) {
			confirm := survey.Confirm{
				Message: fmt.Sprintf("Forget %s? Their solutions will be locked again.", util.Quantify(count, "watched clip", "watched clips")),
				Default: false,
			}
			var response bool
			handleErr(survey.AskOne(&confirm, &response))

			if !response {
				return
			}
		}

		handleErr(store.Clear())
		fmt.Printf("%s Watched clips cleared\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}

func init() {
	watchedCmd.AddCommand(watchedRemoveCmd)
}

// watchedRemoveCmd forgets one clip by its key.
var watchedRemoveCmd = &cobra.Command{
	Use:     "rm [key]",
	Short:   "Forget one watched clip",
	Aliases: []string{"remove"},
	Args:    cobra.ExactArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return lo.Keys(watched.Default().All()), cobra.ShellCompDirectiveNoFileComp
	},
	Example: "  clipper watched rm dQw4w9WgXcQ_120_180",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(watched.Default().Remove(args[0]))
		fmt.Printf("%s Removed %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), style.Fg(color.Purple)(args[0]))
	},
}
