// Package cmd implements the command-line interface for clipper.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/babua-dev/clipper/color"
	"github.com/babua-dev/clipper/constant"
	"github.com/babua-dev/clipper/history"
	"github.com/babua-dev/clipper/icon"
	"github.com/babua-dev/clipper/key"
	"github.com/babua-dev/clipper/log"
	"github.com/babua-dev/clipper/style"
	"github.com/babua-dev/clipper/util"
	"github.com/babua-dev/clipper/version"
	"github.com/babua-dev/clipper/where"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().BoolP("write-watched", "W", true, "Remember clips watched to the end")
	lo.Must0(viper.BindPFlag(key.WatchedEnable, rootCmd.PersistentFlags().Lookup("write-watched")))

	rootCmd.PersistentFlags().String("catalog", "", "Path or URL of the clip index")
	lo.Must0(viper.BindPFlag(key.CatalogPath, rootCmd.PersistentFlags().Lookup("catalog")))

	rootCmd.Flags().BoolP("continue", "c", false, "Replay the most recently played clip")

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})

	go func() {
		_ = util.Delete(where.Temp())
	}()
}

// rootCmd defines the entry point for the clipper application.
var rootCmd = &cobra.Command{
	Use:   constant.App,
	Short: "Play bounded clips of videos and unlock the code they explain",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Play bounded clips of videos and unlock the code they explain"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		if lo.Must(cmd.Flags().GetBool("continue")) {
			last, err := history.Last()
			handleErr(err)

			played, ok := last.Get()
			if !ok {
				handleErr(errors.New("nothing to continue: no clip has been played yet"))
			}

			play(resumeRequest(played), true)
			return
		}

		handleErr(cmd.Help())
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
