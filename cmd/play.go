package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/babua-dev/clipper/catalog"
	"github.com/babua-dev/clipper/clip"
	"github.com/babua-dev/clipper/completion"
	"github.com/babua-dev/clipper/engine"
	"github.com/babua-dev/clipper/history"
	"github.com/babua-dev/clipper/key"
	"github.com/babua-dev/clipper/log"
	"github.com/babua-dev/clipper/metrics"
	"github.com/babua-dev/clipper/player"
	"github.com/babua-dev/clipper/query"
	"github.com/babua-dev/clipper/tui"
	"github.com/babua-dev/clipper/watched"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().StringP("title", "t", "", "Title shown above the player")
	playCmd.Flags().StringP("pattern", "p", "", "Look the clip up in the catalog by pattern")
	playCmd.Flags().StringP("question", "q", "", "Look the clip up in the catalog by question")
	playCmd.Flags().BoolP("autoplay", "a", false, "Start playing without waiting for enter")
	playCmd.MarkFlagsRequiredTogether("pattern", "question")

	lo.Must0(playCmd.RegisterFlagCompletionFunc("pattern", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return catalog.Patterns(catalog.Default().Load(context.Background())), cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(playCmd.RegisterFlagCompletionFunc("question", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		pattern := lo.Must(cmd.Flags().GetString("pattern"))
		entries := catalog.Default().Load(context.Background())
		questions := catalog.Questions(entries, pattern)
		return query.Order(questions), cobra.ShellCompDirectiveNoFileComp
	}))
}

// playCmd plays one clip in the terminal player.
var playCmd = &cobra.Command{
	Use:   "play [video-id start end]",
	Short: "Play a clip of a video between two timestamps",
	Long: `Play the [start, end) window of a video. Playback stops at the end of the
window and the clip is remembered as watched, which unlocks its solution code.

The clip is given either as a video id with start and end seconds, or as a
pattern and question looked up in the clip catalog.`,
	Example: "  clipper play dQw4w9WgXcQ 120 180 --title \"Two pointers\"\n" +
		"  clipper play --pattern \"Two Pointers\" --question \"3Sum\"",
	Args: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("pattern") {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(3)(cmd, args)
	},
	Run: func(cmd *cobra.Command, args []string) {
		play(clipRequest{
			args:     args,
			title:    lo.Must(cmd.Flags().GetString("title")),
			pattern:  lo.Must(cmd.Flags().GetString("pattern")),
			question: lo.Must(cmd.Flags().GetString("question")),
		}, lo.Must(cmd.Flags().GetBool("autoplay")))
	},
}

// play runs the terminal player for request until the user quits.
func play(request clipRequest, autoplay bool) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	options, err := request.options(ctx, catalog.Default())
	handleErr(err)

	options.Autoplay = autoplay
	options.Engine = engine.FromConfig()
	options.Deps = engine.Deps{
		Loader: player.Default(),
		Bus:    completion.Default(),
	}
	options.Completions = completion.Default()

	// typed nil interfaces would bypass the engine's defaults
	if viper.GetBool(key.WatchedEnable) {
		store := watched.Default()
		options.Deps.Store = store
		options.Watched = store
	}

	if addr := viper.GetString(key.MetricsAddr); addr != "" {
		m := metrics.New()
		m.Serve(ctx, addr)
		options.Deps.Observer = m
	}

	if options.WindowErr == nil {
		CheckDependencies()

		if options.Entry.IsPresent() {
			if err := query.Remember(request.question, 1); err != nil {
				log.Warnf("remembering question: %v", err)
			}
		}

		if err := history.Save(options.Window, request.title, request.pattern, request.question); err != nil {
			log.Warnf("saving history: %v", err)
		}
	}

	handleErr(tui.Run(options))
}

type clipRequest struct {
	args              []string
	title             string
	pattern, question string
}

// options resolves the request into player options. A clip that cannot be
// played is not an error: the player shows a placeholder for it.
func (r clipRequest) options(ctx context.Context, index *catalog.Index) (*tui.Options, error) {
	options := &tui.Options{Title: r.title}

	if r.pattern != "" || r.question != "" {
		entry, ok := index.Find(ctx, r.pattern, r.question).Get()
		if !ok {
			options.WindowErr = fmt.Errorf("%w: no clip for %q in %q", clip.ErrInvalidWindow, r.question, r.pattern)
			if options.Title == "" {
				options.Title = r.question
			}
			return options, nil
		}

		options.Entry = mo.Some(entry)
		options.Window, options.WindowErr = entry.Window()
		return options, nil
	}

	if len(r.args) != 3 {
		return nil, errors.New("expected a video id, a start and an end")
	}

	start, err := strconv.ParseFloat(r.args[1], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid start %q: %w", r.args[1], err)
	}

	end, err := strconv.ParseFloat(r.args[2], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid end %q: %w", r.args[2], err)
	}

	options.Window, options.WindowErr = clip.Resolve(r.args[0], start, end)
	return options, nil
}

// resumeRequest rebuilds the request that played p.
func resumeRequest(p *history.Played) clipRequest {
	if p.FromCatalog() {
		return clipRequest{title: p.Title, pattern: p.Pattern, question: p.Question}
	}

	return clipRequest{
		title: p.Title,
		args: []string{
			p.SourceID,
			strconv.Itoa(p.StartSeconds),
			strconv.Itoa(p.EndSeconds),
		},
	}
}
