package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/kaviyasaravananibm/vibe-narrative/internal/client"
	"github.com/kaviyasaravananibm/vibe-narrative/internal/domain"
)

const defaultRelay = "http://localhost:8080"

type options struct {
	relay   string
	session string
	timeout time.Duration
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "storyctl",
		Short:        "Pick an emotion and read a short story written for it",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInteractive(cmd, opts)
		},
	}

	relay := os.Getenv("STORY_RELAY_URL")
	if relay == "" {
		relay = defaultRelay
	}
	root.PersistentFlags().StringVar(&opts.relay, "relay", relay, "story relay base URL (env STORY_RELAY_URL)")
	root.PersistentFlags().StringVar(&opts.session, "session", "", "client session id sent as X-Client-Session (random if empty)")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 0, "HTTP timeout, 0 for none")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log failures to stderr")

	root.AddCommand(newTellCmd(opts), newEmotionsCmd())
	return root
}

func newTellCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:       "tell <emotion>",
		Short:     "Generate one story for an emotion",
		Args:      cobra.ExactArgs(1),
		ValidArgs: emotionNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			emotion, err := domain.ParseEmotion(args[0])
			if err != nil {
				return fmt.Errorf("%w (choose one of %s)", err, strings.Join(emotionNames(), ", "))
			}
			s := newSession(cmd, opts)
			return s.RequestStory(cmd.Context(), emotion)
		},
	}
}

func newEmotionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "emotions",
		Short: "List the emotions a story can be written for",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, e := range domain.Emotions() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s %s\n", e, e.Emoji(), e.Label())
			}
		},
	}
}

func newSession(cmd *cobra.Command, opts *options) *client.Session {
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	sessionID := opts.session
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	var logWriter io.Writer = io.Discard
	if opts.verbose {
		logWriter = errOut
	}

	relay := client.New(opts.relay,
		client.WithHTTPClient(&http.Client{Timeout: opts.timeout}),
		client.WithSessionID(sessionID),
	)

	return client.NewSession(relay,
		client.WithObserver(render(out)),
		client.WithNotifier(func(msg string) { fmt.Fprintf(errOut, "! %s\n", msg) }),
		client.WithLogger(slog.New(slog.NewTextHandler(logWriter, nil))),
	)
}

// render draws the progress line while generating and the story once it arrives.
func render(out io.Writer) func(client.State) {
	return func(s client.State) {
		switch {
		case s.IsGenerating:
			fmt.Fprintf(out, "%s Weaving your emotional tale...\n", s.SelectedEmotion.Emoji())
		case s.ShowStory():
			fmt.Fprintf(out, "\n== Your Story (%s) ==\n\n%s\n\n", s.SelectedEmotion.Label(), s.StoryText)
		}
	}
}

func runInteractive(cmd *cobra.Command, opts *options) error {
	out := cmd.OutOrStdout()
	s := newSession(cmd, opts)
	scanner := bufio.NewScanner(cmd.InOrStdin())

	printMenu(out, s.Snapshot())
	for scanner.Scan() {
		input := strings.ToLower(strings.TrimSpace(scanner.Text()))

		switch input {
		case "":
		case "q", "quit", "exit":
			return nil
		case "r":
			if err := s.Regenerate(cmd.Context()); errors.Is(err, client.ErrNoEmotionSelected) {
				fmt.Fprintln(out, "Pick an emotion first.")
			}
		default:
			emotion, ok := pick(input)
			if !ok {
				fmt.Fprintf(out, "Unknown choice %q.\n", input)
				break
			}
			// Failures are already reported through the notifier.
			_ = s.RequestStory(cmd.Context(), emotion)
		}

		printMenu(out, s.Snapshot())
	}
	return scanner.Err()
}

func printMenu(out io.Writer, s client.State) {
	for i, e := range domain.Emotions() {
		fmt.Fprintf(out, "  %d) %s %s\n", i+1, e.Emoji(), e.Label())
	}
	if s.ShowStory() {
		fmt.Fprintln(out, "  r) Generate New Story")
	}
	fmt.Fprint(out, "  q) Quit\n> ")
}

// pick accepts a menu number or an emotion tag.
func pick(input string) (domain.Emotion, bool) {
	all := domain.Emotions()
	if n, err := strconv.Atoi(input); err == nil {
		if n >= 1 && n <= len(all) {
			return all[n-1], true
		}
		return "", false
	}
	e, err := domain.ParseEmotion(input)
	return e, err == nil
}

func emotionNames() []string {
	all := domain.Emotions()
	names := make([]string, len(all))
	for i, e := range all {
		names[i] = string(e)
	}
	return names
}
