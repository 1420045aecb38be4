package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sells-group/creativesync/internal/fallback"
	"github.com/sells-group/creativesync/internal/model"
	"github.com/sells-group/creativesync/internal/store"
)

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Ask the campaign assistant",
	Long:  "Answers one message, or starts an interactive session when no message is given. Type \"exit\" to leave.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx, "cli")
		if err != nil {
			return err
		}
		defer env.Close()

		state, err := liveDashboard(ctx, env)
		if err != nil {
			return err
		}
		saved, active, err := store.Totals(ctx, env.Store)
		if err != nil {
			return err
		}
		cc := fallback.ChatContext{
			SavedCampaigns:  saved,
			ActiveCampaigns: active,
			Metrics: model.Metrics{
				Impressions: state.Metrics.Impressions,
				Clicks:      state.Metrics.Clicks,
				CTR:         state.Metrics.CTR,
			},
		}

		ask := func(msg string) string { return env.Gen.Chat(ctx, msg, cc) }
		if len(args) > 0 {
			fmt.Fprintln(os.Stdout, ask(strings.Join(args, " ")))
			return nil
		}
		return chatLoop(os.Stdin, os.Stdout, ask)
	},
}

// chatLoop answers each input line until EOF or "exit".
func chatLoop(in io.Reader, out io.Writer, ask func(string) string) error {
	sc := bufio.NewScanner(in)
	fmt.Fprint(out, "> ")
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch strings.ToLower(line) {
		case "exit", "quit":
			return nil
		case "":
			fmt.Fprint(out, "> ")
			continue
		}
		fmt.Fprintf(out, "%s\n\n> ", ask(line))
	}
	return sc.Err()
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
