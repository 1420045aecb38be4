package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sells-group/creativesync/internal/server"
	"github.com/sells-group/creativesync/internal/store"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Read or change stored settings (theme, gemini_api_key)",
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		key := args[0]

		env, err := initEnv(ctx, "cli")
		if err != nil {
			return err
		}
		defer env.Close()

		v, err := env.Store.GetSetting(ctx, key)
		if err != nil {
			return err
		}
		if key == store.SettingGeminiAPIKey {
			v = server.Mask(v)
		}
		fmt.Fprintln(os.Stdout, v)
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		key, value := args[0], strings.TrimSpace(args[1])
		if err := store.ValidateSetting(key, value); err != nil {
			return err
		}

		env, err := initEnv(ctx, "cli")
		if err != nil {
			return err
		}
		defer env.Close()

		if err := env.Store.SetSetting(ctx, key, value); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "%s updated\n", key)
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsGetCmd, settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}
