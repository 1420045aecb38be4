package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sells-group/creativesync/internal/model"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or edit the profile printed on reports",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the profile",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx, "cli")
		if err != nil {
			return err
		}
		defer env.Close()

		p, err := env.Store.GetProfile(ctx)
		if err != nil {
			return err
		}
		formatProfile(os.Stdout, *p)
		return nil
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update profile fields; unset flags keep their value",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx, "cli")
		if err != nil {
			return err
		}
		defer env.Close()

		p, err := env.Store.GetProfile(ctx)
		if err != nil {
			return err
		}
		applyProfileFlags(cmd, p)
		if err := env.Store.SaveProfile(ctx, *p); err != nil {
			return err
		}
		formatProfile(os.Stdout, *p)
		return nil
	},
}

// applyProfileFlags copies the flags the user set onto p.
func applyProfileFlags(cmd *cobra.Command, p *model.Profile) {
	fields := map[string]*string{
		"name":     &p.Name,
		"email":    &p.Email,
		"company":  &p.Company,
		"phone":    &p.Phone,
		"location": &p.Location,
		"industry": &p.Industry,
	}
	for name, dst := range fields {
		if cmd.Flags().Changed(name) {
			*dst, _ = cmd.Flags().GetString(name)
		}
	}
	if p.Industry == "" {
		p.Industry = model.DefaultIndustry
	}
}

func formatProfile(w io.Writer, p model.Profile) {
	fmt.Fprintf(w, "Name:      %s\n", p.DisplayName())
	fmt.Fprintf(w, "Email:     %s\n", p.Email)
	fmt.Fprintf(w, "Company:   %s\n", p.Company)
	fmt.Fprintf(w, "Phone:     %s\n", p.Phone)
	fmt.Fprintf(w, "Location:  %s\n", p.Location)
	fmt.Fprintf(w, "Industry:  %s\n", p.Industry)
}

func init() {
	for _, name := range []string{"name", "email", "company", "phone", "location", "industry"} {
		profileSetCmd.Flags().String(name, "", "profile "+name)
	}
	profileCmd.AddCommand(profileShowCmd, profileSetCmd)
	rootCmd.AddCommand(profileCmd)
}
