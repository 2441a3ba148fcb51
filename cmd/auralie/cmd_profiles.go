package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nvandessel/auralie/internal/store"
)

func newProfilesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "Manage persona profiles",
		Long: `List and install persona profiles.

Profiles are YAML or JSON files in ~/.auralie/profiles (or profiles.dir),
one per persona, named by profile ID.`,
	}
	cmd.AddCommand(newProfilesListCmd(), newProfilesSeedCmd())
	return cmd
}

func newProfilesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			profiles, err := a.profileStore()
			if err != nil {
				return err
			}
			all, err := profiles.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list profiles: %w", err)
			}

			if a.jsonOut {
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"profiles": all, "count": len(all), "dir": profiles.Dir(),
				})
			}
			if len(all) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No profiles in %s. Run 'auralie profiles seed' to install samples.\n", profiles.Dir())
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tAGE\tTYPE\tINTERESTS")
			for _, p := range all {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", p.ID, p.Name, p.Age, p.Personality, strings.Join(p.Interests, ", "))
			}
			return tw.Flush()
		},
	}
}

func newProfilesSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Install the built-in sample profiles",
		Long: `Write the ten built-in sample profiles to the profile directory.
Existing files with the same ID are overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			profiles, err := a.profileStore()
			if err != nil {
				return err
			}
			paths, err := store.Seed(cmd.Context(), profiles)
			if err != nil {
				return fmt.Errorf("failed to seed profiles: %w", err)
			}

			if a.jsonOut {
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"written": paths, "count": len(paths), "dir": profiles.Dir(),
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Installed %d sample profiles in %s\n", len(paths), profiles.Dir())
			return nil
		},
	}
}
