// Project commands manage work engagements for artists.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/allmyfriends/backstage/pkg/types"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
}

var (
	projectFlags      types.Project
	projectListArtist string
)

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		var projects []*types.Project
		if projectListArtist != "" {
			projects, err = store.Projects().ListByArtist(projectListArtist)
		} else {
			projects, err = store.Projects().List()
		}
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(projects)
		}
		rows := make([][]string, len(projects))
		for i, p := range projects {
			rows[i] = []string{
				shortID(p.ID),
				truncate(p.Name, 40),
				p.Status,
				shortID(p.ArtistID),
				fmt.Sprintf("%.2f", p.Budget),
			}
		}
		printTable([]string{"ID", "NAME", "STATUS", "ARTIST", "BUDGET"}, rows)
		fmt.Printf("Total: %d project(s)\n", len(projects))
		return nil
	},
}

var projectGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		project, err := store.Projects().Get(args[0])
		if err != nil {
			return err
		}
		return printJSON(project)
	},
}

var projectAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a project for an artist",
	Example: `  backstage project add --artist <artist-id> --name "Debut EP" --budget 25000
  backstage project add --artist <artist-id> --name "Tour" --start 2026-06-01`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		project, err := store.Projects().Create(projectFlags)
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(project)
		}
		fmt.Println("Created project", project.ID)
		return nil
	},
}

var projectUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		current, err := store.Projects().Get(args[0])
		if err != nil {
			return err
		}
		applyProjectFlags(cmd, current)

		project, err := store.Projects().Update(args[0], *current)
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(project)
		}
		fmt.Println("Updated project", project.ID)
		return nil
	},
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a project, detaching its invoices",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Projects().Delete(args[0]); err != nil {
			return err
		}
		fmt.Println("Deleted project", args[0])
		return nil
	},
}

func applyProjectFlags(cmd *cobra.Command, p *types.Project) {
	if cmd.Flags().Changed("name") {
		p.Name = projectFlags.Name
	}
	if cmd.Flags().Changed("description") {
		p.Description = projectFlags.Description
	}
	if cmd.Flags().Changed("status") {
		p.Status = projectFlags.Status
	}
	if cmd.Flags().Changed("start") {
		p.StartDate = projectFlags.StartDate
	}
	if cmd.Flags().Changed("end") {
		p.EndDate = projectFlags.EndDate
	}
	if cmd.Flags().Changed("budget") {
		p.Budget = projectFlags.Budget
	}
}

func init() {
	projectListCmd.Flags().StringVar(&projectListArtist, "artist", "", "filter by artist ID")

	for _, c := range []*cobra.Command{projectAddCmd, projectUpdateCmd} {
		c.Flags().StringVar(&projectFlags.Name, "name", "", "project name")
		c.Flags().StringVar(&projectFlags.Description, "description", "", "project description")
		c.Flags().StringVar(&projectFlags.Status, "status", "", "status (active, on_hold, completed)")
		c.Flags().StringVar(&projectFlags.StartDate, "start", "", "start date (YYYY-MM-DD)")
		c.Flags().StringVar(&projectFlags.EndDate, "end", "", "end date (YYYY-MM-DD)")
		c.Flags().Float64Var(&projectFlags.Budget, "budget", 0, "budget in dollars")
	}
	projectAddCmd.Flags().StringVar(&projectFlags.ArtistID, "artist", "", "owning artist ID")
	projectAddCmd.MarkFlagRequired("artist")
	projectAddCmd.MarkFlagRequired("name")

	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectGetCmd)
	projectCmd.AddCommand(projectAddCmd)
	projectCmd.AddCommand(projectUpdateCmd)
	projectCmd.AddCommand(projectDeleteCmd)
}
