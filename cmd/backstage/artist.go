// Artist commands manage the business roster.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/allmyfriends/backstage/pkg/types"
)

var artistCmd = &cobra.Command{
	Use:   "artist",
	Short: "Manage business artists",
}

var artistFlags types.Artist

var artistListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all artists",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		artists, err := store.Artists().List()
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(artists)
		}
		rows := make([][]string, len(artists))
		for i, a := range artists {
			rows[i] = []string{shortID(a.ID), truncate(a.Name, 40), a.Company, a.Email}
		}
		printTable([]string{"ID", "NAME", "COMPANY", "EMAIL"}, rows)
		fmt.Printf("Total: %d artist(s)\n", len(artists))
		return nil
	},
}

var artistGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one artist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		artist, err := store.Artists().Get(args[0])
		if err != nil {
			return err
		}
		return printJSON(artist)
	},
}

var artistAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an artist",
	Example: `  backstage artist add --name "Nova Reyes" --email nova@example.com
  backstage artist add --name "Iris Kane" --company "Kane Music Ltd" --wire-details "IBAN GB00"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		artist, err := store.Artists().Create(artistFlags)
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(artist)
		}
		fmt.Println("Created artist", artist.ID)
		return nil
	},
}

var artistUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an artist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		current, err := store.Artists().Get(args[0])
		if err != nil {
			return err
		}
		applyArtistFlags(cmd, current)

		artist, err := store.Artists().Update(args[0], *current)
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(artist)
		}
		fmt.Println("Updated artist", artist.ID)
		return nil
	},
}

var artistDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an artist and their projects and invoices",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Artists().Delete(args[0]); err != nil {
			return err
		}
		fmt.Println("Deleted artist", args[0])
		return nil
	},
}

// applyArtistFlags copies only the flags the user actually set onto the
// current entity, so update does not blank untouched fields.
func applyArtistFlags(cmd *cobra.Command, a *types.Artist) {
	if cmd.Flags().Changed("name") {
		a.Name = artistFlags.Name
	}
	if cmd.Flags().Changed("company") {
		a.Company = artistFlags.Company
	}
	if cmd.Flags().Changed("email") {
		a.Email = artistFlags.Email
	}
	if cmd.Flags().Changed("phone") {
		a.Phone = artistFlags.Phone
	}
	if cmd.Flags().Changed("address") {
		a.Address = artistFlags.Address
	}
	if cmd.Flags().Changed("wire-details") {
		a.WireDetails = artistFlags.WireDetails
	}
	if cmd.Flags().Changed("notes") {
		a.Notes = artistFlags.Notes
	}
}

func init() {
	for _, c := range []*cobra.Command{artistAddCmd, artistUpdateCmd} {
		c.Flags().StringVar(&artistFlags.Name, "name", "", "artist name")
		c.Flags().StringVar(&artistFlags.Company, "company", "", "company name")
		c.Flags().StringVar(&artistFlags.Email, "email", "", "contact email")
		c.Flags().StringVar(&artistFlags.Phone, "phone", "", "contact phone")
		c.Flags().StringVar(&artistFlags.Address, "address", "", "mailing address")
		c.Flags().StringVar(&artistFlags.WireDetails, "wire-details", "", "payment wire details")
		c.Flags().StringVar(&artistFlags.Notes, "notes", "", "free-form notes")
	}
	artistAddCmd.MarkFlagRequired("name")

	artistCmd.AddCommand(artistListCmd)
	artistCmd.AddCommand(artistGetCmd)
	artistCmd.AddCommand(artistAddCmd)
	artistCmd.AddCommand(artistUpdateCmd)
	artistCmd.AddCommand(artistDeleteCmd)
}
