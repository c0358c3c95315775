// Album commands manage album groupings in the music library.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/allmyfriends/backstage/internal/artwork"
	"github.com/allmyfriends/backstage/pkg/types"
)

var albumCmd = &cobra.Command{
	Use:   "album",
	Short: "Manage albums",
}

var (
	albumFlags      types.Album
	albumListArtist string
	albumCoverFile  string
)

var albumListCmd = &cobra.Command{
	Use:   "list",
	Short: "List albums",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		var albums []*types.Album
		if albumListArtist != "" {
			albums, err = store.Albums().ListByArtist(albumListArtist)
		} else {
			albums, err = store.Albums().List()
		}
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(albums)
		}
		rows := make([][]string, len(albums))
		for i, a := range albums {
			year := ""
			if a.Year != 0 {
				year = fmt.Sprintf("%d", a.Year)
			}
			rows[i] = []string{shortID(a.ID), truncate(a.Name, 40), a.ArtistName, year}
		}
		printTable([]string{"ID", "NAME", "ARTIST", "YEAR"}, rows)
		fmt.Printf("Total: %d album(s)\n", len(albums))
		return nil
	},
}

var albumGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one album",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		album, err := store.Albums().Get(args[0])
		if err != nil {
			return err
		}
		return printJSON(album)
	},
}

var albumAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an album under a music artist",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		album, err := store.Albums().Create(albumFlags)
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(album)
		}
		fmt.Println("Created album", album.ID)
		return nil
	},
}

var albumUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an album",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		current, err := store.Albums().Get(args[0])
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("name") {
			current.Name = albumFlags.Name
		}
		if cmd.Flags().Changed("year") {
			current.Year = albumFlags.Year
		}
		if albumCoverFile != "" {
			path, err := saveArtwork(artwork.KindAlbum, args[0], albumCoverFile)
			if err != nil {
				return err
			}
			current.CoverPath = path
		}

		album, err := store.Albums().Update(args[0], *current)
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(album)
		}
		fmt.Println("Updated album", album.ID)
		return nil
	},
}

var albumDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an album, detaching its songs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Albums().Delete(args[0]); err != nil {
			return err
		}

		dataDir, err := resolveDataDir()
		if err != nil {
			return err
		}
		if err := artwork.NewWriter(dataDir).Remove(artwork.KindAlbum, args[0]); err != nil {
			return err
		}
		fmt.Println("Deleted album", args[0])
		return nil
	},
}

func init() {
	albumListCmd.Flags().StringVar(&albumListArtist, "artist", "", "filter by music artist ID")

	for _, c := range []*cobra.Command{albumAddCmd, albumUpdateCmd} {
		c.Flags().StringVar(&albumFlags.Name, "name", "", "album name")
		c.Flags().IntVar(&albumFlags.Year, "year", 0, "release year")
	}
	albumAddCmd.Flags().StringVar(&albumFlags.ArtistID, "artist", "", "owning music artist ID")
	albumAddCmd.MarkFlagRequired("artist")
	albumAddCmd.MarkFlagRequired("name")
	albumUpdateCmd.Flags().StringVar(&albumCoverFile, "cover", "", "image file to store as album cover")

	albumCmd.AddCommand(albumListCmd)
	albumCmd.AddCommand(albumGetCmd)
	albumCmd.AddCommand(albumAddCmd)
	albumCmd.AddCommand(albumUpdateCmd)
	albumCmd.AddCommand(albumDeleteCmd)
}
