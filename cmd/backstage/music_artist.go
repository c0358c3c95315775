// Music artist commands manage performers in the music library.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/allmyfriends/backstage/internal/artwork"
	"github.com/allmyfriends/backstage/pkg/types"
)

var musicArtistCmd = &cobra.Command{
	Use:   "music-artist",
	Short: "Manage music library artists",
}

var (
	musicArtistFlags   types.MusicArtist
	musicArtistArtFile string
)

var musicArtistListCmd = &cobra.Command{
	Use:   "list",
	Short: "List music artists",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		artists, err := store.MusicArtists().List()
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(artists)
		}
		rows := make([][]string, len(artists))
		for i, a := range artists {
			rows[i] = []string{shortID(a.ID), truncate(a.Name, 40), a.Genre}
		}
		printTable([]string{"ID", "NAME", "GENRE"}, rows)
		fmt.Printf("Total: %d artist(s)\n", len(artists))
		return nil
	},
}

var musicArtistGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one music artist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		artist, err := store.MusicArtists().Get(args[0])
		if err != nil {
			return err
		}
		return printJSON(artist)
	},
}

var musicArtistAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a music artist",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		artist, err := store.MusicArtists().Create(musicArtistFlags)
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(artist)
		}
		fmt.Println("Created music artist", artist.ID)
		return nil
	},
}

var musicArtistUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a music artist",
	Long: `Update replaces the given fields. Renaming an artist also refreshes the
artist name carried on their albums and songs.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		current, err := store.MusicArtists().Get(args[0])
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("name") {
			current.Name = musicArtistFlags.Name
		}
		if cmd.Flags().Changed("genre") {
			current.Genre = musicArtistFlags.Genre
		}
		if cmd.Flags().Changed("bio") {
			current.Bio = musicArtistFlags.Bio
		}
		if musicArtistArtFile != "" {
			path, err := saveArtwork(artwork.KindArtist, args[0], musicArtistArtFile)
			if err != nil {
				return err
			}
			current.ArtworkPath = path
		}

		artist, err := store.MusicArtists().Update(args[0], *current)
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(artist)
		}
		fmt.Println("Updated music artist", artist.ID)
		return nil
	},
}

var musicArtistDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a music artist and their albums",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.MusicArtists().Delete(args[0]); err != nil {
			return err
		}

		dataDir, err := resolveDataDir()
		if err != nil {
			return err
		}
		if err := artwork.NewWriter(dataDir).Remove(artwork.KindArtist, args[0]); err != nil {
			return err
		}
		fmt.Println("Deleted music artist", args[0])
		return nil
	},
}

// saveArtwork copies an image file into the artwork tree for the entity
// and returns the stored path.
func saveArtwork(kind, id, srcPath string) (string, error) {
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return "", fmt.Errorf("read artwork %s: %w", srcPath, err)
	}
	dataDir, err := resolveDataDir()
	if err != nil {
		return "", err
	}
	return artwork.NewWriter(dataDir).Save(kind, id, filepath.Ext(srcPath), data)
}

func init() {
	for _, c := range []*cobra.Command{musicArtistAddCmd, musicArtistUpdateCmd} {
		c.Flags().StringVar(&musicArtistFlags.Name, "name", "", "artist name, unique")
		c.Flags().StringVar(&musicArtistFlags.Genre, "genre", "", "primary genre")
		c.Flags().StringVar(&musicArtistFlags.Bio, "bio", "", "biography")
	}
	musicArtistAddCmd.MarkFlagRequired("name")
	musicArtistUpdateCmd.Flags().StringVar(&musicArtistArtFile, "artwork", "", "image file to store as artist artwork")

	musicArtistCmd.AddCommand(musicArtistListCmd)
	musicArtistCmd.AddCommand(musicArtistGetCmd)
	musicArtistCmd.AddCommand(musicArtistAddCmd)
	musicArtistCmd.AddCommand(musicArtistUpdateCmd)
	musicArtistCmd.AddCommand(musicArtistDeleteCmd)
}
