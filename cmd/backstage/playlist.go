// Playlist commands manage ordered song collections.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/allmyfriends/backstage/internal/artwork"
	"github.com/allmyfriends/backstage/pkg/types"
)

var playlistCmd = &cobra.Command{
	Use:   "playlist",
	Short: "Manage playlists",
}

var playlistFlags types.Playlist

var playlistArtworkFile string

var playlistListCmd = &cobra.Command{
	Use:   "list",
	Short: "List playlists, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		playlists, err := store.Playlists().List()
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(playlists)
		}
		rows := make([][]string, len(playlists))
		for i, p := range playlists {
			rows[i] = []string{
				shortID(p.ID),
				truncate(p.Name, 40),
				fmt.Sprintf("%d", len(p.SongIDs)),
				p.CreatedAt.Format("2006-01-02"),
			}
		}
		printTable([]string{"ID", "NAME", "SONGS", "CREATED"}, rows)
		fmt.Printf("Total: %d playlist(s)\n", len(playlists))
		return nil
	},
}

var playlistGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one playlist with its song IDs in order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		playlist, err := store.Playlists().Get(args[0])
		if err != nil {
			return err
		}
		return printJSON(playlist)
	},
}

var playlistAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a playlist",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		playlist, err := store.Playlists().Create(playlistFlags)
		if err != nil {
			return err
		}
		fmt.Println("Created playlist", playlist.ID)
		return nil
	},
}

var playlistUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a playlist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		playlist, err := store.Playlists().Get(args[0])
		if err != nil {
			return err
		}
		applyPlaylistFlags(cmd, playlist)

		if playlistArtworkFile != "" {
			path, err := saveArtwork(artwork.KindPlaylist, playlist.ID, playlistArtworkFile)
			if err != nil {
				return err
			}
			playlist.ArtworkPath = path
		}

		if _, err := store.Playlists().Update(playlist.ID, *playlist); err != nil {
			return err
		}
		fmt.Println("Updated playlist", playlist.ID)
		return nil
	},
}

var playlistDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a playlist, leaving its songs in the library",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Playlists().Delete(args[0]); err != nil {
			return err
		}

		dataDir, err := resolveDataDir()
		if err != nil {
			return err
		}
		if err := artwork.NewWriter(dataDir).Remove(artwork.KindPlaylist, args[0]); err != nil {
			return err
		}
		fmt.Println("Deleted playlist", args[0])
		return nil
	},
}

var playlistAddSongCmd = &cobra.Command{
	Use:   "add-song <playlist-id> <song-id>",
	Short: "Append a song to the end of a playlist",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Playlists().AddSong(args[0], args[1]); err != nil {
			return err
		}
		fmt.Println("Added song", args[1], "to playlist", args[0])
		return nil
	},
}

var playlistRemoveSongCmd = &cobra.Command{
	Use:   "remove-song <playlist-id> <song-id>",
	Short: "Remove a song from a playlist",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Playlists().RemoveSong(args[0], args[1]); err != nil {
			return err
		}
		fmt.Println("Removed song", args[1], "from playlist", args[0])
		return nil
	},
}

func applyPlaylistFlags(cmd *cobra.Command, playlist *types.Playlist) {
	if cmd.Flags().Changed("name") {
		playlist.Name = playlistFlags.Name
	}
	if cmd.Flags().Changed("description") {
		playlist.Description = playlistFlags.Description
	}
	if cmd.Flags().Changed("color") {
		playlist.Color = playlistFlags.Color
	}
	if cmd.Flags().Changed("artist") {
		playlist.ArtistID = playlistFlags.ArtistID
	}
}

func init() {
	for _, c := range []*cobra.Command{playlistAddCmd, playlistUpdateCmd} {
		c.Flags().StringVar(&playlistFlags.Name, "name", "", "playlist name")
		c.Flags().StringVar(&playlistFlags.Description, "description", "", "playlist description")
		c.Flags().StringVar(&playlistFlags.Color, "color", "", "display color")
		c.Flags().StringVar(&playlistFlags.ArtistID, "artist", "", "associated music artist ID")
	}
	_ = playlistAddCmd.MarkFlagRequired("name")
	playlistUpdateCmd.Flags().StringVar(&playlistArtworkFile, "artwork", "", "path to an artwork image file")

	playlistCmd.AddCommand(playlistListCmd)
	playlistCmd.AddCommand(playlistGetCmd)
	playlistCmd.AddCommand(playlistAddCmd)
	playlistCmd.AddCommand(playlistUpdateCmd)
	playlistCmd.AddCommand(playlistDeleteCmd)
	playlistCmd.AddCommand(playlistAddSongCmd)
	playlistCmd.AddCommand(playlistRemoveSongCmd)
}
