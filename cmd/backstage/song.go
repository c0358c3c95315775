// Song commands manage the imported music library.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/allmyfriends/backstage/internal/library"
	"github.com/allmyfriends/backstage/internal/sqlite"
	"github.com/allmyfriends/backstage/pkg/types"
)

var songCmd = &cobra.Command{
	Use:   "song",
	Short: "Manage songs",
}

var (
	songListArtist string
	songListAlbum  string
)

var songListCmd = &cobra.Command{
	Use:   "list",
	Short: "List songs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		var songs []*types.Song
		switch {
		case songListArtist != "":
			songs, err = store.Songs().ListByArtist(songListArtist)
		case songListAlbum != "":
			songs, err = store.Songs().ListByAlbum(songListAlbum)
		default:
			songs, err = store.Songs().List()
		}
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(songs)
		}
		rows := make([][]string, len(songs))
		for i, s := range songs {
			rows[i] = []string{
				shortID(s.ID),
				truncate(s.Title, 40),
				truncate(s.Artist, 30),
				truncate(s.Album, 30),
				fmt.Sprintf("%d", s.PlayCount),
			}
		}
		printTable([]string{"ID", "TITLE", "ARTIST", "ALBUM", "PLAYS"}, rows)
		fmt.Printf("Total: %d song(s)\n", len(songs))
		return nil
	},
}

var songGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one song",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		song, err := store.Songs().Get(args[0])
		if err != nil {
			return err
		}
		return printJSON(song)
	},
}

var songImportCmd = &cobra.Command{
	Use:   "import <path>...",
	Short: "Import audio files or directories into the library",
	Long: `Import extracts metadata from each audio file and creates the song,
its music artist, and its album as needed. Files already in the library
are skipped. Directories are scanned recursively.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		log := newLogger()
		imported, skipped := 0, 0
		for _, arg := range args {
			songs, err := collectSongs(arg, log)
			if err != nil {
				return err
			}
			for _, song := range songs {
				switch err := importSong(store, song); {
				case err == nil:
					imported++
				case errors.Is(err, types.ErrDuplicate):
					skipped++
				default:
					return err
				}
			}
		}
		fmt.Printf("Imported %d song(s), skipped %d already in library\n", imported, skipped)
		return nil
	},
}

var songFlags types.Song

var songUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a song's tags",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		song, err := store.Songs().Get(args[0])
		if err != nil {
			return err
		}
		applySongFlags(cmd, song)

		if _, err := store.Songs().Update(song.ID, *song); err != nil {
			return err
		}
		fmt.Println("Updated song", song.ID)
		return nil
	},
}

var songPlayedCmd = &cobra.Command{
	Use:   "played <id>",
	Short: "Record one play of a song",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Songs().MarkPlayed(args[0]); err != nil {
			return err
		}

		song, err := store.Songs().Get(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s: %d play(s)\n", song.Title, song.PlayCount)
		return nil
	},
}

var songDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a song from the library",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Songs().Delete(args[0]); err != nil {
			return err
		}
		fmt.Println("Deleted song", args[0])
		return nil
	},
}

// collectSongs extracts metadata from one path argument, which may be a
// single audio file or a directory to scan.
func collectSongs(path string, log *slog.Logger) ([]*types.Song, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return library.ScanDir(abs, log)
	}
	if !library.IsAudioFile(abs) {
		return nil, fmt.Errorf("%s is not a recognized audio file", path)
	}
	song, err := library.Extract(abs)
	if err != nil {
		return nil, err
	}
	return []*types.Song{song}, nil
}

// importSong links the song to its music artist and album, creating both
// on first sight, then stores it. Untagged files stay unlinked.
func importSong(store *sqlite.Store, song *types.Song) error {
	if song.Artist != library.UnknownArtist {
		artist, err := store.MusicArtists().GetByName(song.Artist)
		if errors.Is(err, types.ErrNotFound) {
			artist, err = store.MusicArtists().Create(types.MusicArtist{
				Name:  song.Artist,
				Genre: song.Genre,
			})
		}
		if err != nil {
			return err
		}
		song.ArtistID = artist.ID

		if song.Album != library.UnknownAlbum {
			album, err := findOrCreateAlbum(store, song)
			if err != nil {
				return err
			}
			song.AlbumID = album.ID
		}
	}

	_, err := store.Songs().Create(*song)
	return err
}

func findOrCreateAlbum(store *sqlite.Store, song *types.Song) (*types.Album, error) {
	albums, err := store.Albums().ListByArtist(song.ArtistID)
	if err != nil {
		return nil, err
	}
	for _, album := range albums {
		if album.Name == song.Album {
			return album, nil
		}
	}
	return store.Albums().Create(types.Album{
		Name:     song.Album,
		ArtistID: song.ArtistID,
		Year:     song.Year,
	})
}

func applySongFlags(cmd *cobra.Command, song *types.Song) {
	if cmd.Flags().Changed("title") {
		song.Title = songFlags.Title
	}
	if cmd.Flags().Changed("genre") {
		song.Genre = songFlags.Genre
	}
	if cmd.Flags().Changed("year") {
		song.Year = songFlags.Year
	}
	if cmd.Flags().Changed("track") {
		song.TrackNumber = songFlags.TrackNumber
	}
}

func init() {
	songListCmd.Flags().StringVar(&songListArtist, "artist", "", "filter by music artist ID")
	songListCmd.Flags().StringVar(&songListAlbum, "album", "", "filter by album ID")

	songUpdateCmd.Flags().StringVar(&songFlags.Title, "title", "", "song title")
	songUpdateCmd.Flags().StringVar(&songFlags.Genre, "genre", "", "genre")
	songUpdateCmd.Flags().IntVar(&songFlags.Year, "year", 0, "release year")
	songUpdateCmd.Flags().IntVar(&songFlags.TrackNumber, "track", 0, "track number")

	songCmd.AddCommand(songListCmd)
	songCmd.AddCommand(songGetCmd)
	songCmd.AddCommand(songImportCmd)
	songCmd.AddCommand(songUpdateCmd)
	songCmd.AddCommand(songPlayedCmd)
	songCmd.AddCommand(songDeleteCmd)
}
