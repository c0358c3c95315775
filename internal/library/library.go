// Package library extracts track metadata from audio files and scans
// directories for importable music.
package library

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"

	"github.com/allmyfriends/backstage/pkg/types"
)

// Display fallbacks when a file carries no usable tags.
const (
	UnknownArtist = "Unknown Artist"
	UnknownAlbum  = "Unknown Album"
)

// audioExts lists the file extensions the scanner considers importable.
var audioExts = map[string]bool{
	".mp3":  true,
	".m4a":  true,
	".mp4":  true,
	".flac": true,
	".ogg":  true,
	".wav":  true,
}

// IsAudioFile reports whether the path looks like an importable audio file.
func IsAudioFile(path string) bool {
	return audioExts[strings.ToLower(filepath.Ext(path))]
}

// Extract reads the embedded tags of one audio file and maps them onto a
// Song. Missing or unreadable tags degrade to filename-derived values
// instead of failing: a library import should never stop on one bad file.
// Only a missing file is an error.
func Extract(path string) (*types.Song, error) {
	song := &types.Song{
		Title:  titleFromFilename(path),
		Artist: UnknownArtist,
		Album:  UnknownAlbum,
		Path:   path,
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	meta, err := tag.ReadFrom(f)
	if err != nil {
		// No recognizable tag format. The filename-derived song stands.
		return song, nil
	}

	if v := strings.TrimSpace(meta.Title()); v != "" {
		song.Title = v
	}
	if v := strings.TrimSpace(meta.Artist()); v != "" {
		song.Artist = v
	}
	if v := strings.TrimSpace(meta.Album()); v != "" {
		song.Album = v
	}
	song.Genre = strings.TrimSpace(meta.Genre())
	song.Year = meta.Year()
	song.TrackNumber, _ = meta.Track()
	return song, nil
}

// ScanDir walks root recursively and extracts every audio file found.
// Unreadable files are logged and skipped.
func ScanDir(root string, log *slog.Logger) ([]*types.Song, error) {
	songs := []*types.Song{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !IsAudioFile(path) {
			return nil
		}
		song, err := Extract(path)
		if err != nil {
			log.Warn("skipping unreadable file", "path", path, "error", err)
			return nil
		}
		songs = append(songs, song)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return songs, nil
}

// titleFromFilename strips the directory and extension: "01 - Song.mp3"
// imports as "01 - Song" when no title tag is present.
func titleFromFilename(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
