package types

import "time"

// MusicArtist represents a performer in the music library. Name is unique
// across the library. Distinct from the business Artist entity.
type MusicArtist struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Genre       string    `json:"genre,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	ImagePath   string    `json:"image_path,omitempty"`
	ArtworkPath string    `json:"artwork_path,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Album groups songs under a MusicArtist. ArtistName is a denormalized
// copy of the owning artist's name, kept in sync when the artist is
// renamed. The name+artist combination is unique.
type Album struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	ArtistID   string    `json:"artist_id"`
	ArtistName string    `json:"artist_name"`
	Year       int       `json:"year,omitempty"` // zero when unknown
	CoverPath  string    `json:"cover_path,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Song is one imported audio file. Artist and Album are denormalized name
// strings alongside the optional foreign keys; they survive deletion of the
// referenced rows and are updated when those rows are renamed. Path is
// unique: importing the same file twice is a conflict.
type Song struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Artist      string     `json:"artist"`
	Album       string     `json:"album"`
	ArtistID    string     `json:"artist_id,omitempty"`
	AlbumID     string     `json:"album_id,omitempty"`
	Duration    float64    `json:"duration"` // seconds
	Path        string     `json:"path"`
	Genre       string     `json:"genre,omitempty"`
	Year        int        `json:"year,omitempty"`
	TrackNumber int        `json:"track_number,omitempty"`
	DateAdded   time.Time  `json:"date_added"`
	PlayCount   int        `json:"play_count"`
	LastPlayed  *time.Time `json:"last_played,omitempty"`
}

// Playlist is an ordered collection of songs. SongIDs is re-derived from
// the membership table on every read, ordered by position; it is never
// stored on the playlist row itself.
type Playlist struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color,omitempty"`
	ArtworkPath string    `json:"artwork_path,omitempty"`
	ArtistID    string    `json:"artist_id,omitempty"`
	SongIDs     []string  `json:"song_ids"`
	CreatedAt   time.Time `json:"created_at"`
}
