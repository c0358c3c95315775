package sqlite

// Baseline DDL, matching the first shipped schema. Later columns arrive
// through the additive migration steps in migrate.go, never here, so the
// same step list upgrades old databases and fresh ones alike.
const (
	createArtists = `CREATE TABLE IF NOT EXISTS artists (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT,
    phone TEXT,
    address TEXT,
    notes TEXT,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createProjects = `CREATE TABLE IF NOT EXISTS projects (
    id TEXT PRIMARY KEY,
    artist_id TEXT NOT NULL,
    name TEXT NOT NULL,
    description TEXT,
    status TEXT NOT NULL DEFAULT 'active',
    start_date TEXT,
    end_date TEXT,
    budget REAL NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    FOREIGN KEY (artist_id) REFERENCES artists (id) ON DELETE CASCADE
);`

	createInvoices = `CREATE TABLE IF NOT EXISTS invoices (
    id TEXT PRIMARY KEY,
    artist_id TEXT NOT NULL,
    project_id TEXT,
    invoice_number TEXT NOT NULL UNIQUE,
    amount REAL NOT NULL DEFAULT 0,
    status TEXT NOT NULL DEFAULT 'pending',
    issue_date TEXT NOT NULL,
    due_date TEXT NOT NULL,
    paid_date TEXT,
    items TEXT NOT NULL DEFAULT '[]',
    notes TEXT,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    FOREIGN KEY (artist_id) REFERENCES artists (id) ON DELETE CASCADE,
    FOREIGN KEY (project_id) REFERENCES projects (id) ON DELETE SET NULL
);`

	createMusicArtists = `CREATE TABLE IF NOT EXISTS music_artists (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    genre TEXT,
    bio TEXT,
    image_path TEXT,
    artwork_path TEXT,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createAlbums = `CREATE TABLE IF NOT EXISTS albums (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    artist_id TEXT NOT NULL,
    artist_name TEXT NOT NULL,
    year INTEGER,
    cover_path TEXT,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    UNIQUE (name, artist_id),
    FOREIGN KEY (artist_id) REFERENCES music_artists (id) ON DELETE CASCADE
);`

	createSongs = `CREATE TABLE IF NOT EXISTS songs (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    artist TEXT NOT NULL,
    album TEXT NOT NULL,
    artist_id TEXT,
    album_id TEXT,
    duration REAL NOT NULL DEFAULT 0,
    path TEXT NOT NULL UNIQUE,
    genre TEXT,
    year INTEGER,
    track_number INTEGER,
    date_added TEXT NOT NULL,
    FOREIGN KEY (artist_id) REFERENCES music_artists (id) ON DELETE SET NULL,
    FOREIGN KEY (album_id) REFERENCES albums (id) ON DELETE SET NULL
);`

	createPlaylists = `CREATE TABLE IF NOT EXISTS playlists (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT,
    color TEXT,
    artwork_path TEXT,
    created_at TEXT NOT NULL
);`

	createPlaylistSongs = `CREATE TABLE IF NOT EXISTS playlist_songs (
    playlist_id TEXT NOT NULL,
    song_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    PRIMARY KEY (playlist_id, song_id),
    FOREIGN KEY (playlist_id) REFERENCES playlists (id) ON DELETE CASCADE,
    FOREIGN KEY (song_id) REFERENCES songs (id) ON DELETE CASCADE
);`
)

// Secondary indexes on foreign-key and frequently filtered columns, so
// list/filter operations stay off full scans as row counts grow.
const (
	idxProjectsArtist    = `CREATE INDEX IF NOT EXISTS idx_projects_artist ON projects (artist_id);`
	idxInvoicesArtist    = `CREATE INDEX IF NOT EXISTS idx_invoices_artist ON invoices (artist_id);`
	idxInvoicesProject   = `CREATE INDEX IF NOT EXISTS idx_invoices_project ON invoices (project_id);`
	idxInvoicesStatus    = `CREATE INDEX IF NOT EXISTS idx_invoices_status ON invoices (status);`
	idxInvoicesDueDate   = `CREATE INDEX IF NOT EXISTS idx_invoices_due_date ON invoices (due_date);`
	idxInvoicesCreated   = `CREATE INDEX IF NOT EXISTS idx_invoices_created ON invoices (created_at);`
	idxAlbumsArtist      = `CREATE INDEX IF NOT EXISTS idx_albums_artist ON albums (artist_id);`
	idxSongsArtist       = `CREATE INDEX IF NOT EXISTS idx_songs_artist ON songs (artist_id);`
	idxSongsAlbum        = `CREATE INDEX IF NOT EXISTS idx_songs_album ON songs (album_id);`
	idxPlaylistSongsSong = `CREATE INDEX IF NOT EXISTS idx_playlist_songs_song ON playlist_songs (song_id);`
)

// baselineDDL lists all CREATE TABLE statements in dependency order.
var baselineDDL = []string{
	createArtists,
	createProjects,
	createInvoices,
	createMusicArtists,
	createAlbums,
	createSongs,
	createPlaylists,
	createPlaylistSongs,
}

// indexDDL lists all CREATE INDEX statements. Applied on every open.
var indexDDL = []string{
	idxProjectsArtist,
	idxInvoicesArtist,
	idxInvoicesProject,
	idxInvoicesStatus,
	idxInvoicesDueDate,
	idxInvoicesCreated,
	idxAlbumsArtist,
	idxSongsArtist,
	idxSongsAlbum,
	idxPlaylistSongsSong,
}
