package scif

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// DatasetInfo is one catalogued dataset: where it lives, which format
// matched it and the headline facts of its first image.
type DatasetInfo struct {
	Path      string
	Format    string
	SHA1      string
	Width     int64
	Height    int64
	Planes    int64
	PixelType PixelType
}

// Catalog is a sqlite-backed index of scanned datasets.
type Catalog struct {
	db *sql.DB
}

// OpenCatalog opens or creates the catalog database at file.
func OpenCatalog(file string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS dataset (id INTEGER PRIMARY KEY NOT NULL, path TEXT NOT NULL UNIQUE, format TEXT NOT NULL, sha1 TEXT NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, planes INTEGER NOT NULL, pixel_type INTEGER NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	return &Catalog{db: db}, nil
}

// Close closes the underlying database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Put inserts or replaces the catalog entry for d.Path.
func (c *Catalog) Put(d DatasetInfo) error {
	_, err := c.db.Exec("INSERT OR REPLACE INTO dataset (path, format, sha1, width, height, planes, pixel_type) VALUES (?, ?, ?, ?, ?, ?, ?)",
		d.Path, d.Format, d.SHA1, d.Width, d.Height, d.Planes, int(d.PixelType))
	return err
}

// Find returns the entry for path, or nil if the path has not been
// catalogued.
func (c *Catalog) Find(path string) (*DatasetInfo, error) {
	d := DatasetInfo{Path: path}
	var pixelType int
	switch err := c.db.QueryRow("SELECT format, sha1, width, height, planes, pixel_type FROM dataset WHERE path = ?", path).
		Scan(&d.Format, &d.SHA1, &d.Width, &d.Height, &d.Planes, &pixelType); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		d.PixelType = PixelType(pixelType)
		return &d, nil
	default:
		return nil, err
	}
}

// Datasets returns all catalogued entries ordered by path.
func (c *Catalog) Datasets() ([]DatasetInfo, error) {
	rows, err := c.db.Query("SELECT path, format, sha1, width, height, planes, pixel_type FROM dataset ORDER BY path")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var datasets []DatasetInfo
	for rows.Next() {
		var d DatasetInfo
		var pixelType int
		if err := rows.Scan(&d.Path, &d.Format, &d.SHA1, &d.Width, &d.Height, &d.Planes, &pixelType); err != nil {
			return nil, err
		}
		d.PixelType = PixelType(pixelType)
		datasets = append(datasets, d)
	}
	return datasets, rows.Err()
}
