package ingest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/vacayzen/product-recommendation/internal/drive"
	"github.com/vacayzen/product-recommendation/internal/repository"
	"github.com/vacayzen/product-recommendation/internal/storage"
)

// Input table names.
const (
	TableRentals   = "rentals"
	TableCosts     = "costs"
	TableInventory = "inventory"
)

// Source fetches one raw input table.
type Source interface {
	Fetch(ctx context.Context) (*Table, error)
}

// DriveFiles is the part of the Drive service the drive source needs.
type DriveFiles interface {
	GetFile(ctx context.Context, fileID string) (*drive.File, error)
	DownloadFile(ctx context.Context, fileID string, w io.Writer) error
	ExportCSV(ctx context.Context, fileID string, w io.Writer) error
}

// FileSource reads a local CSV or XLSX file.
type FileSource struct {
	Table    string
	Path     string
	Encoding string
}

func (s *FileSource) Fetch(ctx context.Context) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file: %w", s.Table, err)
	}
	defer f.Close()

	return ReadTable(s.Table, s.Path, f, s.Encoding)
}

// ReaderSource reads an in-memory upload. Filename only selects the format.
type ReaderSource struct {
	Table    string
	Filename string
	Reader   io.Reader
	Encoding string
}

func (s *ReaderSource) Fetch(ctx context.Context) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ReadTable(s.Table, s.Filename, s.Reader, s.Encoding)
}

// ObjectSource reads an object from S3-compatible storage.
type ObjectSource struct {
	Table    string
	Storage  storage.ObjectStorage
	Bucket   string
	Key      string
	Encoding string
}

func (s *ObjectSource) Fetch(ctx context.Context) (*Table, error) {
	body, _, err := s.Storage.GetObject(ctx, s.Bucket, s.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s object: %w", s.Table, err)
	}
	defer body.Close()

	return ReadTable(s.Table, s.Key, body, s.Encoding)
}

// DriveSource reads a Google Drive file. Native spreadsheets are exported as CSV.
type DriveSource struct {
	Table    string
	Drive    DriveFiles
	FileID   string
	Encoding string
}

func (s *DriveSource) Fetch(ctx context.Context) (*Table, error) {
	file, err := s.Drive.GetFile(ctx, s.FileID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up %s drive file: %w", s.Table, err)
	}

	var buf bytes.Buffer
	filename := file.Name
	if file.IsSpreadsheet() {
		err = s.Drive.ExportCSV(ctx, s.FileID, &buf)
		filename = file.Name + ".csv"
	} else {
		err = s.Drive.DownloadFile(ctx, s.FileID, &buf)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to download %s drive file: %w", s.Table, err)
	}

	return ReadTable(s.Table, filename, &buf, s.Encoding)
}

// SQLSource reads a database table.
type SQLSource struct {
	Table  string
	Repo   repository.TableRepository
	Source string
}

func (s *SQLSource) Fetch(ctx context.Context) (*Table, error) {
	header, rows, err := s.Repo.ReadTable(ctx, s.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s from database: %w", s.Table, err)
	}
	return NewTable(s.Table, header, rows), nil
}

// Resolver turns a source URI into a Source. Backends left nil are reported
// as not configured when a URI needs them. Local paths are only resolved when
// AllowFiles is set.
type Resolver struct {
	Storage    storage.ObjectStorage
	Drive      DriveFiles
	Tables     repository.TableRepository
	Encoding   string
	AllowFiles bool
}

// Resolve accepts s3://bucket/key, drive://<fileID>, sql://<table>,
// file://<path> or a plain local path.
func (r *Resolver) Resolve(table, uri string) (Source, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return nil, fmt.Errorf("no source given for %s", table)
	}

	scheme, rest, ok := strings.Cut(uri, "://")
	if !ok {
		scheme, rest = "file", uri
	}

	switch strings.ToLower(scheme) {
	case "file":
		if !r.AllowFiles {
			return nil, fmt.Errorf("local file sources are not allowed")
		}
		return &FileSource{Table: table, Path: filepath.FromSlash(rest), Encoding: r.Encoding}, nil
	case "s3":
		if r.Storage == nil {
			return nil, fmt.Errorf("s3 sources are not configured")
		}
		bucket, key, _ := strings.Cut(rest, "/")
		key = strings.TrimPrefix(path.Clean("/"+key), "/")
		if key == "" {
			return nil, fmt.Errorf("invalid s3 source %q: missing object key", uri)
		}
		return &ObjectSource{Table: table, Storage: r.Storage, Bucket: bucket, Key: key, Encoding: r.Encoding}, nil
	case "drive":
		if r.Drive == nil {
			return nil, fmt.Errorf("drive sources are not configured")
		}
		fileID, err := url.PathUnescape(strings.Trim(rest, "/"))
		if err != nil || fileID == "" {
			return nil, fmt.Errorf("invalid drive source %q", uri)
		}
		return &DriveSource{Table: table, Drive: r.Drive, FileID: fileID, Encoding: r.Encoding}, nil
	case "sql":
		if r.Tables == nil {
			return nil, fmt.Errorf("sql sources are not configured")
		}
		name := strings.Trim(rest, "/")
		if name == "" {
			return nil, fmt.Errorf("invalid sql source %q: missing table", uri)
		}
		return &SQLSource{Table: table, Repo: r.Tables, Source: name}, nil
	default:
		return nil, fmt.Errorf("unsupported source scheme %q", scheme)
	}
}
