// Package backup provides tar.gz-based backup and restore for PlantMatch
// data: the SQLite database holding gardens, history and wishlists, plus an
// optional config file.
package backup

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HerbHall/plantmatch/internal/store"
	"github.com/HerbHall/plantmatch/internal/version"
)

// ManifestName is the archive entry describing the backup.
const ManifestName = "manifest.json"

// ErrDestinationExists is returned by Restore when a file it would write
// already exists and force is not set.
var ErrDestinationExists = errors.New("destination file exists")

// Manifest describes the contents of a backup archive.
type Manifest struct {
	Version   string    `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	Database  string    `json:"database"`
	Config    string    `json:"config,omitempty"`
}

// Backup creates a tar.gz archive containing the SQLite database and an
// optional config file. It performs a WAL checkpoint before copying the
// database to ensure consistency.
func Backup(ctx context.Context, dbPath, configPath, outputPath string) (*Manifest, error) {
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("database file not found: %w", err)
	}

	if err := checkpointWAL(ctx, dbPath); err != nil {
		return nil, fmt.Errorf("WAL checkpoint failed: %w", err)
	}

	m := &Manifest{
		Version:   version.Short(),
		CreatedAt: time.Now().UTC(),
		Database:  filepath.Base(dbPath),
	}
	if configPath != "" {
		// A missing config file is skipped.
		if _, err := os.Stat(configPath); err == nil {
			m.Config = filepath.Base(configPath)
		}
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("creating output file: %w", err)
	}
	defer outFile.Close()

	gw := gzip.NewWriter(outFile)
	tw := tar.NewWriter(gw)

	if err := writeArchive(tw, m, dbPath, configPath); err != nil {
		return nil, err
	}
	if err := tw.Close(); err != nil {
		return nil, fmt.Errorf("closing archive: %w", err)
	}
	if err := gw.Close(); err != nil {
		return nil, fmt.Errorf("closing gzip stream: %w", err)
	}
	return m, nil
}

func writeArchive(tw *tar.Writer, m *Manifest, dbPath, configPath string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	if err := tw.WriteHeader(&tar.Header{
		Name:    ManifestName,
		Mode:    0o644,
		Size:    int64(len(data)),
		ModTime: m.CreatedAt,
	}); err != nil {
		return fmt.Errorf("adding manifest to archive: %w", err)
	}
	if _, err := tw.Write(data); err != nil {
		return fmt.Errorf("adding manifest to archive: %w", err)
	}

	if err := addFileToTar(tw, dbPath, m.Database); err != nil {
		return fmt.Errorf("adding database to archive: %w", err)
	}
	if m.Config != "" {
		if err := addFileToTar(tw, configPath, m.Config); err != nil {
			return fmt.Errorf("adding config to archive: %w", err)
		}
	}
	return nil
}

// checkpointWAL opens the database, runs a TRUNCATE checkpoint to flush the
// WAL, and closes the connection.
func checkpointWAL(ctx context.Context, dbPath string) error {
	s, err := store.New(dbPath)
	if err != nil {
		return err
	}
	defer s.Close()
	return s.Checkpoint(ctx)
}

// addFileToTar adds a single file to the tar archive under the given name.
func addFileToTar(tw *tar.Writer, filePath, archiveName string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	hdr.Name = archiveName

	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}

	_, err = io.Copy(tw, f)
	return err
}

// Restore extracts a Backup archive into destDir and returns its manifest.
// Existing files are only replaced when force is set. Entries other than
// the manifest, the database and the config file are ignored.
func Restore(ctx context.Context, archivePath, destDir string, force bool) (*Manifest, error) {
	m, err := readManifest(archivePath)
	if err != nil {
		return nil, err
	}

	wanted := map[string]bool{m.Database: true}
	if m.Config != "" {
		wanted[m.Config] = true
	}
	for name := range wanted {
		if err := checkEntryName(name); err != nil {
			return nil, err
		}
		if !force {
			if _, err := os.Stat(filepath.Join(destDir, name)); err == nil {
				return nil, fmt.Errorf("%s: %w", name, ErrDestinationExists)
			}
		}
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating destination: %w", err)
	}

	err = walkArchive(archivePath, func(hdr *tar.Header, r io.Reader) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !wanted[hdr.Name] {
			return nil
		}
		delete(wanted, hdr.Name)
		dest := filepath.Join(destDir, hdr.Name)
		if err := extractFile(r, dest); err != nil {
			return err
		}
		if hdr.Name == m.Database {
			// The archived database is checkpointed; stale sidecars would
			// replay old pages over it.
			for _, suffix := range []string{"-wal", "-shm"} {
				if err := os.Remove(dest + suffix); err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("removing %s: %w", dest+suffix, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(wanted) > 0 {
		return nil, fmt.Errorf("archive is missing %d file(s) listed in the manifest", len(wanted))
	}
	return m, nil
}

func readManifest(archivePath string) (*Manifest, error) {
	var m *Manifest
	err := walkArchive(archivePath, func(hdr *tar.Header, r io.Reader) error {
		if hdr.Name != ManifestName || m != nil {
			return nil
		}
		m = &Manifest{}
		if err := json.NewDecoder(r).Decode(m); err != nil {
			return fmt.Errorf("decoding manifest: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if m == nil || m.Database == "" {
		return nil, fmt.Errorf("%s: not a PlantMatch backup (no manifest)", archivePath)
	}
	return m, nil
}

func walkArchive(archivePath string, fn func(*tar.Header, io.Reader) error) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer f.Close()

	gr, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("reading gzip stream: %w", err)
	}
	defer gr.Close()

	tr := tar.NewReader(gr)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading archive: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		if err := fn(hdr, tr); err != nil {
			return err
		}
	}
}

// checkEntryName rejects names that would escape the destination directory.
func checkEntryName(name string) error {
	if name == "" || name != filepath.Base(name) || strings.Contains(name, "..") {
		return fmt.Errorf("unsafe archive entry %q", name)
	}
	return nil
}

func extractFile(r io.Reader, dest string) error {
	tmp := dest + ".restore"
	out, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating %s: %w", tmp, err)
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		os.Remove(tmp)
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing %s: %w", dest, err)
	}
	return nil
}
