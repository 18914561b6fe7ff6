package casefile

import (
	"encoding/json"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/myrjola/docket/internal/errors"
)

// WriteJSON marshals v and atomically replaces path with the result using a
// temporary file and rename. Readers either see the previous document or the
// new one, never a partial write.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal document", slog.String("path", path))
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".docket-*.tmp")
	if err != nil {
		return errors.Wrap(err, "create temp file", slog.String("dir", dir))
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "write temp file", slog.String("path", tmpPath))
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "sync temp file", slog.String("path", tmpPath))
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "close temp file", slog.String("path", tmpPath))
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return errors.Wrap(err, "rename temp file", slog.String("path", path))
	}
	success = true

	return nil
}

// ReadJSON reads the document at path into v. A missing file is reported
// with an error satisfying errors.Is(err, fs.ErrNotExist) so callers can
// fall back to defaults. Unparseable content, such as a torn write left by
// an interrupted process, is reported as ErrCorrupted.
func ReadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return errors.Wrap(err, "read document", slog.String("path", path))
	}

	if err = json.Unmarshal(data, v); err != nil {
		return errors.Wrap(ErrCorrupted, "parse document, restore the case from a save artifact",
			slog.String("path", path),
			slog.String("parse_error", err.Error()),
		)
	}

	return nil
}
