//go:generate mockgen -source=exporter.go -destination=exporter_mock.go -package=export
package export

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"orslog/internal/app/errors"
	"orslog/internal/app/logs"
	"orslog/internal/config/logger"
)

const (
	filePrefix = "logs_export_"
	fileSuffix = ".csv"
	dirPerm    = 0755
	filePerm   = 0644
)

// Exporter writes filtered entries to CSV files
type Exporter interface {
	Export(entries []logs.Entry, now time.Time) (string, error)
	Dir() string
}

type exporter struct {
	dir string
	log logger.Logger
}

// NewExporter creates an exporter writing into dir
func NewExporter(dir string, log logger.Logger) Exporter {
	return &exporter{
		dir: dir,
		log: log,
	}
}

// FileName returns the export file name for the given moment
func FileName(now time.Time) string {
	return fmt.Sprintf("%s%d%s", filePrefix, now.UnixMilli(), fileSuffix)
}

// Dir returns the export directory
func (e *exporter) Dir() string {
	return e.dir
}

// Export creates the export directory if needed and writes a new CSV file into it
func (e *exporter) Export(entries []logs.Entry, now time.Time) (string, error) {
	if err := os.MkdirAll(e.dir, dirPerm); err != nil {
		return "", classify(err)
	}

	path := filepath.Join(e.dir, FileName(now))

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePerm)
	if err != nil {
		return "", classify(err)
	}

	if err := Write(file, entries); err != nil {
		file.Close()
		return "", classify(err)
	}

	if err := file.Close(); err != nil {
		return "", classify(err)
	}

	e.log.Info().Msgf("Exported %d entries to %s", len(entries), path)

	return path, nil
}

func classify(err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%w: %w", errors.ErrExportPermissionDenied, err)
	}

	return fmt.Errorf("%w: %w", errors.ErrExportFailed, err)
}
