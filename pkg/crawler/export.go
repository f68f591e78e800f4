package crawler

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// ExportCSV writes the result list to path as a single-column CSV file with
// a "URL" header row and one row per fetched URL, preserving order.
func ExportCSV(path string, urls []string, log *logrus.Entry) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file '%s': %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"URL"}); err != nil {
		return fmt.Errorf("writing CSV header to '%s': %w", path, err)
	}
	for _, u := range urls {
		if err := writer.Write([]string{u}); err != nil {
			return fmt.Errorf("writing CSV row to '%s': %w", path, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flushing CSV file '%s': %w", path, err)
	}

	log.Infof("Exported %d URLs to %s", len(urls), path)
	return nil
}
