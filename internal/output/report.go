package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rpgo/nestegg/internal/domain"
)

// ErrUnsupportedFormat is returned when no formatter matches the requested name.
var ErrUnsupportedFormat = errors.New("unsupported output format")

var nowFunc = time.Now

func lookupFormatter(format string) (Formatter, error) {
	f := GetFormatterByName(format)
	if f == nil {
		return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	return f, nil
}

// GenerateReport renders result with the named formatter and writes it to w.
func GenerateReport(result *domain.PlanResult, format string, w io.Writer) error {
	f, err := lookupFormatter(format)
	if err != nil {
		return err
	}
	data, err := f.Format(result)
	if err != nil {
		return fmt.Errorf("format %s: %w", f.Name(), err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write %s report: %w", f.Name(), err)
	}
	return nil
}

// WriteReportFile renders result into a timestamped file under dir and returns its path.
// The timestamp comes from the result's generation time, falling back to the clock.
func WriteReportFile(result *domain.PlanResult, format, dir string) (string, error) {
	f, err := lookupFormatter(format)
	if err != nil {
		return "", err
	}
	data, err := f.Format(result)
	if err != nil {
		return "", fmt.Errorf("format %s: %w", f.Name(), err)
	}

	stamp := result.GeneratedAt
	if stamp.IsZero() {
		stamp = nowFunc()
	}
	name := fmt.Sprintf("retirement_report_%s.%s", stamp.Format("20060102_150405"), extensionFor(f))
	if f.Name() == "timeline-csv" {
		name = fmt.Sprintf("retirement_timeline_%s.csv", stamp.Format("20060102_150405"))
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}
