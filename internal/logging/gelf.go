package logging

import (
	"fmt"
	"log/slog"

	"github.com/Graylog2/go-gelf/gelf"
)

// NewGelfHandler creates a slog handler that ships JSON records to a
// Graylog GELF endpoint. Each slog record becomes one GELF message.
func NewGelfHandler(address string, opts *slog.HandlerOptions) (slog.Handler, error) {
	w, err := gelf.NewWriter(address)
	if err != nil {
		return nil, fmt.Errorf("error connecting GELF writer to %s: %w", address, err)
	}
	return slog.NewJSONHandler(w, opts), nil
}
