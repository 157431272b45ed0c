package main

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/refit/extension/pkg/hostapi"
)

// replayEventLog feeds a recorded host event log through the command
// surface, one "command|arg|arg|..." line at a time. Files ending in
// .gz are decompressed on the fly. Blank lines and lines starting with
// '#' are skipped.
func replayEventLog(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error opening event log: %w", err)
	}
	defer file.Close()

	var reader io.Reader = file
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(file)
		if err != nil {
			return fmt.Errorf("error opening gzip event log: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	start := time.Now()
	lines, errors := 0, 0

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		lines++
		response := hostapi.CallLine(line)
		if strings.HasPrefix(response, `["error"`) {
			errors++
			fmt.Fprintf(os.Stderr, "line %d: %s -> %s\n", lines, line, response)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading event log: %w", err)
	}

	fmt.Printf("Replayed %d events from %s in %s (%d errors)\n", lines, path, time.Since(start), errors)
	return nil
}
