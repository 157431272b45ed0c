// Package hostapi is the surface the host game calls into. The host
// drives the extension with string-serialized commands and reads back a
// single string answer per call; hook commands answer in the host's
// directive protocol (JSON arrays), everything else gets the ["ok",...]
// envelope.
package hostapi

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/refit/extension/internal/dispatcher"
)

// Config defines how calls into this extension are handled.
var Config configStruct = configStruct{}

func init() {
	Config.Init()
}

// Version answers the host's version handshake.
func Version() string {
	return Config.apiVersion
}

// Call routes a host command with pre-split arguments.
func Call(command string, args []string) string {
	if command == ":TIMESTAMP:" {
		return getTimestamp()
	}

	if Config.dispatcher == nil || !Config.dispatcher.HasHandler(command) {
		return envelope("error", command, "no handler registered")
	}

	event := dispatcher.Event{
		Command:   command,
		Args:      args,
		Timestamp: time.Now(),
	}

	result, err := Config.dispatcher.Dispatch(event)
	return formatDispatchResponse(command, result, err)
}

// CallLine routes a host command serialized as "command|arg|arg|...".
// A bare command with no separator dispatches with no arguments.
func CallLine(line string) string {
	command, args := splitLine(line)
	return Call(command, args)
}

func splitLine(line string) (string, []string) {
	parts := strings.Split(line, "|")
	if len(parts) == 1 {
		return parts[0], nil
	}
	return parts[0], parts[1:]
}

// formatDispatchResponse shapes a dispatch result for the host. JSON
// string results are handler answers already in the host protocol and
// pass through verbatim.
func formatDispatchResponse(command string, result any, err error) string {
	if err != nil {
		return envelope("error", command, err.Error())
	}
	if result == nil {
		return envelope("ok", command)
	}
	if s, ok := result.(string); ok {
		if strings.HasPrefix(s, "[") || strings.HasPrefix(s, "{") {
			return s
		}
		return envelope("ok", command, s)
	}
	return envelope("ok", command, fmt.Sprintf("%v", result))
}

// envelope encodes the parts as a JSON array so embedded quotes in
// error messages or results cannot break the host's answer parsing.
func envelope(parts ...string) string {
	b, _ := json.Marshal(parts)
	return string(b)
}

func getTimestamp() string {
	return fmt.Sprintf("%d", time.Now().UTC().UnixNano())
}
