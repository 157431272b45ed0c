package hostapi

import (
	"github.com/refit/extension/internal/dispatcher"
)

// configStruct is the central configuration used by this package.
type configStruct struct {
	// apiVersion is returned on the host's version handshake.
	apiVersion string

	// dispatcher handles command routing
	dispatcher *dispatcher.Dispatcher

	// hostCallback pushes asynchronous messages back into the host,
	// e.g. completion notices from buffered sync handlers.
	hostCallback func(name, function, data string)
}

// Init method initializes the config struct
func (c *configStruct) Init() {
	c.apiVersion = "No version set"
}

// SetVersion sets the string returned on the host's version handshake.
func SetVersion(version string) {
	Config.apiVersion = version
}

// SetDispatcher sets the event dispatcher for handling commands
func SetDispatcher(d *dispatcher.Dispatcher) {
	Config.dispatcher = d
}

// RegisterHostCallback sets the function used to push messages back to
// the host outside a synchronous call.
func RegisterHostCallback(cb func(name, function, data string)) {
	Config.hostCallback = cb
}

// WriteHostCallback sends a message to the host if a callback is registered.
func WriteHostCallback(name, function, data string) {
	if Config.hostCallback != nil {
		Config.hostCallback(name, function, data)
	}
}
