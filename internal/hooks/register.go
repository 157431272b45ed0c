package hooks

import (
	"github.com/refit/extension/internal/dispatcher"
)

// RegisterHandlers registers the hook commands with the dispatcher.
// Hooks are always sync: the host blocks on their answer. The enabled
// callback gates each hook by name; a disabled hook is simply never
// registered and the host keeps its unmodified behavior for it.
func (s *Service) RegisterHandlers(d *dispatcher.Dispatcher, enabled func(name string) bool) {
	if enabled == nil {
		enabled = func(string) bool { return true }
	}

	if enabled("placement") {
		d.RegisterSync(":HOOK:PLACE:", func(e dispatcher.Event) (any, error) {
			return s.HandlePlacement(e.Args), nil
		})
	}
	if enabled("readout") {
		d.RegisterSync(":HOOK:READOUT:", func(e dispatcher.Event) (any, error) {
			return s.HandleReadout(e.Args), nil
		})
	}
	if enabled("job") {
		d.RegisterSync(":HOOK:JOB:", func(e dispatcher.Event) (any, error) {
			return s.HandleJob(e.Args), nil
		})
	}
}
