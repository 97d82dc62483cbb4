package interview

import "github.com/ashureev/interview-labs/internal/domain"

// Notifier receives engine events. Calls are made after the engine has
// released its lock, so implementations may call back into the engine.
type Notifier interface {
	OnSnapshot(domain.Snapshot)
	OnFinish(domain.Result)
}

type nopNotifier struct{}

func (nopNotifier) OnSnapshot(domain.Snapshot) {}
func (nopNotifier) OnFinish(domain.Result)     {}

// event is a notification queued during a locked operation.
type event struct {
	snapshot *domain.Snapshot
	result   *domain.Result
}

func (e event) deliver(n Notifier) {
	switch {
	case e.snapshot != nil:
		n.OnSnapshot(*e.snapshot)
	case e.result != nil:
		n.OnFinish(*e.result)
	}
}
