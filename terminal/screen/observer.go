package screen

import "github.com/hnimtadd/vtcore/terminal/utils"

// Observer receives synchronous notifications from the screen. Callbacks
// run on the mutator's goroutine and must not mutate the screen; mutators
// assert against re-entrant calls.
type Observer interface {
	// OutputChanged fires after a batch of mutations.
	OutputChanged()

	// ScreenCleared fires when the entire visible image is cleared.
	ScreenCleared()
}

// AddObserver registers an observer. The returned handle removes it again.
func (s *Screen) AddObserver(o Observer) (remove func()) {
	s.observers = append(s.observers, o)
	return func() {
		for i, registered := range s.observers {
			if registered == o {
				s.observers = append(s.observers[:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

// NotifyOutputChanged dispatches an output notification to every observer.
// The escape sequence driver calls it after each processed chunk.
func (s *Screen) NotifyOutputChanged() {
	s.notifying = true
	defer func() { s.notifying = false }()

	for _, o := range s.observers {
		o.OutputChanged()
	}
}

func (s *Screen) notifyScreenCleared() {
	s.notifying = true
	defer func() { s.notifying = false }()

	for _, o := range s.observers {
		o.ScreenCleared()
	}
}

// assertNotNotifying catches observers that call back into a mutator from
// inside a notification.
func (s *Screen) assertNotNotifying() {
	utils.Assert(!s.notifying, "screen mutated from inside an observer callback")
}
