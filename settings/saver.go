package settings

import (
	"log"
	"sync"
	"time"
)

// SaveInterval is how often the settings panel writes while a slider moves.
const SaveInterval = 80 * time.Millisecond

// Saver throttles writes of a settings file. The first Submit in a quiet
// period writes at once; later ones inside the interval coalesce into one
// trailing write of the newest value.
type Saver struct {
	path     string
	interval time.Duration

	mu      sync.Mutex
	last    time.Time
	pending *Settings
	timer   *time.Timer
	save    func(string, Settings) error
}

func NewSaver(path string, interval time.Duration) *Saver {
	return &Saver{path: path, interval: interval, save: Save}
}

func (s *Saver) Submit(v Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer == nil && time.Since(s.last) >= s.interval {
		s.writeLocked(v)
		return
	}
	s.pending = &v
	if s.timer == nil {
		wait := s.interval - time.Since(s.last)
		s.timer = time.AfterFunc(max(wait, 0), s.fire)
	}
}

// Flush writes any pending value now.
func (s *Saver) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.pending != nil {
		s.writeLocked(*s.pending)
	}
}

func (s *Saver) fire() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timer = nil
	if s.pending != nil {
		s.writeLocked(*s.pending)
	}
}

func (s *Saver) writeLocked(v Settings) {
	s.pending = nil
	s.last = time.Now()
	if err := s.save(s.path, v); err != nil {
		log.Printf("settings: %v", err)
	}
}
