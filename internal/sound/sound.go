// Package sound provides simple sinks for the sound commands the weather
// simulation emits. Real audio mixing lives with the engine; these sinks
// log or record the commands for the console tools and tests.
package sound

import (
	"log"
	"sync"
)

// Logger writes every sound command to the standard logger. Loop volume
// updates arrive every tick, so they are only logged when they move by a
// noticeable amount.
type Logger struct {
	loopID     string
	loopVolume float64
}

func NewLogger() *Logger {
	return &Logger{}
}

func (l *Logger) Play(id string, volume, pitch float64) {
	if id == "" {
		return
	}
	log.Printf("sound: play %q volume=%.2f pitch=%.2f", id, volume, pitch)
}

func (l *Logger) PlayLoop(id string, volume float64) {
	l.loopID = id
	l.loopVolume = volume
	log.Printf("sound: loop start %q volume=%.2f", id, volume)
}

func (l *Logger) SetLoopVolume(volume float64) {
	if l.loopID == "" {
		return
	}
	if diff := volume - l.loopVolume; diff > 0.25 || diff < -0.25 {
		l.loopVolume = volume
		log.Printf("sound: loop %q volume=%.2f", l.loopID, volume)
	}
}

func (l *Logger) StopLoop() {
	if l.loopID != "" {
		log.Printf("sound: loop stop %q", l.loopID)
	}
	l.loopID = ""
	l.loopVolume = 0
}

// Event is one recorded sound command.
type Event struct {
	Kind   string // "play", "loop", "volume", "stop"
	ID     string
	Volume float64
}

// Recorder captures sound commands for inspection. Safe for concurrent
// reads from a UI goroutine.
type Recorder struct {
	mu     sync.Mutex
	events []Event
	loopID string
	volume float64
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Play(id string, volume, pitch float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{Kind: "play", ID: id, Volume: volume})
}

func (r *Recorder) PlayLoop(id string, volume float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loopID = id
	r.volume = volume
	r.events = append(r.events, Event{Kind: "loop", ID: id, Volume: volume})
}

func (r *Recorder) SetLoopVolume(volume float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.volume = volume
}

func (r *Recorder) StopLoop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{Kind: "stop", ID: r.loopID})
	r.loopID = ""
	r.volume = 0
}

// Playing returns the active loop id and its volume.
func (r *Recorder) Playing() (string, float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loopID, r.volume
}

// Events returns a copy of everything recorded so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}
