package progrock

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"

	"github.com/vito/progrock"
	"go.trai.ch/labgen/internal/core/ports"
)

// Summary is a progrock.Writer that collects the phases of a run and reports
// them through a logger when closed.
type Summary struct {
	log ports.Logger

	mu      sync.Mutex
	order   []string
	phases  map[string]*phase
	pending map[string][]byte
}

type phase struct {
	name     string
	done     bool
	cached   bool
	canceled bool
	err      string
	warn     bool
	lines    []string
}

// NewSummary creates a Summary reporting to log.
func NewSummary(log ports.Logger) *Summary {
	return &Summary{
		log:     log,
		phases:  make(map[string]*phase),
		pending: make(map[string][]byte),
	}
}

// WriteStatus folds a status update into the collected phases.
func (s *Summary) WriteStatus(update *progrock.StatusUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, v := range update.Vertexes {
		p := s.phase(v.Id)
		p.name = v.Name
		p.done = v.Completed != nil
		p.cached = v.Cached
		p.canceled = v.Canceled
		if v.Error != nil {
			p.err = *v.Error
		}
	}

	for _, l := range update.Logs {
		buf := append(s.pending[l.Vertex], l.Data...)
		for {
			i := bytes.IndexByte(buf, '\n')
			if i < 0 {
				break
			}
			s.phase(l.Vertex).add(string(buf[:i]))
			buf = buf[i+1:]
		}
		s.pending[l.Vertex] = buf
	}
	return nil
}

func (s *Summary) phase(id string) *phase {
	p, ok := s.phases[id]
	if !ok {
		p = &phase{}
		s.phases[id] = p
		s.order = append(s.order, id)
	}
	return p
}

// add records one log line, dropping lines below info level.
func (p *phase) add(line string) {
	level := slog.LevelInfo
	if rest, ok := strings.CutPrefix(line, "["); ok {
		if name, msg, ok := strings.Cut(rest, "] "); ok {
			var parsed slog.Level
			if parsed.UnmarshalText([]byte(name)) == nil {
				level, line = parsed, msg
			}
		}
	}
	if level < slog.LevelInfo || line == "" {
		return
	}
	if level >= slog.LevelWarn {
		p.warn = true
	}
	p.lines = append(p.lines, line)
}

// Close logs one line per phase that failed, was cached or reported messages.
func (s *Summary) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.order {
		p := s.phases[id]
		if rest := s.pending[id]; len(rest) > 0 {
			p.add(string(rest))
		}

		switch {
		case p.err != "":
			s.log.Warn(p.name + " failed: " + p.err)
		case p.canceled:
			s.log.Warn(p.name + " canceled")
		case !p.done:
			s.log.Warn(p.name + " did not complete")
		case len(p.lines) > 0:
			msg := p.name + ": " + strings.Join(p.lines, "; ")
			if p.cached {
				msg += " (cached)"
			}
			if p.warn {
				s.log.Warn(msg)
			} else {
				s.log.Info(msg)
			}
		case p.cached:
			s.log.Info(p.name + ": cached")
		}
	}

	s.order = nil
	clear(s.phases)
	clear(s.pending)
	return nil
}
