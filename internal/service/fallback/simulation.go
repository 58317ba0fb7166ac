package fallback

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sandevgo/gadgetbot/configs"
	"github.com/sandevgo/gadgetbot/internal/service/guard"
)

const (
	simulationFile  = "simulation.yaml"
	simulationModel = "simulated"
)

type simulationClass struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
	Products []string `yaml:"products"`
	Reply    string   `yaml:"reply"`
	Deflect  bool     `yaml:"deflect"`
}

type simulationTable struct {
	Classes       []simulationClass `yaml:"classes"`
	Clarification string            `yaml:"clarification"`
}

// Simulation picks a canned reply by keyword class. It cannot fail.
type Simulation struct {
	table  simulationTable
	delay  time.Duration
	jitter time.Duration
}

// NewSimulation loads the embedded reply table. delay and jitter add an
// optional typing pause; both zero disables it.
func NewSimulation(delay, jitter time.Duration) (*Simulation, error) {
	data, err := configs.FS.ReadFile(simulationFile)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", simulationFile, err)
	}
	return ParseSimulation(data, delay, jitter)
}

func ParseSimulation(data []byte, delay, jitter time.Duration) (*Simulation, error) {
	var table simulationTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse simulation table: %w", err)
	}
	if strings.TrimSpace(table.Clarification) == "" {
		return nil, fmt.Errorf("simulation table: clarification is empty")
	}
	for i, c := range table.Classes {
		if len(c.Keywords) == 0 {
			return nil, fmt.Errorf("simulation class %q: no keywords", c.Name)
		}
		if !c.Deflect && strings.TrimSpace(c.Reply) == "" {
			return nil, fmt.Errorf("simulation class %q: empty reply", c.Name)
		}
		for j, k := range c.Keywords {
			table.Classes[i].Keywords[j] = strings.ToLower(k)
		}
	}
	return &Simulation{table: table, delay: delay, jitter: jitter}, nil
}

func (s *Simulation) Name() string {
	return "simulation"
}

func (s *Simulation) Attempt(ctx context.Context, message string) (Reply, error) {
	return s.Answer(ctx, message), nil
}

// Answer waits out the typing pause unless ctx ends first, then replies.
func (s *Simulation) Answer(ctx context.Context, message string) Reply {
	s.pause(ctx)

	reply := Reply{Text: s.table.Clarification, Source: s.Name(), Model: simulationModel}

	lower := strings.ToLower(message)
	for _, c := range s.table.Classes {
		if !matchesAny(lower, c.Keywords) {
			continue
		}
		if c.Deflect {
			reply.Text = guard.Deflection
			return reply
		}
		reply.Text = c.Reply
		reply.ProductIDs = append([]string(nil), c.Products...)
		return reply
	}
	return reply
}

func (s *Simulation) pause(ctx context.Context) {
	d := s.delay
	if s.jitter > 0 {
		d += time.Duration(rand.Int64N(int64(s.jitter)))
	}
	if d <= 0 {
		return
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

func matchesAny(lower string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}
