package orchestrator

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harshul/noderunner/internal/doctor"
	"github.com/harshul/noderunner/internal/launcher"
	"github.com/harshul/noderunner/internal/nodes"
)

// Reason classifies a failed launch.
type Reason int

const (
	NoFailure Reason = iota
	ArtifactMissing
	ConfigMismatch
	AgentUnresolved
	SpawnRejected
)

func (r Reason) String() string {
	switch r {
	case NoFailure:
		return "none"
	case ArtifactMissing:
		return "artifact missing"
	case ConfigMismatch:
		return "configuration mismatch"
	case AgentUnresolved:
		return "agent unresolved"
	case SpawnRejected:
		return "spawn rejected"
	default:
		return "unknown"
	}
}

// Outcome is the result of one launch attempt. Started is nil when the
// attempt failed.
type Outcome struct {
	Home           string
	Dir            string
	JarName        string
	Strategy       launcher.Strategy
	DebugPort      int
	MonitoringPort int

	Started *launcher.Started
	Reason  Reason
	Err     error
}

func (o Outcome) fail(reason Reason, err error) Outcome {
	o.Reason = reason
	o.Err = err
	return o
}

func skipReason(r nodes.SkipReason) Reason {
	switch r {
	case nodes.ArtifactMissing:
		return ArtifactMissing
	case nodes.ConfigMismatch:
		return ConfigMismatch
	default:
		return NoFailure
	}
}

// Skip is a jar type a home does not qualify for. Skips are not launch
// attempts and take no ports.
type Skip struct {
	Home    string
	JarName string
	Reason  Reason
}

// Result summarizes a run.
type Result struct {
	RunID       string
	StartedAt   time.Time
	WorkDir     string
	Environment doctor.Environment
	Outcomes    []Outcome
	Skipped     []Skip
	// Interrupted is set when the run stopped before trying every candidate
	Interrupted bool
}

// StartedCount is the number of processes spawned.
func (r *Result) StartedCount() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Started != nil {
			n++
		}
	}
	return n
}

// Failed returns the outcomes that did not start a process.
func (r *Result) Failed() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes {
		if o.Started == nil {
			failed = append(failed, o)
		}
	}
	return failed
}

type record struct {
	RunID       string          `yaml:"run_id"`
	StartedAt   time.Time       `yaml:"started_at"`
	WorkDir     string          `yaml:"work_dir"`
	Platform    string          `yaml:"platform"`
	Headless    bool            `yaml:"headless"`
	Interrupted bool            `yaml:"interrupted,omitempty"`
	Launches    []launchRecord  `yaml:"launches"`
	Skipped     []skippedRecord `yaml:"skipped,omitempty"`
}

type launchRecord struct {
	Home           string `yaml:"home"`
	Jar            string `yaml:"jar"`
	Strategy       string `yaml:"strategy"`
	DebugPort      int    `yaml:"debug_port"`
	MonitoringPort int    `yaml:"monitoring_port"`
	PID            int    `yaml:"pid,omitempty"`
	Command        string `yaml:"command,omitempty"`
	Failure        string `yaml:"failure,omitempty"`
	Error          string `yaml:"error,omitempty"`
}

type skippedRecord struct {
	Home   string `yaml:"home"`
	Jar    string `yaml:"jar"`
	Reason string `yaml:"reason"`
}

func newRecord(r *Result) record {
	rec := record{
		RunID:       r.RunID,
		StartedAt:   r.StartedAt,
		WorkDir:     r.WorkDir,
		Platform:    r.Environment.Platform.String(),
		Headless:    r.Environment.Headless,
		Interrupted: r.Interrupted,
	}
	for _, o := range r.Outcomes {
		lr := launchRecord{
			Home:           o.Home,
			Jar:            o.JarName,
			Strategy:       o.Strategy.String(),
			DebugPort:      o.DebugPort,
			MonitoringPort: o.MonitoringPort,
		}
		if o.Started != nil {
			lr.Command = o.Started.CommandLine
			if o.Started.Process != nil {
				lr.PID = o.Started.Process.Pid
			}
		} else {
			lr.Failure = o.Reason.String()
			if o.Err != nil {
				lr.Error = o.Err.Error()
			}
		}
		rec.Launches = append(rec.Launches, lr)
	}
	for _, s := range r.Skipped {
		rec.Skipped = append(rec.Skipped, skippedRecord{Home: s.Home, Jar: s.JarName, Reason: s.Reason.String()})
	}
	return rec
}

// WriteRecord writes r as YAML to path, creating parent directories.
func WriteRecord(path string, r *Result) error {
	data, err := yaml.Marshal(newRecord(r))
	if err != nil {
		return fmt.Errorf("failed to marshal run record: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write run record: %w", err)
	}
	return nil
}
