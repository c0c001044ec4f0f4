package events

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Timeline is a fight's event stream ordered by timestamp.
type Timeline struct {
	Start  time.Duration
	End    time.Duration
	Events []Event

	// Skipped counts entries dropped for lacking a type or timestamp.
	Skipped int
}

// file is the on-disk shape. Timestamps are milliseconds. JSON documents
// parse through the same path.
type file struct {
	Start   *int64     `yaml:"start"`
	End     *int64     `yaml:"end"`
	Imports []string   `yaml:"imports"`
	Events  []rawEvent `yaml:"events"`
}

type rawEvent struct {
	Timestamp *int64      `yaml:"timestamp"`
	Type      string      `yaml:"type"`
	SourceID  int         `yaml:"sourceID"`
	Ability   *AbilityRef `yaml:"ability"`
}

// LoadTimeline loads a timeline file, resolving imports relative to baseDir.
// Imported events are merged before the importing file's own events and the
// result is stably sorted by timestamp.
func LoadTimeline(baseDir, relPath string) (*Timeline, error) {
	seen := map[string]bool{}
	tl, err := loadRecursive(baseDir, relPath, seen)
	if err != nil {
		return nil, err
	}
	sortEvents(tl.Events)
	return tl, nil
}

// ParseTimeline decodes a single timeline document without imports.
func ParseTimeline(data []byte) (*Timeline, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if len(f.Imports) > 0 {
		return nil, fmt.Errorf("imports need a base directory; use LoadTimeline")
	}
	tl := decode(&f)
	sortEvents(tl.Events)
	return tl, nil
}

func loadRecursive(baseDir, relPath string, seen map[string]bool) (*Timeline, error) {
	normalized := filepath.Clean(relPath)
	if seen[normalized] {
		return nil, fmt.Errorf("timeline import cycle detected at %s", normalized)
	}
	seen[normalized] = true

	data, err := os.ReadFile(filepath.Join(baseDir, normalized))
	if err != nil {
		return nil, err
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", relPath, err)
	}

	// Resolve imports depth-first.
	merged := &Timeline{}
	for i, imp := range f.Imports {
		child, err := loadRecursive(baseDir, imp, seen)
		if err != nil {
			return nil, err
		}
		merged.Events = append(merged.Events, child.Events...)
		merged.Skipped += child.Skipped
		if i == 0 || child.Start < merged.Start {
			merged.Start = child.Start
		}
		if child.End > merged.End {
			merged.End = child.End
		}
	}

	// The file's own bounds win over the imported ones.
	own := decode(&f)
	merged.Events = append(merged.Events, own.Events...)
	merged.Skipped += own.Skipped
	if f.Start != nil || len(f.Imports) == 0 {
		merged.Start = own.Start
	}
	if f.End != nil || len(f.Imports) == 0 {
		merged.End = own.End
	}

	seen[normalized] = false
	return merged, nil
}

func decode(f *file) *Timeline {
	tl := &Timeline{
		Start:  millis(f.Start),
		End:    millis(f.End),
		Events: make([]Event, 0, len(f.Events)),
	}
	for _, raw := range f.Events {
		typ := Type(strings.ToLower(strings.TrimSpace(raw.Type)))
		if raw.Timestamp == nil || typ == "" {
			tl.Skipped++
			continue
		}
		tl.Events = append(tl.Events, Event{
			Timestamp: time.Duration(*raw.Timestamp) * time.Millisecond,
			Type:      typ,
			SourceID:  raw.SourceID,
			Ability:   raw.Ability,
		})
	}
	return tl
}

func millis(v *int64) time.Duration {
	if v == nil {
		return 0
	}
	return time.Duration(*v) * time.Millisecond
}

func sortEvents(evs []Event) {
	sort.SliceStable(evs, func(i, j int) bool {
		return evs[i].Timestamp < evs[j].Timestamp
	})
}
