// Package source enumerates the candidate pod/topic sources a Reader
// task can be started against, supplementing the engine with the
// original's startup population step (populate_pods.rs): the candidate
// list is fetched once, before any Reader starts, and fed to the
// selector view.
package source

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Kind distinguishes a Docker-container-backed pod source from a
// generic topic source.
type Kind int

const (
	KindPod Kind = iota
	KindTopic
)

func (k Kind) String() string {
	if k == KindTopic {
		return "topic"
	}
	return "pod"
}

// Source is one candidate Reader target.
type Source struct {
	Kind Kind
	Name string
}

// Lister enumerates the candidate sources available at startup.
type Lister interface {
	List(ctx context.Context) ([]Source, error)
}

// StaticLister returns a fixed list, built from repeatable `--source
// kind=name` flags (spec supplement §12.2) rather than discovered from
// a live backend.
type StaticLister struct {
	sources []Source
}

// NewStaticLister builds a StaticLister from raw "kind=name" flag
// values. An entry with an unrecognized kind or no name is skipped.
func NewStaticLister(raw []string) *StaticLister {
	var sources []Source
	for _, entry := range raw {
		kind, name, ok := strings.Cut(entry, "=")
		if !ok || name == "" {
			continue
		}
		var k Kind
		switch kind {
		case "pod":
			k = KindPod
		case "topic":
			k = KindTopic
		default:
			continue
		}
		sources = append(sources, Source{Kind: k, Name: name})
	}
	return &StaticLister{sources: sources}
}

// List returns the static source list unchanged.
func (s *StaticLister) List(ctx context.Context) ([]Source, error) {
	return s.sources, nil
}

// containerLister is the minimal surface StaticLister's Docker-backed
// sibling needs from *client.Client — defined here so DockerLister can
// be unit-tested against a fake without importing the real Docker
// client in tests.
type containerLister interface {
	ListRunningNames(ctx context.Context) ([]string, error)
}

// DockerLister discovers pod sources from Docker containers, running or not,
// the same enumeration the teacher's loadContainers does, repurposed
// here as a one-shot startup population step instead of a periodically
// refreshed list (spec supplement §12.2).
type DockerLister struct {
	client containerLister
}

// NewDockerLister wraps a containerLister (see docker.go for the
// concrete *client.Client-backed implementation).
func NewDockerLister(cl containerLister) *DockerLister {
	return &DockerLister{client: cl}
}

// List returns one pod Source per container (stopped ones included, as
// DockerContainerLister lists them all), sorted by name.
func (d *DockerLister) List(ctx context.Context) ([]Source, error) {
	names, err := d.client.ListRunningNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("list containers: %w", err)
	}
	sort.Strings(names)

	sources := make([]Source, 0, len(names))
	for _, n := range names {
		sources = append(sources, Source{Kind: KindPod, Name: n})
	}
	return sources, nil
}
