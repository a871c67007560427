package source

import (
	"context"
	"strings"
	"time"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
)

// DockerContainerLister is the containerLister backing DockerLister in
// normal operation, grounded on the teacher's loadContainers/
// getContainerName (model.go, docker.go): list every container
// (running or not is irrelevant here — §4.F treats a source purely as
// a name to pass to a Reader), fall back to a short ID when a
// container has no name.
type DockerContainerLister struct {
	client *client.Client
}

// NewDockerContainerLister wraps an existing Docker client.
func NewDockerContainerLister(cl *client.Client) *DockerContainerLister {
	return &DockerContainerLister{client: cl}
}

// ListRunningNames returns one name per container, stripped of the
// leading slash Docker's API always prepends.
func (d *DockerContainerLister) ListRunningNames(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	containers, err := d.client.ContainerList(ctx, container.ListOptions{All: true})
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(containers))
	for _, c := range containers {
		names = append(names, containerName(c))
	}
	return names, nil
}

func containerName(c types.Container) string {
	if len(c.Names) == 0 {
		if len(c.ID) >= 12 {
			return c.ID[:12]
		}
		return c.ID
	}
	return strings.TrimPrefix(c.Names[0], "/")
}
