package interfaces

import (
	"context"

	"github.com/m-mizutani/relmake/pkg/domain/model"
)

// ReleasePublisher publishes a hosted release for a pushed tag
type ReleasePublisher interface {
	// PublishRelease creates a release for tag and returns its result
	PublishRelease(ctx context.Context, tag string) (*model.Result, error)
}

// Notifier announces a new release to a chat channel
type Notifier interface {
	NotifyRelease(ctx context.Context, version string) (*model.Result, error)
}
