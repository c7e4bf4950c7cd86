package github

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relmake/pkg/domain/interfaces"
	"github.com/m-mizutani/relmake/pkg/domain/model"
)

type client struct {
	githubClient *github.Client
	owner        string
	repo         string
}

// Option is a functional option for the GitHub client
type Option func(*github.Client) error

// WithBaseURL points the client at a different API endpoint (GitHub Enterprise or tests)
func WithBaseURL(baseURL string) Option {
	return func(c *github.Client) error {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return goerr.Wrap(err, "invalid GitHub base URL", goerr.V("base_url", baseURL))
		}
		c.BaseURL = u
		return nil
	}
}

// NewClient creates a release publisher for repository ("owner/name") authenticated with token
func NewClient(token, repository string, opts ...Option) (interfaces.ReleasePublisher, error) {
	owner, repo, ok := strings.Cut(repository, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return nil, goerr.New("repository must be in owner/name form", goerr.V("repository", repository))
	}

	githubClient := github.NewClient(&http.Client{}).WithAuthToken(token)
	for _, opt := range opts {
		if err := opt(githubClient); err != nil {
			return nil, err
		}
	}

	return &client{
		githubClient: githubClient,
		owner:        owner,
		repo:         repo,
	}, nil
}

// PublishRelease creates a GitHub release for an already pushed tag
func (c *client) PublishRelease(ctx context.Context, tag string) (*model.Result, error) {
	logger := ctxlog.From(ctx)

	release, _, err := c.githubClient.Repositories.CreateRelease(ctx, c.owner, c.repo, &github.RepositoryRelease{
		TagName:              github.Ptr(tag),
		Name:                 github.Ptr(tag),
		GenerateReleaseNotes: github.Ptr(true),
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create GitHub release",
			goerr.V("owner", c.owner),
			goerr.V("repo", c.repo),
			goerr.V("tag", tag),
		)
	}

	logger.Info("Published GitHub release",
		"owner", c.owner,
		"repo", c.repo,
		"tag", tag,
		"url", release.GetHTMLURL(),
	)

	return model.NewResult("github release").WithValue(release.GetHTMLURL()), nil
}
