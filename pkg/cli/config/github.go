package config

import "github.com/urfave/cli/v3"

// GitHub holds GitHub configuration for publishing releases
type GitHub struct {
	Token      string `masq:"secret"`
	Repository string
	BaseURL    string
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub token; enables publishing a GitHub release for new tags",
			Destination: &c.Token,
			Sources:     cli.EnvVars("RELMAKE_GITHUB_TOKEN", "GITHUB_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "github-repo",
			Usage:       "GitHub repository in owner/name form",
			Destination: &c.Repository,
			Sources:     cli.EnvVars("RELMAKE_GITHUB_REPO"),
		},
		&cli.StringFlag{
			Name:        "github-api-url",
			Usage:       "GitHub API base URL (for GitHub Enterprise)",
			Destination: &c.BaseURL,
			Sources:     cli.EnvVars("RELMAKE_GITHUB_API_URL"),
		},
	}
}

// Enabled reports whether release publishing is configured
func (c *GitHub) Enabled() bool {
	return c.Token != "" && c.Repository != ""
}
