package slack

import (
	"context"
	"fmt"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relmake/pkg/domain/interfaces"
	"github.com/m-mizutani/relmake/pkg/domain/model"
	"github.com/slack-go/slack"
)

// Notifier posts release announcements to a Slack incoming webhook
type Notifier struct {
	webhookURL string
	project    string
}

var _ interfaces.Notifier = (*Notifier)(nil)

// NewNotifier creates a Notifier. project is used in the message text.
func NewNotifier(webhookURL, project string) *Notifier {
	return &Notifier{
		webhookURL: webhookURL,
		project:    project,
	}
}

// NotifyRelease posts a message announcing version
func (n *Notifier) NotifyRelease(ctx context.Context, version string) (*model.Result, error) {
	text := fmt.Sprintf(":package: *%s* %s has been released", n.project, version)

	msg := &slack.WebhookMessage{
		Text: text,
		Blocks: &slack.Blocks{
			BlockSet: []slack.Block{
				slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, text, false, false), nil, nil),
			},
		},
	}

	if err := slack.PostWebhookContext(ctx, n.webhookURL, msg); err != nil {
		return nil, goerr.Wrap(err, "failed to post Slack notification", goerr.V("version", version))
	}

	ctxlog.From(ctx).Info("Posted release notification to Slack", "version", version)
	return model.NewResult("slack notification").WithValue(version), nil
}
