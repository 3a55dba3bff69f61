package config

import (
	"github.com/urfave/cli/v3"
	"github.com/workyard-lab/workyard/pkg/domain/interfaces"
	"github.com/workyard-lab/workyard/pkg/service/notify"
	"github.com/workyard-lab/workyard/pkg/utils/logging"
)

// Slack holds CLI flags for Slack notification delivery
type Slack struct {
	botToken string
}

// Flags returns CLI flags for Slack configuration
func (s *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack bot token for DM notifications (disabled when empty)",
			Sources:     cli.EnvVars("WORKYARD_SLACK_BOT_TOKEN"),
			Destination: &s.botToken,
		},
	}
}

// Configured reports whether a bot token is set
func (s *Slack) Configured() bool {
	return s.botToken != ""
}

// Configure builds the notification sink: always the repository-backed
// inbox, plus asynchronous Slack DMs when a bot token is configured.
func (s *Slack) Configure(repo interfaces.Repository) (notify.Notifier, error) {
	inbox := notify.NewInbox(repo)
	if !s.Configured() {
		logging.Default().Info("Slack bot token not configured, notifications are inbox-only")
		return inbox, nil
	}

	slackNotifier, err := notify.NewSlack(s.botToken, repo)
	if err != nil {
		return nil, err
	}

	logging.Default().Info("Slack DM notifications enabled")
	return notify.Multi{inbox, notify.NewAsync(slackNotifier)}, nil
}
