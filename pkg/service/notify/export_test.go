package notify

import "github.com/workyard-lab/workyard/pkg/domain/interfaces"

// NewSlackWithAPI builds a Slack notifier around a fake API for testing
func NewSlackWithAPI(api slackAPI, repo interfaces.Repository) *Slack {
	return &Slack{
		api:   api,
		repo:  repo,
		cache: make(map[string]string),
	}
}
