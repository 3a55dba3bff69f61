package notify

import (
	"context"
	"fmt"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
	"github.com/workyard-lab/workyard/pkg/domain/interfaces"
	"github.com/workyard-lab/workyard/pkg/domain/model"
	"github.com/workyard-lab/workyard/pkg/domain/types"
)

// slackAPI is the subset of the Slack client used by the notifier
type slackAPI interface {
	GetUserByEmailContext(ctx context.Context, email string) (*slack.User, error)
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// Slack delivers notifications as direct messages. Recipients are
// resolved by the email address recorded in the user directory.
type Slack struct {
	api  slackAPI
	repo interfaces.Repository

	mu    sync.RWMutex
	cache map[string]string // email -> Slack user ID
}

// NewSlack creates a Slack DM notifier with the provided bot token
func NewSlack(token string, repo interfaces.Repository) (*Slack, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}
	return &Slack{
		api:   slack.New(token),
		repo:  repo,
		cache: make(map[string]string),
	}, nil
}

func (x *Slack) Notify(ctx context.Context, orgID types.OrgID, notification *model.Notification) error {
	user, err := x.repo.Directory().GetUser(ctx, orgID, notification.RecipientID)
	if err != nil {
		return goerr.Wrap(err, "failed to resolve notification recipient",
			goerr.V("recipient", notification.RecipientID))
	}
	if user.Email == "" {
		return goerr.New("recipient has no email address",
			goerr.V("recipient", notification.RecipientID))
	}

	slackID, err := x.lookupSlackID(ctx, user.Email)
	if err != nil {
		return err
	}

	text := notification.Subject
	if notification.Body != "" {
		text = fmt.Sprintf("*%s*\n%s", notification.Subject, notification.Body)
	}

	if _, _, err := x.api.PostMessageContext(ctx, slackID,
		slack.MsgOptionText(text, false),
	); err != nil {
		return goerr.Wrap(err, "failed to post Slack message",
			goerr.V("recipient", notification.RecipientID))
	}

	return nil
}

func (x *Slack) lookupSlackID(ctx context.Context, email string) (string, error) {
	x.mu.RLock()
	id, ok := x.cache[email]
	x.mu.RUnlock()
	if ok {
		return id, nil
	}

	user, err := x.api.GetUserByEmailContext(ctx, email)
	if err != nil {
		return "", goerr.Wrap(err, "failed to look up Slack user by email",
			goerr.V("email", email))
	}

	x.mu.Lock()
	x.cache[email] = user.ID
	x.mu.Unlock()

	return user.ID, nil
}
