package slack

import (
	"context"
	"errors"
	"testing"

	"github.com/mkrogh/pokernight/internal/ledger"
	"github.com/mkrogh/pokernight/internal/metrics"
	"github.com/mkrogh/pokernight/internal/results"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func TestSendMessage_DryRun(t *testing.T) {
	metrics := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	notifier := NewNotifierWithAPI(nil, "C123", metrics)

	message := slackapi.NewBlockMessage()
	_, _, err := notifier.sendMessage(message, true)
	require.NoError(t, err)
}

func TestSendMessage_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	message := slackapi.NewBlockMessage(slackapi.NewSectionBlock(slackapi.NewTextBlockObject("plain_text", "hello", false, false), nil, nil))
	_, _, err := notifier.sendMessage(message, false)

	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 1, metrics.SlackNotifSentCount)
	assert.Equal(t, 0, metrics.SlackNotifFailedCount)
}

func TestSendMessage_Failure(t *testing.T) {
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			return "", "", expectedErr
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	message := slackapi.NewBlockMessage()
	_, _, err := notifier.sendMessage(message, false)

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 0, metrics.SlackNotifSentCount)
	assert.Equal(t, 1, metrics.SlackNotifFailedCount)
}

func TestSendSessionSummary_CallsSender(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			return "C123", "ts123", nil
		},
	}

	notifier := NewNotifierWithAPI(api, "C123", metrics.NewMock())
	session := ledger.Session{ID: "s1", Date: "2026-08-14", Location: "Garage", Game: "NLHE", Stakes: "1/2"}
	rows := []results.PlayerRow{
		{ID: "p1", Name: "Alice", Amount: 90},
		{ID: "me", Name: "Marius", Amount: -10},
	}

	err := notifier.SendSessionSummary(session, rows, false)
	require.NoError(t, err)
	assert.True(t, postMessageCalled)
}

func TestFormatSessionSummaryBlocks(t *testing.T) {
	notifier := NewNotifierWithAPI(nil, "C123", metrics.NewMock())
	session := ledger.Session{ID: "s1", Date: "2026-08-14", Game: "NLHE", Stakes: "1/2"}
	rows := []results.PlayerRow{{ID: "p1", Name: "Alice", Amount: 90}}

	msg := notifier.formatSessionSummary(session, rows)
	// Header, details, player lines.
	require.Len(t, msg.Blocks.BlockSet, 3)
}

func TestFormatStandingsEmpty(t *testing.T) {
	notifier := NewNotifierWithAPI(nil, "C123", metrics.NewMock())
	msg := notifier.formatStandings(nil)
	// Header plus the "no results" section.
	require.Len(t, msg.Blocks.BlockSet, 2)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "+25.00", formatAmount(25))
	assert.Equal(t, "-40.50", formatAmount(-40.5))
	assert.Equal(t, "0.00", formatAmount(0))
}
