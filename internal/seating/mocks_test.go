package seating

import (
	"context"
	"net/url"
	"testing"

	"go-seating-client/internal/client"
	"go-seating-client/internal/page"
	"go-seating-client/internal/testutil"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRequester struct {
	mock.Mock
}

func (m *MockRequester) Send(ctx context.Context, method, path string) (*client.Response, error) {
	args := m.Called(ctx, method, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*client.Response), args.Error(1)
}

type MockNavigator struct {
	mock.Mock
}

func (m *MockNavigator) Navigate(ctx context.Context, target *url.URL) error {
	args := m.Called(ctx, target)
	return args.Error(0)
}

// recordingConfirmer 記錄提示內容並回傳固定答案
type recordingConfirmer struct {
	answer  bool
	prompts []string
}

func (c *recordingConfirmer) Confirm(prompt string) bool {
	c.prompts = append(c.prompts, prompt)
	return c.answer
}

func loadScenario(t *testing.T, preselectedID string) *Manager {
	t.Helper()
	doc, err := page.ParseString(testutil.ScenarioFixture().ManagePageHTML("hall-a"))
	require.NoError(t, err)
	m, err := Init(doc, preselectedID)
	require.NoError(t, err)
	return m
}

func targetEquals(expected string) interface{} {
	return mock.MatchedBy(func(u *url.URL) bool {
		return u.String() == expected
	})
}
