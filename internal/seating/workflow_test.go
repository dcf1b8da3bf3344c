package seating

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"go-seating-client/internal/client"
	"go-seating-client/internal/page"
	"go-seating-client/internal/testutil"
	apperrors "go-seating-client/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const managePage = "http://example.test/seating/areas/hall-a/manage_seats"

func setupWorkflow(t *testing.T, preselectedID string, answer bool) (*Workflow, *MockRequester, *MockNavigator, *recordingConfirmer) {
	t.Helper()
	m := loadScenario(t, preselectedID)
	requester := new(MockRequester)
	navigator := new(MockNavigator)
	confirmer := &recordingConfirmer{answer: answer}
	current, err := url.Parse(managePage)
	require.NoError(t, err)
	return m.Workflow(requester, navigator, confirmer, current), requester, navigator, confirmer
}

func TestAssign(t *testing.T) {
	ctx := context.Background()

	for _, status := range []int{http.StatusNoContent, http.StatusForbidden, http.StatusNotFound, http.StatusInternalServerError} {
		t.Run("Reloads with ticket preselected - "+http.StatusText(status), func(t *testing.T) {
			w, requester, navigator, confirmer := setupWorkflow(t, "", true)

			requester.On("Send", ctx, http.MethodPost, "/seating/ticket/1/seat/s-c3").
				Return(&client.Response{StatusCode: status}, nil).Once()
			navigator.On("Navigate", ctx, targetEquals(managePage+"?ticket=1")).Return(nil).Once()

			outcome, err := w.Assign(ctx, "s-c3")

			require.NoError(t, err)
			assert.True(t, outcome.Confirmed)
			assert.True(t, outcome.Reloaded)
			assert.Equal(t, status, outcome.StatusCode)
			assert.Equal(t, "?ticket=1", "?"+outcome.Target.RawQuery)
			require.Len(t, confirmer.prompts, 1)
			assert.Equal(t, "Reserve seat C3 with ticket A1?", confirmer.prompts[0])
			requester.AssertExpectations(t)
			navigator.AssertExpectations(t)
		})
	}

	t.Run("Unhandled status does not reload", func(t *testing.T) {
		w, requester, navigator, _ := setupWorkflow(t, "", true)

		requester.On("Send", ctx, http.MethodPost, "/seating/ticket/1/seat/s-c3").
			Return(&client.Response{StatusCode: http.StatusConflict}, nil).Once()

		outcome, err := w.Assign(ctx, "s-c3")

		require.NoError(t, err)
		assert.True(t, outcome.Confirmed)
		assert.False(t, outcome.Reloaded)
		assert.Nil(t, outcome.Target)
		navigator.AssertNotCalled(t, "Navigate", mock.Anything, mock.Anything)
	})

	t.Run("Declined confirmation sends nothing", func(t *testing.T) {
		w, requester, navigator, confirmer := setupWorkflow(t, "", false)

		outcome, err := w.Assign(ctx, "s-c3")

		require.NoError(t, err)
		assert.False(t, outcome.Confirmed)
		assert.Len(t, confirmer.prompts, 1)
		requester.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
		navigator.AssertNotCalled(t, "Navigate", mock.Anything, mock.Anything)
	})

	t.Run("Transport error is returned without reload", func(t *testing.T) {
		w, requester, navigator, _ := setupWorkflow(t, "", true)
		boom := errors.New("connection refused")

		requester.On("Send", ctx, http.MethodPost, "/seating/ticket/1/seat/s-c3").Return(nil, boom).Once()

		outcome, err := w.Assign(ctx, "s-c3")

		assert.ErrorIs(t, err, boom)
		assert.True(t, outcome.Confirmed)
		assert.False(t, outcome.Reloaded)
		navigator.AssertNotCalled(t, "Navigate", mock.Anything, mock.Anything)
	})

	t.Run("Failed - seat is not occupiable", func(t *testing.T) {
		w, requester, _, confirmer := setupWorkflow(t, "", true)

		_, err := w.Assign(ctx, "s-b4")
		assert.ErrorIs(t, err, apperrors.ErrSeatNotOccupiable)

		_, err = w.Assign(ctx, "s-d1")
		assert.ErrorIs(t, err, apperrors.ErrSeatNotOccupiable)

		_, err = w.Assign(ctx, "missing")
		assert.ErrorIs(t, err, apperrors.ErrSeatNotFound)

		assert.Empty(t, confirmer.prompts)
		requester.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Uses the selected ticket", func(t *testing.T) {
		w, requester, navigator, confirmer := setupWorkflow(t, "2", true)

		requester.On("Send", ctx, http.MethodPost, "/seating/ticket/2/seat/s-c3").
			Return(&client.Response{StatusCode: http.StatusNoContent}, nil).Once()
		navigator.On("Navigate", ctx, targetEquals(managePage+"?ticket=2")).Return(nil).Once()

		_, err := w.Assign(ctx, "s-c3")

		require.NoError(t, err)
		assert.Equal(t, "Reserve seat C3 with ticket A2?", confirmer.prompts[0])
		requester.AssertExpectations(t)
		navigator.AssertExpectations(t)
	})
}

func TestAssign_WithoutManagedTickets(t *testing.T) {
	server := testutil.NewSeatingServer(nil, []*testutil.FakeSeat{{ID: "s1", Label: "A1"}})
	doc, err := page.ParseString(server.ManagePageHTML("hall-a"))
	require.NoError(t, err)
	m, err := Init(doc, "")
	require.NoError(t, err)

	requester := new(MockRequester)
	confirmer := &recordingConfirmer{answer: true}
	current, _ := url.Parse(managePage)
	w := m.Workflow(requester, new(MockNavigator), confirmer, current)

	_, err = w.Assign(context.Background(), "s1")

	assert.ErrorIs(t, err, apperrors.ErrSeatNotOccupiable)
	assert.Empty(t, confirmer.prompts)
	requester.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestRelease(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		w, requester, navigator, confirmer := setupWorkflow(t, "2", true)

		requester.On("Send", ctx, http.MethodDelete, "/seating/ticket/2/seat").
			Return(&client.Response{StatusCode: http.StatusNoContent}, nil).Once()
		navigator.On("Navigate", ctx, targetEquals(managePage+"?ticket=2")).Return(nil).Once()

		outcome, err := w.Release(ctx)

		require.NoError(t, err)
		assert.True(t, outcome.Reloaded)
		assert.Equal(t, "Release seat B4 (occupied by ticket A2)?", confirmer.prompts[0])
		requester.AssertExpectations(t)
		navigator.AssertExpectations(t)
	})

	t.Run("Server error still reloads", func(t *testing.T) {
		w, requester, navigator, _ := setupWorkflow(t, "2", true)

		requester.On("Send", ctx, http.MethodDelete, "/seating/ticket/2/seat").
			Return(&client.Response{StatusCode: http.StatusInternalServerError}, nil).Once()
		navigator.On("Navigate", ctx, targetEquals(managePage+"?ticket=2")).Return(nil).Once()

		outcome, err := w.Release(ctx)

		require.NoError(t, err)
		assert.True(t, outcome.Reloaded)
		navigator.AssertExpectations(t)
	})

	t.Run("Failed - ErrReleaseDisabled", func(t *testing.T) {
		w, requester, _, confirmer := setupWorkflow(t, "1", true)

		_, err := w.Release(ctx)

		assert.ErrorIs(t, err, apperrors.ErrReleaseDisabled)
		assert.Empty(t, confirmer.prompts)
		requester.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Reload failure is returned", func(t *testing.T) {
		w, requester, navigator, _ := setupWorkflow(t, "2", true)
		boom := errors.New("reload failed")

		requester.On("Send", ctx, http.MethodDelete, "/seating/ticket/2/seat").
			Return(&client.Response{StatusCode: http.StatusNoContent}, nil).Once()
		navigator.On("Navigate", ctx, mock.Anything).Return(boom).Once()

		outcome, err := w.Release(ctx)

		assert.ErrorIs(t, err, boom)
		assert.False(t, outcome.Reloaded)
		assert.NotNil(t, outcome.Target)
	})
}

func TestRequestPaths(t *testing.T) {
	assert.Equal(t, "/seating/ticket/1/seat/s-c3", AssignPath("1", "s-c3"))
	assert.Equal(t, "/seating/ticket/a%2Fb/seat", ReleasePath("a/b"))
}
