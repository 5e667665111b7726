package testhelpers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"mcp-bigip/pkg/bigip"
	"mcp-bigip/pkg/registry/ltm"
)

func virtual(rules ...any) bigip.Item {
	return bigip.Item{"name": "TestVs", "partition": "Common", "fullPath": "/Common/TestVs", "rules": rules}
}

func TestWaitForDevice_RetriesUntilReachable(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockVirtuals := ltm.NewMockVirtualsClient(ctrl)

	gomock.InOrder(
		mockVirtuals.EXPECT().ListVirtuals(gomock.Any(), gomock.Nil()).
			Return(nil, &bigip.HTTPError{Method: http.MethodGet, StatusCode: http.StatusServiceUnavailable}),
		mockVirtuals.EXPECT().ListVirtuals(gomock.Any(), gomock.Nil()).
			Return([]bigip.Item{virtual()}, nil),
	)

	err := WaitForDevice(context.Background(), mockVirtuals, 5*time.Millisecond, 500*time.Millisecond)
	require.NoError(t, err)
}

func TestWaitForDevice_StopsOnAuthError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockVirtuals := ltm.NewMockVirtualsClient(ctrl)

	authErr := errors.Mark(errors.New("login rejected"), bigip.ErrAuth)
	mockVirtuals.EXPECT().ListVirtuals(gomock.Any(), gomock.Nil()).Return(nil, authErr).Times(1)

	err := WaitForDevice(context.Background(), mockVirtuals, 5*time.Millisecond, 500*time.Millisecond)
	require.True(t, errors.Is(err, bigip.ErrAuth))
}

func TestWaitForDevice_TimesOut(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockVirtuals := ltm.NewMockVirtualsClient(ctrl)

	mockVirtuals.EXPECT().ListVirtuals(gomock.Any(), gomock.Nil()).
		Return(nil, errors.New("connection refused")).
		AnyTimes()

	err := WaitForDevice(context.Background(), mockVirtuals, 5*time.Millisecond, 30*time.Millisecond)
	require.ErrorContains(t, err, "timed out")
	require.ErrorContains(t, err, "connection refused")
}

func TestWaitForVirtualRule(t *testing.T) {
	tests := []struct {
		name     string
		attached bool
		lists    [][]bigip.Item
		wantErr  string
	}{
		{
			name:     "attached after second poll",
			attached: true,
			lists:    [][]bigip.Item{{virtual()}, {virtual("/Common/r1")}},
		},
		{
			name:     "detached immediately",
			attached: false,
			lists:    [][]bigip.Item{{virtual("/Common/other")}},
		},
		{
			name:     "virtual missing",
			attached: true,
			lists:    [][]bigip.Item{{}},
			wantErr:  "virtual server /Common/TestVs not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockVirtuals := ltm.NewMockVirtualsClient(ctrl)

			calls := make([]any, 0, len(tt.lists))
			for _, items := range tt.lists {
				calls = append(calls, mockVirtuals.EXPECT().ListVirtuals(gomock.Any(), []string{"rules"}).Return(items, nil))
			}
			gomock.InOrder(calls...)

			item, err := WaitForVirtualRule(context.Background(), mockVirtuals, "/Common/TestVs", "/Common/r1", tt.attached, 5*time.Millisecond, 500*time.Millisecond)
			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, "/Common/TestVs", item.FullPath())
		})
	}
}

func TestWaitForPoolDeleted(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockPools := ltm.NewMockPoolsClient(ctrl)

	pool := bigip.Item{"name": "web", "partition": "Common", "fullPath": "/Common/web"}
	gomock.InOrder(
		mockPools.EXPECT().ListPools(gomock.Any(), gomock.Nil()).Return([]bigip.Item{pool}, nil),
		mockPools.EXPECT().ListPools(gomock.Any(), gomock.Nil()).Return([]bigip.Item{}, nil),
	)

	require.NoError(t, WaitForPoolDeleted(context.Background(), mockPools, "/Common/web", 5*time.Millisecond, 500*time.Millisecond))
}

func TestPoll_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := poll(ctx, time.Hour, time.Hour, func() (bool, error) { return false, nil })
	require.ErrorIs(t, err, context.Canceled)
}
