//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"dorm-services/internal/domain/complaint"
	reqdto "dorm-services/internal/handler/dto/request"
	"dorm-services/internal/pkg/clock"
	"dorm-services/internal/pkg/errs"
	"dorm-services/internal/pkg/metrics"
	"dorm-services/internal/usecase/commands"
	"dorm-services/tests/common/builder"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newComplaintCommands(t *testing.T) (commands.ComplaintCommands, *metrics.Metrics) {
	t.Helper()
	m := metrics.New()
	return commands.NewComplaintCommands(newMemUoW(t), m, clock.NewTickingClock(now, time.Second)), m
}

func TestComplaintCommands_Submit(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*reqdto.SubmitComplaintRequest)
		wantErr     error
		wantUrgency string
	}{
		{name: "english urgency", mutate: func(*reqdto.SubmitComplaintRequest) {}, wantUrgency: "normal"},
		{name: "korean urgency", mutate: func(r *reqdto.SubmitComplaintRequest) { r.Urgency = "긴급" }, wantUrgency: "urgent"},
		{name: "missing title", mutate: func(r *reqdto.SubmitComplaintRequest) { r.Title = "  " }, wantErr: errs.ErrMissingField},
		{name: "missing room", mutate: func(r *reqdto.SubmitComplaintRequest) { r.Room = "" }, wantErr: errs.ErrMissingField},
		{name: "unknown urgency", mutate: func(r *reqdto.SubmitComplaintRequest) { r.Urgency = "someday" }, wantErr: errs.ErrInvalidField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, m := newComplaintCommands(t)
			req := builder.NewComplaintBuilder().BuildSubmitRequestDTO()
			tt.mutate(&req)

			view, err := cmd.Submit(context.Background(), req)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errs.Is(err, tt.wantErr), "got %v", err)
				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, view.ID)
			assert.Equal(t, tt.wantUrgency, view.Urgency)
			assert.Equal(t, complaint.StatusReceived.String(), view.Status)
			assert.Equal(t, now, view.CreatedAt)

			n, err := testutil.GatherAndCount(m.Registry(), "dorm_complaints_submitted_total")
			require.NoError(t, err)
			assert.Equal(t, 1, n)
		})
	}
}

func TestComplaintCommands_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	cmd, _ := newComplaintCommands(t)

	created, err := cmd.Submit(ctx, builder.NewComplaintBuilder().BuildSubmitRequestDTO())
	require.NoError(t, err)

	t.Run("legacy label is accepted", func(t *testing.T) {
		view, err := cmd.UpdateStatus(ctx, created.ID, reqdto.UpdateComplaintStatusRequest{Status: "처리중"})
		require.NoError(t, err)
		assert.Equal(t, "in_progress", view.Status)
		assert.True(t, view.UpdatedAt.After(view.CreatedAt))
	})

	t.Run("empty status", func(t *testing.T) {
		_, err := cmd.UpdateStatus(ctx, created.ID, reqdto.UpdateComplaintStatusRequest{})
		assert.True(t, errs.Is(err, errs.ErrMissingField), "got %v", err)
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := cmd.UpdateStatus(ctx, created.ID, reqdto.UpdateComplaintStatusRequest{Status: "closed"})
		assert.True(t, errs.Is(err, errs.ErrInvalidComplaintStatus), "got %v", err)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := cmd.UpdateStatus(ctx, uuid.New(), reqdto.UpdateComplaintStatusRequest{Status: "resolved"})
		assert.True(t, errs.Is(err, errs.ErrComplaintNotFound), "got %v", err)
	})
}

func TestComplaintCommands_Delete(t *testing.T) {
	ctx := context.Background()
	cmd, _ := newComplaintCommands(t)

	created, err := cmd.Submit(ctx, builder.NewComplaintBuilder().BuildSubmitRequestDTO())
	require.NoError(t, err)

	require.NoError(t, cmd.Delete(ctx, created.ID))

	err = cmd.Delete(ctx, created.ID)
	assert.True(t, errs.Is(err, errs.ErrComplaintNotFound), "got %v", err)
}
