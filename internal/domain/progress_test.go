package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourseCompletionTransition(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		from          ProgressStatus
		to            ProgressStatus
		wantErr       bool
		wantStatus    ProgressStatus
		wantCompleted bool
	}{
		{
			name:       "not started to in progress",
			from:       ProgressNotStarted,
			to:         ProgressInProgress,
			wantStatus: ProgressInProgress,
		},
		{
			name:          "in progress to completed",
			from:          ProgressInProgress,
			to:            ProgressCompleted,
			wantStatus:    ProgressCompleted,
			wantCompleted: true,
		},
		{
			name:       "same state is a no-op",
			from:       ProgressInProgress,
			to:         ProgressInProgress,
			wantStatus: ProgressInProgress,
		},
		{
			name:       "completed to completed is a no-op",
			from:       ProgressCompleted,
			to:         ProgressCompleted,
			wantStatus: ProgressCompleted,
		},
		{
			name:       "not started cannot skip to completed",
			from:       ProgressNotStarted,
			to:         ProgressCompleted,
			wantErr:    true,
			wantStatus: ProgressNotStarted,
		},
		{
			name:       "in progress cannot move back to not started",
			from:       ProgressInProgress,
			to:         ProgressNotStarted,
			wantErr:    true,
			wantStatus: ProgressInProgress,
		},
		{
			name:       "completed cannot move back to in progress",
			from:       ProgressCompleted,
			to:         ProgressInProgress,
			wantErr:    true,
			wantStatus: ProgressCompleted,
		},
		{
			name:       "completed cannot move back to not started",
			from:       ProgressCompleted,
			to:         ProgressNotStarted,
			wantErr:    true,
			wantStatus: ProgressCompleted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completion := CourseCompletion{StudentID: 1, CourseID: 7, Status: tt.from}

			err := completion.Transition(tt.to, now)

			if tt.wantErr {
				var transitionErr *IllegalTransitionError
				require.True(t, errors.As(err, &transitionErr))
				assert.Equal(t, tt.from, transitionErr.From)
				assert.Equal(t, tt.to, transitionErr.To)
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, tt.wantStatus, completion.Status)

			if tt.wantCompleted {
				require.NotNil(t, completion.CompletedAt)
				assert.Equal(t, now, *completion.CompletedAt)
			} else {
				assert.Nil(t, completion.CompletedAt)
			}
		})
	}
}

func TestCourseCompletionTransitionKeepsCompletedAt(t *testing.T) {
	first := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	later := first.Add(24 * time.Hour)

	completion := CourseCompletion{Status: ProgressInProgress}

	require.NoError(t, completion.Transition(ProgressCompleted, first))
	require.NoError(t, completion.Transition(ProgressCompleted, later))

	assert.Equal(t, first, *completion.CompletedAt)
}

func TestProgressStatusValid(t *testing.T) {
	assert.True(t, ProgressNotStarted.Valid())
	assert.True(t, ProgressInProgress.Valid())
	assert.True(t, ProgressCompleted.Valid())
	assert.False(t, ProgressStatus("DONE").Valid())
	assert.False(t, ProgressStatus("").Valid())
}
