package invite_test

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/atlashaul/portal/internal/platform/invite"
	apperrors "github.com/atlashaul/portal/internal/shared/errors"
	"github.com/atlashaul/portal/pkg/logger"
)

// MockForwarder is a mock implementation of invite.Forwarder
type MockForwarder struct {
	mock.Mock
}

func (m *MockForwarder) SubmitInvite(ctx context.Context, sub invite.Submission) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func validSubmission() invite.Submission {
	return invite.Submission{
		Name:            "Erik Lindqvist",
		Email:           "erik@example.com",
		Age:             24,
		ExperienceHours: 350,
		Discord:         "erik#4421",
		Motivation:      "I have been hauling with friends for two years and want to join organized convoys.",
	}
}

func TestService_Submit(t *testing.T) {
	ctx := context.Background()
	fwd := new(MockForwarder)
	fwd.On("SubmitInvite", ctx, mock.AnythingOfType("invite.Submission")).Return(nil)

	svc := invite.NewService(fwd, logger.New("development", io.Discard))
	err := svc.Submit(ctx, validSubmission())
	require.NoError(t, err)
	fwd.AssertExpectations(t)
}

func TestService_Submit_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*invite.Submission)
	}{
		{"missing name", func(s *invite.Submission) { s.Name = "" }},
		{"bad email", func(s *invite.Submission) { s.Email = "not-an-email" }},
		{"under age gate", func(s *invite.Submission) { s.Age = 14 }},
		{"negative experience", func(s *invite.Submission) { s.ExperienceHours = -1 }},
		{"motivation too short", func(s *invite.Submission) { s.Motivation = "hi" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fwd := new(MockForwarder)
			svc := invite.NewService(fwd, logger.New("development", io.Discard))

			sub := validSubmission()
			tt.mutate(&sub)

			err := svc.Submit(context.Background(), sub)
			require.Error(t, err)

			appErr := apperrors.GetAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
			fwd.AssertNotCalled(t, "SubmitInvite")
		})
	}
}

func TestService_Submit_UpstreamError(t *testing.T) {
	ctx := context.Background()
	fwd := new(MockForwarder)
	fwd.On("SubmitInvite", ctx, mock.AnythingOfType("invite.Submission")).
		Return(apperrors.Upstream("applications are closed", nil))

	svc := invite.NewService(fwd, logger.New("development", io.Discard))
	err := svc.Submit(ctx, validSubmission())
	require.Error(t, err)

	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrCodeUpstream, appErr.Code)
	assert.Equal(t, "applications are closed", appErr.Message, "backend message passes through unmodified")
}
