package invite

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/atlashaul/portal/internal/shared/errors"
	"github.com/atlashaul/portal/pkg/logger"
)

// Forwarder delivers a validated submission to the hub backend
type Forwarder interface {
	SubmitInvite(ctx context.Context, sub Submission) error
}

// Service validates and forwards invitation submissions
type Service struct {
	validate  *validator.Validate
	forwarder Forwarder
	log       *logger.Logger
}

// NewService creates an invite service
func NewService(forwarder Forwarder, log *logger.Logger) *Service {
	return &Service{
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		forwarder: forwarder,
		log:       log.WithField("component", "invite"),
	}
}

// Submit validates the submission and forwards it. Validation failures come
// back as field-level messages for the form; upstream failures surface the
// backend's message unchanged.
func (s *Service) Submit(ctx context.Context, sub Submission) error {
	if err := s.validate.Struct(sub); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", strings.ToLower(fe.Field()), fe.Tag()))
			}
			return apperrors.Validation("invalid submission: " + strings.Join(fields, ", "))
		}
		return apperrors.Validation("invalid submission")
	}

	if err := s.forwarder.SubmitInvite(ctx, sub); err != nil {
		return err
	}

	s.log.WithContext(ctx).Info("invitation submitted", "email", sub.Email)
	return nil
}
