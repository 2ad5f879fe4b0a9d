// Package store persists completed assessments.
package store

import (
	"context"

	"github.com/sitescope/estimator-cli/internal/model"
)

// Filter specifies criteria for listing assessments.
type Filter struct {
	Kind     model.AssessmentKind `json:"kind,omitempty"`
	Location string               `json:"location,omitempty"`
	Limit    int                  `json:"limit,omitempty"`
	Offset   int                  `json:"offset,omitempty"`
}

// Store defines the persistence interface for assessment history.
type Store interface {
	// SaveAssessment persists one record, filling ID and CreatedAt when unset.
	SaveAssessment(ctx context.Context, a *model.Assessment) error
	// SaveAssessments persists a batch of records in one round trip.
	SaveAssessments(ctx context.Context, as []*model.Assessment) error
	GetAssessment(ctx context.Context, id string) (*model.Assessment, error)
	ListAssessments(ctx context.Context, filter Filter) ([]model.Assessment, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
