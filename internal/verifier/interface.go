package verifier

import (
	"context"
	"verifier/pkg/domain"
)

//go:generate mockgen -package mockverifier -source=interface.go -destination=mock/mockverifier.go *
type Verifier interface {
	Verify(ctx context.Context, email string, skipProbe bool) domain.Outcome
	VerifyBatch(ctx context.Context, emails []string, skipProbe bool) (*domain.BatchReport, error)
}
