package ports

import (
	"context"

	"go.trai.ch/vista/internal/core/domain"
)

// ChangeNotification reports that an object's resolution may have changed.
type ChangeNotification struct {
	ObjectID domain.ObjectID
}

// ChangeListener receives resolution change notifications.
type ChangeListener func(ChangeNotification)

// TargetResolver resolves target references to versioned unique identifiers.
//
//go:generate mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type TargetResolver interface {
	// Resolve resolves one reference at the given version-correction. Returns
	// domain.ErrTargetNotResolved if the reference does not resolve.
	Resolve(ctx context.Context, ref domain.TargetReference, vc domain.VersionCorrection) (domain.UniqueID, error)

	// ResolveAll resolves a batch, omitting references that fail to resolve.
	ResolveAll(ctx context.Context, refs []domain.TargetReference, vc domain.VersionCorrection) (map[domain.TargetReference]domain.UniqueID, error)

	// ResolvePortfolio materializes the portfolio tree for the given object at
	// the given version-correction.
	ResolvePortfolio(ctx context.Context, oid domain.ObjectID, vc domain.VersionCorrection) (*domain.Portfolio, error)

	// AddChangeListener registers for change notifications and returns an
	// unregister function.
	AddChangeListener(l ChangeListener) (remove func())
}
