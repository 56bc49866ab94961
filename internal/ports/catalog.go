package ports

import (
	"context"

	"github.com/randomtoy/planar-go/internal/domain"
)

// CardCatalog supplies every card a planar deck may be built from.
type CardCatalog interface {
	Cards(ctx context.Context) ([]domain.Card, error)
}
