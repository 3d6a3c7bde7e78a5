// Package breach provides the data breach aggregate use cases.
// A breach is written together with its entity, the entity's organization type tags
// and its media sources in one transaction, and read back as one nested document.
package breach

import (
	"fmt"

	"databreach-registry/internal/domain/entity"
)

// ErrBreachNotFound indicates that no breach exists with the requested id.
// It matches entity.ErrNotFound under errors.Is.
var ErrBreachNotFound = fmt.Errorf("breach %w", entity.ErrNotFound)
