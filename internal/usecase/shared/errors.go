package shared

import (
	"dorm-services/internal/infra"
	"dorm-services/internal/pkg/errs"
)

// TranslateStoreError maps repository kinds onto use case sentinels while keeping the cause chain.
func TranslateStoreError(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case infra.IsKind(err, infra.KindNotFound) && notFound != nil:
		return errs.Mark(err, notFound)
	case infra.IsKind(err, infra.KindDuplicateKey):
		return errs.Mark(err, errs.ErrConflict)
	case infra.IsKind(err, infra.KindUnavailable):
		return errs.Mark(err, errs.ErrStorageUnavailable)
	default:
		return err
	}
}
