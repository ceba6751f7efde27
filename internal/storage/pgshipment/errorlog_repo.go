package pgshipment

import (
	"context"

	"github.com/pkg/errors"
)

// LogError is the diagnostic sink for raw carrier payloads: every Exception
// or Unmapped outcome keeps its original payload queryable here.
func (s *Storage) LogError(ctx context.Context, title, message string) error {
	_, err := s.db.Exec(ctx, `INSERT INTO error_logs (title, message) VALUES ($1, $2)`, title, message)
	return errors.Wrap(err, "insert error log")
}
