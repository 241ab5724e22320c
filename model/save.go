package model

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/hierquery/errors"
	"github.com/wippyai/hierquery/vpi"
)

// Save serializes the designs behind refs to path, choosing the format by
// file extension. The references stay owned by the caller.
func (s *Store) Save(path string, designs []vpi.Ref) error {
	objs := make([]*object, 0, len(designs))
	for _, ref := range designs {
		d := s.design(ref)
		if d == nil {
			return errors.InvalidInput(errors.PhaseEncode, fmt.Sprintf("reference %d is not a design", ref))
		}
		objs = append(objs, d)
	}

	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = writeYAML(path, objs)
	case ".db", ".sqlite", ".sqlite3":
		err = writeSQLite(path, objs)
	default:
		return errors.Unsupported(errors.PhaseEncode, "design format "+ext)
	}
	if err != nil {
		return err
	}

	Logger().Debug("saved designs", zap.String("path", path), zap.Int("count", len(objs)))
	return nil
}
