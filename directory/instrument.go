package directory

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// QueryRecorder receives per-statement timings from an instrumented store.
type QueryRecorder interface {
	RecordDBQuery(database, operation string, duration time.Duration)
}

const queryStartKey = "concierge:query_start"

// InstrumentQueries registers gorm callbacks that time every statement the
// store runs and report it to rec under the given database label. Call once,
// before serving traffic.
func (s *Store) InstrumentQueries(database string, rec QueryRecorder) error {
	before := func(tx *gorm.DB) {
		tx.InstanceSet(queryStartKey, time.Now())
	}
	after := func(operation string) func(*gorm.DB) {
		return func(tx *gorm.DB) {
			v, ok := tx.InstanceGet(queryStartKey)
			if !ok {
				return
			}
			start, ok := v.(time.Time)
			if !ok {
				return
			}
			rec.RecordDBQuery(database, operation, time.Since(start))
		}
	}

	cb := s.db.Callback()
	return errors.Join(
		cb.Query().Before("gorm:query").Register("concierge:query_start", before),
		cb.Query().After("gorm:query").Register("concierge:query_done", after("query")),
		cb.Create().Before("gorm:create").Register("concierge:create_start", before),
		cb.Create().After("gorm:create").Register("concierge:create_done", after("create")),
		cb.Update().Before("gorm:update").Register("concierge:update_start", before),
		cb.Update().After("gorm:update").Register("concierge:update_done", after("update")),
		cb.Delete().Before("gorm:delete").Register("concierge:delete_start", before),
		cb.Delete().After("gorm:delete").Register("concierge:delete_done", after("delete")),
	)
}
