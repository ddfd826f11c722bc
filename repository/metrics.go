package repository

import (
	"candideit/metrics"
	"time"

	"gorm.io/gorm"
)

const queryStartKey = "candideit:query_start"

// RegisterMetrics times every gorm operation into metrics.QueryDuration,
// labelled by operation and table.
func RegisterMetrics(db *gorm.DB) error {
	before := func(tx *gorm.DB) {
		tx.InstanceSet(queryStartKey, time.Now())
	}
	after := func(operation string) func(*gorm.DB) {
		return func(tx *gorm.DB) {
			start, ok := tx.InstanceGet(queryStartKey)
			if !ok {
				return
			}
			metrics.QueryDuration.
				WithLabelValues(operation + " " + tx.Statement.Table).
				Observe(time.Since(start.(time.Time)).Seconds())
		}
	}
	cb := db.Callback()
	if err := cb.Create().Before("gorm:create").Register("metrics:before_create", before); err != nil {
		return err
	}
	if err := cb.Create().After("gorm:create").Register("metrics:after_create", after("create")); err != nil {
		return err
	}
	if err := cb.Query().Before("gorm:query").Register("metrics:before_query", before); err != nil {
		return err
	}
	if err := cb.Query().After("gorm:query").Register("metrics:after_query", after("query")); err != nil {
		return err
	}
	if err := cb.Update().Before("gorm:update").Register("metrics:before_update", before); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register("metrics:after_update", after("update")); err != nil {
		return err
	}
	if err := cb.Delete().Before("gorm:delete").Register("metrics:before_delete", before); err != nil {
		return err
	}
	return cb.Delete().After("gorm:delete").Register("metrics:after_delete", after("delete"))
}
