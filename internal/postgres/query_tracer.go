package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/techsolutions/billing-service/internal/logger"
)

// TracedQuerier decorates a Querier with duration and error logging,
// tagging statements with the transaction id when inside one
type TracedQuerier struct {
	Querier
	logger *logger.Logger
	txID   string
}

// NewTracedQuerier creates a new traced querier
func NewTracedQuerier(q Querier, logger *logger.Logger, txID string) *TracedQuerier {
	return &TracedQuerier{
		Querier: q,
		logger:  logger,
		txID:    txID,
	}
}

func (tq *TracedQuerier) NamedExec(query string, arg interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := tq.Querier.NamedExec(query, arg)
	tq.trace(query, arg, start, err)
	return result, err
}

func (tq *TracedQuerier) NamedQuery(query string, arg interface{}) (*sqlx.Rows, error) {
	start := time.Now()
	rows, err := tq.Querier.NamedQuery(query, arg)
	tq.trace(query, arg, start, err)
	return rows, err
}

func (tq *TracedQuerier) trace(query string, arg interface{}, start time.Time, err error) {
	fields := []interface{}{
		"duration_ms", time.Since(start).Milliseconds(),
		"query", query,
		"params", fmt.Sprintf("%+v", arg),
	}
	if tq.txID != "" {
		fields = append(fields, "tx_id", tq.txID)
	}
	if err != nil {
		fields = append(fields, "error", err.Error())
		tq.logger.Errorw("database query failed", fields...)
		return
	}
	tq.logger.Debugw("database query completed", fields...)
}
