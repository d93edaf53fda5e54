// Package iopg implements a tap.Sink that keeps records, schemas and
// state snapshots in PostgreSQL.
// This is an impure I/O package.
package iopg

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnuuid"
	"github.com/gnames/tapadyen/pkg/clean"
	"github.com/gnames/tapadyen/pkg/db"
	"github.com/gnames/tapadyen/pkg/schema"
	"github.com/gnames/tapadyen/pkg/state"
	"github.com/gnames/tapadyen/pkg/tap"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// recordParams is the number of bind parameters of one upserted record.
const recordParams = 6

// maxBatchSize fits a record upsert into the PostgreSQL limit of 65535
// bind parameters.
const maxBatchSize = 65535 / recordParams

type record struct {
	id          string
	stream      string
	recordID    int64
	data        string
	extractedAt time.Time
}

type sink struct {
	operator  db.Operator
	runID     string
	batchSize int
	batch     []record
	enc       gnfmt.Encoder
	now       func() time.Time
}

// Sink is a tap.Sink that must be flushed with Close.
type Sink interface {
	tap.Sink
	Close(ctx context.Context) error
}

// New creates the target tables if needed and returns the sink.
// Records are buffered up to batchSize and always flushed before a
// state snapshot is stored.
func New(
	ctx context.Context,
	op db.Operator,
	runID string,
	batchSize int,
) (Sink, error) {
	pool := op.Pool()
	if pool == nil {
		return nil, NotConnectedError()
	}

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: stdlib.OpenDBFromPool(pool)}),
		&gorm.Config{},
	)
	if err != nil {
		return nil, MigrateError(err)
	}
	if err = schema.Migrate(gormDB.WithContext(ctx)); err != nil {
		return nil, MigrateError(err)
	}
	if err = verifyTables(ctx, op); err != nil {
		return nil, err
	}

	batchSize = min(max(batchSize, 1), maxBatchSize)
	res := &sink{
		operator:  op,
		runID:     runID,
		batchSize: batchSize,
		enc:       gnfmt.GNjson{},
		now:       func() time.Time { return time.Now().UTC() },
	}
	return res, nil
}

func (s *sink) WriteSchema(
	ctx context.Context,
	streamID string,
	sch map[string]any,
	keys []string,
) error {
	if err := s.flush(ctx); err != nil {
		return err
	}
	data, err := s.enc.Encode(sch)
	if err != nil {
		return WriteError("stream_schemas", err)
	}

	q, args, err := psql.Insert("stream_schemas").
		Columns("stream", "schema", "key_properties", "updated_at").
		Values(streamID, string(data), strings.Join(keys, ","), s.now()).
		Suffix("ON CONFLICT (stream) DO UPDATE SET " +
			"schema = EXCLUDED.schema, " +
			"key_properties = EXCLUDED.key_properties, " +
			"updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return WriteError("stream_schemas", err)
	}
	if _, err = s.operator.Pool().Exec(ctx, q, args...); err != nil {
		return WriteError("stream_schemas", err)
	}
	return nil
}

func (s *sink) WriteRecord(
	ctx context.Context,
	streamID string,
	rec clean.Record,
	extractedAt time.Time,
) error {
	r, err := newRecord(s.enc, streamID, rec, extractedAt)
	if err != nil {
		return WriteError("report_records", err)
	}
	s.batch = append(s.batch, r)
	if len(s.batch) >= s.batchSize {
		return s.flush(ctx)
	}
	return nil
}

func (s *sink) WriteState(ctx context.Context, st *state.State) error {
	if err := s.flush(ctx); err != nil {
		return err
	}
	data, err := st.Encode()
	if err != nil {
		return WriteError("tap_states", err)
	}

	q, args, err := psql.Insert("tap_states").
		Columns("run_id", "state", "created_at").
		Values(s.runID, string(data), s.now()).
		ToSql()
	if err != nil {
		return WriteError("tap_states", err)
	}
	if _, err = s.operator.Pool().Exec(ctx, q, args...); err != nil {
		return WriteError("tap_states", err)
	}
	return nil
}

// Close flushes buffered records.
func (s *sink) Close(ctx context.Context) error {
	return s.flush(ctx)
}

func (s *sink) flush(ctx context.Context) error {
	if len(s.batch) == 0 {
		return nil
	}
	q, args, err := upsertRecords(s.batch, s.now())
	if err != nil {
		return WriteError("report_records", err)
	}
	if _, err = s.operator.Pool().Exec(ctx, q, args...); err != nil {
		return WriteError("report_records", err)
	}
	slog.Debug("Records upserted", "rows", len(s.batch))
	s.batch = s.batch[:0]
	return nil
}

// verifyTables makes sure every target table exists after migration.
func verifyTables(ctx context.Context, op db.Operator) error {
	for _, table := range schema.TableNames() {
		ok, err := op.TableExists(ctx, table)
		if err != nil {
			return err
		}
		if !ok {
			return MissingTableError(table)
		}
		slog.Debug("Target table is ready", "table", table)
	}
	return nil
}

// newRecord gives cleaned records a stable UUID from their stream and
// identifier. Schemaless rows have no identifier and get a random one.
func newRecord(
	enc gnfmt.Encoder,
	streamID string,
	rec clean.Record,
	extractedAt time.Time,
) (record, error) {
	data, err := enc.Encode(rec)
	if err != nil {
		return record{}, err
	}
	res := record{
		stream:      streamID,
		data:        string(data),
		extractedAt: extractedAt,
	}
	if id, ok := rec.ID(); ok {
		res.recordID = id
		res.id = gnuuid.New(streamID + "|" + strconv.FormatInt(id, 10)).String()
	} else {
		res.id = uuid.NewString()
	}
	return res, nil
}

func upsertRecords(rr []record, now time.Time) (string, []any, error) {
	q := psql.Insert("report_records").
		Columns("id", "stream", "record_id", "data",
			"extracted_at", "updated_at")
	for _, r := range rr {
		q = q.Values(r.id, r.stream, r.recordID, r.data, r.extractedAt, now)
	}
	return q.Suffix("ON CONFLICT (id) DO UPDATE SET " +
		"data = EXCLUDED.data, " +
		"extracted_at = EXCLUDED.extracted_at, " +
		"updated_at = EXCLUDED.updated_at").
		ToSql()
}
