// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ontodia Contributors

package sqlite

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/asanchez75/ontodia/internal/rdf"
	"github.com/asanchez75/ontodia/internal/store"
	ontoerr "github.com/asanchez75/ontodia/pkg/errors"
)

// Compile-time interface check.
var _ store.TripleStore = (*TripleStore)(nil)

// TripleStore implements store.TripleStore backed by SQLite. Every term is
// stored with its kind, and literal objects keep their language and datatype.
type TripleStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewTripleStore opens (or creates) a SQLite database at dbPath and
// initialises the triples table with SPO/POS/OSP indexes.
func NewTripleStore(dbPath string) (*TripleStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, ontoerr.Errorf(ontoerr.CodeStoreDatabaseFailure, "opening sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, ontoerr.Errorf(ontoerr.CodeStoreDatabaseFailure, "pinging sqlite db: %w", err)
	}

	if err := migrateTriples(db); err != nil {
		_ = db.Close()
		return nil, ontoerr.Errorf(ontoerr.CodeStoreDatabaseFailure, "migrating triple tables: %w", err)
	}

	return &TripleStore{db: db, logger: slog.Default()}, nil
}

func migrateTriples(db *sql.DB) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS triples (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	graph           TEXT NOT NULL,
	subject         TEXT NOT NULL,
	subject_kind    INTEGER NOT NULL,
	predicate       TEXT NOT NULL,
	object          TEXT NOT NULL,
	object_kind     INTEGER NOT NULL,
	object_lang     TEXT NOT NULL DEFAULT '',
	object_datatype TEXT NOT NULL DEFAULT '',
	created         TEXT NOT NULL,
	UNIQUE(subject_kind, subject, predicate, object_kind, object, object_lang, object_datatype)
);

CREATE INDEX IF NOT EXISTS idx_spo ON triples(subject, predicate, object);
CREATE INDEX IF NOT EXISTS idx_pos ON triples(predicate, object, subject);
CREATE INDEX IF NOT EXISTS idx_osp ON triples(object, subject, predicate);
`
	_, err := db.Exec(ddl)
	return err
}

// Close closes the underlying database connection.
func (s *TripleStore) Close() error {
	return s.db.Close()
}

// Add inserts triples in one transaction. Triples already present in any
// graph are left untouched.
func (s *TripleStore) Add(ctx context.Context, graph string, triples []rdf.Triple) (int, error) {
	for _, t := range triples {
		if err := store.ValidateTriple(t); err != nil {
			return 0, err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, ontoerr.Errorf(ontoerr.CodeStoreDatabaseFailure, "beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const q = `INSERT INTO triples
	(graph, subject, subject_kind, predicate, object, object_kind, object_lang, object_datatype, created)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT DO NOTHING`

	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		return 0, ontoerr.Errorf(ontoerr.CodeStoreDatabaseFailure, "preparing insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	created := formatTime(time.Now())
	added := 0
	for _, t := range triples {
		res, err := stmt.ExecContext(ctx,
			graph,
			t.Subject.Value, int(t.Subject.Kind),
			t.Predicate.Value,
			t.Object.Value, int(t.Object.Kind), t.Object.Lang, t.Object.Datatype,
			created,
		)
		if err != nil {
			return 0, ontoerr.Errorf(ontoerr.CodeStoreDatabaseFailure, "inserting triple %s: %w", t, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, ontoerr.Errorf(ontoerr.CodeStoreDatabaseFailure, "reading affected rows: %w", err)
		}
		added += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, ontoerr.Errorf(ontoerr.CodeStoreDatabaseFailure, "committing graph %s: %w", graph, err)
	}
	return added, nil
}

// Match returns the triples matching pattern ordered by insertion.
func (s *TripleStore) Match(ctx context.Context, pattern rdf.Pattern) ([]rdf.Triple, error) {
	var (
		qb   strings.Builder
		args []any
	)

	qb.WriteString(`SELECT subject, subject_kind, predicate, object, object_kind, object_lang, object_datatype
FROM triples WHERE 1 = 1`)
	if pattern.Subject != "" {
		qb.WriteString(` AND subject = ?`)
		args = append(args, pattern.Subject)
	}
	if pattern.Predicate != "" {
		qb.WriteString(` AND predicate = ?`)
		args = append(args, pattern.Predicate)
	}
	if pattern.Object != "" {
		qb.WriteString(` AND object = ?`)
		args = append(args, pattern.Object)
	}
	qb.WriteString(` ORDER BY id`)
	if pattern.Limit > 0 {
		qb.WriteString(` LIMIT ?`)
		args = append(args, pattern.Limit)
	}

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, ontoerr.Errorf(ontoerr.CodeStoreTripleQueryDatabase, "matching triples: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []rdf.Triple
	for rows.Next() {
		var (
			subject, predicate, object, lang, datatype string
			subjectKind, objectKind                    int
		)
		if err := rows.Scan(&subject, &subjectKind, &predicate, &object, &objectKind, &lang, &datatype); err != nil {
			return nil, ontoerr.Errorf(ontoerr.CodeStoreTripleQueryDatabase, "scanning triple: %w", err)
		}
		out = append(out, rdf.Triple{
			Subject:   rdf.Term{Kind: rdf.TermKind(subjectKind), Value: subject},
			Predicate: rdf.NewIRI(predicate),
			Object:    rdf.Term{Kind: rdf.TermKind(objectKind), Value: object, Lang: lang, Datatype: datatype},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, ontoerr.Errorf(ontoerr.CodeStoreTripleQueryDatabase, "iterating triples: %w", err)
	}
	return out, nil
}

// Count returns the number of stored triples.
func (s *TripleStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM triples`).Scan(&n); err != nil {
		return 0, ontoerr.Errorf(ontoerr.CodeStoreDatabaseFailure, "counting triples: %w", err)
	}
	return n, nil
}

// Graphs returns the distinct graph names in first-insertion order.
func (s *TripleStore) Graphs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT graph FROM triples GROUP BY graph ORDER BY MIN(id)`)
	if err != nil {
		return nil, ontoerr.Errorf(ontoerr.CodeStoreDatabaseFailure, "listing graphs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var graphs []string
	for rows.Next() {
		var g string
		if err := rows.Scan(&g); err != nil {
			return nil, ontoerr.Errorf(ontoerr.CodeStoreDatabaseFailure, "scanning graph: %w", err)
		}
		graphs = append(graphs, g)
	}
	if err := rows.Err(); err != nil {
		return nil, ontoerr.Errorf(ontoerr.CodeStoreDatabaseFailure, "iterating graphs: %w", err)
	}
	return graphs, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
