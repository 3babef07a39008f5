// Package store exports an analysis result to SQLite.
package store

import (
	"fmt"
	"go/token"
	"os"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/mpyw/panicreach/internal"
	"github.com/mpyw/panicreach/internal/fnindex"
	"github.com/mpyw/panicreach/internal/loader"
	"github.com/mpyw/panicreach/internal/span"
)

const schema = `
CREATE TABLE meta (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE nodes (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    file TEXT,
    line INTEGER,
    col INTEGER,
    is_entry INTEGER NOT NULL DEFAULT 0,
    is_sink INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE edges (
    caller INTEGER NOT NULL REFERENCES nodes(id),
    callee INTEGER NOT NULL REFERENCES nodes(id),
    PRIMARY KEY (caller, callee)
);

CREATE TABLE witnesses (
    caller INTEGER NOT NULL REFERENCES nodes(id),
    callee INTEGER NOT NULL REFERENCES nodes(id),
    sink INTEGER NOT NULL REFERENCES nodes(id),
    file TEXT,
    line INTEGER,
    col INTEGER,
    end_line INTEGER,
    end_col INTEGER
);

CREATE INDEX idx_edges_callee ON edges(callee);
CREATE INDEX idx_witnesses_caller ON witnesses(caller);
`

// SchemaVersion is stored under the "version" meta key.
const SchemaVersion = "1"

// Write replaces the database at path with the graph, policy and spots of
// res. Positions are resolved through fset.
func Write(path string, fset *token.FileSet, res *internal.Result, prog *loader.Progress) error {
	prog.Log("Writing SQLite to %s ...", path)

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", path, err)
	}

	conn, err := sqlite.OpenConn(path, sqlite.OpenCreate, sqlite.OpenReadWrite, sqlite.OpenWAL)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	defer func() { _ = conn.Close() }()

	if err := sqlitex.ExecuteTransient(conn, "PRAGMA synchronous = NORMAL", nil); err != nil {
		return err
	}
	if err := sqlitex.ExecuteScript(conn, schema, nil); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}

	endFn, err := sqlitex.ImmediateTransaction(conn)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	err = insertAll(conn, fset, res, prog)
	endFn(&err)
	if err != nil {
		return err
	}

	return nil
}

func insertAll(conn *sqlite.Conn, fset *token.FileSet, res *internal.Result, prog *loader.Progress) error {
	if err := sqlitex.Execute(conn, `INSERT INTO meta (key, value) VALUES ('version', ?)`,
		&sqlitex.ExecOptions{Args: []any{SchemaVersion}}); err != nil {
		return fmt.Errorf("insert meta: %w", err)
	}

	ids, err := insertNodes(conn, fset, res, prog)
	if err != nil {
		return err
	}
	if err := insertEdges(conn, res, ids, prog); err != nil {
		return err
	}
	return insertWitnesses(conn, fset, res, ids, prog)
}

func insertNodes(conn *sqlite.Conn, fset *token.FileSet, res *internal.Result, prog *loader.Progress) (map[*fnindex.Node]int64, error) {
	stmt, err := conn.Prepare(`INSERT INTO nodes (id, name, file, line, col, is_entry, is_sink) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("prepare node insert: %w", err)
	}
	defer func() { _ = stmt.Finalize() }()

	entries := make(map[*fnindex.Node]bool)
	for _, n := range res.Policy.Entries() {
		entries[n] = true
	}

	ids := make(map[*fnindex.Node]int64)
	for i, n := range res.Graph.Nodes() {
		id := int64(i + 1)
		ids[n] = id

		stmt.BindInt64(1, id)
		stmt.BindText(2, n.Name())
		bindPos(stmt, 3, fset, n.Decl().Start)
		stmt.BindBool(6, entries[n])
		stmt.BindBool(7, res.Policy.IsSink(n))

		if _, err := stmt.Step(); err != nil {
			return nil, fmt.Errorf("insert node %s: %w", n.Name(), err)
		}
		_ = stmt.Reset()
	}

	prog.Verbose("Inserted %d nodes", len(ids))
	return ids, nil
}

func insertEdges(conn *sqlite.Conn, res *internal.Result, ids map[*fnindex.Node]int64, prog *loader.Progress) error {
	stmt, err := conn.Prepare(`INSERT INTO edges (caller, callee) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare edge insert: %w", err)
	}
	defer func() { _ = stmt.Finalize() }()

	var count int
	for _, caller := range res.Graph.Nodes() {
		for _, callee := range res.Graph.Callees(caller) {
			stmt.BindInt64(1, ids[caller])
			stmt.BindInt64(2, ids[callee])
			if _, err := stmt.Step(); err != nil {
				return fmt.Errorf("insert edge %s→%s: %w", caller.Name(), callee.Name(), err)
			}
			_ = stmt.Reset()
			count++
		}
	}

	prog.Verbose("Inserted %d edges", count)
	return nil
}

func insertWitnesses(conn *sqlite.Conn, fset *token.FileSet, res *internal.Result, ids map[*fnindex.Node]int64, prog *loader.Progress) error {
	stmt, err := conn.Prepare(`INSERT INTO witnesses (caller, callee, sink, file, line, col, end_line, end_col) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare witness insert: %w", err)
	}
	defer func() { _ = stmt.Finalize() }()

	var count int
	for _, rec := range res.Spots.Records() {
		for _, w := range rec.Witnesses {
			stmt.BindInt64(1, ids[rec.Caller])
			stmt.BindInt64(2, ids[w.Callee])
			stmt.BindInt64(3, ids[w.Sink])
			bindSpan(stmt, 4, fset, w.Span)
			if _, err := stmt.Step(); err != nil {
				return fmt.Errorf("insert witness of %s: %w", rec.Caller.Name(), err)
			}
			_ = stmt.Reset()
			count++
		}
	}

	prog.Log("Inserted %d witnesses for %d functions", count, res.Spots.Len())
	return nil
}

// bindPos binds file, line and column starting at param.
func bindPos(stmt *sqlite.Stmt, param int, fset *token.FileSet, pos token.Pos) {
	if fset == nil || !pos.IsValid() {
		stmt.BindNull(param)
		stmt.BindNull(param + 1)
		stmt.BindNull(param + 2)
		return
	}
	p := fset.Position(pos)
	stmt.BindText(param, p.Filename)
	stmt.BindInt64(param+1, int64(p.Line))
	stmt.BindInt64(param+2, int64(p.Column))
}

// bindSpan binds file, line, column, end line and end column starting at param.
func bindSpan(stmt *sqlite.Stmt, param int, fset *token.FileSet, s span.Span) {
	bindPos(stmt, param, fset, s.Start)
	if fset == nil || !s.Valid() {
		stmt.BindNull(param + 3)
		stmt.BindNull(param + 4)
		return
	}
	end := fset.Position(s.End)
	stmt.BindInt64(param+3, int64(end.Line))
	stmt.BindInt64(param+4, int64(end.Column))
}
