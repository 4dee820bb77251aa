// Package kvsqlite implements a SQLite-backed key/value extension for
// Rill: `kv::get`, `kv::set`, `kv::delete`, and `kv::list`. Grounded on
// funvibe-funxy's ext/config.go YAML-driven extension-binding shape (a
// third-party dependency named once, mounted under a namespace) and
// go-dws's FFI registration tests for the function/params/impl split.
// modernc.org/sqlite is a pure-Go, cgo-free driver, the only SQL engine
// used anywhere in the corpus this repo draws its stack from.
package kvsqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/rcrsr/rill/internal/rillerr"
	"github.com/rcrsr/rill/internal/runtime"
	"github.com/rcrsr/rill/internal/value"
)

// Extension is a stateful kv::* host-function set backed by a SQLite
// database. It owns the *sql.DB and must be closed via its Dispose
// method once the engine is done with it.
type Extension struct {
	db *sql.DB
}

// Open creates (or attaches to) a SQLite database at path and ensures
// its backing table exists. path may be ":memory:" for an ephemeral
// store.
func Open(path string) (*Extension, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("kvsqlite: open %s: %w", path, err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (key TEXT PRIMARY KEY, value TEXT NOT NULL)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("kvsqlite: create table: %w", err)
	}
	return &Extension{db: db}, nil
}

// Dispose closes the backing database.
func (x *Extension) Dispose() error { return x.db.Close() }

// Funcs declares the parameter contract for every function this
// extension exposes, for use with hostcall.MountExtension /
// Engine.MountExtension.
func (x *Extension) Funcs() map[string][]runtime.ParamSpec {
	return map[string][]runtime.ParamSpec{
		"get":    {{Name: "key", Type: value.TypeString, Required: true}},
		"set":    {{Name: "key", Type: value.TypeString, Required: true}, {Name: "value", Type: value.TypeString, Required: true}},
		"delete": {{Name: "key", Type: value.TypeString, Required: true}},
		"list":   {},
	}
}

// Impls returns the Go implementation for each name Funcs declares.
func (x *Extension) Impls() map[string]runtime.HostFunc {
	return map[string]runtime.HostFunc{
		"get":    x.get,
		"set":    x.set,
		"delete": x.delete,
		"list":   x.list,
	}
}

func (x *Extension) get(args []value.Value, ctx *runtime.Context, loc *rillerr.Location) (value.Value, error) {
	key, ok := args[0].(value.String)
	if !ok {
		return nil, rillerr.New(rillerr.TypeError, "kv::get: key must be a string", loc, nil)
	}
	var v string
	err := x.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, string(key)).Scan(&v)
	if err == sql.ErrNoRows {
		return value.Null, nil
	}
	if err != nil {
		return nil, rillerr.New(rillerr.AutoException, fmt.Sprintf("kv::get: %v", err), loc, nil)
	}
	return value.String(v), nil
}

func (x *Extension) set(args []value.Value, ctx *runtime.Context, loc *rillerr.Location) (value.Value, error) {
	key, ok := args[0].(value.String)
	if !ok {
		return nil, rillerr.New(rillerr.TypeError, "kv::set: key must be a string", loc, nil)
	}
	val, ok := args[1].(value.String)
	if !ok {
		return nil, rillerr.New(rillerr.TypeError, "kv::set: value must be a string", loc, nil)
	}
	_, err := x.db.Exec(`INSERT INTO kv(key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`, string(key), string(val))
	if err != nil {
		return nil, rillerr.New(rillerr.AutoException, fmt.Sprintf("kv::set: %v", err), loc, nil)
	}
	return value.Bool(true), nil
}

func (x *Extension) delete(args []value.Value, ctx *runtime.Context, loc *rillerr.Location) (value.Value, error) {
	key, ok := args[0].(value.String)
	if !ok {
		return nil, rillerr.New(rillerr.TypeError, "kv::delete: key must be a string", loc, nil)
	}
	res, err := x.db.Exec(`DELETE FROM kv WHERE key = ?`, string(key))
	if err != nil {
		return nil, rillerr.New(rillerr.AutoException, fmt.Sprintf("kv::delete: %v", err), loc, nil)
	}
	n, _ := res.RowsAffected()
	return value.Bool(n > 0), nil
}

func (x *Extension) list(args []value.Value, ctx *runtime.Context, loc *rillerr.Location) (value.Value, error) {
	rows, err := x.db.Query(`SELECT key FROM kv ORDER BY key`)
	if err != nil {
		return nil, rillerr.New(rillerr.AutoException, fmt.Sprintf("kv::list: %v", err), loc, nil)
	}
	defer rows.Close()

	var items []value.Value
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, rillerr.New(rillerr.AutoException, fmt.Sprintf("kv::list: %v", err), loc, nil)
		}
		items = append(items, value.String(k))
	}
	return value.NewList(items), nil
}
