// Package dbadmin wraps the Postgres client tooling behind the admin
// dump and restore endpoints. Binaries differ across hosts, so both
// operations walk a candidate list and fall back to a reduced flag set
// before giving up.
package dbadmin

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"monument-backend/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	dumpCandidates = []string{
		"pg_dump",
		"pg_dump15",
		"/usr/bin/pg_dump",
		"/usr/local/bin/pg_dump",
	}
	restoreCandidates = []string{
		"psql",
		"/usr/bin/psql",
		"/usr/local/bin/psql",
	}

	// fullDumpFlags is tried first; older pg_dump builds that reject it
	// get the minimal set.
	fullDumpFlags    = []string{"--no-owner", "--no-privileges", "--clean", "--if-exists"}
	minimalDumpFlags = []string{}
)

type Admin struct {
	runner Runner
	db     config.DatabaseConfig
	cfg    config.DBAdminConfig
	pool   *pgxpool.Pool
}

func New(runner Runner, db config.DatabaseConfig, cfg config.DBAdminConfig, pool *pgxpool.Pool) *Admin {
	return &Admin{runner: runner, db: db, cfg: cfg, pool: pool}
}

func (a *Admin) connArgs() []string {
	return []string{
		"-h", a.db.Host,
		"-p", strconv.Itoa(a.db.Port),
		"-U", a.db.User,
		"-d", a.db.Database,
	}
}

func (a *Admin) env() []string {
	return []string{"PGPASSWORD=" + a.db.Password}
}

// Dump produces a plain-SQL dump. Every candidate binary is tried with
// the full flag set, then the minimal one; errors aggregate so the
// caller sees what was attempted.
func (a *Admin) Dump(ctx context.Context) ([]byte, error) {
	candidates := dumpCandidates
	if a.cfg.DumpBin != "" {
		candidates = []string{a.cfg.DumpBin}
	}

	var attempts []error
	for _, flags := range [][]string{fullDumpFlags, minimalDumpFlags} {
		for _, bin := range candidates {
			out, err := a.runner.Run(ctx, Command{
				Name: bin,
				Args: append(append([]string{}, flags...), a.connArgs()...),
				Env:  a.env(),
			})
			if err == nil {
				return out, nil
			}
			attempts = append(attempts, err)
		}
	}

	return nil, fmt.Errorf("database dump failed: %w", errors.Join(attempts...))
}

// Restore feeds a plain-SQL dump to psql. Gzipped input is decompressed
// transparently.
func (a *Admin) Restore(ctx context.Context, dump io.Reader) error {
	raw, err := io.ReadAll(dump)
	if err != nil {
		return fmt.Errorf("read restore input: %w", err)
	}
	raw, err = maybeGunzip(raw)
	if err != nil {
		return err
	}

	candidates := restoreCandidates
	if a.cfg.RestoreBin != "" {
		candidates = []string{a.cfg.RestoreBin}
	}

	args := append([]string{"--set", "ON_ERROR_STOP=1"}, a.connArgs()...)

	var attempts []error
	for _, bin := range candidates {
		_, err := a.runner.Run(ctx, Command{
			Name:  bin,
			Args:  args,
			Env:   a.env(),
			Stdin: bytes.NewReader(raw),
		})
		if err == nil {
			return nil
		}
		attempts = append(attempts, err)
	}

	return fmt.Errorf("database restore failed: %w", errors.Join(attempts...))
}

// ListTables returns public-schema table names with row estimates.
func (a *Admin) ListTables(ctx context.Context) ([]TableInfo, error) {
	rows, err := a.pool.Query(ctx, `
		SELECT c.relname, c.reltuples::bigint
		FROM pg_class c
		JOIN pg_namespace n ON n.oid = c.relnamespace
		WHERE n.nspname = 'public' AND c.relkind = 'r'
		ORDER BY c.relname`)
	if err != nil {
		return nil, fmt.Errorf("list tables failed: %w", err)
	}
	defer rows.Close()

	var tables []TableInfo
	for rows.Next() {
		var t TableInfo
		if err := rows.Scan(&t.Name, &t.EstimatedRows); err != nil {
			return nil, fmt.Errorf("scan table info failed: %w", err)
		}
		tables = append(tables, t)
	}
	return tables, rows.Err()
}

type TableInfo struct {
	Name          string `json:"name"`
	EstimatedRows int64  `json:"estimated_rows"`
}

var gzipMagic = []byte{0x1f, 0x8b}

func maybeGunzip(raw []byte) ([]byte, error) {
	if !bytes.HasPrefix(raw, gzipMagic) {
		return raw, nil
	}
	zr, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decompress restore input: %w", err)
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("decompress restore input: %w", err)
	}
	return out, nil
}
