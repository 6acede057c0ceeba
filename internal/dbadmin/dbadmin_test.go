package dbadmin

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"monument-backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	calls []Command
	// respond decides the result of each call in order.
	respond func(call int, cmd Command) ([]byte, error)
}

func (f *fakeRunner) Run(ctx context.Context, cmd Command) ([]byte, error) {
	call := len(f.calls)
	f.calls = append(f.calls, Command{
		Name:  cmd.Name,
		Args:  cmd.Args,
		Env:   cmd.Env,
		Stdin: cmd.Stdin,
	})
	return f.respond(call, cmd)
}

func testDBConfig() config.DatabaseConfig {
	return config.DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "monument",
		Password: "secret",
		Database: "monument_dev",
	}
}

func TestDumpFirstCandidateSucceeds(t *testing.T) {
	r := &fakeRunner{respond: func(call int, cmd Command) ([]byte, error) {
		return []byte("-- sql dump"), nil
	}}
	a := New(r, testDBConfig(), config.DBAdminConfig{}, nil)

	out, err := a.Dump(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "-- sql dump", string(out))

	require.Len(t, r.calls, 1)
	assert.Equal(t, "pg_dump", r.calls[0].Name)
	assert.Contains(t, r.calls[0].Args, "--if-exists")
	assert.Contains(t, r.calls[0].Env, "PGPASSWORD=secret")
}

func TestDumpFallsBackAcrossCandidatesAndFlagSets(t *testing.T) {
	// Only the minimal flag set on the second candidate works, like an
	// old pg_dump that rejects --if-exists.
	r := &fakeRunner{respond: func(call int, cmd Command) ([]byte, error) {
		if cmd.Name == "pg_dump15" && !contains(cmd.Args, "--if-exists") {
			return []byte("ok"), nil
		}
		return nil, errors.New("unknown option")
	}}
	a := New(r, testDBConfig(), config.DBAdminConfig{}, nil)

	out, err := a.Dump(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", string(out))

	// All four candidates with full flags, then two more minimal tries.
	assert.Equal(t, len(dumpCandidates)+2, len(r.calls))
}

func TestDumpAggregatesAllErrors(t *testing.T) {
	r := &fakeRunner{respond: func(call int, cmd Command) ([]byte, error) {
		return nil, errors.New("not installed: " + cmd.Name)
	}}
	a := New(r, testDBConfig(), config.DBAdminConfig{}, nil)

	_, err := a.Dump(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pg_dump")
	assert.Contains(t, err.Error(), "pg_dump15")
	assert.Equal(t, len(dumpCandidates)*2, len(r.calls))
}

func TestDumpBinOverrideSkipsCandidates(t *testing.T) {
	r := &fakeRunner{respond: func(call int, cmd Command) ([]byte, error) {
		return []byte("ok"), nil
	}}
	a := New(r, testDBConfig(), config.DBAdminConfig{DumpBin: "/opt/pg/bin/pg_dump"}, nil)

	_, err := a.Dump(context.Background())
	require.NoError(t, err)
	require.Len(t, r.calls, 1)
	assert.Equal(t, "/opt/pg/bin/pg_dump", r.calls[0].Name)
}

func TestRestorePlainSQL(t *testing.T) {
	var got string
	r := &fakeRunner{respond: func(call int, cmd Command) ([]byte, error) {
		b, _ := io.ReadAll(cmd.Stdin)
		got = string(b)
		return nil, nil
	}}
	a := New(r, testDBConfig(), config.DBAdminConfig{}, nil)

	err := a.Restore(context.Background(), strings.NewReader("CREATE TABLE t();"))
	require.NoError(t, err)
	assert.Equal(t, "CREATE TABLE t();", got)
	assert.Equal(t, "psql", r.calls[0].Name)
	assert.Contains(t, r.calls[0].Args, "ON_ERROR_STOP=1")
}

func TestRestoreGunzipsInput(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte("INSERT INTO t VALUES (1);"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	var got string
	r := &fakeRunner{respond: func(call int, cmd Command) ([]byte, error) {
		b, _ := io.ReadAll(cmd.Stdin)
		got = string(b)
		return nil, nil
	}}
	a := New(r, testDBConfig(), config.DBAdminConfig{}, nil)

	require.NoError(t, a.Restore(context.Background(), &buf))
	assert.Equal(t, "INSERT INTO t VALUES (1);", got)
}

func TestRestoreFallsBackToNextCandidate(t *testing.T) {
	r := &fakeRunner{respond: func(call int, cmd Command) ([]byte, error) {
		if call == 0 {
			return nil, errors.New("psql: not found")
		}
		return nil, nil
	}}
	a := New(r, testDBConfig(), config.DBAdminConfig{}, nil)

	require.NoError(t, a.Restore(context.Background(), strings.NewReader("SELECT 1;")))
	require.Len(t, r.calls, 2)
	assert.Equal(t, "/usr/bin/psql", r.calls[1].Name)
}

func contains(ss []string, want string) bool {
	for _, s := range ss {
		if s == want {
			return true
		}
	}
	return false
}
