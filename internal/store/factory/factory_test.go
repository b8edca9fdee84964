package factory

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pg "github.com/iakhil/phronesis/internal/store/postgres"
	sq "github.com/iakhil/phronesis/internal/store/sqlite"
)

func TestNewFromDSNEmpty(t *testing.T) {
	_, err := NewFromDSN("   ")
	require.Error(t, err)
}

func TestNewFromDSNBarePathIsSQLite(t *testing.T) {
	st, err := NewFromDSN(filepath.Join(t.TempDir(), "content.db"))
	require.NoError(t, err)
	defer func() { _ = st.Close() }()
	assert.IsType(t, &sq.DB{}, st)
}

func TestNewFromDSNSQLiteScheme(t *testing.T) {
	st, err := NewFromDSN("sqlite://" + filepath.Join(t.TempDir(), "content.db"))
	require.NoError(t, err)
	defer func() { _ = st.Close() }()
	assert.IsType(t, &sq.DB{}, st)
}

func TestNewFromDSNPostgres(t *testing.T) {
	// sql.Open does not dial, so selection can be tested without a server.
	st, err := NewFromDSN("postgres://user:pw@localhost:5432/phronesis")
	require.NoError(t, err)
	defer func() { _ = st.Close() }()
	assert.IsType(t, &pg.DB{}, st)
}
