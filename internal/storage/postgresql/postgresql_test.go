package postgresql_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"wslider/internal/storage/postgresql"
	"wslider/internal/storage/postgresql/pgtest"
)

func TestStorage_Migrate(t *testing.T) {
	st := pgtest.New(t)
	ctx := context.Background()

	require.NoError(t, st.Ping(ctx))

	for _, table := range []string{"users", "posts", "post_meta", "attachments"} {
		var exists bool
		err := st.Pool().QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = $1)`,
			table,
		).Scan(&exists)
		require.NoError(t, err)
		require.True(t, exists, table)
	}

	t.Run("second run is a no-op", func(t *testing.T) {
		require.NoError(t, st.Migrate())
	})
}

func TestNew_BadDSN(t *testing.T) {
	_, err := postgresql.New(context.Background(), "postgres://nobody@127.0.0.1:1/none?sslmode=disable&connect_timeout=1")
	require.Error(t, err)
}
