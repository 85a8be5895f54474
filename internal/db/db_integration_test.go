package db

import (
	"context"
	"testing"
	"time"

	"github.com/jonathan/ad-generator/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB starts a throwaway Postgres container with the programs table.
func setupTestDB(t *testing.T) *DB {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("ads"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Skipf("Skipping integration test: failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		terminateCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := container.Terminate(terminateCtx); err != nil {
			t.Logf("warning: failed to terminate container: %v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := Connect(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, db.EnsureSchema(ctx))
	return db
}

func TestIntegration_Programs(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	// Titles deliberately out of alphabetical order
	records := []types.ProgramRecord{
		{Title: "Nursing", Description: "Care for patients."},
		{Title: "Data Analytics", Description: "Learn to turn data into decisions."},
		{Title: "Global Business Management", Description: "Lead international teams."},
	}
	n, err := db.UpsertPrograms(ctx, records)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	got, err := db.ListPrograms(ctx)
	require.NoError(t, err)
	assert.Equal(t, records, got)

	// Upsert replaces the description of an existing title
	_, err = db.UpsertPrograms(ctx, []types.ProgramRecord{{Title: "Data Analytics", Description: "Updated."}})
	require.NoError(t, err)

	program, err := db.GetProgram(ctx, "Data Analytics")
	require.NoError(t, err)
	require.NotNil(t, program)
	assert.Equal(t, "Updated.", program.Description)

	missing, err := db.GetProgram(ctx, "Basket Weaving")
	require.NoError(t, err)
	assert.Nil(t, missing)

	// Schema creation is idempotent
	require.NoError(t, db.EnsureSchema(ctx))
}
