package main

import (
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var insertRe = regexp.MustCompile(`INSERT INTO (\w+) \(([^)]+)\)`)

// createTableColumns returns the column names declared in the CREATE
// TABLE block for the given table inside the migration DDL.
func createTableColumns(t *testing.T, ddl, table string) map[string]bool {
	t.Helper()
	marker := "CREATE TABLE IF NOT EXISTS " + table + " ("
	start := strings.Index(ddl, marker)
	require.GreaterOrEqual(t, start, 0, "migration does not create table %s", table)
	block := ddl[start+len(marker):]
	end := strings.Index(block, ");")
	require.GreaterOrEqual(t, end, 0)

	cols := map[string]bool{}
	for _, line := range strings.Split(block[:end], "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 || strings.ToUpper(fields[0]) == "CONSTRAINT" {
			continue
		}
		cols[fields[0]] = true
	}
	return cols
}

// Every column the seed statements write must exist in the schema the
// service migrates; a renamed column must rename here too.
func TestSeedStatementsMatchSchema(t *testing.T) {
	ddl, err := os.ReadFile("../../db/migrations/000001_init_schema.up.sql")
	require.NoError(t, err)

	statements := []string{insertUserSQL, insertProductSQL, insertReviewSQL, insertTagSQL}
	for _, stmt := range statements {
		m := insertRe.FindStringSubmatch(stmt)
		require.NotNil(t, m, "unparseable insert: %s", stmt)
		table, colList := m[1], m[2]

		declared := createTableColumns(t, string(ddl), table)
		for _, col := range strings.Split(colList, ",") {
			col = strings.TrimSpace(col)
			assert.True(t, declared[col], "table %s has no column %q", table, col)
		}
	}
}

func TestSeedDatasetIndexesInRange(t *testing.T) {
	for _, r := range reviews {
		assert.Less(t, r.UserIdx, len(users))
		assert.Less(t, r.ProductIdx, len(products))
		assert.GreaterOrEqual(t, r.Rating, 1)
		assert.LessOrEqual(t, r.Rating, 5)
	}
}
