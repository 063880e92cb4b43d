package database

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adstack/admin-backend/pkg/utils"
)

var bcryptHashRe = regexp.MustCompile(`\$2[aby]\$\d{2}\$[./A-Za-z0-9]{53}`)

// The seed migration must carry a hash of the password its comment documents,
// otherwise a fresh deployment has no working login.
func TestSeedAdminPasswordMatchesDocumented(t *testing.T) {
	sql, err := migrationsFS.ReadFile("migrations/002_seed_admin.sql")
	require.NoError(t, err)

	hash := bcryptHashRe.FindString(string(sql))
	require.NotEmpty(t, hash, "seed migration contains no bcrypt hash")
	require.True(t, utils.CheckPassword("changeme123", hash),
		"seed hash does not verify against the documented bootstrap password")
}

func TestMigrationsAreOrderedSQLFiles(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	for _, e := range entries {
		require.False(t, e.IsDir())
		require.Regexp(t, `^\d{3}_[a-z_]+\.sql$`, e.Name())
	}
}
