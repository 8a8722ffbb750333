package shed_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdzeKit/AdzeKit/internal/shed"
)

// Contract: WriteFile creates parent directories and ReadFile returns the
// written bytes.
func Test_DirStore_Writes_And_Reads_Relative_Paths(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := shed.NewDirStore(root)

	require.NoError(t, store.WriteFile("loops/closed/2026-W07.md", []byte("# Closed Loops\n")))

	data, err := store.ReadFile("loops/closed/2026-W07.md")
	require.NoError(t, err)
	assert.Equal(t, "# Closed Loops\n", string(data))

	assert.Equal(t, root, store.Root())
	assert.Equal(t, filepath.Join(root, "loops", "closed", "2026-W07.md"), store.Abs("loops/closed/2026-W07.md"))
}

// Contract: Exists reports files, and reading a missing file surfaces the
// underlying not-exist error.
func Test_DirStore_Exists_Reports_Files(t *testing.T) {
	t.Parallel()

	store := shed.NewDirStore(t.TempDir())

	assert.False(t, store.Exists("inbox.md"))

	require.NoError(t, store.WriteFile("inbox.md", []byte("x")))
	assert.True(t, store.Exists("inbox.md"))

	_, err := store.ReadFile("missing.md")
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

// Contract: rewriting a file replaces its content wholesale.
func Test_DirStore_Overwrites_Existing_File(t *testing.T) {
	t.Parallel()

	store := shed.NewDirStore(t.TempDir())

	require.NoError(t, store.WriteFile("inbox.md", []byte("first\n")))
	require.NoError(t, store.WriteFile("inbox.md", []byte("second\n")))

	data, err := store.ReadFile("inbox.md")
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(data))
}

// Contract: written files are not world-readable.
func Test_DirStore_Restricts_File_Permissions(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}

	store := shed.NewDirStore(t.TempDir())
	require.NoError(t, store.WriteFile("inbox.md", []byte("private")))

	info, err := os.Stat(store.Abs("inbox.md"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
