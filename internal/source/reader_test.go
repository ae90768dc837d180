package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zotgraph/pkg/errors"
)

func writeTempCSV(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestReadFile_ParsesRows(t *testing.T) {
	path := writeTempCSV(t, []byte("Key,Title,Author\nK1,First Paper,\"Zhang, Wei\"\nK2,Second Paper,\n"))

	rows, columns, err := NewReader().ReadFile(path, "")
	require.NoError(t, err)

	assert.Equal(t, []string{"Key", "Title", "Author"}, columns)
	require.Len(t, rows, 2)
	assert.Equal(t, "K1", rows[0]["Key"])
	assert.Equal(t, "Zhang, Wei", rows[0]["Author"])
	assert.Equal(t, "Second Paper", rows[1]["Title"])
}

func TestReadFile_StripsByteOrderMark(t *testing.T) {
	// Zotero exports UTF-8 with a leading BOM.
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Key,Title\nK1,Paper\n")...)
	path := writeTempCSV(t, content)

	rows, columns, err := NewReader().ReadFile(path, "")
	require.NoError(t, err)

	assert.Equal(t, "Key", columns[0])
	assert.Equal(t, "K1", rows[0]["Key"])
}

func TestReadFile_ShortRowDefaultsToEmpty(t *testing.T) {
	path := writeTempCSV(t, []byte("Key,Title,DOI\nK1,Paper\n"))

	rows, _, err := NewReader().ReadFile(path, "")
	require.NoError(t, err)
	assert.Equal(t, "", rows[0]["DOI"])
}

func TestReadFile_MissingFileIsFatal(t *testing.T) {
	_, _, err := NewReader().ReadFile("/nonexistent/export.csv", "")
	require.Error(t, err)
	assert.IsType(t, &errors.ErrInputUnreadable{}, err)
}

func TestReadFile_UnknownEncodingIsFatal(t *testing.T) {
	path := writeTempCSV(t, []byte("Key\nK1\n"))

	_, _, err := NewReader().ReadFile(path, "not-an-encoding")
	require.Error(t, err)
	assert.IsType(t, &errors.ErrInputUnreadable{}, err)
}

func TestReadFile_NamedEncoding(t *testing.T) {
	// "图" in GBK is 0xCD 0xBC.
	content := append([]byte("Key,Title\nK1,"), 0xCD, 0xBC, '\n')
	path := writeTempCSV(t, content)

	rows, _, err := NewReader().ReadFile(path, "gbk")
	require.NoError(t, err)
	assert.Equal(t, "图", rows[0]["Title"])
}
