package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/ad-generator/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Title,description,Campus
Data Analytics,Learn to turn data into decisions.,North
Global Business Management,"Lead teams, across borders.",Lakeshore
`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "course.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	c, err := LoadFile(writeFile(t, sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []string{"Data Analytics", "Global Business Management"}, c.Titles())

	desc, ok := c.Lookup("Global Business Management")
	require.True(t, ok)
	assert.Equal(t, "Lead teams, across borders.", desc)

	_, ok = c.Lookup("Nursing")
	assert.False(t, ok)
}

func TestLoadCSV_HeaderVariants(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"exact", "Title,description"},
		{"case insensitive", "TITLE,Description"},
		{"padded", " Title , description "},
		{"byte order mark", "\ufeffTitle,description"},
		{"reordered with extras", "id,description,extra,Title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var row string
			if strings.HasPrefix(tt.header, "id,") {
				row = "7,Learn things.,x,Data Analytics"
			} else {
				row = "Data Analytics,Learn things."
			}
			c, err := LoadCSV("test", strings.NewReader(tt.header+"\n"+row+"\n"))
			require.NoError(t, err)
			desc, ok := c.Lookup("Data Analytics")
			require.True(t, ok)
			assert.Equal(t, "Learn things.", desc)
		})
	}
}

func TestLoadCSV_MissingColumns(t *testing.T) {
	_, err := LoadCSV("course.csv", strings.NewReader("Name,Summary\nA,B\n"))
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "course.csv", loadErr.Source)
	assert.Contains(t, err.Error(), "Title")
	assert.Contains(t, err.Error(), "description")
}

func TestLoadCSV_Empty(t *testing.T) {
	var loadErr *LoadError

	_, err := LoadCSV("empty", strings.NewReader(""))
	assert.ErrorAs(t, err, &loadErr)

	_, err = LoadCSV("header-only", strings.NewReader("Title,description\n"))
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, err.Error(), "no programs")
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.csv"))
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNew_DuplicateTitleFirstWins(t *testing.T) {
	c := New([]types.ProgramRecord{
		{Title: "Nursing", Description: "first"},
		{Title: "Culinary", Description: "food"},
		{Title: "Nursing", Description: "second"},
	})

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []string{"Nursing", "Culinary"}, c.Titles())
	desc, _ := c.Lookup("Nursing")
	assert.Equal(t, "first", desc)
}

func TestLoadCSV_FlattensHTML(t *testing.T) {
	csv := "Title,description\nData Analytics,\"<p>Learn <b>Python</b> &amp; SQL.</p><ul><li>Co-op</li></ul>\"\n"
	c, err := LoadCSV("html", strings.NewReader(csv))
	require.NoError(t, err)

	desc, _ := c.Lookup("Data Analytics")
	assert.Equal(t, "Learn Python & SQL.\nCo-op", desc)
}

func TestLoadCSV_SkipsBlankTitles(t *testing.T) {
	c, err := LoadCSV("blank", strings.NewReader("Title,description\n,orphan\nNursing,Care\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Nursing"}, c.Titles())
}

func TestTitles_ReturnsCopy(t *testing.T) {
	c := New([]types.ProgramRecord{{Title: "A"}, {Title: "B"}})
	titles := c.Titles()
	titles[0] = "mutated"
	assert.Equal(t, []string{"A", "B"}, c.Titles())
}

func TestLoad_URL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	c, err := Load(context.Background(), srv.URL+"/course.csv")
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
}

func TestLoad_URLNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := Load(context.Background(), srv.URL+"/missing.csv")
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, err.Error(), "cannot download")
}

func TestLoad_Dispatch(t *testing.T) {
	c, err := Load(context.Background(), writeFile(t, sampleCSV))
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	_, err = Load(context.Background(), "")
	var loadErr *LoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestRedact(t *testing.T) {
	assert.Equal(t, "postgres://ads:xxxxx@db:5432/ads", redact("postgres://ads:secret@db:5432/ads"))
	assert.Equal(t, "postgres://db/ads", redact("postgres://db/ads"))
	assert.Equal(t, "course.csv", redact("course.csv"))
}

func TestRecords(t *testing.T) {
	records := []types.ProgramRecord{{Title: "A", Description: "a"}, {Title: "B", Description: "b"}}
	assert.Equal(t, records, New(records).Records())
}
