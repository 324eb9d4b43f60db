package taxonomy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	tax := Default()

	cats := tax.Categories()
	require.Len(t, cats, 8)
	assert.Equal(t, "programming_languages", cats[0].Name)
	assert.Equal(t, "quality", cats[7].Name)
	assert.Equal(t, "python", cats[0].Terms[0])

	assert.True(t, tax.Contains("kubernetes"))
	assert.True(t, tax.Contains("Kubernetes"))
	assert.True(t, tax.Contains("rest api"))
	assert.False(t, tax.Contains("cobol"))
	assert.Equal(t, 3, tax.MaxTermWords())
}

func TestCategoriesReturnsCopy(t *testing.T) {
	tax := Default()
	cats := tax.Categories()
	cats[0].Terms[0] = "mutated"

	assert.Equal(t, "python", tax.Categories()[0].Terms[0])
}

func TestNewNormalizesTerms(t *testing.T) {
	tax := New(Category{Name: "x", Terms: []string{"  Go ", "", "C#"}})

	assert.Equal(t, []string{"go", "c#"}, tax.Categories()[0].Terms)
	assert.True(t, tax.Contains("c#"))
}

func TestCounts(t *testing.T) {
	tax := New(
		Category{Name: "langs", Terms: []string{"go", "rust"}},
		Category{Name: "backend", Terms: []string{"go", "grpc", "rest api"}},
	)

	assert.Equal(t, 2, tax.Len())
	assert.Equal(t, 4, tax.TermCount())
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
		want    []Category
	}{
		{
			name: "valid list",
			doc:  "- name: langs\n  terms: [Go, Rust]\n- name: dbs\n  terms: [sql]\n",
			want: []Category{
				{Name: "langs", Terms: []string{"go", "rust"}},
				{Name: "dbs", Terms: []string{"sql"}},
			},
		},
		{
			name:    "missing name",
			doc:     "- terms: [go]\n",
			wantErr: true,
		},
		{
			name:    "duplicate name",
			doc:     "- name: a\n  terms: [go]\n- name: a\n  terms: [rust]\n",
			wantErr: true,
		},
		{
			name:    "not a list",
			doc:     "name: a\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tax, err := Parse([]byte(tt.doc))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, tax.Categories())
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxonomy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- name: cloud\n  terms: [aws, gcp]\n"), 0o644))

	tax, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, tax.Len())
	assert.True(t, tax.Contains("gcp"))

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
