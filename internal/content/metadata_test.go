package content

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseSkills(t *testing.T) {
	require.Equal(t, []string{"Go", "Python", "SQL"}, ParseSkills(" Go, Python ,,SQL, "))
	require.Equal(t, []string{"Go", "Rust"}, ParseSkills([]any{"Go", " ", "Rust"}))
	require.Equal(t, []string{"a"}, ParseSkills([]string{"a", ""}))
	require.Nil(t, ParseSkills(""))
	require.Nil(t, ParseSkills(nil))
	require.Nil(t, ParseSkills(42))
}

func TestParseDate(t *testing.T) {
	d, ok := ParseDate("2024-03-05")
	require.True(t, ok)
	require.Equal(t, "2024-03-05", FormatDate(d))

	d, ok = ParseDate("2024-03-05 10:11:12 +0900")
	require.True(t, ok)
	require.Equal(t, 10, d.Hour())

	ts := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	d, ok = ParseDate(ts)
	require.True(t, ok)
	require.True(t, d.Equal(ts))

	_, ok = ParseDate("yesterday")
	require.False(t, ok)
	_, ok = ParseDate(time.Time{})
	require.False(t, ok)
}

func TestMidnight(t *testing.T) {
	m := Midnight(fixedNow)
	require.Equal(t, 0, m.Hour())
	require.Equal(t, 0, m.Minute())
	require.Equal(t, fixedNow.Day(), m.Day())
	require.Empty(t, FormatDate(time.Time{}))
}

func TestMetadataFromFields(t *testing.T) {
	m := MetadataFromFields(map[string]any{
		"title":     " Portfolio ",
		"summary":   "A site",
		"employer":  "ACME",
		"github":    "https://github.com/x/y",
		"skills":    "Go, TypeScript",
		"createdAt": "2022-01-01",
		"tags":      []any{"a"},
		"draft":     true,
	})
	require.Equal(t, "Portfolio", m.Title)
	require.Equal(t, "ACME", m.Work)
	require.Equal(t, []string{"Go", "TypeScript"}, m.Skills)
	require.Equal(t, "2022-01-01", FormatDate(m.CreatedAt))
	require.True(t, m.UpdatedAt.IsZero())
	require.Equal(t, map[string]any{"tags": []any{"a"}, "draft": true}, m.Extra)

	m = MetadataFromFields(map[string]any{"work": "Lab", "employer": "ACME"})
	require.Equal(t, "Lab", m.Work)
}

func TestMetadata_MarshalJSON(t *testing.T) {
	m := Metadata{
		Title:     "T",
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Skills:    []string{"Go"},
		Extra:     map[string]any{"tags": []string{"x"}},
	}
	data, err := json.Marshal(m)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	require.Equal(t, "T", got["title"])
	require.Equal(t, "", got["summary"])
	require.Equal(t, "2024-01-02T03:04:05Z", got["createdAt"])
	require.Equal(t, []any{"Go"}, got["skills"])
	require.Equal(t, []any{"x"}, got["tags"])
	require.NotContains(t, got, "updatedAt")
	require.NotContains(t, got, "image")
}

func TestFingerprint_StableAcrossKeyOrder(t *testing.T) {
	a := Fingerprint(map[string]any{"title": "x", "summary": "y"}, []byte("body"))
	b := Fingerprint(map[string]any{"summary": "y", "title": "x"}, []byte("body"))
	require.Equal(t, a, b)
	require.NotEmpty(t, a)
	require.NotEqual(t, a, Fingerprint(map[string]any{"title": "x"}, []byte("body")))
	require.NotEqual(t, a, Fingerprint(map[string]any{"title": "x", "summary": "y"}, []byte("other")))
}
