package content

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iakhil/phronesis/internal/store/sqlite"
)

// fakeGen scripts the generator's replies and counts calls.
type fakeGen struct {
	reply string
	err   error
	calls int
}

func (f *fakeGen) Generate(_ context.Context, _ string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeGen) Configured() bool { return true }

func newMemStore(t *testing.T) *sqlite.DB {
	t.Helper()
	st, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.EnsureSchema(context.Background()))
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestGenerateSavesToCache(t *testing.T) {
	st := newMemStore(t)
	gen := &fakeGen{reply: "octopuses have three hearts"}
	svc := NewService(gen, st)

	item, err := svc.Generate(context.Background(), "Biology", "fact")
	require.NoError(t, err)
	assert.Equal(t, "octopuses have three hearts", item.Content)
	assert.Equal(t, "fact", item.Type)

	sc, err := st.LatestScrollContent(context.Background(), "Biology", "fact")
	require.NoError(t, err)
	assert.Equal(t, "octopuses have three hearts", sc.Content)
}

func TestGenerateServesCacheOnFailure(t *testing.T) {
	st := newMemStore(t)
	good := &fakeGen{reply: "cached fact"}
	svc := NewService(good, st)
	_, err := svc.Generate(context.Background(), "Biology", "fact")
	require.NoError(t, err)

	bad := &fakeGen{err: errors.New("upstream down")}
	svc = NewService(bad, st)
	item, err := svc.Generate(context.Background(), "Biology", "fact")
	require.NoError(t, err)
	assert.Equal(t, "cached fact", item.Content)
}

func TestGenerateFailureWithoutCache(t *testing.T) {
	svc := NewService(&fakeGen{err: errors.New("upstream down")}, nil)
	_, err := svc.Generate(context.Background(), "Biology", "fact")
	require.Error(t, err)
}

func TestGenerateDefaultsTypeToFact(t *testing.T) {
	gen := &fakeGen{reply: "x"}
	svc := NewService(gen, nil)
	item, err := svc.Generate(context.Background(), "Biology", "")
	require.NoError(t, err)
	assert.Equal(t, "fact", item.Type)
}

func TestCurriculumParsesFencedJSON(t *testing.T) {
	st := newMemStore(t)
	gen := &fakeGen{reply: "```json\n[{\"title\":\"Arrays\",\"level\":\"beginner\",\"description\":\"Contiguous storage\"}]\n```"}
	svc := NewService(gen, st)

	concepts, err := svc.Curriculum(context.Background(), "Data Structures")
	require.NoError(t, err)
	require.Len(t, concepts, 1)
	assert.Equal(t, "Arrays", concepts[0].Title)
	assert.Equal(t, "beginner", concepts[0].Level)

	// Second call must be served from the cache, not the generator.
	_, err = svc.Curriculum(context.Background(), "Data Structures")
	require.NoError(t, err)
	assert.Equal(t, 1, gen.calls)
}

func TestCurriculumFallbackOnBadJSON(t *testing.T) {
	gen := &fakeGen{reply: "sorry, I cannot help with that"}
	svc := NewService(gen, nil)

	concepts, err := svc.Curriculum(context.Background(), "Computer Networks")
	require.NoError(t, err)
	assert.Equal(t, FallbackCurriculum("Computer Networks"), concepts)
}

func TestCurriculumFallbackOnGeneratorError(t *testing.T) {
	gen := &fakeGen{err: errors.New("quota")}
	svc := NewService(gen, nil)

	concepts, err := svc.Curriculum(context.Background(), "Operating Systems")
	require.NoError(t, err)
	require.Len(t, concepts, 4)
	assert.Contains(t, concepts[0].Description, "Operating Systems")
}

func TestSummaryPassesThrough(t *testing.T) {
	svc := NewService(&fakeGen{reply: "short and sweet"}, nil)
	got, err := svc.Summary(context.Background(), "Quantum Physics")
	require.NoError(t, err)
	assert.Equal(t, "short and sweet", got)
}

func TestStripCodeFences(t *testing.T) {
	cases := map[string]string{
		"[1,2]":                         "[1,2]",
		"```json\n[1,2]\n```":           "[1,2]",
		"```\n[1,2]\n```":               "[1,2]",
		"Here you go:\n```json\n[]\n```": "[]",
	}
	for in, want := range cases {
		assert.Equal(t, want, stripCodeFences(in), "input %q", in)
	}
}
