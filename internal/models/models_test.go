package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoresValueAndScan(t *testing.T) {
	v, err := Scores(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "{}", v)

	var s Scores
	require.NoError(t, s.Scan([]byte(`{"Fluency":4,"Grammar":5}`)))
	assert.Equal(t, Scores{"Fluency": 4, "Grammar": 5}, s)

	require.NoError(t, s.Scan("not json"))
	assert.Equal(t, Scores{}, s)

	require.NoError(t, s.Scan(nil))
	assert.Equal(t, Scores{}, s)

	assert.Error(t, s.Scan(42))
}

func TestQuestionOptionsRoundTrip(t *testing.T) {
	opts := QuestionOptions{A: "yes", C: "maybe"}
	v, err := opts.Value()
	require.NoError(t, err)
	assert.Equal(t, `{"A":"yes","C":"maybe"}`, v)

	var decoded QuestionOptions
	require.NoError(t, decoded.Scan(v))
	assert.Equal(t, opts, decoded)

	require.NoError(t, decoded.Scan([]byte("{broken")))
	assert.True(t, decoded.IsEmpty())
}

func TestStringListScan(t *testing.T) {
	v, err := StringList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	var l StringList
	require.NoError(t, l.Scan(`["a","b"]`))
	assert.Equal(t, StringList{"a", "b"}, l)

	require.NoError(t, l.Scan(`null`))
	assert.Equal(t, StringList{}, l)

	require.NoError(t, l.Scan(`{"a":1}`))
	assert.Equal(t, StringList{}, l)
}

func TestSessionListItemHasReport(t *testing.T) {
	id := "r1"
	empty := ""
	assert.True(t, SessionListItem{ReportID: &id}.HasReport())
	assert.False(t, SessionListItem{ReportID: &empty}.HasReport())
	assert.False(t, SessionListItem{}.HasReport())
}
