package dupkey

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFind_NoDuplicates(t *testing.T) {
	got, err := Find([]byte(`{"a":1,"b":{"a":2},"c":[{"a":1},{"a":2}]}`), 0)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestFind_ReportsPointer(t *testing.T) {
	data := []byte(`{
		"name": "survey",
		"types": [
			{"name": "survey:A", "kind": "integer"},
			{"name": "survey:B", "base": "xs:integer", "maxInclusive": "9", "maxInclusive": "99"}
		]
	}`)
	got, err := Find(data, 0)
	require.NoError(t, err)
	require.Equal(t, []Duplicate{{Path: "/types/1/maxInclusive", Key: "maxInclusive"}}, got)
}

func TestFind_EscapesAndLimit(t *testing.T) {
	got, err := Find([]byte(`{"a/b":1,"a/b":2,"x~":1,"x~":2}`), 0)
	require.NoError(t, err)
	require.Equal(t, []Duplicate{{Path: "/a~1b", Key: "a/b"}, {Path: "/x~0", Key: "x~"}}, got)

	got, err = Find([]byte(`{"a":1,"a":2,"b":1,"b":2}`), 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestFind_ValuesAreNotKeys(t *testing.T) {
	got, err := Find([]byte(`{"a":"b","b":"a","list":["x","x"]}`), 0)
	require.NoError(t, err)
	require.Empty(t, got)
}
