package lusha

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// One test per response shape the API has been observed to return.

func TestFirstArray_BareArray(t *testing.T) {
	t.Parallel()

	got := firstArray([]byte(`[{"id":"1"},{"id":"2"}]`), "companies", "data", "results")
	assert.Len(t, got, 2)
}

func TestFirstArray_CompaniesKey(t *testing.T) {
	t.Parallel()

	got := firstArray([]byte(`{"companies":[{"id":"1"}],"total":1}`), "companies", "data", "results")
	require.Len(t, got, 1)
	assert.JSONEq(t, `{"id":"1"}`, string(got[0]))
}

func TestFirstArray_DataKey(t *testing.T) {
	t.Parallel()

	got := firstArray([]byte(`{"data":[{"id":"1"}]}`), "companies", "data", "results")
	assert.Len(t, got, 1)
}

func TestFirstArray_ResultsKey(t *testing.T) {
	t.Parallel()

	got := firstArray([]byte(`{"results":[{"id":"1"}]}`), "companies", "data", "results")
	assert.Len(t, got, 1)
}

func TestFirstArray_KeyPriority(t *testing.T) {
	t.Parallel()

	// When several candidate keys exist, the first listed key wins.
	got := firstArray([]byte(`{"data":[{"id":"d"}],"companies":[{"id":"c1"},{"id":"c2"}]}`), "companies", "data")
	assert.Len(t, got, 2)
}

func TestFirstArray_NonArrayKeySkipped(t *testing.T) {
	t.Parallel()

	got := firstArray([]byte(`{"companies":"oops","data":[{"id":"1"}]}`), "companies", "data")
	assert.Len(t, got, 1)
}

func TestFirstArray_NoMatch(t *testing.T) {
	t.Parallel()

	assert.Nil(t, firstArray([]byte(`{"total":0}`), "companies", "data", "results"))
	assert.Nil(t, firstArray([]byte(`not json`), "companies"))
}
