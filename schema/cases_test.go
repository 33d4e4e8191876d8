package schema_test

import (
	"testing"
	"time"

	"github.com/huangsam/spans/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCheckCases(t *testing.T) {
	data := []byte(`
- given:
    test_input:
      interval_1: ["2010-01-12 10:00:00", "2010-01-12 12:00:00"]
      interval_2: ["2010-01-12 10:30:00", "2010-01-12 10:45:00", 2, 60]
    expected:
      - ["2010-01-12 10:30:00", "2010-01-12 10:37:00"]
      - ["2010-01-12 10:38:00", "2010-01-12 10:45:00"]
- class:
    test_input:
      interval_1: ["2019-10-31 10:00:00", "2019-10-31 13:00:00"]
      interval_2: ["2019-10-31 10:05:00", "2019-10-31 12:55:00", 3, "10m"]
    expected: interval_2
- none:
    test_input:
      interval_1: ["2019-01-01 00:00:00", "2019-01-01 23:50:00"]
      interval_2: ["2019-01-02 00:30:00", "2019-01-02 23:55:00"]
    expected: []
`)

	cases, err := schema.ParseCheckCases(data)
	require.NoError(t, err)
	require.Len(t, cases, 3)

	assert.Equal(t, "given", cases[0].Name)
	assert.Equal(t, 2, cases[0].Short.Count)
	assert.Equal(t, time.Minute, cases[0].Short.Gap)
	assert.Len(t, cases[0].Expected, 2)
	assert.Empty(t, cases[0].ExpectedRef)

	assert.Equal(t, "class", cases[1].Name)
	assert.Equal(t, schema.ShortInputName, cases[1].ExpectedRef)
	assert.Equal(t, 10*time.Minute, cases[1].Short.Gap)

	assert.Equal(t, "none", cases[2].Name)
	assert.NotNil(t, cases[2].Expected)
	assert.Empty(t, cases[2].Expected)
	assert.Zero(t, cases[2].Large.Count)
}

func TestParseCheckCasesErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"Not A List", `given: {}`},
		{"Two Names", `- {a: {}, b: {}}`},
		{"Missing Input", "- a:\n    test_input: {interval_1: [\"2010-01-12 10:00:00\", \"2010-01-12 12:00:00\"]}\n    expected: []"},
		{"Bad Reference", "- a:\n    test_input:\n      interval_1: [\"2010-01-12 10:00:00\", \"2010-01-12 12:00:00\"]\n      interval_2: [\"2010-01-12 10:00:00\", \"2010-01-12 12:00:00\"]\n    expected: interval_3"},
		{"Bad Pair", "- a:\n    test_input:\n      interval_1: [\"2010-01-12 10:00:00\", \"2010-01-12 12:00:00\"]\n      interval_2: [\"2010-01-12 10:00:00\", \"2010-01-12 12:00:00\"]\n    expected: [[\"2010-01-12 10:00:00\"]]"},
		{"Bad Timestamp", "- a:\n    test_input:\n      interval_1: [\"noon\", \"2010-01-12 12:00:00\"]\n      interval_2: [\"2010-01-12 10:00:00\", \"2010-01-12 12:00:00\"]\n    expected: []"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := schema.ParseCheckCases([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestParseCheckCasesGaps(t *testing.T) {
	caseWithGap := func(gap string) []byte {
		return []byte("- a:\n    test_input:\n      interval_1: [\"2010-01-12 10:00:00\", \"2010-01-12 12:00:00\"]\n" +
			"      interval_2: [\"2010-01-12 10:00:00\", \"2010-01-12 12:00:00\", 2, " + gap + "]\n    expected: interval_2")
	}

	tests := []struct {
		name        string
		gap         string
		expected    time.Duration
		expectError bool
	}{
		{"Seconds", "600", 10 * time.Minute, false},
		{"Go Duration", `"10m"`, 10 * time.Minute, false},
		{"Human Duration", `"10 minutes"`, 10 * time.Minute, false},
		{"Negative", "-1", 0, true},
		{"NaN", `"NaN"`, 0, true},
		{"Beyond Duration Range", "5000000000000", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cases, err := schema.ParseCheckCases(caseWithGap(tt.gap))
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Len(t, cases, 1)
			assert.Equal(t, tt.expected, cases[0].Short.Gap)
		})
	}
}

func TestParseCheckCasesHugeGapFailsBuild(t *testing.T) {
	data := []byte("- a:\n    test_input:\n      interval_1: [\"2019-01-01 00:00:00\", \"2019-01-01 01:00:00\"]\n" +
		"      interval_2: [\"2019-01-01 00:00:00\", \"2019-01-01 01:00:00\", 3, 5000000000]\n    expected: []")

	cases, err := schema.ParseCheckCases(data)
	require.NoError(t, err)
	require.Len(t, cases, 1)

	_, err = cases[0].Short.Build()
	assert.ErrorIs(t, err, schema.ErrInvalidRange)
}
