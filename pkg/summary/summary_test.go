package summary

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/app-sre/tabqa/pkg/table"
)

func TestText(t *testing.T) {
	t.Parallel()

	cases := []struct {
		description string
		given       string
		want        string
		error       bool
		message     string
	}{
		{
			"single part with markdown emphasis",
			`{"Candidates":[{"Content":{"Parts":["Hello *world*"]}}]}`,
			`Hello world`,
			false,
			``,
		},
		{
			"several parts joined with a space",
			`{"Candidates":[{"Content":{"Parts":["**Total**:","22 units."]}}]}`,
			`Total: 22 units.`,
			false,
			``,
		},
		{
			"only the first candidate is used",
			`{"Candidates":[{"Content":{"Parts":["first"]}},{"Content":{"Parts":["second"]}}]}`,
			`first`,
			false,
			``,
		},
		{
			"candidate without parts",
			`{"Candidates":[{"Content":{"Parts":[]}}]}`,
			``,
			false,
			``,
		},
		{
			"no candidates",
			`{"Candidates":[]}`,
			``,
			true,
			`summary without candidates`,
		},
		{
			"malformed JSON",
			`{"Candidates":`,
			``,
			true,
			`unable to unmarshal summary`,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()

			actual, err := Text(tc.given)

			if tc.error {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.message)
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, tc.want, actual)
		})
	}
}

func TestEncode(t *testing.T) {
	t.Parallel()

	r := &Response{Candidates: []Candidate{{Content: Content{Parts: []string{"Hello"}}}}}

	actual, err := r.Encode()

	require.NoError(t, err)
	assert.Equal(t, `{"Candidates":[{"Content":{"Parts":["Hello"]}}]}`, actual)
}

func TestPrompt(t *testing.T) {
	t.Parallel()

	tbl, err := table.ParseCSV(strings.NewReader("year,output\n2020,10\n"))
	require.NoError(t, err)

	actual := Prompt(tbl, "What was the output in 2020?")

	assert.Equal(t, "Given the following data:\n\nyear: 2020\noutput: 10\n\n\nWhat was the output in 2020?", actual)
}
