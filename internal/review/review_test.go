// File: internal/review/review_test.go
package review

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validInput = `
[GENERAL]
signin.url = https://example.awsapps.com/start
outDir = /tmp/reviews

[WAR]
name = demo-workload
description = Demo workload for testing
industryType = InfoTech
industry = Social Protection
environment = Production
regions = us-east-1, eu-west-1
accountIDs = 123456789012
milestone = initial

[QUESTION 1]
doNotApply = False
notes = operational review notes
1 = True
2 = False
3 = True

[QUESTION 2]
doNotApply = True

[QUESTION 3]
2 = True
`

func TestLoadBytes(t *testing.T) {
	t.Run("parses a complete file", func(t *testing.T) {
		rev, err := LoadBytes([]byte(validInput))
		require.NoError(t, err)

		assert.Equal(t, "https://example.awsapps.com/start", rev.SignInURL)
		assert.Equal(t, "/tmp/reviews", rev.OutDir)
		assert.Equal(t, "demo-workload", rev.Workload.Name)
		assert.Equal(t, "InfoTech", rev.Workload.IndustryType)
		assert.Equal(t, "Production", rev.Workload.Environment)
		assert.Equal(t, []string{"us-east-1", "eu-west-1"}, rev.Workload.Regions)
		assert.Equal(t, []string{"123456789012"}, rev.Workload.AccountIDs)
		assert.Equal(t, "initial", rev.Workload.Milestone)
		require.Len(t, rev.Questions, 3)
	})

	t.Run("preserves question order", func(t *testing.T) {
		rev, err := LoadBytes([]byte(validInput))
		require.NoError(t, err)

		sections := make([]string, 0, len(rev.Questions))
		for _, q := range rev.Questions {
			sections = append(sections, q.Section)
		}
		assert.Equal(t, []string{"QUESTION 1", "QUESTION 2", "QUESTION 3"}, sections)
	})

	t.Run("parses answers and flags", func(t *testing.T) {
		rev, err := LoadBytes([]byte(validInput))
		require.NoError(t, err)

		q1 := rev.Questions[0]
		assert.False(t, q1.DoesNotApply)
		assert.Equal(t, "operational review notes", q1.Notes)
		assert.Equal(t, []int{1, 3}, q1.AnswerIndices())

		q2 := rev.Questions[1]
		assert.True(t, q2.DoesNotApply)
		assert.Empty(t, q2.AnswerIndices())

		assert.Equal(t, []int{2}, rev.Questions[2].AnswerIndices())
	})

	t.Run("missing GENERAL section", func(t *testing.T) {
		input := strings.Replace(validInput, "[GENERAL]", "[OTHER]", 1)
		_, err := LoadBytes([]byte(input))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Contains(t, err.Error(), "GENERAL")
	})

	t.Run("missing signin url", func(t *testing.T) {
		input := strings.Replace(validInput, "signin.url = https://example.awsapps.com/start", "signin.url =", 1)
		_, err := LoadBytes([]byte(input))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Contains(t, err.Error(), "signin.url")
	})

	t.Run("missing workload key names the key", func(t *testing.T) {
		input := strings.Replace(validInput, "milestone = initial", "", 1)
		_, err := LoadBytes([]byte(input))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Contains(t, err.Error(), "milestone")
	})

	t.Run("empty mandatory value names the key", func(t *testing.T) {
		input := strings.Replace(validInput, "environment = Production", "environment =", 1)
		_, err := LoadBytes([]byte(input))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Contains(t, err.Error(), "environment")
	})

	t.Run("accountIDs may be empty", func(t *testing.T) {
		input := strings.Replace(validInput, "accountIDs = 123456789012", "accountIDs =", 1)
		rev, err := LoadBytes([]byte(input))
		require.NoError(t, err)
		assert.Empty(t, rev.Workload.AccountIDs)
	})

	t.Run("non-numeric answer key", func(t *testing.T) {
		input := strings.Replace(validInput, "2 = True\n", "two = True\n", 1)
		_, err := LoadBytes([]byte(input))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Contains(t, err.Error(), "numbering")
	})

	t.Run("non-boolean answer value", func(t *testing.T) {
		input := strings.Replace(validInput, "1 = True", "1 = maybe", 1)
		_, err := LoadBytes([]byte(input))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("no question sections", func(t *testing.T) {
		idx := strings.Index(validInput, "[QUESTION 1]")
		_, err := LoadBytes([]byte(validInput[:idx]))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Contains(t, err.Error(), "QUESTION")
	})

	t.Run("zero answer key is rejected", func(t *testing.T) {
		input := validInput + "\n[QUESTION 4]\n0 = True\n"
		_, err := LoadBytes([]byte(input))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("garbage is an invalid input error", func(t *testing.T) {
		_, err := LoadBytes([]byte("not an ini file ["))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidInput))
	})
}

func TestIsValidAccountID(t *testing.T) {
	cases := []struct {
		id    string
		valid bool
	}{
		{"123456789012", true},
		{"000000000000", true},
		{"12345678901", false},
		{"1234567890123", false},
		{"12345678901a", false},
		{"", false},
		{"１２３４５６７８９０１２", false},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.valid, IsValidAccountID(tc.id), "id %q", tc.id)
	}
}

func TestFirstInvalidAccountID(t *testing.T) {
	t.Run("all valid", func(t *testing.T) {
		_, found := FirstInvalidAccountID([]string{"123456789012", "210987654321"})
		assert.False(t, found)
	})

	t.Run("reports the first bad token", func(t *testing.T) {
		bad, found := FirstInvalidAccountID([]string{"123456789012", "bogus", "also-bad"})
		require.True(t, found)
		assert.Equal(t, "bogus", bad)
	})

	t.Run("empty list", func(t *testing.T) {
		_, found := FirstInvalidAccountID(nil)
		assert.False(t, found)
	})
}
