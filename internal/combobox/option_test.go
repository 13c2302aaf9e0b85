package combobox

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Svelte", "svelte"},
		{"Ruby on Rails", "ruby-on-rails"},
		{"Spring   Boot", "spring-boot"},
		{"tab\there", "tab-here"},
		{"Next.js", "next.js"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.input))
		})
	}
}

func TestMergeSelection(t *testing.T) {
	opts := []Option{javascript, python}

	assert.Equal(t, opts, MergeSelection(opts, nil))
	assert.Equal(t, opts, MergeSelection(opts, &Option{Value: "python", Label: "Renamed"}))

	merged := MergeSelection(opts, &react)
	assert.Equal(t, []Option{javascript, python, react}, merged)
	assert.Len(t, opts, 2, "input must not be modified")

	assert.Equal(t, []Option{react}, MergeSelection(nil, &react))
}

func TestFilterOptions(t *testing.T) {
	opts := []Option{javascript, python, react, {Value: "typescript", Label: "TypeScript"}}

	assert.Equal(t, opts, FilterOptions(opts, ""))
	assert.Equal(t, []Option{javascript, {Value: "typescript", Label: "TypeScript"}}, FilterOptions(opts, "SCRIPT"))
	assert.Empty(t, FilterOptions(opts, "cobol"))
}

func TestContainsLabel(t *testing.T) {
	opts := []Option{javascript, python}
	assert.True(t, ContainsLabel(opts, "python"))
	assert.True(t, ContainsLabel(opts, "JAVASCRIPT"))
	assert.False(t, ContainsLabel(opts, "Java"))
}

func TestIndexOfAndSame(t *testing.T) {
	opts := []Option{javascript, python}
	assert.Equal(t, 1, IndexOf(opts, "python"))
	assert.Equal(t, -1, IndexOf(opts, "react"))
	assert.True(t, python.Same(Option{Value: "python"}))
	assert.False(t, python.Same(react))
}

func TestDeriveStatusPrecedence(t *testing.T) {
	tests := []struct {
		name string
		in   statusInputs
		want StatusKind
	}{
		{"searching beats error", statusInputs{searching: true, failed: true, query: "a", minChars: 1}, StatusSearching},
		{"error beats idle", statusInputs{failed: true, minChars: 1}, StatusError},
		{"idle when empty and unselected", statusInputs{minChars: 1}, StatusIdle},
		{"selection with empty text is not idle", statusInputs{hasSelection: true, minChars: 1}, StatusBelowThreshold},
		{"below threshold", statusInputs{query: "ab", minChars: 3}, StatusBelowThreshold},
		{"empty result", statusInputs{query: "abc", minChars: 3, settled: true}, StatusEmpty},
		{"no lookup completed yet", statusInputs{query: "abc", minChars: 3}, StatusPopulated},
		{"populated", statusInputs{query: "abc", minChars: 3, fetched: 2}, StatusPopulated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, deriveStatus(tt.in).Kind)
		})
	}
}

func TestStatusText(t *testing.T) {
	assert.Equal(t, MsgStartTyping, Status{Kind: StatusIdle}.Text("", 1))
	assert.Equal(t, MsgSearching, Status{Kind: StatusSearching}.Text("py", 1))
	assert.Equal(t, "boom", Status{Kind: StatusError, Message: "boom"}.Text("py", 1))
	assert.Equal(t, `No results for "zz".`, Status{Kind: StatusEmpty}.Text("zz", 1))
	assert.Equal(t, "Type at least 3 characters…", Status{Kind: StatusBelowThreshold}.Text("ab", 3))
	assert.Equal(t, "", Status{Kind: StatusBelowThreshold}.Text("", 1))
	assert.Equal(t, "", Status{Kind: StatusPopulated}.Text("py", 1))
	assert.Equal(t, "populated", StatusPopulated.String())
}
