package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"A", "B"}, SplitList("A; B ; "))
	assert.Equal(t, []string{"Zhang, Wei", "Li, Na"}, SplitList("Zhang, Wei; Li, Na"))
	assert.Equal(t, []string{}, SplitList(""))
	assert.Equal(t, []string{}, SplitList(" ; ; "))
}

func TestSplitList_Dedup(t *testing.T) {
	assert.Equal(t, []string{"A", "B"}, SplitList("A;B;A"))
}

func TestMergeTags_Union(t *testing.T) {
	tags := MergeTags("AI;ML", "ML;Data")

	// Exactly three distinct tags, ML not doubled. Order is unspecified.
	assert.Len(t, tags, 3)
	assert.ElementsMatch(t, []string{"AI", "ML", "Data"}, tags)
}

func TestMergeTags_Empty(t *testing.T) {
	assert.Equal(t, []string{}, MergeTags("", ""))
	assert.Equal(t, []string{"AI"}, MergeTags("AI", ""))
	assert.Equal(t, []string{"AI"}, MergeTags("", "AI"))
}
