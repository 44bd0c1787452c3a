package collection_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"autonuoma/pkg/collection"
)

func TestMap(t *testing.T) {
	got := collection.Map([]int{1, 2, 3}, strconv.Itoa)
	assert.Equal(t, []string{"1", "2", "3"}, got)

	assert.Empty(t, collection.Map(nil, strconv.Itoa))
}

func TestFilter(t *testing.T) {
	even := func(n int) bool { return n%2 == 0 }

	assert.Equal(t, []int{2, 4}, collection.Filter([]int{1, 2, 3, 4}, even))
	assert.Nil(t, collection.Filter([]int{1, 3}, even))
}

func TestFlattenPreservesOrder(t *testing.T) {
	got := collection.Flatten([][]int{{1, 2}, nil, {3}, {4, 5}})
	assert.Equal(t, []int{1, 2, 3, 4, 5}, got)
}

func TestContains(t *testing.T) {
	assert.True(t, collection.Contains([]string{"suv", "wagon"}, "suv"))
	assert.False(t, collection.Contains([]string{"suv"}, "sedan"))
}
