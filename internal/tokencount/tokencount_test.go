package tokencount

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeuristicCount_CJKAndLatin(t *testing.T) {
	// 4 CJK chars -> ceil(4/1.5)=3; "test" 4 latin chars -> ceil(4/4)=1.
	n := HeuristicCount("订单列表test")
	assert.Equal(t, 4, n)
}

func TestHeuristicCount_Empty(t *testing.T) {
	assert.Equal(t, 0, HeuristicCount(""))
}

func TestCounter_FallsBackWhenNoEncoding(t *testing.T) {
	c := &Counter{} // no tokenizer loaded
	n := c.Count("订单列表分页")
	assert.Equal(t, HeuristicCount("订单列表分页"), n)
}
