package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeatureVectorGet(t *testing.T) {
	v := NewFeatureVector([]string{"form_diff", "goals_diff"})
	v.Set("goals_diff", 1.5)
	v.Set("extra", 2)

	got, ok := v.Get("goals_diff")
	assert.True(t, ok)
	assert.Equal(t, 1.5, got)

	got, ok = v.Get("extra")
	assert.True(t, ok)
	assert.Equal(t, 2.0, got)

	_, ok = v.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, []string{"form_diff", "goals_diff", "extra"}, v.Names())
}

func TestFeatureVectorGetWithoutIndex(t *testing.T) {
	// 反序列化得到的向量没有索引
	v := &FeatureVector{Features: []Feature{{Name: "form_diff", Value: 3}}}
	got, ok := v.Get("form_diff")
	assert.True(t, ok)
	assert.Equal(t, 3.0, got)

	v.Set("form_diff", 4)
	assert.Equal(t, 4.0, v.Value("form_diff"))
}
