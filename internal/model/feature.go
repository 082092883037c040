package model

import "encoding/json"

// Feature 单个命名特征
type Feature struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// FeatureVector 扁平、有序的特征列表，列顺序即模型输入顺序
type FeatureVector struct {
	Features []Feature `json:"features"`
	index    map[string]int
}

// NewFeatureVector 按给定列名预置全零向量，保证列集合与顺序固定
func NewFeatureVector(columns []string) *FeatureVector {
	v := &FeatureVector{
		Features: make([]Feature, 0, len(columns)),
		index:    make(map[string]int, len(columns)),
	}
	for _, c := range columns {
		v.index[c] = len(v.Features)
		v.Features = append(v.Features, Feature{Name: c})
	}
	return v
}

// Set 写入特征值；未预置的列追加到末尾
func (v *FeatureVector) Set(name string, value float64) {
	if v.index == nil {
		v.index = make(map[string]int)
		for i, f := range v.Features {
			v.index[f.Name] = i
		}
	}
	if i, ok := v.index[name]; ok {
		v.Features[i].Value = value
		return
	}
	v.index[name] = len(v.Features)
	v.Features = append(v.Features, Feature{Name: name, Value: value})
}

// Get 读取特征值
func (v *FeatureVector) Get(name string) (float64, bool) {
	if v.index != nil {
		if i, ok := v.index[name]; ok && i < len(v.Features) && v.Features[i].Name == name {
			return v.Features[i].Value, true
		}
	}
	for _, f := range v.Features {
		if f.Name == name {
			return f.Value, true
		}
	}
	return 0, false
}

// Value 读取特征值，不存在返回 0
func (v *FeatureVector) Value(name string) float64 {
	val, _ := v.Get(name)
	return val
}

// Names 列名（有序）
func (v *FeatureVector) Names() []string {
	names := make([]string, len(v.Features))
	for i, f := range v.Features {
		names[i] = f.Name
	}
	return names
}

// Map 转为 name→value，供外部分类器使用
func (v *FeatureVector) Map() map[string]float64 {
	m := make(map[string]float64, len(v.Features))
	for _, f := range v.Features {
		m[f.Name] = f.Value
	}
	return m
}

// MarshalJSON 输出扁平对象，而不是 {name,value} 数组
func (v *FeatureVector) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Map())
}
