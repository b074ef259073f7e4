package model

import (
	"encoding/json"
)

// Nullable 区分"字段未出现"与"显式传null"的可选字段
// 部分更新接口需要这个区别：缺省表示不改，null表示清空
type Nullable[T any] struct {
	Set   bool // 请求中出现过该字段
	Valid bool // 值不是null
	Value T
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, &n.Value); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}
