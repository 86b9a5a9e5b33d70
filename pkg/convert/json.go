// Package convert 提供结构体与 JSON 之间的转换
package convert

import (
	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
)

// api 与 encoding/json 行为一致，输出键按字段顺序
var api = sonic.ConfigStd

// ToJSON 序列化为 JSON，indent 为真时缩进两个空格
func ToJSON(v any, indent bool) ([]byte, error) {
	var (
		b   []byte
		err error
	)
	if indent {
		b, err = api.MarshalIndent(v, "", "  ")
	} else {
		b, err = api.Marshal(v)
	}
	if err != nil {
		return nil, errors.Wrap(err, "marshal json failed")
	}
	return b, nil
}
