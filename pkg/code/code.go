package code

import (
	"fmt"
	"strings"
)

// Code is a numbered, translatable error
// Code 带编号、可翻译的错误
type Code struct {
	// 错误码
	code int
	// 错误消息
	Lang lang
	// 错误详细信息
	details []string
	// 原始错误
	cause error
}

var codes = map[int]string{}

// NewError registers a new error code; duplicate numbers panic at init time
// NewError 注册新的错误码，重复编号在初始化时 panic
func NewError(code int, l lang) *Code {
	if _, ok := codes[code]; ok {
		panic(fmt.Sprintf("错误码 %d 已经存在，请更换一个", code))
	}
	codes[code] = l.GetMessage()
	return &Code{code: code, Lang: l}
}

// Clone 创建一个新的 Code 副本
func (e *Code) Clone() *Code {
	return &Code{
		code:    e.code,
		Lang:    e.Lang,
		details: append([]string(nil), e.details...),
		cause:   e.cause,
	}
}

func (e *Code) Error() string {
	if len(e.details) == 0 {
		return e.Msg()
	}
	return fmt.Sprintf("%s: %s", e.Msg(), strings.Join(e.details, "; "))
}

func (e *Code) Code() int {
	return e.code
}

func (e *Code) Msg() string {
	return e.Lang.GetMessage()
}

func (e *Code) Details() []string {
	return e.details
}

func (e *Code) HaveDetails() bool {
	return len(e.details) > 0
}

// WithDetails returns a copy carrying details; registered codes stay untouched
// WithDetails 返回带详情的副本，不修改已注册的全局错误码
func (e *Code) WithDetails(details ...string) *Code {
	c := e.Clone()
	c.details = append(c.details, details...)
	return c
}

// WithCause returns a copy wrapping the underlying error
// WithCause 返回包装原始错误的副本
func (e *Code) WithCause(err error) *Code {
	c := e.Clone()
	c.cause = err
	if err != nil {
		c.details = append(c.details, err.Error())
	}
	return c
}

// Unwrap exposes the wrapped cause to errors.Is/As
func (e *Code) Unwrap() error {
	return e.cause
}

// Is matches any copy of the same registered code
// Is 匹配同一注册错误码的任意副本
func (e *Code) Is(target error) bool {
	t, ok := target.(*Code)
	if !ok {
		return false
	}
	return t.code == e.code
}
