// Package validator wraps go-playground/validator with translated messages
// Package validator 封装带翻译消息的参数验证
package validator

import (
	"reflect"
	"strings"

	"github.com/haierkeys/bonsai-keeper/pkg/timex"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	validatorV10 "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
)

// TagDate validates a dd.mm.yyyy date string
const TagDate = "ddmmyyyy"

// ValidError is one failed field with its translated message
// ValidError 单个字段的验证错误
type ValidError struct {
	Key     string
	Message string
}

func (v *ValidError) Error() string {
	return v.Message
}

// ValidErrors 验证错误集合
type ValidErrors []*ValidError

func (v ValidErrors) Error() string {
	return strings.Join(v.Errors(), ", ")
}

// Errors 返回所有错误消息
func (v ValidErrors) Errors() []string {
	var errs []string
	for _, err := range v {
		errs = append(errs, err.Error())
	}
	return errs
}

// Validator validates structs and translates failures into one language
// Validator 验证结构体并将错误翻译为指定语言
type Validator struct {
	Validate *validatorV10.Validate
	Uni      *ut.UniversalTranslator
	trans    ut.Translator
}

// New builds a validator whose messages use lang ("en" or "zh", "zh_cn"); unknown falls back to en
// New 创建验证器，lang 不支持时回退到英文
func New(lang string) (*Validator, error) {
	validate := validatorV10.New()

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("label"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	if err := validate.RegisterValidation(TagDate, func(fl validatorV10.FieldLevel) bool {
		d, err := timex.ParseDate(fl.Field().String())
		return err == nil && d.IsSet()
	}); err != nil {
		return nil, err
	}

	uni := ut.New(en.New(), en.New(), zh.New())

	zhTran, _ := uni.GetTranslator("zh")
	enTran, _ := uni.GetTranslator("en")

	if err := zh_translations.RegisterDefaultTranslations(validate, zhTran); err != nil {
		return nil, err
	}
	if err := en_translations.RegisterDefaultTranslations(validate, enTran); err != nil {
		return nil, err
	}

	// 自定义标签的翻译
	if err := registerDateTranslation(validate, enTran, "{0} must be a date like 24.12.2023"); err != nil {
		return nil, err
	}
	if err := registerDateTranslation(validate, zhTran, "{0}必须是形如 24.12.2023 的日期"); err != nil {
		return nil, err
	}

	trans := enTran
	if strings.HasPrefix(strings.ToLower(lang), "zh") {
		trans = zhTran
	}
	return &Validator{Validate: validate, Uni: uni, trans: trans}, nil
}

func registerDateTranslation(v *validatorV10.Validate, trans ut.Translator, text string) error {
	return v.RegisterTranslation(TagDate, trans,
		func(ut ut.Translator) error {
			return ut.Add(TagDate, text, true)
		},
		func(ut ut.Translator, fe validatorV10.FieldError) string {
			t, _ := ut.T(TagDate, fe.Field())
			return t
		},
	)
}

// Struct validates obj; failures come back as ValidErrors with translated messages
// Struct 验证结构体，失败时返回翻译后的 ValidErrors
func (v *Validator) Struct(obj any) error {
	err := v.Validate.Struct(obj)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validatorV10.ValidationErrors)
	if !ok {
		return err
	}

	var errs ValidErrors
	// 遍历验证错误并进行翻译
	for _, validationErr := range validationErrors {
		errs = append(errs, &ValidError{
			Key:     validationErr.Field(),
			Message: validationErr.Translate(v.trans),
		})
	}
	return errs
}
