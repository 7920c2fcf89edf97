package cyutil

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/spf13/cast"
)

func ToJson[T any](d T) (string, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func FromJson[T any](b string) (*T, error) {
	var v T
	err := json.Unmarshal([]byte(b), &v)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func ToStr(value interface{}) string {
	if value == nil {
		return ""
	}
	if reflect.TypeOf(value).Kind() == reflect.Map ||
		reflect.TypeOf(value).Kind() == reflect.Slice {
		r, _ := ToJson(value)
		return r
	}
	v, err := cast.ToStringE(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return v
}

var ToString = ToStr

func ToInt(value interface{}) int {
	v, err := cast.ToIntE(value)
	if err != nil {
		return 0
	}
	return v
}

func ToInt64(value interface{}) int64 {
	v, err := cast.ToInt64E(value)
	if err != nil {
		return 0
	}
	return v
}

func ToFloat64(value interface{}) float64 {
	v, err := cast.ToFloat64E(value)
	if err != nil {
		return 0
	}
	return v
}

func ToBool(value interface{}) bool {
	v, err := cast.ToBoolE(value)
	if err != nil {
		return false
	}
	return v
}

func Ptr[T any](v T) *T {
	return &v
}

func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if !unicode.IsDigit(c) {
			return false
		}
	}
	return true
}

func GetStr(m map[string]interface{}, key string, igoreCase ...bool) string {
	if m == nil {
		return ""
	}
	keys := strings.Split(key, ".")
	v, _ := GetValue(m, keys, igoreCase...)
	return ToStr(v)
}

func GetInt(m map[string]interface{}, key string, igoreCase ...bool) int {
	if m == nil {
		return 0
	}
	keys := strings.Split(key, ".")
	v, _ := GetValue(m, keys, igoreCase...)
	if v == nil {
		return 0
	}
	return ToInt(v)
}

func GetInt64(m map[string]interface{}, key string, igoreCase ...bool) int64 {
	if m == nil {
		return 0
	}
	keys := strings.Split(key, ".")
	v, _ := GetValue(m, keys, igoreCase...)
	if v == nil {
		return 0
	}
	return ToInt64(v)
}

func GetFloat(m map[string]interface{}, key string, igoreCase ...bool) float64 {
	if m == nil {
		return 0
	}
	keys := strings.Split(key, ".")
	v, _ := GetValue(m, keys, igoreCase...)
	if v == nil {
		return 0
	}
	return ToFloat64(v)
}

func GetBool(m map[string]interface{}, key string, igoreCase ...bool) bool {
	if m == nil {
		return false
	}
	keys := strings.Split(key, ".")
	v, _ := GetValue(m, keys, igoreCase...)
	if v == nil {
		return false
	}
	return cast.ToBool(v)
}

func GetVal[T any](m map[string]interface{}, key string, igoreCase ...bool) T {
	if m == nil {
		return *new(T)
	}
	keys := strings.Split(key, ".")
	v, err := GetValue(m, keys, igoreCase...)
	if err != nil {
		return *new(T)
	}
	if v == nil {
		return *new(T)
	}
	return v.(T)
}

func SliceToAny[T any](s []T) []any {
	result := make([]any, len(s))
	for i, v := range s {
		result[i] = v
	}
	return result
}

func MergeMaps(m1 ...map[string]interface{}) map[string]interface{} {
	if len(m1) == 0 {
		return nil
	}
	if len(m1) == 1 {
		return m1[0]
	}
	result := make(map[string]interface{})
	for _, m := range m1 {
		for k, v := range m {
			result[k] = v
		}
	}
	return result
}
