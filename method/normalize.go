package method

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NormalizeProductID 规范化商品ID，字符串和数字类型统一处理
// 字符串去除首尾空白；数学上为整数的浮点值（如1001.0）渲染为整数文本；
// 其他数字按默认十进制文本渲染；其余类型转字符串后去空白
// 满足 NormalizeProductID(NormalizeProductID(x)) == NormalizeProductID(x)
func NormalizeProductID(value interface{}) string {
	if value == nil {
		return ""
	}

	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		// 整数值的浮点数去掉.0
		if !math.IsNaN(v) && !math.IsInf(v, 0) && v == math.Trunc(v) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return NormalizeProductID(float64(v))
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

// 无选项的同义词集合，统一归一为空字符串
var noOptionSynonyms = map[string]bool{
	"단일":   true,
	"기본옵션": true,
	"선택안함": true,
	"null": true,
	"none": true,
	"없음":   true,
}

// NormalizeOptionInfo 规范化옵션정보，空白和"无选项"同义词统一为空字符串
func NormalizeOptionInfo(value string) string {
	valueStr := strings.TrimSpace(value)
	if valueStr == "" {
		return ""
	}
	if noOptionSynonyms[strings.ToLower(valueStr)] {
		return ""
	}
	return valueStr
}
