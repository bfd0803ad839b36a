package config

import "fmt"

// ValidationResult 配置校验结果
//
// IsValid 为 false 时 Errors 至少包含一条错误描述。
// 核心在公共 API 入口处对无效结果采取 fail-fast 策略，
// 不会把格式错误的配置带入播放流程再静默兜底。
type ValidationResult struct {
	IsValid bool
	Errors  []string
}

// validResult 返回通过校验的结果
func validResult() ValidationResult {
	return ValidationResult{IsValid: true}
}

// invalidResult 构造带格式化错误信息的失败结果
func invalidResult(format string, args ...interface{}) ValidationResult {
	return ValidationResult{
		IsValid: false,
		Errors:  []string{fmt.Sprintf(format, args...)},
	}
}

// merge 合并另一个校验结果
func (r *ValidationResult) merge(other ValidationResult) {
	if !other.IsValid {
		r.IsValid = false
		r.Errors = append(r.Errors, other.Errors...)
	}
}

// Err 将校验结果转换为 error（有效时返回 nil）
func (r ValidationResult) Err() error {
	if r.IsValid {
		return nil
	}
	return fmt.Errorf("invalid config: %v", r.Errors)
}
