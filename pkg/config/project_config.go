package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectConfig 项目文件数据结构
//
// 一个项目对应一张长图及其播放方式。示例：
//
//	image: assets/scroll_painting.png
//	background: "#1a1a2e"
//	entryAnimation:
//	  enabled: true
//	  cardBoundaries: [0, 1200, 1200, 2600, 2600, 4100]
//	  cardAnimations: [fade, slideUp, zoomIn]
//	  duration: 0.5
//	  staggerDelay: 0.1
//	scroll:
//	  duration: 20
//	  loop:
//	    enabled: true
//	    count: 3
//	    intervalTime: 2
type ProjectConfig struct {
	Image string `yaml:"image"` // 源图路径（PNG/JPEG，或 PDF 横向拼接）
	DPI   int    `yaml:"dpi"`   // PDF 渲染 DPI，默认 150（仅 PDF 源生效）

	Background string `yaml:"background"` // 画布背景色，如 "#1a1a2e"，默认深色

	Entry  EntryAnimationConfig `yaml:"entryAnimation"` // 入场动画配置
	Scroll ScrollConfig         `yaml:"scroll"`         // 滚动与循环配置
}

// LoadProjectConfig 从YAML文件加载项目配置
//
// 加载顺序：读取 → 解析 → 应用默认值 → 校验（fail fast）。
// 图像路径相对于项目文件所在目录解析。
func LoadProjectConfig(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project config file %s: %w", path, err)
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse project config YAML from %s: %w", path, err)
	}

	applyProjectDefaults(&cfg)

	if result := ValidateProjectConfig(&cfg); !result.IsValid {
		return nil, fmt.Errorf("invalid project config in %s: %v", path, result.Errors)
	}

	// 图像路径相对项目文件解析
	if cfg.Image != "" && !filepath.IsAbs(cfg.Image) {
		cfg.Image = filepath.Join(filepath.Dir(path), cfg.Image)
	}

	return &cfg, nil
}

// applyProjectDefaults 应用默认值（向后兼容性）
func applyProjectDefaults(cfg *ProjectConfig) {
	if cfg.DPI == 0 {
		cfg.DPI = 150
	}
	if cfg.Background == "" {
		cfg.Background = "#1a1a2e"
	}
	applyEntryDefaults(&cfg.Entry)
	applyScrollDefaults(&cfg.Scroll)
}

// ValidateProjectConfig 校验项目配置（聚合各子配置的校验结果）
func ValidateProjectConfig(cfg *ProjectConfig) ValidationResult {
	result := validResult()

	if cfg.Image == "" {
		result.merge(invalidResult("image path is required"))
	}
	if cfg.DPI < 36 || cfg.DPI > 600 {
		result.merge(invalidResult("dpi must be within [36, 600], got %d", cfg.DPI))
	}

	result.merge(ValidateEntryAnimationConfig(&cfg.Entry))
	result.merge(ValidateScrollConfig(&cfg.Scroll))

	return result
}
