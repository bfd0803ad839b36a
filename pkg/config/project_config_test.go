package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeProjectFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "project.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp config: %v", err)
	}
	return path
}

// TestLoadProjectConfig tests the full load pipeline: parse, defaults, validation.
func TestLoadProjectConfig(t *testing.T) {
	path := writeProjectFile(t, `
image: assets/painting.png
entryAnimation:
  enabled: true
  cardBoundaries: [0, 1200, 1200, 2600]
  cardAnimations: [fade, slideUp]
scroll:
  duration: 20
  loop:
    enabled: true
    count: 3
    intervalTime: 2
`)

	cfg, err := LoadProjectConfig(path)
	if err != nil {
		t.Fatalf("Expected successful load, got error: %v", err)
	}

	// 图像路径相对项目文件解析
	wantImage := filepath.Join(filepath.Dir(path), "assets", "painting.png")
	if cfg.Image != wantImage {
		t.Errorf("Expected image path %s, got %s", wantImage, cfg.Image)
	}

	// 默认值
	if cfg.DPI != 150 {
		t.Errorf("Expected default DPI 150, got %d", cfg.DPI)
	}
	if cfg.Background != "#1a1a2e" {
		t.Errorf("Expected default background #1a1a2e, got %s", cfg.Background)
	}
	if cfg.Entry.Duration != 0.5 {
		t.Errorf("Expected default entry duration 0.5, got %v", cfg.Entry.Duration)
	}
	if cfg.Entry.StaggerDelay != 0.1 {
		t.Errorf("Expected default stagger delay 0.1, got %v", cfg.Entry.StaggerDelay)
	}

	if cfg.Scroll.Duration != 20 {
		t.Errorf("Expected scroll duration 20, got %v", cfg.Scroll.Duration)
	}
	if !cfg.Scroll.Loop.Enabled || cfg.Scroll.Loop.Count != 3 || cfg.Scroll.Loop.IntervalTime != 2 {
		t.Errorf("Unexpected loop config: %+v", cfg.Scroll.Loop)
	}
	if cfg.Entry.CardCount() != 2 {
		t.Errorf("Expected 2 cards, got %d", cfg.Entry.CardCount())
	}
}

// TestLoadProjectConfigAbsoluteImage tests absolute image paths stay untouched.
func TestLoadProjectConfigAbsoluteImage(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "painting.png")
	path := writeProjectFile(t, "image: "+abs+"\n")

	cfg, err := LoadProjectConfig(path)
	if err != nil {
		t.Fatalf("Expected successful load, got error: %v", err)
	}
	if cfg.Image != abs {
		t.Errorf("Expected absolute path preserved, got %s", cfg.Image)
	}
}

// TestLoadProjectConfigFailFast tests that invalid configs fail at load time.
func TestLoadProjectConfigFailFast(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errPart string
	}{
		{
			name:    "缺少图像路径",
			content: "scroll:\n  duration: 10\n",
			errPart: "image path is required",
		},
		{
			name:    "DPI超出范围",
			content: "image: a.png\ndpi: 1200\n",
			errPart: "dpi must be within",
		},
		{
			name: "入场配置非法",
			content: `
image: a.png
entryAnimation:
  enabled: true
  cardBoundaries: [500, 100]
`,
			errPart: "left < right",
		},
		{
			name:    "YAML语法错误",
			content: "image: [unclosed\n",
			errPart: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeProjectFile(t, tt.content)
			_, err := LoadProjectConfig(path)
			if err == nil {
				t.Fatal("Expected load error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errPart) {
				t.Errorf("Expected error containing %q, got: %v", tt.errPart, err)
			}
		})
	}
}

// TestLoadProjectConfigMissingFile tests the read error path.
func TestLoadProjectConfigMissingFile(t *testing.T) {
	_, err := LoadProjectConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("Expected error for missing file, got nil")
	}
	if !strings.Contains(err.Error(), "failed to read") {
		t.Errorf("Expected read error, got: %v", err)
	}
}
