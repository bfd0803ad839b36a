package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// AppSettings 跨会话保留的应用设置
//
// 注意：这些设置是全局的，不绑定到特定项目文件
type AppSettings struct {
	// 播放设置
	ReverseScroll   bool      `yaml:"reverseScroll"`   // 是否反向滚动（从右向左阅读的内容）
	LoopEnabled     bool      `yaml:"loopEnabled"`     // 是否循环播放
	LoopCount       int       `yaml:"loopCount"`       // 循环次数，0 表示无限
	LoopInterval    float64   `yaml:"loopInterval"`    // 循环间隔（秒）
	VariableEnabled bool      `yaml:"variableEnabled"` // 是否启用可变时长序列
	LoopDurations   []float64 `yaml:"loopDurations"`   // 每次循环的时长覆盖序列（秒）

	// 显示设置
	BackgroundColor string `yaml:"backgroundColor"` // 画布背景色，如 "#1a1a2e"
	Fullscreen      bool   `yaml:"fullscreen"`      // 启动时是否全屏
}

// DefaultSettings 返回默认设置
func DefaultSettings() *AppSettings {
	return &AppSettings{
		ReverseScroll:   false,
		LoopEnabled:     false,
		LoopCount:       0,
		LoopInterval:    2.0,
		VariableEnabled: false,
		BackgroundColor: "#1a1a2e",
		Fullscreen:      false,
	}
}

// SettingsManager 设置管理器
// 负责应用设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *AppSettings   // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 返回：
//   - *SettingsManager: 设置管理器实例
//   - error: 如果加载设置失败返回错误（不影响创建）
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	// 尝试加载已保存的设置
	if err := sm.Load(); err != nil {
		// 加载失败不是致命错误，使用默认设置
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm, nil
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或文件不存在，使用默认设置
func (sm *SettingsManager) Load() error {
	// 降级模式：无法持久化，使用默认设置
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	var loadedSettings AppSettings
	if err := yaml.Unmarshal(data, &loadedSettings); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	sm.settings = &loadedSettings
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *AppSettings {
	return sm.settings
}

// ApplyToState 将已保存的设置写入状态存储（启动时调用一次）
//
// 使用 Batch 合并写入，只触发一次下游通知。
func (sm *SettingsManager) ApplyToState(state *StateManager) {
	s := sm.settings
	state.Batch(func() {
		state.Set(StateScrollReverse, s.ReverseScroll)
		state.Set(StateLoopEnabled, s.LoopEnabled)
		state.Set(StateLoopCount, s.LoopCount)
		state.Set(StateLoopIntervalTime, s.LoopInterval)
		state.Set(StateLoopVariableEnabled, s.VariableEnabled)
		state.Set(StateLoopDurations, s.LoopDurations)
		state.Set(StateCanvasBackground, s.BackgroundColor)
	})
}

// CaptureFromState 从状态存储回读设置（退出前调用，随后 Save 持久化）
func (sm *SettingsManager) CaptureFromState(state *StateManager) {
	s := sm.settings
	s.ReverseScroll = state.GetBool(StateScrollReverse, s.ReverseScroll)
	s.LoopEnabled = state.GetBool(StateLoopEnabled, s.LoopEnabled)
	s.LoopCount = state.GetInt(StateLoopCount, s.LoopCount)
	s.LoopInterval = state.GetFloat(StateLoopIntervalTime, s.LoopInterval)
	s.VariableEnabled = state.GetBool(StateLoopVariableEnabled, s.VariableEnabled)
	if d := state.GetFloatSlice(StateLoopDurations); d != nil {
		s.LoopDurations = d
	}
	s.BackgroundColor = state.GetString(StateCanvasBackground, s.BackgroundColor)
}

// SetLoopInterval 设置循环间隔（秒），负值会被归零
//
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetLoopInterval(interval float64) {
	if interval < 0 {
		interval = 0
	}
	sm.settings.LoopInterval = interval
}

// SetFullscreen 设置全屏模式
//
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}
