package systems

import "time"

// Clock 提供当前时刻，默认为 time.Now
//
// 所有与暂停/恢复有关的墙钟运算都通过 Clock 读取时间，
// 测试中注入假时钟即可精确验证 elapsed/remaining 的计算。
type Clock func() time.Time

// SystemClock 真实系统时钟
func SystemClock() time.Time {
	return time.Now()
}
