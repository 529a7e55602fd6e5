//go:build ci

// CI 环境没有音频设备，全部空实现。
package sound

type SoundManager struct{}

func NewSoundManager() *SoundManager {
	return &SoundManager{}
}

func (sm *SoundManager) Init() error {
	return nil
}

func (sm *SoundManager) Play(name string) {}

func (sm *SoundManager) Close() {}
