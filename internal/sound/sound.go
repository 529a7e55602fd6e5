//go:build !ci

// Package sound 加载并播放本地音效。
package sound

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

const soundDir = "assets/sounds"

// SoundManager 音效管理器，按文件名缓存解码后的音频
type SoundManager struct {
	buffers map[string]*beep.Buffer
	enabled bool
}

func NewSoundManager() *SoundManager {
	return &SoundManager{
		buffers: make(map[string]*beep.Buffer),
	}
}

// Init 初始化扬声器并预加载音效目录
func (sm *SoundManager) Init() error {
	sampleRate := beep.SampleRate(44100)
	// 缓冲区调小以降低播放延迟
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("初始化扬声器失败: %w", err)
	}
	sm.enabled = true

	return sm.loadSoundFiles(sampleRate)
}

// loadSoundFiles 加载音效目录下所有 mp3/wav 文件
func (sm *SoundManager) loadSoundFiles(sampleRate beep.SampleRate) error {
	files, err := os.ReadDir(soundDir)
	if err != nil {
		// 目录不存在就静默跳过
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("读取音效目录失败: %w", err)
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}
		name := file.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".mp3" && ext != ".wav" {
			continue
		}

		// 单个文件加载失败不影响其他音效
		_ = sm.loadSoundFile(name, ext, sampleRate)
	}

	return nil
}

// loadSoundFile 解码单个音效文件到缓冲区
func (sm *SoundManager) loadSoundFile(name, ext string, sampleRate beep.SampleRate) error {
	f, err := os.Open(filepath.Clean(filepath.Join(soundDir, name)))
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	var streamer beep.StreamSeekCloser
	var format beep.Format

	switch ext {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	}
	if err != nil {
		return err
	}
	defer func() { _ = streamer.Close() }()

	var resampled beep.Streamer = streamer
	if format.SampleRate != sampleRate {
		resampled = beep.Resample(4, format.SampleRate, sampleRate, streamer)
	}

	buffer := beep.NewBuffer(beep.Format{
		SampleRate:  sampleRate,
		NumChannels: 2,
		Precision:   4,
	})
	buffer.Append(resampled)

	sm.buffers[strings.TrimSuffix(name, filepath.Ext(name))] = buffer
	return nil
}

// Play 播放一个已加载的音效，未加载的名字静默忽略
func (sm *SoundManager) Play(name string) {
	if !sm.enabled {
		return
	}

	buffer, ok := sm.buffers[name]
	if !ok {
		return
	}

	speaker.Play(buffer.Streamer(0, buffer.Len()))
}

func (sm *SoundManager) Close() {
	sm.enabled = false
}
