package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mustParse 解析一手牌，测试辅助
func mustParse(t *testing.T, input string) ParsedHand {
	t.Helper()
	hand, err := ParseHand(mustCards(t, input))
	require.NoError(t, err)
	return hand
}

func TestCanBeat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		new  string
		last string
		want bool
	}{
		// 同牌型比点数
		{"大单压小单", "K", "Q", true},
		{"小单压不过大单", "4", "J", false},
		{"同点数压不过", "9", "9", false},
		{"大对压小对", "KK", "33", true},
		{"大顺子压小顺子", "45678", "34567", true},
		{"等长才能压", "456789", "34567", false},
		{"连对比点数", "445566", "334455", true},
		{"飞机比机身", "444555", "333444", true},

		// 不同牌型
		{"对子压不了单张", "KK", "3", false},
		{"三张压不了对子", "555", "KK", false},

		// 炸弹
		{"炸弹压单张", "5555", "R", true},
		{"炸弹压顺子", "5555", "56789", true},
		{"大炸弹压小炸弹", "9999", "5555", true},
		{"小炸弹压不过大炸弹", "5555", "9999", false},
		{"普通牌压不了炸弹", "AAA", "5555", false},

		// 王炸
		{"王炸压一切", "BR", "2222", true},
		{"炸弹压不了王炸", "2222", "BR", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, CanBeat(mustParse(t, tt.new), mustParse(t, tt.last)))
		})
	}
}

func TestCanBeatWithHand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		hand   string
		target string
		want   bool
	}{
		{"自由出牌总是可以", "3", "", true},
		{"有更大的单张", "34K", "Q", true},
		{"没有更大的单张", "345", "Q", false},
		{"拆三张当单牌压", "888", "7", true},
		{"有更大的对子", "3KK", "QQ", true},
		{"单张凑不成对子", "3KQ", "JJ", false},
		{"有炸弹就能压", "44445", "222", true},
		{"王炸能压炸弹", "BR3", "2222", true},
		{"顺子需要等长更大", "456789", "34567", true},
		{"更大的三带一", "KKK3", "QQQ5", true},
		{"三张大但没牌可带", "KKK", "QQQ5", false},
		{"连对滑动窗口", "44556677", "334455", true},
		{"飞机带翅膀", "44455589", "33344467", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var target ParsedHand
			if tt.target != "" {
				target = mustParse(t, tt.target)
			}
			assert.Equal(t, tt.want, CanBeatWithHand(mustCards(t, tt.hand), target))
		})
	}
}

func TestCanBeatWithHand_BombBeatenOnlyByBiggerBomb(t *testing.T) {
	t.Parallel()

	// 手里只有比目标小的炸弹
	assert.False(t, CanBeatWithHand(mustCards(t, "5555"), mustParse(t, "9999")))
	// 更大的炸弹可以
	assert.True(t, CanBeatWithHand(mustCards(t, "KKKK"), mustParse(t, "9999")))
	// 王炸可以
	assert.True(t, CanBeatWithHand(mustCards(t, "BR"), mustParse(t, "9999")))
	// 王炸无解
	assert.False(t, CanBeatWithHand(mustCards(t, "2222KKKK"), mustParse(t, "BR")))
}
