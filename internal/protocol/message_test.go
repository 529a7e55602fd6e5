package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jindou-games/doudizhu-arena/internal/game/card"
)

func TestEncodeDecode(t *testing.T) {
	t.Parallel()

	msg := MustNewMessage(MsgPlayCards, PlayCardsPayload{
		Cards: []CardInfo{{Suit: 0, Rank: 3}},
	})

	data, err := Encode(msg)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, MsgPlayCards, decoded.Type)

	payload, err := ParsePayload[PlayCardsPayload](decoded)
	require.NoError(t, err)
	require.Len(t, payload.Cards, 1)
	assert.Equal(t, 3, payload.Cards[0].Rank)
}

func TestDecode_Invalid(t *testing.T) {
	t.Parallel()

	_, err := Decode([]byte("not json"))
	assert.Error(t, err)
}

func TestParsePayload_Empty(t *testing.T) {
	t.Parallel()

	// 没有 payload 的消息解析出零值
	payload, err := ParsePayload[StartRoundPayload](&Message{Type: MsgStartRound})
	require.NoError(t, err)
	assert.Empty(t, payload.PlayerName)
}

func TestNewErrorMessage(t *testing.T) {
	t.Parallel()

	msg := NewErrorMessage(ErrCodeCannotBeat)
	assert.Equal(t, MsgError, msg.Type)

	payload, err := ParsePayload[ErrorPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, ErrCodeCannotBeat, payload.Code)
	assert.Equal(t, ErrorMessages[ErrCodeCannotBeat], payload.Message)

	custom := NewErrorMessageWithText(ErrCodeUnknown, "自定义文本")
	payload, err = ParsePayload[ErrorPayload](custom)
	require.NoError(t, err)
	assert.Equal(t, "自定义文本", payload.Message)
}

func TestCardConversion(t *testing.T) {
	t.Parallel()

	deck := card.NewDeck()
	infos := CardsToInfos(deck)
	require.Len(t, infos, len(deck))

	back := InfosToCards(infos)
	assert.Equal(t, []card.Card(deck), back, "转换来回不丢信息")
}
