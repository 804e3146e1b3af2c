package nbt_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/cobblemon-transporter/internal/errors"
	"github.com/KirkDiggler/cobblemon-transporter/internal/nbt"
)

type CodecTestSuite struct {
	suite.Suite
}

func TestCodecSuite(t *testing.T) {
	suite.Run(t, new(CodecTestSuite))
}

func (s *CodecTestSuite) sampleTree() *nbt.Compound {
	moves := nbt.NewList(nbt.KindCompound)
	s.Require().NoError(moves.Append(nbt.NewCompound().
		Set("MoveName", nbt.String("thunderbolt")).
		Set("MovePP", nbt.Int(15))))

	slot := nbt.NewCompound().
		Set("Species", nbt.String("cobblemon:pikachu")).
		Set("Level", nbt.Int(25)).
		Set("Shiny", nbt.Byte(1)).
		Set("Short", nbt.Short(-3)).
		Set("TID", nbt.Long(1<<40)).
		Set("ScaleModifier", nbt.Float(1.5)).
		Set("Weight", nbt.Double(6.25)).
		Set("Blob", nbt.ByteArray{1, 2, 3}).
		Set("Ints", nbt.IntArray{-1, 7}).
		Set("Longs", nbt.LongArray{1 << 50}).
		Set("UUID", nbt.IntList(1, -2, 3, -4)).
		Set("Empty", nbt.NewList(nbt.KindEnd)).
		Set("MoveSet", moves)

	return nbt.NewCompound().
		Set("Zeta", nbt.String("first key stays first")).
		Set("Slot0", slot).
		Set("Alpha", nbt.Int(9))
}

func (s *CodecTestSuite) TestRoundTripPreservesKindsAndOrder() {
	root := s.sampleTree()

	var buf bytes.Buffer
	s.Require().NoError(nbt.Encode(&buf, "root", root))

	name, decoded, err := nbt.Decode(&buf)
	s.Require().NoError(err)
	s.Equal("root", name)
	s.True(nbt.Equal(root, decoded))
	s.Equal([]string{"Zeta", "Slot0", "Alpha"}, decoded.Keys())

	slot, ok := decoded.Compound("Slot0")
	s.Require().True(ok)
	empty, ok := slot.List("Empty")
	s.Require().True(ok)
	s.Equal(nbt.KindEnd, empty.Elem())
}

func (s *CodecTestSuite) TestRoundTripModifiedUTF8() {
	root := nbt.NewCompound().
		Set("Nickname", nbt.String("Pika\x00chu \U0001F600 Pokémon"))

	var buf bytes.Buffer
	s.Require().NoError(nbt.Encode(&buf, "", root))
	s.NotContains(buf.String(), "\x00chu", "NUL must be written as a two-byte sequence")

	_, decoded, err := nbt.Decode(&buf)
	s.Require().NoError(err)
	nick, ok := decoded.GetString("Nickname")
	s.Require().True(ok)
	s.Equal("Pika\x00chu \U0001F600 Pokémon", nick)
}

func (s *CodecTestSuite) TestDecodeRejectsTruncatedData() {
	var buf bytes.Buffer
	s.Require().NoError(nbt.Encode(&buf, "", s.sampleTree()))
	data := buf.Bytes()

	_, _, err := nbt.Decode(bytes.NewReader(data[:len(data)/2]))
	s.Require().Error(err)
	s.True(errors.IsDataLoss(err))
}

func (s *CodecTestSuite) TestEncodeRequiresRoot() {
	var buf bytes.Buffer
	err := nbt.Encode(&buf, "", nil)
	s.True(errors.IsInvalidArgument(err))
}
