package shape_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/cobblemon-transporter/internal/nbt"
	"github.com/KirkDiggler/cobblemon-transporter/internal/shape"
	"github.com/KirkDiggler/cobblemon-transporter/internal/testutils"
)

type ShapeTestSuite struct {
	suite.Suite
}

func TestShapeSuite(t *testing.T) {
	suite.Run(t, new(ShapeTestSuite))
}

func (s *ShapeTestSuite) TestDetect() {
	partyAndBoxes := testutils.CreateTestDirectBoxes(2)
	partyAndBoxes.Set("Slot3", testutils.CreateTestRecord("eevee", 10))

	testCases := []struct {
		name     string
		root     *nbt.Compound
		expected shape.Shape
	}{
		{"party", testutils.CreateTestParty(testutils.CreateTestRecord("pikachu", 5)), shape.Party},
		{"party wins over boxes", partyAndBoxes, shape.Party},
		{"direct boxes", testutils.CreateTestDirectBoxes(3), shape.DirectBoxes},
		{"box array", testutils.CreateTestBoxArray(2), shape.NestedBoxesArray},
		{"nested boxes", testutils.CreateTestNestedBoxes(2), shape.NestedBoxesDirect},
		{"empty root", nbt.NewCompound(), shape.Unknown},
		{"pc without boxes", nbt.NewCompound().Set("pc", nbt.NewCompound()), shape.Unknown},
		{"pc is not a compound", nbt.NewCompound().Set("pc", nbt.Int(1)), shape.Unknown},
		{"only box 29", nbt.NewCompound().Set("Box29", nbt.NewCompound()), shape.DirectBoxes},
		{"box 30 is outside the grid", nbt.NewCompound().Set("Box30", nbt.NewCompound()), shape.Unknown},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, shape.Detect(tc.root))
			s.Equal(shape.Detect(tc.root), shape.Detect(tc.root))
		})
	}
}

func (s *ShapeTestSuite) TestDetectBoxesIgnoresParty() {
	root := testutils.CreateTestDirectBoxes(1)
	root.Set("Slot0", testutils.CreateTestRecord("eevee", 10))

	s.Equal(shape.DirectBoxes, shape.DetectBoxes(root))
	s.Equal(shape.Unknown, shape.DetectBoxes(testutils.CreateTestParty(testutils.CreateTestRecord("eevee", 1))))
}

func (s *ShapeTestSuite) TestBoxRoot() {
	nested := testutils.CreateTestNestedBoxes(1)
	pc, ok := shape.BoxRoot(nested, shape.NestedBoxesDirect)
	s.True(ok)
	s.True(pc.Has("Box0"))

	_, ok = shape.BoxRoot(nested, shape.NestedBoxesArray)
	s.False(ok)
}

func (s *ShapeTestSuite) TestString() {
	s.Equal("party", shape.Party.String())
	s.Equal("unknown", shape.Shape(99).String())
	s.True(shape.NestedBoxesArray.IsBoxes())
	s.False(shape.Party.IsBoxes())
}
