package locator_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/cobblemon-transporter/internal/errors"
	"github.com/KirkDiggler/cobblemon-transporter/internal/locator"
	"github.com/KirkDiggler/cobblemon-transporter/internal/nbt"
	"github.com/KirkDiggler/cobblemon-transporter/internal/shape"
	"github.com/KirkDiggler/cobblemon-transporter/internal/testutils"
)

type LocatorTestSuite struct {
	suite.Suite
}

func TestLocatorSuite(t *testing.T) {
	suite.Run(t, new(LocatorTestSuite))
}

func (s *LocatorTestSuite) TestLocateParty() {
	pikachu := testutils.CreateTestRecord("pikachu", 5)
	root := testutils.CreateTestParty(pikachu, nil)
	root.Set("Slot2", nbt.NewCompound())

	res := locator.Locate(root, locator.PartySlot(0))
	s.True(res.Found())
	s.Same(pikachu, res.Record)
	s.Equal("party", res.Strategy)

	res = locator.Locate(root, locator.PartySlot(1))
	s.False(res.Found())
	s.Equal(locator.ReasonEmpty, res.Reason)

	res = locator.Locate(root, locator.PartySlot(2))
	s.Equal(locator.ReasonEmpty, res.Reason, "an empty compound is a free slot")

	res = locator.Locate(root, locator.PartySlot(6))
	s.Equal(locator.ReasonOutOfRange, res.Reason)
}

func (s *LocatorTestSuite) TestLocateStrategies() {
	eevee := testutils.CreateTestRecord("eevee", 10)

	direct := testutils.CreateTestDirectBoxes(3)
	testutils.PutInBox(direct, 2, 7, eevee)

	nested := testutils.CreateTestNestedBoxes(3)
	pc, _ := nested.Compound("pc")
	testutils.PutInBox(pc, 2, 7, eevee)

	array := testutils.CreateTestBoxArray(3)
	arrayPC, _ := array.Compound("pc")
	boxes, _ := arrayPC.List("boxes")
	members, _ := boxes.At(2).(*nbt.Compound).List("pokemon")
	s.Require().NoError(members.Append(eevee.Clone().Set("slot_number", nbt.Int(7))))

	numeric := nbt.NewCompound().Set("pc", nbt.NewCompound().
		Set("2", nbt.NewCompound().Set("7", eevee)))

	flat := nbt.NewList(nbt.KindCompound)
	s.Require().NoError(flat.Append(eevee.Clone().Set("box_number", nbt.Int(2)).Set("slot_number", nbt.Int(7))))
	flatRoot := nbt.NewCompound().Set("pc", nbt.NewCompound().Set("pokemon", flat))

	testCases := []struct {
		name     string
		root     *nbt.Compound
		strategy string
	}{
		{"top level boxes", direct, "direct boxes"},
		{"box array", array, "box array"},
		{"nested boxes", nested, "nested boxes"},
		{"numeric keys", numeric, "numeric keys"},
		{"flat list", flatRoot, "flat list"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			res := locator.Locate(tc.root, locator.BoxSlot(2, 7))
			s.Require().True(res.Found())
			s.Equal(tc.strategy, res.Strategy)
			species, _ := res.Record.GetString("Species")
			s.Equal("cobblemon:eevee", species)

			miss := locator.Locate(tc.root, locator.BoxSlot(2, 8))
			s.False(miss.Found())
			s.Equal(locator.ReasonEmpty, miss.Reason)
		})
	}
}

func (s *LocatorTestSuite) TestLocateReasons() {
	s.Equal(locator.ReasonUnrecognized, locator.Locate(nbt.NewCompound(), locator.BoxSlot(0, 0)).Reason)
	s.Equal(locator.ReasonOutOfRange, locator.Locate(nbt.NewCompound(), locator.BoxSlot(30, 0)).Reason)
	s.Equal(locator.ReasonOutOfRange, locator.Locate(nbt.NewCompound(), locator.BoxSlot(0, -1)).Reason)

	weird := nbt.NewCompound().Set("pc", nbt.NewCompound().Set("boxes", nbt.IntList(1, 2)))
	s.Equal(locator.ReasonEmpty, locator.Locate(weird, locator.BoxSlot(0, 0)).Reason)
	s.NotPanics(func() { locator.Locate(weird, locator.BoxSlot(29, 29)) })
}

func (s *LocatorTestSuite) TestParseAddress() {
	testCases := []struct {
		in       string
		expected locator.Address
		wantErr  bool
	}{
		{in: "Slot3", expected: locator.PartySlot(3)},
		{in: "Box0 -> Slot1", expected: locator.BoxSlot(0, 1)},
		{in: "Box12->Slot29", expected: locator.BoxSlot(12, 29)},
		{in: "Slot", wantErr: true},
		{in: "Box1 -> Box2", wantErr: true},
		{in: "Box1 -> Slot2 -> Slot3", wantErr: true},
		{in: "Slot-1", wantErr: true},
	}

	for _, tc := range testCases {
		s.Run(tc.in, func() {
			addr, err := locator.ParseAddress(tc.in)
			if tc.wantErr {
				s.True(errors.IsInvalidArgument(err))
				return
			}
			s.Require().NoError(err)
			s.Equal(tc.expected, addr)
		})
	}

	s.Equal("Box0 -> Slot1", locator.BoxSlot(0, 1).String())
	s.Equal("Slot4", locator.PartySlot(4).String())
}

func (s *LocatorTestSuite) TestEnumerate() {
	direct := testutils.CreateTestDirectBoxes(2)
	testutils.PutInBox(direct, 1, 4, testutils.CreateTestRecord("eevee", 1))
	testutils.PutInBox(direct, 0, 9, testutils.CreateTestRecord("onix", 1))
	testutils.PutInBox(direct, 0, 10, nbt.NewCompound())

	s.Equal([]locator.Address{locator.BoxSlot(0, 9), locator.BoxSlot(1, 4)},
		locator.Enumerate(direct, shape.DirectBoxes))

	array := testutils.CreateTestBoxArray(1)
	arrayPC, _ := array.Compound("pc")
	boxes, _ := arrayPC.List("boxes")
	members, _ := boxes.At(0).(*nbt.Compound).List("pokemon")
	s.Require().NoError(members.Append(testutils.CreateTestRecord("onix", 1).Set("slot_number", nbt.Int(5))))
	s.Equal([]locator.Address{locator.BoxSlot(0, 5)}, locator.Enumerate(array, shape.NestedBoxesArray))

	party := testutils.CreateTestParty(nil, testutils.CreateTestRecord("onix", 1))
	s.Equal([]locator.Address{locator.PartySlot(1)}, locator.Enumerate(party, shape.Party))

	s.Len(locator.Enumerate(nbt.NewCompound(), shape.Unknown), 900)
}
