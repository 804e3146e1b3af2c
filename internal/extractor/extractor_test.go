package extractor_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/cobblemon-transporter/internal/errors"
	"github.com/KirkDiggler/cobblemon-transporter/internal/extractor"
	extractormock "github.com/KirkDiggler/cobblemon-transporter/internal/extractor/mock"
	"github.com/KirkDiggler/cobblemon-transporter/internal/locator"
	"github.com/KirkDiggler/cobblemon-transporter/internal/nbt"
	mockclock "github.com/KirkDiggler/cobblemon-transporter/internal/pkg/clock/mock"
	"github.com/KirkDiggler/cobblemon-transporter/internal/schema"
	"github.com/KirkDiggler/cobblemon-transporter/internal/testutils"
	"github.com/KirkDiggler/cobblemon-transporter/internal/testutils/builders"
)

type ExtractorTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockResolver *extractormock.MockUsernameResolver
	extractor    *extractor.Extractor
	ctx          context.Context
}

func TestExtractorSuite(t *testing.T) {
	suite.Run(t, new(ExtractorTestSuite))
}

func (s *ExtractorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockResolver = extractormock.NewMockUsernameResolver(s.ctrl)
	s.ctx = context.Background()

	clk := mockclock.NewMockClock(s.ctrl)
	clk.EXPECT().Now().Return(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)).AnyTimes()
	codec, err := schema.New(&schema.Config{Clock: clk})
	s.Require().NoError(err)

	s.extractor, err = extractor.New(&extractor.Config{
		Codec:    codec,
		Resolver: s.mockResolver,
	})
	s.Require().NoError(err)
}

func (s *ExtractorTestSuite) TestNewRequiresCodec() {
	_, err := extractor.New(&extractor.Config{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *ExtractorTestSuite) TestPartyExtraction() {
	root := testutils.CreateTestParty(
		testutils.CreateTestRecord("pikachu", 5),
		testutils.CreateTestRecord("bulbasaur", 12),
	)
	s.mockResolver.EXPECT().
		Username(gomock.Any(), testutils.TestTrainerUUID).
		Return(testutils.TestTrainerName, nil).
		Times(2)

	results := s.extractor.ExtractAll(s.ctx, root)

	s.Require().Len(results, 2)
	for i, species := range []string{"pikachu", "bulbasaur"} {
		s.Equal(extractor.StatusFound, results[i].Status)
		s.Equal(locator.PartySlot(i), results[i].Address)
		s.Equal(species, *results[i].Creature.Species)
		s.Equal(testutils.TestTrainerName, *results[i].Creature.OriginalTrainer)
		s.Nil(results[i].Creature.Address(), "extraction never assigns a record address")
	}
	s.Equal(int64(12), *results[1].Creature.Level)
}

func (s *ExtractorTestSuite) TestStoredTrainerNameWins() {
	record := builders.NewRecordBuilder().
		WithPersistent("OriginalTrainer", nbt.String("Ash")).
		Build()

	res := s.extractor.Extract(s.ctx, testutils.CreateTestParty(record), locator.PartySlot(0))
	s.Equal(extractor.StatusFound, res.Status)
	s.Equal("Ash", *res.Creature.OriginalTrainer)
}

func (s *ExtractorTestSuite) TestTrainerFallbacks() {
	s.Run("non uuid value is already a name", func() {
		record := builders.NewRecordBuilder().WithTag("PokemonOriginalTrainer", nbt.String("Misty")).Build()
		res := s.extractor.Extract(s.ctx, testutils.CreateTestParty(record), locator.PartySlot(0))
		s.Equal("Misty", *res.Creature.OriginalTrainer)
	})

	s.Run("missing id is unknown", func() {
		record := builders.NewRecordBuilder().Without("PokemonOriginalTrainer").Build()
		res := s.extractor.Extract(s.ctx, testutils.CreateTestParty(record), locator.PartySlot(0))
		s.Equal(extractor.UnknownTrainer, *res.Creature.OriginalTrainer)
	})

	s.Run("lookup failure is unknown", func() {
		s.mockResolver.EXPECT().
			Username(gomock.Any(), testutils.TestTrainerUUID).
			Return("", errors.Unavailable("service down"))

		res := s.extractor.Extract(s.ctx, testutils.CreateTestParty(builders.NewRecordBuilder().Build()), locator.PartySlot(0))
		s.Equal(extractor.StatusFound, res.Status)
		s.Equal(extractor.UnknownTrainer, *res.Creature.OriginalTrainer)
	})
}

func (s *ExtractorTestSuite) TestNotFoundCarriesReason() {
	root := testutils.CreateTestDirectBoxes(1)

	res := s.extractor.Extract(s.ctx, root, locator.BoxSlot(0, 3))
	s.Equal(extractor.StatusNotFound, res.Status)
	s.Equal(locator.ReasonEmpty, res.Reason)

	res = s.extractor.Extract(s.ctx, root, locator.BoxSlot(31, 0))
	s.Equal(locator.ReasonOutOfRange, res.Reason)
}

func (s *ExtractorTestSuite) TestDecodeError() {
	root := testutils.CreateTestParty(builders.NewRecordBuilder().Without("Level").Build())

	res := s.extractor.Extract(s.ctx, root, locator.PartySlot(0))
	s.Equal(extractor.StatusDecodeError, res.Status)
	s.True(errors.IsFailedPrecondition(res.Err))
	s.Nil(res.Creature)
}

func (s *ExtractorTestSuite) TestCanceledContextIsFatal() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	root := testutils.CreateTestParty(testutils.CreateTestRecord("pikachu", 5), testutils.CreateTestRecord("onix", 9))
	results := s.extractor.ExtractAll(ctx, root)

	s.Require().Len(results, 1)
	s.Equal(extractor.StatusFatal, results[0].Status)
	s.True(errors.IsCanceled(results[0].Err))
}

func (s *ExtractorTestSuite) TestCancelDuringLookupIsFatal() {
	ctx, cancel := context.WithCancel(s.ctx)
	s.mockResolver.EXPECT().
		Username(gomock.Any(), testutils.TestTrainerUUID).
		DoAndReturn(func(context.Context, string) (string, error) {
			cancel()
			return "", context.Canceled
		})

	res := s.extractor.Extract(ctx, testutils.CreateTestParty(builders.NewRecordBuilder().Build()), locator.PartySlot(0))
	s.Equal(extractor.StatusFatal, res.Status)
}

func (s *ExtractorTestSuite) TestExtractAllBoxes() {
	root := testutils.CreateTestNestedBoxes(2)
	pc, _ := root.Compound("pc")
	testutils.PutInBox(pc, 1, 0, testutils.CreateTestRecord("onix", 20).
		Set("PokemonOriginalTrainer", nbt.String("Brock")))
	testutils.PutInBox(pc, 0, 2, builders.NewRecordBuilder().Without("Species").Build())
	before := root.Clone()

	results := s.extractor.ExtractAll(s.ctx, root)

	s.Require().Len(results, 2)
	s.Equal(locator.BoxSlot(0, 2), results[0].Address)
	s.Equal(extractor.StatusDecodeError, results[0].Status)
	s.Equal(extractor.StatusFound, results[1].Status)
	s.Equal("Brock", *results[1].Creature.OriginalTrainer)
	s.True(nbt.Equal(before, root), "extraction must not mutate the root")
}

func (s *ExtractorTestSuite) TestExtractAllUnknownLayoutSkipsEmptyCells() {
	numeric := nbt.NewCompound().Set("pc", nbt.NewCompound().
		Set("4", nbt.NewCompound().Set("9", testutils.CreateTestRecord("onix", 20).
			Set("PokemonOriginalTrainer", nbt.String("Brock")))))

	results := s.extractor.ExtractAll(s.ctx, numeric)
	s.Require().Len(results, 1)
	s.Equal(locator.BoxSlot(4, 9), results[0].Address)
}
