package sorting_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	pokeapimock "github.com/KirkDiggler/cobblemon-transporter/internal/clients/pokeapi/mock"
	"github.com/KirkDiggler/cobblemon-transporter/internal/errors"
	"github.com/KirkDiggler/cobblemon-transporter/internal/orchestrators/sorting"
)

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockSpecies  *pokeapimock.MockClient
	orchestrator sorting.Service
	ctx          context.Context
	dir          string
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockSpecies = pokeapimock.NewMockClient(s.ctrl)
	s.ctx = context.Background()
	s.dir = s.T().TempDir()

	var err error
	s.orchestrator, err = sorting.NewOrchestrator(&sorting.Config{
		Species:     s.mockSpecies,
		Concurrency: 2,
	})
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) touch(names ...string) {
	for _, name := range names {
		s.Require().NoError(os.WriteFile(filepath.Join(s.dir, name), []byte("{}"), 0o600))
	}
}

func (s *OrchestratorTestSuite) TestNewValidatesConfig() {
	_, err := sorting.NewOrchestrator(&sorting.Config{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestSpeciesFromName() {
	s.Equal("pikachu", sorting.SpeciesFromName("pikachu_1234.json"))
	s.Equal("mr-mime", sorting.SpeciesFromName("mr-mime_0042_dup.json"))
	s.Equal("eevee", sorting.SpeciesFromName("eevee.json"))
}

func (s *OrchestratorTestSuite) TestSortMovesIntoGenerationFolders() {
	s.touch("pikachu_1.json", "pikachu_2.json", "sprigatito_3.json", "notes.txt")
	s.Require().NoError(os.Mkdir(filepath.Join(s.dir, "Gen1"), 0o750))
	dest := filepath.Join(s.dir, "sorted")

	s.mockSpecies.EXPECT().SpeciesID(gomock.Any(), "pikachu").Return(25, nil).MinTimes(1).MaxTimes(2)
	s.mockSpecies.EXPECT().SpeciesID(gomock.Any(), "sprigatito").Return(906, nil)

	output, err := s.orchestrator.Sort(s.ctx, &sorting.SortInput{Dir: s.dir, Dest: dest})
	s.Require().NoError(err)

	s.Equal(3, output.Moved)
	s.Equal(0, output.Failed)
	s.FileExists(filepath.Join(dest, "Gen1", "pikachu_1.json"))
	s.FileExists(filepath.Join(dest, "Gen1", "pikachu_2.json"))
	s.FileExists(filepath.Join(dest, "Gen9", "sprigatito_3.json"))
	s.FileExists(filepath.Join(s.dir, "notes.txt"))
	s.NoFileExists(filepath.Join(s.dir, "pikachu_1.json"))
}

func (s *OrchestratorTestSuite) TestSortLeavesFailuresInPlace() {
	s.touch("missingno_1.json", "eevee_2.json", "future_3.json")

	s.mockSpecies.EXPECT().SpeciesID(gomock.Any(), "missingno").Return(0, errors.NotFound("unknown species"))
	s.mockSpecies.EXPECT().SpeciesID(gomock.Any(), "eevee").Return(133, nil)
	s.mockSpecies.EXPECT().SpeciesID(gomock.Any(), "future").Return(2000, nil)

	output, err := s.orchestrator.Sort(s.ctx, &sorting.SortInput{Dir: s.dir})
	s.Require().NoError(err)

	s.Equal(1, output.Moved)
	s.Equal(2, output.Failed)
	s.FileExists(filepath.Join(s.dir, "missingno_1.json"))
	s.FileExists(filepath.Join(s.dir, "future_3.json"))
	s.FileExists(filepath.Join(s.dir, "Gen1", "eevee_2.json"))

	for _, file := range output.Files {
		switch file.Name {
		case "missingno_1.json":
			s.True(errors.IsNotFound(file.Err))
		case "future_3.json":
			s.True(errors.IsOutOfRange(file.Err))
		default:
			s.NoError(file.Err)
			s.Equal(1, file.Generation)
		}
	}
}

func (s *OrchestratorTestSuite) TestSortStopsWhenCanceled() {
	s.touch("pikachu_1.json")

	s.mockSpecies.EXPECT().SpeciesID(gomock.Any(), "pikachu").
		Return(0, errors.Canceled("species lookup canceled"))

	_, err := s.orchestrator.Sort(s.ctx, &sorting.SortInput{Dir: s.dir})
	s.Require().Error(err)
	s.True(errors.IsCanceled(err))
	s.FileExists(filepath.Join(s.dir, "pikachu_1.json"))
}

func (s *OrchestratorTestSuite) TestSortMissingDirectory() {
	_, err := s.orchestrator.Sort(s.ctx, &sorting.SortInput{Dir: filepath.Join(s.dir, "nope")})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}
