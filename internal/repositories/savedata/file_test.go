package savedata_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/cobblemon-transporter/internal/errors"
	"github.com/KirkDiggler/cobblemon-transporter/internal/nbt"
	"github.com/KirkDiggler/cobblemon-transporter/internal/repositories/savedata"
	"github.com/KirkDiggler/cobblemon-transporter/internal/testutils"
)

type FileRepositoryTestSuite struct {
	suite.Suite
	dir  string
	repo savedata.Repository
	ctx  context.Context
}

func TestFileRepositorySuite(t *testing.T) {
	suite.Run(t, new(FileRepositoryTestSuite))
}

func (s *FileRepositoryTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
	s.repo = savedata.NewFileRepository()
	s.ctx = context.Background()
}

func (s *FileRepositoryTestSuite) TestRoundTrip() {
	for _, compressed := range []bool{false, true} {
		s.Run(map[bool]string{false: "raw", true: "gzip"}[compressed], func() {
			path := filepath.Join(s.dir, "party.dat")
			doc := &savedata.Document{
				Root:       testutils.CreateTestParty(testutils.CreateTestRecord("pikachu", 5)),
				Compressed: compressed,
			}
			s.Require().NoError(s.repo.Save(s.ctx, doc, path))

			raw, err := os.ReadFile(path)
			s.Require().NoError(err)
			s.Equal(compressed, raw[0] == 0x1f && raw[1] == 0x8b)

			loaded, err := s.repo.Load(s.ctx, path)
			s.Require().NoError(err)
			s.Equal(compressed, loaded.Compressed)
			s.True(nbt.Equal(doc.Root, loaded.Root))
		})
	}
}

func (s *FileRepositoryTestSuite) TestSaveKeepsMode() {
	path := filepath.Join(s.dir, "pc.dat")
	s.Require().NoError(os.WriteFile(path, []byte("old"), 0o644)) // #nosec G306

	s.Require().NoError(s.repo.Save(s.ctx, &savedata.Document{Root: testutils.CreateTestDirectBoxes(1)}, path))
	info, err := os.Stat(path)
	s.Require().NoError(err)
	s.Equal(os.FileMode(0o644), info.Mode().Perm())

	entries, err := os.ReadDir(s.dir)
	s.Require().NoError(err)
	s.Len(entries, 1)
}

func (s *FileRepositoryTestSuite) TestLoadErrors() {
	_, err := s.repo.Load(s.ctx, filepath.Join(s.dir, "missing.dat"))
	s.True(errors.IsNotFound(err))

	garbage := filepath.Join(s.dir, "garbage.dat")
	s.Require().NoError(os.WriteFile(garbage, []byte{0x0a, 0x00}, 0o600))
	_, err = s.repo.Load(s.ctx, garbage)
	s.True(errors.IsDataLoss(err))

	badGzip := filepath.Join(s.dir, "bad.dat")
	s.Require().NoError(os.WriteFile(badGzip, []byte{0x1f, 0x8b, 0x00}, 0o600))
	_, err = s.repo.Load(s.ctx, badGzip)
	s.True(errors.IsDataLoss(err))
}

func (s *FileRepositoryTestSuite) TestSaveRequiresRoot() {
	err := s.repo.Save(s.ctx, &savedata.Document{}, filepath.Join(s.dir, "x.dat"))
	s.True(errors.IsInvalidArgument(err))
}
