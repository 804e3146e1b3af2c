package records_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/tidwall/gjson"

	"github.com/KirkDiggler/cobblemon-transporter/internal/entities"
	"github.com/KirkDiggler/cobblemon-transporter/internal/errors"
	"github.com/KirkDiggler/cobblemon-transporter/internal/pkg/idgen"
	"github.com/KirkDiggler/cobblemon-transporter/internal/repositories/records"
)

type FileRepositoryTestSuite struct {
	suite.Suite
	dir  string
	repo records.Repository
	ctx  context.Context
}

func TestFileRepositorySuite(t *testing.T) {
	suite.Run(t, new(FileRepositoryTestSuite))
}

func (s *FileRepositoryTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
	s.ctx = context.Background()

	var err error
	s.repo, err = records.NewFileRepository(&records.Config{
		Dir:         s.dir,
		IDGenerator: idgen.NewSequential("dup"),
	})
	s.Require().NoError(err)
}

func stats(v int64) *entities.Stats {
	st := &entities.Stats{}
	for _, key := range entities.StatKeys {
		*st.Field(key) = entities.Ptr(v)
	}
	return st
}

func creature(species string, uuid ...int64) *entities.Creature {
	return &entities.Creature{
		Species: entities.Ptr(species),
		Level:   entities.Ptr(int64(5)),
		IVs:     stats(31),
		EVs:     stats(0),
		UUID:    uuid,
	}
}

func (s *FileRepositoryTestSuite) TestNewValidatesConfig() {
	_, err := records.NewFileRepository(&records.Config{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *FileRepositoryTestSuite) TestFileName() {
	s.Equal("pikachu_8716.json", records.FileName(creature("Pikachu")))
	s.Equal("eevee_4514.json", records.FileName(&entities.Creature{Species: entities.Ptr("Eevee")}))
}

func (s *FileRepositoryTestSuite) TestSaveWritesIndentedJSON() {
	out, err := s.repo.Save(s.ctx, records.SaveInput{Creature: creature("Pikachu", 1, 2, 3, 4)})
	s.Require().NoError(err)
	s.Equal("pikachu_8716.json", out.Name)

	raw, err := os.ReadFile(out.Path)
	s.Require().NoError(err)
	s.Contains(string(raw), "\n    \"species\": \"Pikachu\"")
	s.Equal(int64(31), gjson.GetBytes(raw, "ivs.hp").Int())
}

func (s *FileRepositoryTestSuite) TestSaveSameCreatureOverwrites() {
	first, err := s.repo.Save(s.ctx, records.SaveInput{Creature: creature("Pikachu", 1, 2, 3, 4)})
	s.Require().NoError(err)

	again := creature("Pikachu", 1, 2, 3, 4)
	again.Level = entities.Ptr(int64(6))
	second, err := s.repo.Save(s.ctx, records.SaveInput{Creature: again})
	s.Require().NoError(err)
	s.Equal(first.Name, second.Name)

	list, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list.Records, 1)
	s.Equal(int64(6), *list.Records[0].Creature.Level)
}

func (s *FileRepositoryTestSuite) TestSaveCollisionGetsSuffix() {
	_, err := s.repo.Save(s.ctx, records.SaveInput{Creature: creature("Pikachu", 1, 2, 3, 4)})
	s.Require().NoError(err)

	out, err := s.repo.Save(s.ctx, records.SaveInput{Creature: creature("Pikachu", 5, 6, 7, 8)})
	s.Require().NoError(err)
	s.Equal("pikachu_8716_dup_1.json", out.Name)

	list, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Len(list.Records, 2)
}

func (s *FileRepositoryTestSuite) TestSaveRequiresSpecies() {
	_, err := s.repo.Save(s.ctx, records.SaveInput{Creature: &entities.Creature{}})
	s.True(errors.IsInvalidArgument(err))
}

func (s *FileRepositoryTestSuite) TestListSkipsUnreadable() {
	_, err := s.repo.Save(s.ctx, records.SaveInput{Creature: creature("Pikachu")})
	s.Require().NoError(err)
	s.Require().NoError(os.WriteFile(filepath.Join(s.dir, "broken.json"), []byte("{"), 0o600))
	s.Require().NoError(os.WriteFile(filepath.Join(s.dir, "notes.txt"), []byte("hi"), 0o600))

	list, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list.Records, 1)
	s.Equal("pikachu_8716.json", list.Records[0].Name)
}

func (s *FileRepositoryTestSuite) TestListMissingDir() {
	repo, err := records.NewFileRepository(&records.Config{
		Dir:         filepath.Join(s.dir, "missing"),
		IDGenerator: idgen.NewSequential(""),
	})
	s.Require().NoError(err)

	list, err := repo.List(s.ctx)
	s.Require().NoError(err)
	s.Empty(list.Records)
}

func (s *FileRepositoryTestSuite) TestSetAddressKeepsUnknownKeys() {
	path := filepath.Join(s.dir, "custom.json")
	s.Require().NoError(os.WriteFile(path, []byte(`{"species":"Mew","level":5,"mod_extra":{"a":1}}`), 0o600))

	err := s.repo.SetAddress(s.ctx, records.SetAddressInput{
		Name:    "custom.json",
		Address: &entities.Address{Box: 2, Slot: 7},
	})
	s.Require().NoError(err)

	raw, err := os.ReadFile(path)
	s.Require().NoError(err)
	s.Equal(int64(2), gjson.GetBytes(raw, "box_number").Int())
	s.Equal(int64(7), gjson.GetBytes(raw, "slot_number").Int())
	s.Equal(int64(1), gjson.GetBytes(raw, "mod_extra.a").Int())

	s.Require().NoError(s.repo.SetAddress(s.ctx, records.SetAddressInput{Name: "custom.json"}))
	raw, err = os.ReadFile(path)
	s.Require().NoError(err)
	s.False(gjson.GetBytes(raw, "box_number").Exists())
	s.False(gjson.GetBytes(raw, "slot_number").Exists())
	s.Equal("Mew", gjson.GetBytes(raw, "species").String())
}

func (s *FileRepositoryTestSuite) TestSetAddressErrors() {
	err := s.repo.SetAddress(s.ctx, records.SetAddressInput{Name: "nope.json"})
	s.True(errors.IsNotFound(err))

	s.Require().NoError(os.WriteFile(filepath.Join(s.dir, "list.json"), []byte(`[1,2]`), 0o600))
	err = s.repo.SetAddress(s.ctx, records.SetAddressInput{Name: "list.json"})
	s.True(errors.IsDataLoss(err))
}

func (s *FileRepositoryTestSuite) TestReadFile() {
	out, err := s.repo.Save(s.ctx, records.SaveInput{Creature: creature("Pikachu", 1, 2, 3, 4)})
	s.Require().NoError(err)

	c, err := records.ReadFile(out.Path)
	s.Require().NoError(err)
	s.Equal("Pikachu", c.SpeciesName())
	s.Equal([]int64{1, 2, 3, 4}, c.UUID)

	_, err = records.ReadFile(filepath.Join(s.dir, "missing.json"))
	s.True(errors.IsNotFound(err))
}
