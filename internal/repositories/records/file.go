package records

import (
	"bytes"
	"context"
	"crypto/md5" // #nosec G501 -- file names only, matches existing record names
	"encoding/json"
	"fmt"
	"log/slog"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/KirkDiggler/cobblemon-transporter/internal/entities"
	"github.com/KirkDiggler/cobblemon-transporter/internal/errors"
	"github.com/KirkDiggler/cobblemon-transporter/internal/pkg/idgen"
)

const (
	// Extension is the suffix of every record file
	Extension = ".json"

	indent      = "    "
	nameModulus = 10000

	keyBox  = "box_number"
	keySlot = "slot_number"
	keyUUID = "uuid"
)

// Config holds the configuration for the file repository
type Config struct {
	Dir         string
	IDGenerator idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Dir == "" {
		vb.RequiredField("Dir")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type fileRepository struct {
	dir string
	ids idgen.Generator
}

// NewFileRepository creates a record repository rooted at cfg.Dir
func NewFileRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &fileRepository{
		dir: cfg.Dir,
		ids: cfg.IDGenerator,
	}, nil
}

// Ensure fileRepository implements Repository
var _ Repository = (*fileRepository)(nil)

// FileName derives the stable record name: the lowercased species and a
// four digit hash of the stat blocks.
func FileName(c *entities.Creature) string {
	sum := md5.Sum([]byte(statsRepr(c.IVs) + statsRepr(c.EVs))) // #nosec G401
	n := new(big.Int).SetBytes(sum[:])
	n.Mod(n, big.NewInt(nameModulus))

	species := strings.ToLower(c.SpeciesName())
	species = strings.NewReplacer("/", "_", `\`, "_").Replace(species)
	return fmt.Sprintf("%s_%d%s", species, n.Int64(), Extension)
}

// statsRepr renders stats the way existing record names were hashed
func statsRepr(s *entities.Stats) string {
	if s == nil {
		return "None"
	}
	parts := make([]string, 0, len(entities.StatKeys))
	for _, key := range entities.StatKeys {
		value := "None"
		if p := *s.Field(key); p != nil {
			value = fmt.Sprintf("%d", *p)
		}
		parts = append(parts, fmt.Sprintf("'%s': %s", key, value))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// ReadFile loads one record file from anywhere on disk
func ReadFile(path string) (*entities.Creature, error) {
	raw, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundf("record file %s not found", path)
		}
		return nil, errors.Wrap(err, "failed to read record file").WithMeta("path", path)
	}

	var c entities.Creature
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "malformed record file").WithMeta("path", path)
	}
	return &c, nil
}

func (r *fileRepository) List(ctx context.Context) (*ListOutput, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return &ListOutput{}, nil
		}
		return nil, errors.Wrap(err, "failed to list records").WithMeta("dir", r.dir)
	}

	out := &ListOutput{}
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeCanceled, "listing records canceled")
		}
		if entry.IsDir() || filepath.Ext(entry.Name()) != Extension {
			continue
		}
		c, err := ReadFile(filepath.Join(r.dir, entry.Name()))
		if err != nil {
			slog.WarnContext(ctx, "Skipping unreadable record", "name", entry.Name(), "error", err.Error())
			continue
		}
		out.Records = append(out.Records, &Record{Name: entry.Name(), Creature: c})
	}
	return out, nil
}

func (r *fileRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Creature == nil {
		return nil, errors.InvalidArgument("creature is required")
	}
	if input.Creature.SpeciesName() == "" {
		return nil, errors.InvalidArgument("creature has no species")
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeCanceled, "save canceled")
	}

	if err := os.MkdirAll(r.dir, 0o750); err != nil {
		return nil, errors.Wrap(err, "failed to create record directory").WithMeta("dir", r.dir)
	}

	name := FileName(input.Creature)
	path := filepath.Join(r.dir, name)
	if existing, err := os.ReadFile(path); err == nil && !sameCreature(existing, input.Creature) { // #nosec G304
		name = strings.TrimSuffix(name, Extension) + "_" + r.ids.Generate() + Extension
		path = filepath.Join(r.dir, name)
		slog.DebugContext(ctx, "Record name taken by another creature", "name", name)
	}

	data, err := json.MarshalIndent(input.Creature, "", indent)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode record")
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return nil, errors.Wrap(err, "failed to write record").WithMeta("path", path)
	}

	return &SaveOutput{Name: name, Path: path}, nil
}

// sameCreature compares the stored uuid with c's. Two records without a
// uuid count as the same creature.
func sameCreature(raw []byte, c *entities.Creature) bool {
	stored := gjson.GetBytes(raw, keyUUID).Array()
	if len(stored) != len(c.UUID) {
		return false
	}
	for i, v := range stored {
		if v.Int() != c.UUID[i] {
			return false
		}
	}
	return true
}

func (r *fileRepository) SetAddress(ctx context.Context, input SetAddressInput) error {
	if input.Name == "" {
		return errors.InvalidArgument("name is required")
	}
	if err := ctx.Err(); err != nil {
		return errors.WrapWithCode(err, errors.CodeCanceled, "address update canceled")
	}

	path := filepath.Join(r.dir, filepath.Base(input.Name))
	raw, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NotFoundf("record %s not found", input.Name)
		}
		return errors.Wrap(err, "failed to read record").WithMeta("path", path)
	}
	if !gjson.ValidBytes(raw) || !gjson.ParseBytes(raw).IsObject() {
		return errors.DataLossf("record %s is not a JSON object", input.Name)
	}

	// Rewriting through sjson keeps keys this tool does not model
	if input.Address == nil {
		raw, err = sjson.DeleteBytes(raw, keyBox)
		if err == nil {
			raw, err = sjson.DeleteBytes(raw, keySlot)
		}
	} else {
		raw, err = sjson.SetBytes(raw, keyBox, input.Address.Box)
		if err == nil {
			raw, err = sjson.SetBytes(raw, keySlot, input.Address.Slot)
		}
	}
	if err != nil {
		return errors.Wrap(err, "failed to update record address").WithMeta("name", input.Name)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", indent); err != nil {
		return errors.Wrap(err, "failed to format record").WithMeta("name", input.Name)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return errors.Wrap(err, "failed to write record").WithMeta("path", path)
	}
	return nil
}
