// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"context"
	"fmt"

	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/cobblemon-transporter/internal/nbt"
	"github.com/KirkDiggler/cobblemon-transporter/internal/repositories/records"
	recordsmock "github.com/KirkDiggler/cobblemon-transporter/internal/repositories/records/mock"
	"github.com/KirkDiggler/cobblemon-transporter/internal/repositories/savedata"
	savedatamock "github.com/KirkDiggler/cobblemon-transporter/internal/repositories/savedata/mock"
)

// RecordStore is the in-memory state behind a mocked record repository
type RecordStore struct {
	Records []*records.Record
}

// Find returns the record with the given file name
func (s *RecordStore) Find(name string) (*records.Record, bool) {
	for _, r := range s.Records {
		if r.Name == name {
			return r, true
		}
	}
	return nil, false
}

// ExpectRecordStore backs List, Save and SetAddress with a RecordStore.
// Saved records are named record_1.json, record_2.json and so on.
func ExpectRecordStore(ctx context.Context, mockRepo *recordsmock.MockRepository, seed ...*records.Record) *RecordStore {
	store := &RecordStore{Records: seed}

	mockRepo.EXPECT().
		List(ctx).
		DoAndReturn(func(context.Context) (*records.ListOutput, error) {
			return &records.ListOutput{Records: store.Records}, nil
		}).
		AnyTimes()

	mockRepo.EXPECT().
		Save(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input records.SaveInput) (*records.SaveOutput, error) {
			name := fmt.Sprintf("record_%d.json", len(store.Records)+1)
			store.Records = append(store.Records, &records.Record{Name: name, Creature: input.Creature})
			return &records.SaveOutput{Name: name, Path: name}, nil
		}).
		AnyTimes()

	mockRepo.EXPECT().
		SetAddress(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input records.SetAddressInput) error {
			r, ok := store.Find(input.Name)
			if !ok {
				return fmt.Errorf("no record named %s", input.Name)
			}
			r.Creature.SetAddress(input.Address)
			return nil
		}).
		AnyTimes()

	return store
}

// ExpectSaveFileLoad makes path load as root, uncompressed
func ExpectSaveFileLoad(ctx context.Context, mockRepo *savedatamock.MockRepository, path string, root *nbt.Compound) {
	mockRepo.EXPECT().
		Load(ctx, path).
		Return(&savedata.Document{Root: root}, nil)
}

// ExpectSaveFileWrite expects one Save of path and hands the written root
// to check
func ExpectSaveFileWrite(ctx context.Context, mockRepo *savedatamock.MockRepository, path string, check func(*nbt.Compound)) {
	mockRepo.EXPECT().
		Save(ctx, gomock.Any(), path).
		DoAndReturn(func(_ context.Context, doc *savedata.Document, _ string) error {
			if check != nil {
				check(doc.Root)
			}
			return nil
		})
}
