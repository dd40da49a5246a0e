package usecase

import (
	"context"
	"sync"

	"paraguay-shipping/internal/domain"
)

type fakeSettingsRepo struct {
	mu       sync.Mutex
	settings *domain.Settings
	getErr   error
	saveErr  error
	gets     int
	saved    []*domain.Settings
}

func (f *fakeSettingsRepo) GetSettings(ctx context.Context, methodID string) (*domain.Settings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.settings == nil {
		return nil, domain.ErrSettingsNotFound
	}
	s := *f.settings
	return &s, nil
}

func (f *fakeSettingsRepo) SaveSettings(ctx context.Context, s *domain.Settings) (*domain.Settings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	cp := *s
	f.settings = &cp
	f.saved = append(f.saved, &cp)
	out := cp
	return &out, nil
}

type fakeArchive struct {
	names []string
	data  [][]byte
	err   error
}

func (f *fakeArchive) PutSnapshot(ctx context.Context, name string, data []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.names = append(f.names, name)
	f.data = append(f.data, data)
	return "https://cdn.example.com/snapshots/" + name, nil
}

type fakeRegions map[string]string

func (f fakeRegions) StateName(countryCode, stateCode string) string {
	if name, ok := f[stateCode]; ok {
		return name
	}
	return stateCode
}
