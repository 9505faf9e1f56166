package doctor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/moment/internal/core/config"
	"github.com/hay-kot/moment/internal/core/quote"
	"github.com/hay-kot/moment/internal/core/session"
)

type staticSource struct {
	quotes []quote.Quote
	err    error
}

func (s staticSource) Fetch(context.Context) ([]quote.Quote, error) {
	return s.quotes, s.err
}

type mockStore struct {
	sess    session.Session
	ok      bool
	saveErr error
	saves   int
}

func (m *mockStore) Load(context.Context) (session.Session, bool) { return m.sess, m.ok }

func (m *mockStore) Save(context.Context, session.Session) error {
	m.saves++
	return m.saveErr
}

func (m *mockStore) Clear(context.Context) error { return nil }

func TestRunAllAndSummary(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()

	results := RunAll(context.Background(), []Check{
		NewConfigCheck(&cfg, "/tmp/config.yaml"),
		NewSourceCheck(staticSource{err: errors.New("offline")}, "quotes.json", 50),
	})

	require.Len(t, results, 2)
	assert.Equal(t, "pass", results[0].Items[0].StatusStr)
	assert.Equal(t, "fail", results[1].Items[0].StatusStr)

	passed, warned, failed := Summary(results)
	assert.Equal(t, 1, passed)
	assert.Equal(t, 0, warned)
	assert.Equal(t, 1, failed)
}

func TestConfigCheck_Invalid(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ChunkSize = 0

	result := NewConfigCheck(&cfg, "").Run(context.Background())

	labels := make([]string, 0, len(result.Items))
	for _, item := range result.Items {
		assert.Equal(t, StatusFail, item.Status)
		labels = append(labels, item.Label)
	}
	assert.ElementsMatch(t, []string{"data_dir", "chunk_size"}, labels)
}

func TestConfigCheck_NotLoaded(t *testing.T) {
	result := NewConfigCheck(nil, "").Run(context.Background())
	require.Len(t, result.Items, 1)
	assert.Equal(t, StatusFail, result.Items[0].Status)
}

func TestSourceCheck(t *testing.T) {
	quotes := []quote.Quote{{Text: "a", Author: "x"}, {Text: "b"}, {Text: "c", Author: "y"}}

	result := NewSourceCheck(staticSource{quotes: quotes}, "quotes.json", 2).Run(context.Background())

	require.Len(t, result.Items, 3)
	assert.Equal(t, StatusPass, result.Items[0].Status)
	assert.Equal(t, "3 quotes in 2 chunk(s)", result.Items[1].Detail)
	assert.Equal(t, StatusWarn, result.Items[2].Status)
}

func TestSourceCheck_EmptyCollection(t *testing.T) {
	result := NewSourceCheck(staticSource{quotes: []quote.Quote{}}, "quotes.json", 50).Run(context.Background())

	require.Len(t, result.Items, 1)
	assert.Equal(t, "Collection", result.Items[0].Label)
	assert.Equal(t, StatusFail, result.Items[0].Status)
}

func TestStorageCheck(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	active := session.Session{
		StartedAt:  now.Add(-time.Hour).UnixMilli(),
		ChunkOrder: []int{1, 0},
		Pointer:    1,
		Remaining:  []quote.Quote{{Text: "a"}},
	}

	tests := []struct {
		name       string
		store      *mockStore
		wantStatus []Status
		wantSaves  int
		wantDetail string
	}{
		{
			name:       "absent",
			store:      &mockStore{},
			wantStatus: []Status{StatusPass, StatusPass},
		},
		{
			name:       "active",
			store:      &mockStore{sess: active, ok: true},
			wantStatus: []Status{StatusPass, StatusPass},
			wantSaves:  1,
		},
		{
			name:       "empty record",
			store:      &mockStore{ok: true},
			wantStatus: []Status{StatusWarn, StatusPass},
			wantSaves:  1,
			wantDetail: "stored session has no chunk order and will be replaced",
		},
		{
			name:       "not writable",
			store:      &mockStore{sess: active, ok: true, saveErr: errors.New("read-only")},
			wantStatus: []Status{StatusPass, StatusFail},
			wantSaves:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := NewStorageCheck(tt.store, "/data/storage.json", 8*time.Hour)
			check.now = func() time.Time { return now }

			result := check.Run(context.Background())

			got := make([]Status, 0, len(result.Items))
			for _, item := range result.Items {
				got = append(got, item.Status)
			}
			assert.Equal(t, tt.wantStatus, got)
			assert.Equal(t, tt.wantSaves, tt.store.saves)
			if tt.wantDetail != "" {
				assert.Equal(t, tt.wantDetail, result.Items[0].Detail)
			}
		})
	}
}
