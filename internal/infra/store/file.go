package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/xavierca1/leadflow/internal/entity"
)

// FileApprovalStore keeps approvals in memory and mirrors every
// mutation to a JSON snapshot on disk. The snapshot is a full rewrite,
// not an append log, and the layout is an array of [id, approval]
// pairs. Single-process only: for multi-instance deployments use the
// Postgres store instead.
type FileApprovalStore struct {
	mu        sync.Mutex
	path      string
	approvals map[string]*entity.Approval
}

// NewFileApprovalStore loads the snapshot at path if one exists. A
// missing snapshot is a fresh start, not an error.
func NewFileApprovalStore(path string) (*FileApprovalStore, error) {
	s := &FileApprovalStore{
		path:      path,
		approvals: make(map[string]*entity.Approval),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read approval snapshot: %w", err)
	}

	var pairs []snapshotPair
	if err := json.Unmarshal(data, &pairs); err != nil {
		return nil, fmt.Errorf("corrupt approval snapshot %s: %w", path, err)
	}
	for _, p := range pairs {
		s.approvals[p.ID] = p.Approval
	}
	return s, nil
}

func (s *FileApprovalStore) Save(ctx context.Context, approval *entity.Approval) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := *approval
	s.approvals[approval.ID] = &snapshot
	return s.flush()
}

func (s *FileApprovalStore) FindByID(ctx context.Context, id string) (*entity.Approval, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.approvals[id]
	if !ok {
		return nil, entity.ErrApprovalNotFound
	}
	copy := *a
	return &copy, nil
}

func (s *FileApprovalStore) FindAll(ctx context.Context) ([]*entity.Approval, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*entity.Approval, 0, len(s.approvals))
	for _, a := range s.approvals {
		copy := *a
		out = append(out, &copy)
	}
	return out, nil
}

func (s *FileApprovalStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.approvals[id]; !ok {
		return nil
	}
	delete(s.approvals, id)
	return s.flush()
}

// flush rewrites the whole snapshot. Must be called with the lock held;
// the write completes before the mutating call returns to the caller.
func (s *FileApprovalStore) flush() error {
	pairs := make([]snapshotPair, 0, len(s.approvals))
	for id, a := range s.approvals {
		pairs = append(pairs, snapshotPair{ID: id, Approval: a})
	}

	data, err := json.MarshalIndent(pairs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode approval snapshot: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create snapshot dir: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write approval snapshot: %w", err)
	}
	return os.Rename(tmp, s.path)
}

// snapshotPair serializes as [id, approval], the layout the dashboard
// tooling already reads.
type snapshotPair struct {
	ID       string
	Approval *entity.Approval
}

func (p snapshotPair) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]interface{}{p.ID, p.Approval})
}

func (p *snapshotPair) UnmarshalJSON(data []byte) error {
	var raw [2]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[0], &p.ID); err != nil {
		return err
	}
	return json.Unmarshal(raw[1], &p.Approval)
}
