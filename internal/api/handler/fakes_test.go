package handler

import (
	"context"
	"sync"

	"github.com/hirenest/hirenest-be/internal/api/domain"
	"github.com/hirenest/hirenest-be/internal/api/model"
	"github.com/hirenest/hirenest-be/internal/api/storage"
)

// fakeJobStore is an in-memory JobStore for handler tests.
type fakeJobStore struct {
	mu         sync.Mutex
	jobs       map[string]model.Job
	lastFilter storage.JobSearchFilter
	failWith   error
}

func newFakeJobStore() *fakeJobStore {
	return &fakeJobStore{jobs: make(map[string]model.Job)}
}

func (f *fakeJobStore) CreateJob(_ context.Context, job *model.Job) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobs[job.JobID] = *job
	return nil
}

func (f *fakeJobStore) UpsertJob(_ context.Context, job *model.Job) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobs[job.JobID] = *job
	return nil
}

func (f *fakeJobStore) GetJobByID(_ context.Context, jobID string) (*model.Job, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.jobs[jobID]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	return &job, nil
}

func (f *fakeJobStore) ListJobs(_ context.Context) ([]model.Job, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Job, 0, len(f.jobs))
	for _, job := range f.jobs {
		out = append(out, job)
	}
	return out, nil
}

func (f *fakeJobStore) ListJobsByOwner(_ context.Context, email string) ([]model.Job, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Job{}
	for _, job := range f.jobs {
		if job.BuyerEmail == email {
			out = append(out, job)
		}
	}
	return out, nil
}

func (f *fakeJobStore) DeleteJob(_ context.Context, jobID string) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.jobs[jobID]; !ok {
		return domain.ErrJobNotFound
	}
	delete(f.jobs, jobID)
	return nil
}

func (f *fakeJobStore) SearchJobs(_ context.Context, filter storage.JobSearchFilter) ([]model.Job, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastFilter = filter
	return []model.Job{}, nil
}

func (f *fakeJobStore) CountJobs(_ context.Context, search, category string) (int, error) {
	if f.failWith != nil {
		return 0, f.failWith
	}
	return len(f.jobs), nil
}

// fakeBidStore is an in-memory BidStore for handler tests.
type fakeBidStore struct {
	mu       sync.Mutex
	bids     map[string]model.Bid
	failWith error
}

func newFakeBidStore() *fakeBidStore {
	return &fakeBidStore{bids: make(map[string]model.Bid)}
}

func (f *fakeBidStore) CreateBid(_ context.Context, bid *model.Bid) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.bids {
		if existing.Email == bid.Email && existing.JobID == bid.JobID {
			return domain.ErrDuplicateBid
		}
	}
	f.bids[bid.BidID] = *bid
	return nil
}

func (f *fakeBidStore) HasBid(_ context.Context, email, jobID string) (bool, error) {
	if f.failWith != nil {
		return false, f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, bid := range f.bids {
		if bid.Email == email && bid.JobID == jobID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBidStore) GetBidByID(_ context.Context, bidID string) (*model.Bid, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	bid, ok := f.bids[bidID]
	if !ok {
		return nil, domain.ErrBidNotFound
	}
	return &bid, nil
}

func (f *fakeBidStore) ListBidsByBidder(_ context.Context, email string) ([]model.Bid, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Bid{}
	for _, bid := range f.bids {
		if bid.Email == email {
			out = append(out, bid)
		}
	}
	return out, nil
}

func (f *fakeBidStore) ListBidsByOwner(_ context.Context, email string) ([]model.Bid, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Bid{}
	for _, bid := range f.bids {
		if bid.BuyerEmail == email {
			out = append(out, bid)
		}
	}
	return out, nil
}

func (f *fakeBidStore) UpdateBidStatus(_ context.Context, bidID, from, to string) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	bid, ok := f.bids[bidID]
	if !ok {
		return domain.ErrBidNotFound
	}
	if bid.Status != from {
		return domain.ErrIllegalTransition
	}
	bid.Status = to
	f.bids[bidID] = bid
	return nil
}

// fakePublisher records published event bodies.
type fakePublisher struct {
	mu        sync.Mutex
	published [][]byte
	failWith  error
}

func (f *fakePublisher) PublishWithRetry(_ context.Context, body []byte, _ string) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, body)
	return nil
}
