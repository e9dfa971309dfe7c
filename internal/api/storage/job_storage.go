package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hirenest/hirenest-be/internal/api/domain"
	"github.com/hirenest/hirenest-be/internal/api/model"
)

const jobColumns = `
	job_id, title, category, deadline, description,
	min_price, max_price, buyer_email, buyer_name, buyer_photo,
	created_at, updated_at
`

// JobSearchFilter describes the /all-jobs predicate: a case-insensitive
// substring match on title (empty matches everything), an optional exact
// category equality, an optional deadline sort, and 1-based pagination.
type JobSearchFilter struct {
	Search   string
	Category string
	Sort     string // "asc" or "desc" by deadline; anything else keeps insertion order
	Page     int
	Size     int
}

func (s *Storage) CreateJob(ctx context.Context, job *model.Job) error {
	query := `
		INSERT INTO jobs (` + jobColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		job.JobID,
		job.Title,
		job.Category,
		job.Deadline,
		job.Description,
		job.MinPrice,
		job.MaxPrice,
		job.BuyerEmail,
		job.BuyerName,
		job.BuyerPhoto,
		job.CreatedAt,
		job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}

	return nil
}

// UpsertJob replaces the posting fields of an existing job, or inserts
// a new row when the id has no match. PUT is deliberately an upsert.
func (s *Storage) UpsertJob(ctx context.Context, job *model.Job) error {
	query := `
		INSERT INTO jobs (` + jobColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (job_id) DO UPDATE SET
			title = EXCLUDED.title,
			category = EXCLUDED.category,
			deadline = EXCLUDED.deadline,
			description = EXCLUDED.description,
			min_price = EXCLUDED.min_price,
			max_price = EXCLUDED.max_price,
			buyer_email = EXCLUDED.buyer_email,
			buyer_name = EXCLUDED.buyer_name,
			buyer_photo = EXCLUDED.buyer_photo,
			updated_at = EXCLUDED.updated_at
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		job.JobID,
		job.Title,
		job.Category,
		job.Deadline,
		job.Description,
		job.MinPrice,
		job.MaxPrice,
		job.BuyerEmail,
		job.BuyerName,
		job.BuyerPhoto,
		job.CreatedAt,
		job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert job: %w", err)
	}

	return nil
}

func (s *Storage) GetJobByID(ctx context.Context, jobID string) (*model.Job, error) {
	var job model.Job
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE job_id = $1`

	err := s.db.GetContext(ctx, &job, query, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	return &job, nil
}

func (s *Storage) ListJobs(ctx context.Context) ([]model.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs ORDER BY created_at DESC, job_id DESC`

	jobs := []model.Job{}
	if err := s.db.SelectContext(ctx, &jobs, query); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	return jobs, nil
}

func (s *Storage) ListJobsByOwner(ctx context.Context, email string) ([]model.Job, error) {
	query := `
		SELECT ` + jobColumns + `
		FROM jobs
		WHERE buyer_email = $1
		ORDER BY created_at DESC, job_id DESC
	`

	jobs := []model.Job{}
	if err := s.db.SelectContext(ctx, &jobs, query, email); err != nil {
		return nil, fmt.Errorf("failed to list jobs by owner: %w", err)
	}

	return jobs, nil
}

func (s *Storage) DeleteJob(ctx context.Context, jobID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM jobs WHERE job_id = $1`, jobID)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if affected == 0 {
		return domain.ErrJobNotFound
	}

	return nil
}

func (s *Storage) SearchJobs(ctx context.Context, filter JobSearchFilter) ([]model.Job, error) {
	query, args := buildJobSearchQuery(filter)

	jobs := []model.Job{}
	if err := s.db.SelectContext(ctx, &jobs, query, args...); err != nil {
		return nil, fmt.Errorf("failed to search jobs: %w", err)
	}

	return jobs, nil
}

func (s *Storage) CountJobs(ctx context.Context, search, category string) (int, error) {
	where, args := jobSearchPredicate(search, category)
	query := `SELECT COUNT(*) FROM jobs` + where

	var count int
	if err := s.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	return count, nil
}

// jobSearchPredicate builds the shared WHERE clause for search and
// count. An empty search term degenerates to ILIKE '%%', matching all.
func jobSearchPredicate(search, category string) (string, []interface{}) {
	where := ` WHERE title ILIKE '%' || $1 || '%'`
	args := []interface{}{search}

	if category != "" {
		where += ` AND category = $2`
		args = append(args, category)
	}

	return where, args
}

func buildJobSearchQuery(filter JobSearchFilter) (string, []interface{}) {
	where, args := jobSearchPredicate(filter.Search, filter.Category)
	query := `SELECT ` + jobColumns + ` FROM jobs` + where

	// Secondary order by job_id keeps pagination stable across pages
	switch filter.Sort {
	case "asc":
		query += ` ORDER BY deadline ASC, job_id ASC`
	case "desc":
		query += ` ORDER BY deadline DESC, job_id DESC`
	default:
		query += ` ORDER BY created_at DESC, job_id DESC`
	}

	page := filter.Page
	if page < 1 {
		// a 0 or negative page would produce a negative skip
		page = 1
	}

	argIdx := len(args) + 1
	query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, argIdx, argIdx+1)
	args = append(args, filter.Size, (page-1)*filter.Size)

	return query, args
}
