package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jha-shubham/PRDs/internal/domain/prd"
	"github.com/jha-shubham/PRDs/internal/repository"
)

// PRDRepository implements prd.Repository for SQLite
type PRDRepository struct {
	db *DB
}

// NewPRDRepository creates a new PRDRepository
func NewPRDRepository(db *DB) *PRDRepository {
	return &PRDRepository{db: db}
}

const prdColumns = `id, title, description, author, status, priority, completion, created_at, updated_at, is_active`

// Create inserts a new PRD and its tags
func (r *PRDRepository) Create(ctx context.Context, p *prd.PRD) error {
	if p == nil || p.ID == "" {
		return repository.ErrInvalidInput
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO prds (` + prdColumns + `, title_lc, description_lc)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = tx.ExecContext(ctx, query,
		p.ID,
		p.Title,
		p.Description,
		p.Author,
		string(p.Status),
		string(p.Priority),
		p.CompletionPercentage,
		toUnix(p.CreatedAt),
		toUnix(p.UpdatedAt),
		p.IsActive,
		foldCase(p.Title),
		foldCase(p.Description),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		if isCheckViolation(err) {
			return repository.ErrInvalidInput
		}
		return fmt.Errorf("failed to create prd: %w", err)
	}

	if err := insertTags(ctx, tx, p.ID, p.Tags); err != nil {
		return err
	}
	return tx.Commit()
}

// Get retrieves an active PRD by ID
func (r *PRDRepository) Get(ctx context.Context, id string) (*prd.PRD, error) {
	query := `SELECT ` + prdColumns + ` FROM prds WHERE id = ? AND is_active = 1`

	p, err := scanPRD(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get prd: %w", err)
	}

	tags, err := r.loadTags(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	p.Tags = tagsOrEmpty(tags[id])
	return &p, nil
}

// Update replaces every mutable column and the tag set of a PRD
func (r *PRDRepository) Update(ctx context.Context, p *prd.PRD) error {
	if p == nil {
		return repository.ErrInvalidInput
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE prds
		SET title = ?, description = ?, title_lc = ?, description_lc = ?,
		    author = ?, status = ?, priority = ?,
		    completion = ?, updated_at = ?, is_active = ?
		WHERE id = ?
	`
	result, err := tx.ExecContext(ctx, query,
		p.Title,
		p.Description,
		foldCase(p.Title),
		foldCase(p.Description),
		p.Author,
		string(p.Status),
		string(p.Priority),
		p.CompletionPercentage,
		toUnix(p.UpdatedAt),
		p.IsActive,
		p.ID,
	)
	if err != nil {
		if isCheckViolation(err) {
			return repository.ErrInvalidInput
		}
		return fmt.Errorf("failed to update prd: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM prd_tags WHERE prd_id = ?`, p.ID); err != nil {
		return fmt.Errorf("failed to clear tags: %w", err)
	}
	if err := insertTags(ctx, tx, p.ID, p.Tags); err != nil {
		return err
	}
	return tx.Commit()
}

// List returns active PRDs matching the given options in insertion order
func (r *PRDRepository) List(ctx context.Context, opts prd.ListOptions) ([]prd.PRD, error) {
	query := `SELECT ` + prdColumns + ` FROM prds WHERE is_active = 1`

	args := []any{}
	conditions := []string{}

	if opts.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, string(opts.Status))
	}
	if opts.Priority != "" {
		conditions = append(conditions, "priority = ?")
		args = append(args, string(opts.Priority))
	}
	if opts.Author != "" {
		conditions = append(conditions, "author = ?")
		args = append(args, opts.Author)
	}

	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY seq ASC"
	query, args = paginate(query, args, opts.Limit, opts.Offset)

	return r.query(ctx, query, args...)
}

// Search returns active PRDs whose title, description or tags contain query
func (r *PRDRepository) Search(ctx context.Context, query string, opts prd.SearchOptions) ([]prd.PRD, error) {
	needle := foldCase(strings.TrimSpace(query))
	if needle == "" {
		return []prd.PRD{}, nil
	}
	pattern := "%" + escapeLike(needle) + "%"

	stmt := `
		SELECT ` + prdColumns + `
		FROM prds p
		WHERE p.is_active = 1 AND (
			p.title_lc LIKE ? ESCAPE '\'
			OR p.description_lc LIKE ? ESCAPE '\'
			OR EXISTS (
				SELECT 1 FROM prd_tags t
				WHERE t.prd_id = p.id AND t.tag LIKE ? ESCAPE '\'
			)
		)
		ORDER BY p.seq ASC
	`
	stmt, args := paginate(stmt, []any{pattern, pattern, pattern}, opts.Limit, opts.Offset)

	return r.query(ctx, stmt, args...)
}

func (r *PRDRepository) query(ctx context.Context, query string, args ...any) ([]prd.PRD, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list prds: %w", err)
	}

	prds := []prd.PRD{}
	for rows.Next() {
		p, err := scanPRD(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan prd: %w", err)
		}
		prds = append(prds, p)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("error iterating prd rows: %w", err)
	}
	// The pool holds a single connection, so rows must be released before
	// the tag query runs.
	rows.Close()

	ids := make([]string, len(prds))
	for i, p := range prds {
		ids[i] = p.ID
	}
	tags, err := r.loadTags(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range prds {
		prds[i].Tags = tagsOrEmpty(tags[prds[i].ID])
	}
	return prds, nil
}

func (r *PRDRepository) loadTags(ctx context.Context, ids []string) (map[string][]string, error) {
	out := make(map[string][]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}
	query := fmt.Sprintf(
		`SELECT prd_id, tag FROM prd_tags WHERE prd_id IN (%s) ORDER BY prd_id, position`,
		strings.Join(placeholders, ","),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, tag string
		if err := rows.Scan(&id, &tag); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		out[id] = append(out[id], tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tag rows: %w", err)
	}
	return out, nil
}

func insertTags(ctx context.Context, tx *sql.Tx, id string, tags []string) error {
	for i, tag := range tags {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO prd_tags (prd_id, position, tag) VALUES (?, ?, ?)`,
			id, i, tag,
		)
		if err != nil {
			return fmt.Errorf("failed to add tag: %w", err)
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPRD(row rowScanner) (prd.PRD, error) {
	var (
		p         prd.PRD
		createdAt int64
		updatedAt int64
	)
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.Author,
		&p.Status,
		&p.Priority,
		&p.CompletionPercentage,
		&createdAt,
		&updatedAt,
		&p.IsActive,
	)
	if err != nil {
		return prd.PRD{}, err
	}
	p.CreatedAt = fromUnix(createdAt)
	p.UpdatedAt = fromUnix(updatedAt)
	return p, nil
}

func paginate(query string, args []any, limit, offset int) (string, []any) {
	if limit <= 0 && offset <= 0 {
		return query, args
	}
	if limit <= 0 {
		limit = -1
	}
	return query + " LIMIT ? OFFSET ?", append(args, limit, max(offset, 0))
}

// foldCase lowers text in Go. SQLite's lower() and LIKE only fold ASCII, so
// searchable text is stored pre-folded.
func foldCase(s string) string {
	return strings.ToLower(s)
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

// Timestamps are stored as Unix nanoseconds.
func toUnix(t time.Time) int64 {
	return t.UnixNano()
}

func fromUnix(ns int64) time.Time {
	return time.Unix(0, ns).UTC()
}
