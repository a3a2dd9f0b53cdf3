package regionrepo

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/bitebrain/internal/domain/tiles"
)

const regionColumns = `id, name, north, south, east, west, min_zoom, max_zoom, status,
	tile_count, stored_tiles, size_bytes, content_type, failure_reason,
	created_at, updated_at, expires_at`

//go:embed schema.sql
var schemaSQL string

// PostgresRepository implements tiles.RegionRepository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// EnsureSchema creates the tile_regions table when it is missing.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, schemaSQL)
	return err
}

// Create inserts a region row.
func (r *PostgresRepository) Create(ctx context.Context, region tiles.Region) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO tile_regions (`+regionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`,
		region.ID, region.Name,
		region.Bounds.North, region.Bounds.South, region.Bounds.East, region.Bounds.West,
		region.Zoom.Min, region.Zoom.Max, string(region.Status),
		region.TileCount, region.StoredTiles, region.SizeBytes, region.ContentType, region.FailureReason,
		region.CreatedAt, region.UpdatedAt, region.ExpiresAt,
	)
	return err
}

// Update rewrites the mutable download fields of a region.
func (r *PostgresRepository) Update(ctx context.Context, region tiles.Region) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE tile_regions
		SET status = $2, stored_tiles = $3, size_bytes = $4, content_type = $5,
			failure_reason = $6, updated_at = $7, expires_at = $8
		WHERE id = $1
	`,
		region.ID, string(region.Status), region.StoredTiles, region.SizeBytes, region.ContentType,
		region.FailureReason, region.UpdatedAt, region.ExpiresAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("region %s not found", region.ID)
	}
	return nil
}

// Get fetches a region by id.
func (r *PostgresRepository) Get(ctx context.Context, id uuid.UUID) (tiles.Region, bool, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+regionColumns+` FROM tile_regions WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		return tiles.Region{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return tiles.Region{}, false, rows.Err()
	}
	region, err := scanRegion(rows)
	if err != nil {
		return tiles.Region{}, false, err
	}
	return region, true, rows.Err()
}

// List returns every region.
func (r *PostgresRepository) List(ctx context.Context) ([]tiles.Region, error) {
	return r.query(ctx, `SELECT `+regionColumns+` FROM tile_regions ORDER BY created_at DESC`)
}

// Delete removes a region row.
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM tile_regions WHERE id = $1`, id)
	return err
}

// ListExpired returns regions whose expiry is at or before now.
func (r *PostgresRepository) ListExpired(ctx context.Context, now time.Time) ([]tiles.Region, error) {
	return r.query(ctx, `
		SELECT `+regionColumns+`
		FROM tile_regions
		WHERE expires_at IS NOT NULL AND expires_at <= $1
	`, now)
}

func (r *PostgresRepository) query(ctx context.Context, sqlText string, args ...any) ([]tiles.Region, error) {
	rows, err := r.pool.Query(ctx, sqlText, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []tiles.Region
	for rows.Next() {
		region, err := scanRegion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, region)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRegion(row rowScanner) (tiles.Region, error) {
	var (
		region  tiles.Region
		status  string
		reason  sql.NullString
		expires sql.NullTime
	)
	if err := row.Scan(
		&region.ID, &region.Name,
		&region.Bounds.North, &region.Bounds.South, &region.Bounds.East, &region.Bounds.West,
		&region.Zoom.Min, &region.Zoom.Max, &status,
		&region.TileCount, &region.StoredTiles, &region.SizeBytes, &region.ContentType, &reason,
		&region.CreatedAt, &region.UpdatedAt, &expires,
	); err != nil {
		return tiles.Region{}, err
	}
	region.Status = tiles.RegionStatus(status)
	if reason.Valid {
		r := reason.String
		region.FailureReason = &r
	}
	if expires.Valid {
		t := expires.Time
		region.ExpiresAt = &t
	}
	return region, nil
}

var _ tiles.RegionRepository = (*PostgresRepository)(nil)
