package tiles

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/yanqian/bitebrain/pkg/errors"
	"github.com/yanqian/bitebrain/pkg/metrics"
)

// JobDownloadRegion is the queue job that downloads a region's tiles.
const JobDownloadRegion = "tiles.download"

// Config bounds region size and storage.
type Config struct {
	MaxTilesPerRegion int
	MaxZoom           int
	QuotaBytes        int64
	Retention         time.Duration
}

// Service manages offline tile regions.
type Service struct {
	cfg     Config
	regions RegionRepository
	blobs   BlobStore
	fetcher Fetcher
	queue   JobQueue
	logger  *slog.Logger
	now     func() time.Time
}

// NewService constructs a Service.
func NewService(cfg Config, regions RegionRepository, blobs BlobStore, fetcher Fetcher, queue JobQueue, logger *slog.Logger) *Service {
	return &Service{
		cfg:     cfg,
		regions: regions,
		blobs:   blobs,
		fetcher: fetcher,
		queue:   queue,
		logger:  logger.With("component", "tiles.service"),
		now:     time.Now,
	}
}

// BlobKey is where a region's tile is stored.
func BlobKey(regionID uuid.UUID, c Coord) string {
	return fmt.Sprintf("tiles/%s/%d/%d/%d", regionID, c.Z, c.X, c.Y)
}

// CreateRegion validates and records a pending region, then enqueues its download.
func (s *Service) CreateRegion(ctx context.Context, req CreateRegionRequest) (Region, error) {
	if err := s.validate(req); err != nil {
		return Region{}, err
	}
	count := CountTiles(req.Bounds, req.Zoom)
	if count > s.cfg.MaxTilesPerRegion {
		return Region{}, apperrors.Wrap(apperrors.CodeInvalidInput,
			fmt.Sprintf("region needs %d tiles, limit is %d", count, s.cfg.MaxTilesPerRegion), nil)
	}
	usage, err := s.Usage(ctx)
	if err != nil {
		return Region{}, err
	}
	if usage.AvailableBytes == 0 {
		return Region{}, apperrors.Wrap(apperrors.CodeQuotaExceeded, "offline storage quota is full", nil)
	}

	now := s.now().UTC()
	region := Region{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(req.Name),
		Bounds:    req.Bounds,
		Zoom:      req.Zoom,
		Status:    RegionPending,
		TileCount: count,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if region.Name == "" {
		region.Name = fmt.Sprintf("Region %s", region.ID.String()[:8])
	}
	if s.cfg.Retention > 0 {
		expires := now.Add(s.cfg.Retention)
		region.ExpiresAt = &expires
	}
	if err := s.regions.Create(ctx, region); err != nil {
		return Region{}, apperrors.Wrap(apperrors.CodeStorage, "failed to persist region", err)
	}

	if s.queue != nil {
		payload := map[string]any{"region_id": region.ID.String()}
		if err := s.queue.Enqueue(ctx, JobDownloadRegion, payload); err != nil {
			s.logger.Warn("enqueue tiles.download failed", "region_id", region.ID, "error", err)
		}
	}
	s.logger.Info("region created", "region_id", region.ID, "tiles", count)
	return region, nil
}

func (s *Service) validate(req CreateRegionRequest) error {
	b := req.Bounds
	for _, v := range []float64{b.North, b.South, b.East, b.West} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return apperrors.Wrap(apperrors.CodeInvalidInput, "bounds must be finite", nil)
		}
	}
	if b.North > 90 || b.South < -90 || b.North <= b.South {
		return apperrors.Wrap(apperrors.CodeInvalidInput, "north must be greater than south and within [-90, 90]", nil)
	}
	if b.East > 180 || b.West < -180 || b.East <= b.West {
		return apperrors.Wrap(apperrors.CodeInvalidInput, "east must be greater than west and within [-180, 180]", nil)
	}
	if req.Zoom.Min < 0 || req.Zoom.Max < req.Zoom.Min || req.Zoom.Max > s.cfg.MaxZoom {
		return apperrors.Wrap(apperrors.CodeInvalidInput,
			fmt.Sprintf("zoom levels must satisfy 0 <= min <= max <= %d", s.cfg.MaxZoom), nil)
	}
	return nil
}

// HandleJob is the queue handler for tile jobs.
func (s *Service) HandleJob(ctx context.Context, name string, payload map[string]any) {
	if name != JobDownloadRegion {
		s.logger.Warn("unknown tiles job", "name", name)
		return
	}
	raw, _ := payload["region_id"].(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		s.logger.Warn("tiles.download payload invalid", "region_id", raw, "error", err)
		return
	}
	if err := s.DownloadRegion(ctx, id); err != nil {
		s.logger.Error("tiles.download failed", "region_id", id, "error", err)
	}
}

// DownloadRegion fetches and stores every tile of a pending region. Individual
// tile failures are logged and skipped; the region is ready once all tiles
// have been attempted.
func (s *Service) DownloadRegion(ctx context.Context, id uuid.UUID) error {
	region, found, err := s.regions.Get(ctx, id)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "failed to load region", err)
	}
	if !found {
		return apperrors.Wrap(apperrors.CodeNotFound, "region not found", nil)
	}
	if region.Status == RegionReady {
		return nil
	}
	s.logger.Info("tiles.download start", "region_id", id, "tiles", region.TileCount)

	usage, err := s.Usage(ctx)
	if err != nil {
		return err
	}
	used := usage.UsedBytes - region.SizeBytes

	region.StoredTiles, region.SizeBytes = 0, 0
	var failed int
	for _, c := range TilesInBounds(region.Bounds, region.Zoom) {
		if err := ctx.Err(); err != nil {
			return s.fail(ctx, region, "download cancelled", err)
		}
		data, contentType, err := s.fetcher.Fetch(ctx, c)
		if errors.Is(err, ErrSourceUnavailable) {
			return s.fail(ctx, region, "tile source unavailable",
				apperrors.Wrap(apperrors.CodeUpstream, "tile source unavailable", err))
		}
		if err != nil {
			failed++
			s.logger.Warn("tile download failed", "region_id", id, "z", c.Z, "x", c.X, "y", c.Y, "error", err)
			continue
		}
		if s.cfg.QuotaBytes > 0 && used+region.SizeBytes+int64(len(data)) > s.cfg.QuotaBytes {
			return s.fail(ctx, region, "offline storage quota exceeded",
				apperrors.Wrap(apperrors.CodeQuotaExceeded, "offline storage quota exceeded", nil))
		}
		obj, err := s.blobs.Put(ctx, BlobKey(id, c), data, contentType)
		if err != nil {
			failed++
			s.logger.Warn("tile store failed", "region_id", id, "z", c.Z, "x", c.X, "y", c.Y, "error", err)
			continue
		}
		region.StoredTiles++
		region.SizeBytes += obj.Size
		if region.ContentType == "" {
			region.ContentType = contentType
		}
	}

	region.Status = RegionReady
	region.FailureReason = nil
	region.UpdatedAt = s.now().UTC()
	if err := s.regions.Update(ctx, region); err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "failed to finalize region", err)
	}
	s.logger.Info("tiles.download complete",
		"region_id", id,
		"stored", region.StoredTiles,
		"failed", failed,
		"bytes", region.SizeBytes,
	)
	return nil
}

func (s *Service) fail(ctx context.Context, region Region, reason string, cause error) error {
	region.Status = RegionFailed
	region.FailureReason = &reason
	region.UpdatedAt = s.now().UTC()
	if err := s.regions.Update(context.WithoutCancel(ctx), region); err != nil {
		s.logger.Error("failed to mark region failed", "region_id", region.ID, "error", err)
	}
	return cause
}

// GetRegion returns a region by id.
func (s *Service) GetRegion(ctx context.Context, id uuid.UUID) (Region, error) {
	region, found, err := s.regions.Get(ctx, id)
	if err != nil {
		return Region{}, apperrors.Wrap(apperrors.CodeStorage, "failed to load region", err)
	}
	if !found {
		return Region{}, apperrors.Wrap(apperrors.CodeNotFound, "region not found", nil)
	}
	return region, nil
}

// ListRegions returns all regions, newest first.
func (s *Service) ListRegions(ctx context.Context) ([]Region, error) {
	regions, err := s.regions.List(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorage, "failed to list regions", err)
	}
	sort.SliceStable(regions, func(i, j int) bool {
		return regions[i].CreatedAt.After(regions[j].CreatedAt)
	})
	return regions, nil
}

// DeleteRegion removes a region's blobs and metadata.
func (s *Service) DeleteRegion(ctx context.Context, id uuid.UUID) error {
	region, err := s.GetRegion(ctx, id)
	if err != nil {
		return err
	}
	if err := s.removeRegion(ctx, region); err != nil {
		return err
	}
	s.logger.Info("region deleted", "region_id", id)
	return nil
}

func (s *Service) removeRegion(ctx context.Context, region Region) error {
	for _, c := range TilesInBounds(region.Bounds, region.Zoom) {
		if err := s.blobs.Delete(ctx, BlobKey(region.ID, c)); err != nil && !errors.Is(err, ErrBlobNotFound) {
			return apperrors.Wrap(apperrors.CodeStorage, "failed to delete tile", err)
		}
	}
	if err := s.regions.Delete(ctx, region.ID); err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "failed to delete region", err)
	}
	return nil
}

// GetTile serves a cached tile from the first ready region covering c.
func (s *Service) GetTile(ctx context.Context, c Coord) (Tile, error) {
	if !c.Valid(s.cfg.MaxZoom) {
		return Tile{}, apperrors.Wrap(apperrors.CodeInvalidInput, "tile coordinate out of range", nil)
	}
	regions, err := s.ListRegions(ctx)
	if err != nil {
		return Tile{}, err
	}
	for _, region := range regions {
		if region.Status != RegionReady || !region.Covers(c) {
			continue
		}
		reader, err := s.blobs.Get(ctx, BlobKey(region.ID, c))
		if err != nil {
			if !errors.Is(err, ErrBlobNotFound) {
				s.logger.Warn("tile read failed", "region_id", region.ID, "error", err)
			}
			continue
		}
		data, err := io.ReadAll(reader)
		reader.Close()
		if err != nil {
			return Tile{}, apperrors.Wrap(apperrors.CodeStorage, "failed to read tile", err)
		}
		return Tile{Coord: c, RegionID: region.ID, ContentType: region.ContentType, Data: data}, nil
	}
	return Tile{}, apperrors.Wrap(apperrors.CodeNotFound, "tile not cached", nil)
}

// Usage reports stored bytes against the configured quota.
func (s *Service) Usage(ctx context.Context) (metrics.StorageUsage, error) {
	regions, err := s.regions.List(ctx)
	if err != nil {
		return metrics.StorageUsage{}, apperrors.Wrap(apperrors.CodeStorage, "failed to list regions", err)
	}
	var used int64
	var tiles int
	for _, r := range regions {
		used += r.SizeBytes
		tiles += r.StoredTiles
	}
	return metrics.NewStorageUsage(used, s.cfg.QuotaBytes, len(regions), tiles), nil
}

// PruneExpired deletes regions whose expiry is at or before now.
func (s *Service) PruneExpired(ctx context.Context, now time.Time) (int, error) {
	expired, err := s.regions.ListExpired(ctx, now)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.CodeStorage, "failed to list expired regions", err)
	}
	pruned := 0
	for _, region := range expired {
		if err := s.removeRegion(ctx, region); err != nil {
			s.logger.Warn("prune region failed", "region_id", region.ID, "error", err)
			continue
		}
		pruned++
	}
	if pruned > 0 {
		s.logger.Info("expired regions pruned", "count", pruned)
	}
	return pruned, nil
}
