package metrics

// StorageUsage captures how much of the offline tile quota is in use.
type StorageUsage struct {
	UsedBytes      int64 `json:"usedBytes"`
	AvailableBytes int64 `json:"availableBytes"`
	QuotaBytes     int64 `json:"quotaBytes"`
	Regions        int   `json:"regions"`
	Tiles          int   `json:"tiles"`
}

// NewStorageUsage derives the available bytes from a quota; it never goes negative.
func NewStorageUsage(used, quota int64, regions, tiles int) StorageUsage {
	available := quota - used
	if available < 0 {
		available = 0
	}
	return StorageUsage{
		UsedBytes:      used,
		AvailableBytes: available,
		QuotaBytes:     quota,
		Regions:        regions,
		Tiles:          tiles,
	}
}

// Exceeds reports whether adding n bytes would go past the quota.
func (u StorageUsage) Exceeds(n int64) bool {
	return u.QuotaBytes > 0 && u.UsedBytes+n > u.QuotaBytes
}
