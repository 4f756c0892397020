package ecs

// StorageStats is a point-in-time summary of a Storage.
type StorageStats struct {
	ArchetypeCount     int
	TotalEntityCount   int
	SingletonCount     int
	ArchetypeBreakdown []ArchetypeStats
	SingletonTypes     []string
}

// ArchetypeStats describes one archetype.
type ArchetypeStats struct {
	ID             uint32
	ComponentTypes []string
	EntityCount    int
}

// CollectStats walks the storage and returns counts per archetype and singleton.
func (s *Storage) CollectStats() *StorageStats {
	stats := &StorageStats{
		ArchetypeCount:     len(s.order),
		SingletonCount:     len(s.singletonOrder),
		ArchetypeBreakdown: make([]ArchetypeStats, 0, len(s.order)),
		SingletonTypes:     make([]string, 0, len(s.singletonOrder)),
	}

	for _, archetype := range s.order {
		names := make([]string, len(archetype.types))
		for i, t := range archetype.types {
			names[i] = t.String()
		}
		count := archetype.Len()
		stats.TotalEntityCount += count
		stats.ArchetypeBreakdown = append(stats.ArchetypeBreakdown, ArchetypeStats{
			ID:             archetype.id,
			ComponentTypes: names,
			EntityCount:    count,
		})
	}

	for _, t := range s.singletonOrder {
		stats.SingletonTypes = append(stats.SingletonTypes, t.String())
	}

	return stats
}
