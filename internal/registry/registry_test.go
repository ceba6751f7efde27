package registry

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jammyops/parceltrack/internal/models"
)

func TestSeedEntries_NoDuplicates(t *testing.T) {
	entries := SeedEntries()
	require.NotEmpty(t, entries)

	reg := New(entries)
	require.Equal(t, len(entries), reg.Len())
}

func TestLookup_PerCarrierKeys(t *testing.T) {
	reg := New(SeedEntries())

	e, ok := reg.Lookup(models.CarrierUPS, models.PartitionSuccess, "11")
	require.True(t, ok)
	require.Equal(t, models.StatusDelivered, e.NormalizedStatus)

	e, ok = reg.Lookup(models.CarrierFedEx, models.PartitionSuccess, "DL")
	require.True(t, ok)
	require.Equal(t, models.StatusDelivered, e.NormalizedStatus)

	e, ok = reg.Lookup(models.CarrierPriority, models.PartitionSuccess, "Dispatched")
	require.True(t, ok)
	require.Equal(t, models.StatusProcessing, e.NormalizedStatus)

	// Коды не пересекаются между перевозчиками.
	_, ok = reg.Lookup(models.CarrierFedEx, models.PartitionSuccess, "11")
	require.False(t, ok)
}

func TestLookup_PartitionsAreSeparate(t *testing.T) {
	reg := New(SeedEntries())

	_, ok := reg.Lookup(models.CarrierPriority, models.PartitionSuccess, "500")
	require.False(t, ok)

	e, ok := reg.Lookup(models.CarrierPriority, models.PartitionError, "500")
	require.True(t, ok)
	require.Equal(t, models.StatusDNNotFound, e.NormalizedStatus)
	require.True(t, e.Incident)
}

func TestLookup_MissIsNotAnError(t *testing.T) {
	reg := New(nil)
	_, ok := reg.Lookup(models.CarrierUPS, models.PartitionSuccess, "5")
	require.False(t, ok)
}

func TestSeedEntries_IncidentOnlyOnPriority500(t *testing.T) {
	for _, e := range SeedEntries() {
		if e.Incident {
			require.Equal(t, models.CarrierPriority, e.Carrier)
			require.Equal(t, "500", e.Code)
		}
	}
}
