package registry

import "github.com/jammyops/parceltrack/internal/models"

// Priority returns freeform status descriptions instead of codes, so the
// success partition is keyed by the description verbatim. Error entries are
// keyed by the HTTP response code as a string; the 500 "no shipments found"
// case is an incident: it stamps FirstIncidentAt on the shipment.
func prioritySeed() []models.StatusCodeEntry {
	out := expand(models.CarrierPriority, models.PartitionSuccess, []seedRow{
		{"Dispatched", "Dispatched", models.StatusProcessing},
		{"In Transit", "In Transit", models.StatusInTransit},
		{"Delivered", "Delivered", models.StatusDelivered},
		{"Canceled", "Canceled", models.StatusCancelled},
		{"Exception", "Exception", models.StatusException},
	})

	out = append(out,
		models.StatusCodeEntry{
			Carrier:            models.CarrierPriority,
			Partition:          models.PartitionError,
			Code:               "400",
			CarrierDescription: "Error converting identifier value to a known identifier type.",
			NormalizedStatus:   models.StatusException,
		},
		models.StatusCodeEntry{
			Carrier:            models.CarrierPriority,
			Partition:          models.PartitionError,
			Code:               "401",
			CarrierDescription: "Authorization Error: Incorrect API Key Send.",
			NormalizedStatus:   models.StatusException,
		},
		models.StatusCodeEntry{
			Carrier:            models.CarrierPriority,
			Partition:          models.PartitionError,
			Code:               "500",
			CarrierDescription: "No shipments found matching the given identifier.",
			NormalizedStatus:   models.StatusDNNotFound,
			Incident:           true,
		},
	)
	return out
}
