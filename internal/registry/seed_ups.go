package registry

import "github.com/jammyops/parceltrack/internal/models"

// UPS publishes numeric tracking status codes. Table carried from the UPS
// Track API package status reference.
func upsSeed() []models.StatusCodeEntry {
	rows := []seedRow{
		{"0", "Status Not Available", models.StatusNotFound},
		{"3", "Shipment Ready for UPS", models.StatusProcessing},
		{"5", "On the Way", models.StatusInTransit},
		{"6", "Out for Delivery", models.StatusInTransit},
		{"7", "Shipment Information Voided", models.StatusCancelled},
		{"10", "On the Way", models.StatusInTransit},
		{"11", "Delivered", models.StatusDelivered},
		{"12", "Clearance in Progress", models.StatusInTransit},
		{"13", "Exception", models.StatusException},
		{"14", "Clearance Completed", models.StatusInTransit},
		{"16", "In Warehouse", models.StatusInTransit},
		{"17", "Held for Customer Pickup", models.StatusInTransit},
		{"18", "Delivery Change Requested: Hold for Pickup", models.StatusInTransit},
		{"19", "Held for Future Delivery", models.StatusInTransit},
		{"20", "Held for Future Delivery Requested", models.StatusInTransit},
		{"21", "Out for Delivery", models.StatusInTransit},
		{"22", "First Attempt Made", models.StatusInTransit},
		{"23", "Second Delivery Attempted", models.StatusInTransit},
		{"24", "Final Attempt Made", models.StatusInTransit},
		{"25", "On the Way", models.StatusInTransit},
		{"26", "Delivered by Local Post Office", models.StatusInTransit},
		{"27", "Delivery Address Change Requested", models.StatusInTransit},
		{"28", "Delivery Address Changed", models.StatusInTransit},
		{"29", "Exception: Action Required", models.StatusException},
		{"30", "Local Post Office Exception", models.StatusException},
		{"32", "Adverse Weather May Cause Delay", models.StatusInTransit},
		{"33", "Return to Sender Requested", models.StatusException},
		{"34", "Returned to Sender", models.StatusException},
		{"35", "Returning to Sender", models.StatusException},
		{"36", "Returning to Sender: In Transit", models.StatusException},
		{"37", "Out for Delivery", models.StatusInTransit},
		{"38", "Picked Up by UPS", models.StatusInTransit},
		{"39", "On the Way", models.StatusInTransit},
		{"40", "Ready for Customer Pickup", models.StatusProcessing},
		{"41", "Service Upgrade Requested", models.StatusInTransit},
		{"42", "Service Upgraded", models.StatusInTransit},
		{"43", "Voided Pickup", models.StatusCancelled},
		{"44", "On the Way to UPS", models.StatusInTransit},
		{"45", "On the Way to UPS", models.StatusInTransit},
		{"46", "Delay", models.StatusInTransit},
		{"47", "On the Way", models.StatusInTransit},
		{"48", "Delay", models.StatusInTransit},
		{"49", "Delay: Action Required", models.StatusException},
		{"50", "Address Information Required", models.StatusException},
		{"51", "Delay: Emergency Situation or Severe Weather", models.StatusInTransit},
		{"52", "Delay: Severe Weather", models.StatusInTransit},
		{"53", "Delay: Severe Weather", models.StatusInTransit},
		{"54", "Delivery Change Requested", models.StatusInTransit},
		{"55", "Rescheduled Delivery", models.StatusInTransit},
		{"56", "Service Upgrade Requested", models.StatusInTransit},
		{"57", "On the Way to a Local UPS Access Point™", models.StatusInTransit},
		{"58", "Clearance Information Required", models.StatusException},
		{"59", "Damage Reported", models.StatusException},
		{"60", "Delivery Attempted", models.StatusInTransit},
		{"61", "Delivery Attempted: Adult Signature Required", models.StatusInTransit},
		{"62", "Delivery Attempted: Funds Required", models.StatusInTransit},
		{"63", "Delivery Change Completed", models.StatusInTransit},
		{"64", "Delivery Refused", models.StatusException},
		{"65", "Pickup Attempted", models.StatusProcessing},
		{"66", "Post Office Delivery Attempted", models.StatusInTransit},
		{"67", "Returned to Sender by Post Office", models.StatusException},
		{"68", "Sent to Lost and Found", models.StatusException},
		{"69", "Unable to Deliver", models.StatusException},
		{"70", "Package not at UPS Access Point™ yet", models.StatusInTransit},
		{"71", "Preparing for Delivery", models.StatusInTransit},
		{"72", "Loaded on Delivery Vehicle", models.StatusInTransit},
		{"73", "In Transit to UPS Delivery Partner", models.StatusInTransit},
		{"74", "UPS Delivery Partner has Shipment", models.StatusInTransit},
		{"75", "Scheduled for Delivery", models.StatusInTransit},
		{"76", "UPS Delivery Partner Exception", models.StatusException},
		{"77", "Scheduled for Pickup Today", models.StatusInTransit},
		{"78", "Your Driver is Arriving Soon!", models.StatusInTransit},
		{"79", "Order Processed: In Transit to UPS", models.StatusInTransit},
		{"80", "Order Processed: Ready for UPS", models.StatusInTransit},
		{"81", "Returned - Damage Reported", models.StatusException},
		{"82", "Delivery Instructions Received", models.StatusInTransit},
		{"83", "Held", models.StatusInTransit},
		{"84", "Cleared", models.StatusInTransit},
		{"85", "Held for COD Payment", models.StatusInTransit},
		{"86", "Delay", models.StatusInTransit},
		{"87", "On the Way", models.StatusInTransit},
		{"88", "Test", models.StatusProcessing},
		{"89", "Out for Delivery", models.StatusInTransit},
		{"90", "Delay", models.StatusInTransit},
		{"91", "Out for Delivery", models.StatusInTransit},
		{"92", "Customs Clearance in Progress", models.StatusInTransit},
		{"93", "Premier Recovery In Progress", models.StatusInTransit},
		{"94", "Premier Recovery Completed", models.StatusInTransit},
		{"95", "Additional Attempt Requested", models.StatusInTransit},
		{"96", "Address Change Confirmed", models.StatusInTransit},
		{"97", "Address Change Requested", models.StatusInTransit},
		{"98", "Deliver to Original Address Requested", models.StatusInTransit},
		{"99", "Deliver to Original Address Confirmed", models.StatusInTransit},
		{"100", "Hold at UPS Access Point™ Confirmed", models.StatusInTransit},
		{"101", "Hold at UPS Access Point™ Requested", models.StatusInTransit},
		{"102", "Hold for Courier Requested", models.StatusInTransit},
		{"103", "Hold for Courier Confirmed", models.StatusInTransit},
		{"104", "Hold for Instructions Confirmed", models.StatusInTransit},
		{"105", "Hold for Instructions Requested", models.StatusInTransit},
		{"106", "Hold for Pickup Confirmed", models.StatusInTransit},
		{"107", "Hold for Pickup Requested", models.StatusInTransit},
		{"108", "Hold for Pickup Today Confirmed", models.StatusInTransit},
		{"109", "Hold for Pickup Today Requested", models.StatusInTransit},
		{"110", "Refrigeration Confirmed", models.StatusInTransit},
		{"111", "Refrigeration Requested", models.StatusInTransit},
		{"112", "Re-Ice Confirmed", models.StatusInTransit},
		{"113", "Re-Ice Requested", models.StatusInTransit},
		{"114", "Request Canceled", models.StatusCancelled},
		{"115", "Reschedule Delivery Confirmed", models.StatusInTransit},
		{"116", "Reschedule Delivery Requested", models.StatusInTransit},
		{"117", "Return by Saturday Confirmed", models.StatusInTransit},
		{"118", "Return to Sender Confirmed", models.StatusInTransit},
		{"119", "Return to Sender Requested", models.StatusInTransit},
		{"120", "Saturday Delivery Confirmed", models.StatusInTransit},
		{"121", "Saturday Delivery Requested", models.StatusInTransit},
		{"122", "Upgrade Confirmed", models.StatusInTransit},
		{"123", "Pending Release From Non-UPS Broker", models.StatusInTransit},
		{"124", "Clearance Information Needed", models.StatusException},
		{"125", "Clearance Information Needed", models.StatusException},
		{"126", "Pending Government Agency Release", models.StatusInTransit},
		{"127", "Investigation Closed", models.StatusProcessed},
		{"128", "Investigation Canceled", models.StatusProcessed},
		{"129", "Investigation Opened", models.StatusInTransit},
		{"130", "Claim in Progress", models.StatusProcessed},
		{"131", "Final Pickup Attempted", models.StatusInTransit},
		{"132", "Airport Security Delay", models.StatusInTransit},
		{"133", "Return Label Left With Customer", models.StatusProcessing},
		{"134", "Cleared Import Customs", models.StatusInTransit},
		{"135", "Second Pickup Attempted", models.StatusInTransit},
		{"136", "Delivery Rescheduled for Saturday", models.StatusInTransit},
		{"137", "Transferred to UPS Delivery Partner", models.StatusInTransit},
		{"138", "Awaiting Scheduled Departure", models.StatusInTransit},
		{"139", "Security Access Required", models.StatusException},
		{"140", "Claim Paid - Claim Payment Has Been Processed.", models.StatusProcessed},
		{"141", "Incomplete Documentation Received", models.StatusException},
		{"142", "Claim Voided", models.StatusProcessed},
		{"143", "Delivered to Agent", models.StatusInTransit},
		{"144", "Delivered to Post Office for Pickup", models.StatusDelivered},
		{"145", "Delivery Attempted", models.StatusInTransit},
		{"146", "Out for Delivery", models.StatusInTransit},
		{"147", "Seized by Law Enforcement, No Longer in UPS possession", models.StatusCancelled},
		{"148", "Package Information Unavailable", models.StatusException},
		{"149", "Prohibited Contents, Package Destroyed No Longer in UPS possession", models.StatusException},
		{"153", "Updated Delivery Time", models.StatusInTransit},
		{"154", "Updated Delivery Date", models.StatusInTransit},
		{"155", "Delivery Photo", models.StatusDelivered},
		{"156", "Commercial Inside Release", models.StatusDelivered},
		{"157", "Shipment Ready for UPS", models.StatusProcessing},
		{"158", "On the Way", models.StatusInTransit},
		{"159", "On the Way", models.StatusInTransit},
		{"160", "We Have Your Package", models.StatusInTransit},
		{"161", "Delivered to UPS Access Point", models.StatusInTransit},
		{"162", "Out for Delivery", models.StatusInTransit},
		{"163", "Package Information Unavailable", models.StatusException},
		{"164", "On the Way", models.StatusInTransit},
		{"165", "On the Way", models.StatusInTransit},
		{"166", "Shipment Ready for Roadie", models.StatusInTransit},
		{"167", "Dropped off at UPS Store by Customer", models.StatusInTransit},
		{"168", "Dropped off at Retail Location by Customer", models.StatusInTransit},
		{"169", "Dropped off at a UPS Access Point by Customer", models.StatusInTransit},
	}
	return expand(models.CarrierUPS, models.PartitionSuccess, rows)
}

type seedRow struct {
	code   string
	desc   string
	status string
}

func expand(carrier, partition string, rows []seedRow) []models.StatusCodeEntry {
	out := make([]models.StatusCodeEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.StatusCodeEntry{
			Carrier:            carrier,
			Partition:          partition,
			Code:               r.code,
			CarrierDescription: r.desc,
			NormalizedStatus:   r.status,
		})
	}
	return out
}
