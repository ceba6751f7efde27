package registry

import "github.com/jammyops/parceltrack/internal/models"

const statusServiceErrorFedEx = "Service Error, See fedex.com"

// FedEx uses two-letter scan event codes for tracking statuses and dotted
// string codes for API errors. Tables carried from the FedEx Track API
// reference.
func fedexSeed() []models.StatusCodeEntry {
	success := []seedRow{
		{"AA", "At Airport", models.StatusInTransit},
		{"AC", "At Canada Post facility", models.StatusInTransit},
		{"AD", "At Delivery", models.StatusInTransit},
		{"AF", "At local FedEx Facility", models.StatusInTransit},
		{"AO", "Shipment arriving On-time", models.StatusInTransit},
		{"AP", "At Pickup", models.StatusInTransit},
		{"AR", "Arrived at FedEx location", models.StatusInTransit},
		{"AX", "At USPS facility", models.StatusInTransit},
		{"CA", "Shipment Cancelled", models.StatusCancelled},
		{"CH", "Location Changed", models.StatusInTransit},
		{"DD", "Delivery Delay", models.StatusInTransitDelayed},
		{"DE", "Delivery Exception", models.StatusException},
		{"DL", "Delivered", models.StatusDelivered},
		{"DP", "Departed", models.StatusInTransit},
		{"DR", "Vehicle furnished but not used", models.StatusInTransit},
		{"DS", "Vehicle Dispatched", models.StatusInTransit},
		{"DY", "Delay", models.StatusInTransitDelayed},
		{"EA", "Enroute to Airport", models.StatusInTransit},
		{"ED", "Enroute to Delivery", models.StatusInTransit},
		{"EO", "Enroute to Origin Airport", models.StatusInTransit},
		{"EP", "Enroute to Pickup", models.StatusInTransit},
		{"FD", "At FedEx Destination", models.StatusInTransit},
		{"HL", "Hold at Location", models.StatusInTransit},
		{"HP", "Ready for Recipient Pickup", models.StatusInTransit},
		{"IT", "In Transit", models.StatusInTransit},
		{"IX", "In transit (see Details)", models.StatusInTransit},
		{"LO", "Left Origin", models.StatusInTransit},
		{"OC", "Order Created", models.StatusProcessing},
		{"OD", "Out for Delivery", models.StatusInTransit},
		{"OF", "At FedEx origin facility", models.StatusInTransit},
		{"OX", "Shipment information sent to USPS", models.StatusProcessing},
		{"PD", "Pickup Delay", models.StatusProcessing},
		{"PF", "Plane in Flight", models.StatusInTransit},
		{"PL", "Plane Landed", models.StatusInTransit},
		{"PM", "In Progress", models.StatusInTransit},
		{"PU", "Picked Up", models.StatusInTransit},
		{"PX", "Picked up (see Details)", models.StatusInTransit},
		{"RR", "CDO requested", models.StatusInTransit},
		{"RM", "CDO Modified", models.StatusInTransit},
		{"RC", "CDO Cancelled", models.StatusInTransit},
		{"RS", "Return to Shipper", models.StatusException},
		{"RP", "Return label link emailed to return sender", models.StatusProcessing},
		{"LP", "Return label link cancelled by shipment originator", models.StatusCancelled},
		{"RG", "Return label link expiring soon", models.StatusProcessing},
		{"RD", "Return label link expired", models.StatusCancelled},
		{"SE", "Shipment Exception", models.StatusException},
		{"SF", "At Sort Facility", models.StatusInTransit},
		{"SP", "Split Status", models.StatusSplitInTransit},
		{"TR", "Transfer", models.StatusInTransit},
		{"CC", "Cleared Customs", models.StatusInTransit},
		{"CD", "Clearance Delay", models.StatusInTransitDelayed},
		{"CP", "Clearance in Progress", models.StatusInTransit},
	}

	errors := []seedRow{
		{"CUSTOMER.REVOKE.REQUIRED", "Customer has been revoked to view invited shipments.", models.StatusException},
		{"CUSTOMER.SIZE.INVALID", "Extraordinary sized customer.", models.StatusException},
		{"CUSTOMER.USAGE.LOCKED", "Customer is locked out.", models.StatusException},
		{"REFERENCETRACKING.SHIPDATERANGE.INVALID", "Please provide a valid ship date range as a part of search criteria when entering account number.", models.StatusException},
		{"TRACKING.ACCOUNTNUMBER.EMPTY", "If not providing FedEx account number, please enter destination country/territory and postal code.", models.StatusException},
		{"TRACKING.CUSTOMCRITICAL.ERROR", "For tracking information, please log in to customcritical.fedex.com or contact Customer Service.", statusServiceErrorFedEx},
		{"TRACKING.DATA.NOTUNIQUE", "A unique match was not found. Please resubmit your request with a FedEx service or enter your FedEx account number.", models.StatusException},
		{"TRACKING.DESTINATIONCOUNTRYCODE.INVALID", "Please provide a valid destination country/territory code.", models.StatusException},
		{"TRACKING.MULTISTOP.ERROR", "For tracking information, please log in to customcritical.fedex.com or contact Customer Service.", statusServiceErrorFedEx},
		{"TRACKING.POSTALCODE.INVALID", "Please provide a valid postal code.", models.StatusException},
		{"TRACKING.REFERENCEDATA.INCOMPLETE", "Please enter an account number or destination country/territory and postal code.", models.StatusException},
		{"TRACKING.REFERENCENUMBER.NOTFOUND", "Reference number cannot be found. Please correct the reference number and try again.", models.StatusException},
		{"TRACKING.REFERENCETYPE.INVALID", "Please provide a valid reference/associated type.", models.StatusException},
		{"TRACKING.REFERENCEVALUE.EMPTY", "Missing or invalid shipment. Please enter a valid shipment number.", models.StatusException},
		{"TRACKING.REFRENCEVALUE.INVALID", "Invalid reference number. Please correct the request and try again.", models.StatusException},
		{"TRACKING.SHIPDATE.ENDDATEBEFOREBEGINDATE", "Invalid ship date range. End date should not be before begin date.", models.StatusException},
		{"TRACKING.SHIPDATEBEGIN.INVALID", "Please provide valid ship begin date.", models.StatusException},
		{"TRACKING.SHIPDATEBEGIN.TOOOLD", "We are unable to provide tracking information. Begin date is too far in the past.", models.StatusException},
		{"TRACKING.SHIPDATEEND.FUTURE", "Invalid ship date range. End date must not be in the future.", models.StatusException},
		{"TRACKING.SHIPDATEEND.INVALID", "Please provide valid ship end date.", models.StatusException},
		{"TRACKING.SHIPDATERANGE.ERROR", "Invalid date range.", models.StatusException},
		{"TRACKING.SHIPDATERANGE.INVALID", "Invalid ship date range. Please provide valid ship begin and end date.", models.StatusException},
		{"TRACKING.SHIPDATERANGE.TOOLONG", "Ship date range is too long. Please reduce the range and try again.", models.StatusException},
		{"TRACKING.TCN.NOTFOUND", "Transportation control number cannot be found.", models.StatusException},
		{"TRACKING.TCNVALUE.EMPTY", "Please provide a valid Transportation Control Number.", models.StatusException},
		{"TRACKING.TRACKINGNUMBER.EMPTY", "Please provide tracking number.", models.StatusException},
		{"TRACKING.TRACKINGNUMBER.INVALID", "Invalid tracking number. Please correct the tracking number format and try again.", models.StatusException},
		{"TRACKING.TRACKINGNUMBER.NOTFOUND", "Tracking number cannot be found. Please correct the tracking number and try again.", models.StatusException},
		{"TRACKING.TRACKINGNUMBERS.LIMITEXCEEDED", "Please limit your inquiry to 30 tracking numbers or references.", models.StatusException},
		{"USER.RELOGIN.REQUIRED", "We are unable to process this shipment for the moment. Try again later or contact FedEx Customer Service.", statusServiceErrorFedEx},
		{"INTERNAL.SERVER.ERROR", "We encountered an unexpected error and are working to resolve the issue.", statusServiceErrorFedEx},
		{"TRACKING.MULTIPIECE.ERROR", "We are unable to provide notifications because either the package is too old or there is more than one package with the provided tracking number.", models.StatusException},
		{"NOTIFICATION.TRACKINGNBR.NOTFOUND", "Tracking number cannot be found. Please update and try again.", models.StatusException},
		{"TRACKING.EMAILADDRESS.INVALID", "One or more of the Email addresses you entered is invalid.", models.StatusException},
		{"TRACKING.LOCALE.INVALID", "Requested localization is invalid or not supported.", models.StatusException},
		{"TRACKING.SENDERCONTACTNAME.INVALID", "Sender contact name is missing or invalid.", models.StatusException},
		{"TRACKING.SENDEREMAILADDRESS.INVALID", "Sender email address is missing or invalid.", models.StatusException},
		{"TRACKINGDOCUMENT.DOCUMENT.UNAVAILABLE", "Signature Proof of Delivery is not currently available for this Tracking Number.", models.StatusException},
	}

	out := expand(models.CarrierFedEx, models.PartitionSuccess, success)
	out = append(out, expand(models.CarrierFedEx, models.PartitionError, errors)...)
	return out
}
