package assistant

import (
	"fmt"
	"strings"

	"medibook/models"
)

// The presenter builds the human-readable side of each result. Amounts are
// whole rupees, written "Rs N" to stay encoding-safe.

func fallbackReply(flow models.Flow) string {
	if flow == models.FlowLab {
		return "Search tests, add to cart, or ask questions!"
	}
	return "I'm not sure how to help with that. Try telling me your symptoms or the specialty you're looking for!"
}

func askForSubject(flow models.Flow) string {
	if flow == models.FlowLab {
		return "What kind of test are you filtering for? (e.g., CBC, Thyroid Profile)"
	}
	return "What specialty of doctor are you filtering for? (e.g., Dermatologist, General Physician)"
}

func doctorSearchMessage(data models.DoctorSearchData) string {
	top := data.Doctors[0]
	var sb strings.Builder
	fmt.Fprintf(&sb, "I found %d doctors. The best match is %s (%s).\n", data.Count, top.Name, top.Specialty)
	fmt.Fprintf(&sb, "They are %s away and rated %.1f stars.\n\n", top.Distance, top.Rating)
	sb.WriteString("Here are the top options:")
	return sb.String()
}

func doctorFilterMessage(data models.DoctorSearchData, filters models.SearchFilters) string {
	var desc []string
	if filters.MaxFee != nil {
		desc = append(desc, fmt.Sprintf("under Rs %d", *filters.MaxFee))
	}
	if filters.MinRating != nil {
		desc = append(desc, fmt.Sprintf("%.1f+ stars", *filters.MinRating))
	}
	criteria := "your criteria"
	if len(desc) > 0 {
		criteria = strings.Join(desc, " and ")
	}

	top := data.Doctors[0]
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d doctors matching %s.\n\n", data.Count, criteria)
	fmt.Fprintf(&sb, "Top match: %s (%s) - Rs %d, %.1f stars, %s away.",
		top.Name, top.Specialty, top.Fees, top.Rating, top.Distance)
	return sb.String()
}

func doctorBookingMessage(provider *models.Provider, appt *models.Appointment, timeRange string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Success! Appointment ID: %s\n", appt.ID)
	fmt.Fprintf(&sb, "Confirmed with %s for %s", provider.Name, appt.Date)
	if timeRange != "" {
		fmt.Fprintf(&sb, " at %s", timeRange)
	}
	sb.WriteString(".\n\n")
	fmt.Fprintf(&sb, "%s\n%s\n", provider.Location.ClinicName, provider.Location.Address)
	sb.WriteString("Please arrive 15 mins early.")
	return sb.String()
}

func cartUpdatedMessage(testName, labName string, added bool, cart models.CartData) string {
	var sb strings.Builder
	if added {
		fmt.Fprintf(&sb, "Added %s from %s to your cart.\n\n", testName, labName)
	} else {
		fmt.Fprintf(&sb, "%s is already in your cart.\n\n", testName)
	}
	fmt.Fprintf(&sb, "Your Cart: %d test(s), Total: Rs %d\n\n", cart.Count, cart.Total)
	sb.WriteString("What would you like to do next?\n")
	sb.WriteString("- Search for more tests\n")
	sb.WriteString("- Say 'view cart' to see all items\n")
	sb.WriteString("- Say 'proceed to book' when ready")
	return sb.String()
}

func cartViewMessage(cart models.CartData) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Your Cart: %d test(s)\n\n", cart.Count)
	for _, item := range cart.Items {
		fmt.Fprintf(&sb, "- %s from %s - Rs %d\n", item.TestName, item.LabName, item.Price)
	}
	fmt.Fprintf(&sb, "\nTotal: Rs %d\n\n", cart.Total)
	sb.WriteString("Say 'proceed to book' when ready!")
	return sb.String()
}

func labSlotsMessage(cart models.CartData) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Available slots for %d test(s)\n\n", cart.Count)
	fmt.Fprintf(&sb, "Total: Rs %d\n\n", cart.Total)
	sb.WriteString("Please select a date and time slot from the options below:")
	return sb.String()
}

func packageSuggestionMessage(s models.PackageSuggestion) string {
	return fmt.Sprintf("\n\nTip: the %s covers these tests for Rs %d (save %d%%).",
		s.Package.Name, s.Package.PackagePrice, s.SavingsPct)
}

func labBookingMessage(record models.LabBooking) string {
	var sb strings.Builder
	sb.WriteString("Booking Confirmed!\n\n")
	fmt.Fprintf(&sb, "Booking Reference: %s\n\n", record.Reference)
	sb.WriteString("Tests Booked:\n")
	for _, item := range record.Items {
		fmt.Fprintf(&sb, "- %s from %s\n", item.TestName, item.LabName)
	}
	if record.Slot != nil {
		fmt.Fprintf(&sb, "\nDate: %s\nTime: %s\n", record.Slot.Date, record.Slot.TimeRange)
	}
	if record.CollectionType == models.CollectionHome {
		sb.WriteString("Collection: Home Sample Collection\n")
		if record.HomeCollectionFee > 0 {
			fmt.Fprintf(&sb, "Home Collection Fee: Rs %d\n", record.HomeCollectionFee)
		}
	} else {
		sb.WriteString("Collection: Lab Visit\n")
	}
	fmt.Fprintf(&sb, "\nTotal Amount: Rs %d\n\n", record.Total)
	sb.WriteString("You will receive an SMS confirmation shortly. Thank you!")
	return sb.String()
}
