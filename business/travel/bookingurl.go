package travel

import (
	"fmt"
	"net/url"
	"time"
)

const bookingDateLayout = "2006-01-02"

// Booking deep-links are constructed deterministically from provider,
// destination and dates so the user always has a manual booking path, even
// when the price is a pure estimate.

func flightBookingURL(provider, origin, dest string, outDate, inDate time.Time) string {
	switch provider {
	case "skyscanner":
		return fmt.Sprintf("https://www.skyscanner.com/transport/flights/%s/%s/%s/%s/",
			origin, dest, outDate.Format("060102"), inDate.Format("060102"))
	default:
		return fmt.Sprintf("https://www.kayak.com/flights/%s-%s/%s/%s",
			origin, dest, outDate.Format(bookingDateLayout), inDate.Format(bookingDateLayout))
	}
}

func hotelBookingURL(provider, city string, checkIn, checkOut time.Time) string {
	switch provider {
	case "expedia":
		q := url.Values{}
		q.Set("destination", city)
		q.Set("startDate", checkIn.Format(bookingDateLayout))
		q.Set("endDate", checkOut.Format(bookingDateLayout))
		return "https://www.expedia.com/Hotel-Search?" + q.Encode()
	default:
		q := url.Values{}
		q.Set("ss", city)
		q.Set("checkin", checkIn.Format(bookingDateLayout))
		q.Set("checkout", checkOut.Format(bookingDateLayout))
		return "https://www.booking.com/searchresults.html?" + q.Encode()
	}
}

func carBookingURL(_ string, pickupLoc string, pickupAt, dropoffAt time.Time) string {
	return fmt.Sprintf("https://www.kayak.com/cars/%s/%s/%s",
		url.PathEscape(pickupLoc), pickupAt.Format(bookingDateLayout), dropoffAt.Format(bookingDateLayout))
}

func ticketBookingURL(provider, eventName, venue string, _ time.Time) string {
	q := url.Values{}
	q.Set("q", eventName+" "+venue)
	switch provider {
	case "stubhub":
		return "https://www.stubhub.com/find/s/?" + q.Encode()
	default:
		return "https://www.ticketmaster.com/search?" + q.Encode()
	}
}

func transferBookingURL(_ string, city string, date time.Time) string {
	q := url.Values{}
	q.Set("city", city)
	q.Set("date", date.Format(bookingDateLayout))
	return "https://www.viator.com/searchResults/all?" + q.Encode()
}
