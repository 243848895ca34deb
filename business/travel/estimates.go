package travel

import "strings"

// Static reference tables, the last resort of the fallback ladder. Every
// price drawn from here is marked estimated.

// flightRouteEstimates holds round-trip estimates for common routes, keyed
// "ORIGIN-DEST".
var flightRouteEstimates = map[string]float64{
	"LAX-JFK": 420,
	"JFK-LAX": 420,
	"ORD-LAX": 350,
	"LAX-ORD": 350,
	"ATL-JFK": 280,
	"JFK-ATL": 280,
	"DFW-LAS": 220,
	"LAS-DFW": 220,
	"SFO-SEA": 190,
	"SEA-SFO": 190,
	"ORD-ATL": 240,
	"ATL-ORD": 240,
	"BOS-DCA": 180,
	"DCA-BOS": 180,
	"DEN-PHX": 200,
	"PHX-DEN": 200,
	"AUS-BNA": 230,
	"BNA-AUS": 230,
}

const defaultFlightEstimate = 380

func estimateFlightPrice(origin, dest string) float64 {
	if p, ok := flightRouteEstimates[origin+"-"+dest]; ok {
		return p
	}
	return defaultFlightEstimate
}

// hotelCityEstimates holds nightly rates per city, with optional per-brand
// overrides keyed "city|brand".
var hotelCityEstimates = map[string]float64{
	"new york":      320,
	"los angeles":   250,
	"chicago":       210,
	"las vegas":     150,
	"nashville":     230,
	"austin":        220,
	"atlanta":       180,
	"seattle":       240,
	"denver":        190,
	"new orleans":   200,
	"miami":         260,
	"san francisco": 300,
}

var hotelBrandEstimates = map[string]float64{
	"new york|marriott": 360,
	"new york|hilton":   340,
	"las vegas|mgm":     190,
	"nashville|hyatt":   250,
}

const defaultHotelNightlyEstimate = 175

func estimateHotelNightly(city, brand string) float64 {
	c := strings.ToLower(strings.TrimSpace(city))
	if brand != "" {
		if p, ok := hotelBrandEstimates[c+"|"+strings.ToLower(brand)]; ok {
			return p
		}
	}
	if p, ok := hotelCityEstimates[c]; ok {
		return p
	}
	return defaultHotelNightlyEstimate
}

// carCityEstimates holds daily rental rates per city.
var carCityEstimates = map[string]float64{
	"new york":      95,
	"los angeles":   65,
	"chicago":       70,
	"las vegas":     50,
	"nashville":     60,
	"austin":        55,
	"atlanta":       55,
	"seattle":       70,
	"denver":        60,
	"miami":         60,
	"san francisco": 80,
}

const defaultCarDailyEstimate = 65

func estimateCarDaily(city string) float64 {
	if p, ok := carCityEstimates[strings.ToLower(strings.TrimSpace(city))]; ok {
		return p
	}
	return defaultCarDailyEstimate
}

// ticketTypeEstimates holds face-value estimates per event type, used only
// when the event snapshot carries no price hint.
var ticketTypeEstimates = map[string]float64{
	"festival": 280,
	"sports":   150,
	"comedy":   75,
	"theater":  110,
	"concert":  120,
}

const defaultTicketEstimate = 120

func estimateTicketPrice(eventType string) float64 {
	if p, ok := ticketTypeEstimates[strings.ToLower(eventType)]; ok {
		return p
	}
	return defaultTicketEstimate
}

// transferCityEstimates holds flat airport-transfer estimates.
var transferCityEstimates = map[string]float64{
	"new york":    75,
	"los angeles": 60,
	"las vegas":   35,
	"chicago":     50,
}

const defaultTransferEstimate = 45

func estimateTransferPrice(city string) float64 {
	if p, ok := transferCityEstimates[strings.ToLower(strings.TrimSpace(city))]; ok {
		return p
	}
	return defaultTransferEstimate
}
