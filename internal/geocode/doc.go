// Package geocode implements place autocompletion against the public
// Nominatim (OpenStreetMap) search API. It is used to attach coordinates
// to birth places when saving a profile.
package geocode
