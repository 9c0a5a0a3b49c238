package cdr

import "strings"

// EndTimeLayout is the sortable timestamp format carried on every record,
// local time with no zone.
const EndTimeLayout = "2006-01-02 15:04:05"

// Destinations of six characters or fewer are internal extension-to-extension
// dials and are never tracked.
const maxInternalLen = 6

// Record is one completed outbound call.
type Record struct {
	UniqueID    string `json:"uniqueid"`
	Channel     string `json:"channel"`
	Destination string `json:"destination"`
	EndTime     string `json:"endtime"`
}

// NormalizeChannel reduces a raw channel string to the bare extension number:
// everything up to and including the first '/' is dropped (the signaling
// protocol tag), then the remainder is truncated at the first '-' (the
// call-leg suffix). "PJSIP/2510-0000020a" becomes "2510". A string carrying
// neither separator passes through unchanged.
func NormalizeChannel(raw string) string {
	if i := strings.IndexByte(raw, '/'); i >= 0 {
		raw = raw[i+1:]
	}
	if i := strings.IndexByte(raw, '-'); i >= 0 {
		raw = raw[:i]
	}
	return raw
}

// Normalize builds a canonical Record from raw event fields. It reports false
// when the call is not external, i.e. the destination is missing or too short
// to be anything but an internal dial. Timestamps pass through verbatim.
func Normalize(uniqueID, channel, destination, endTime string) (Record, bool) {
	if len(destination) <= maxInternalLen {
		return Record{}, false
	}
	return Record{
		UniqueID:    uniqueID,
		Channel:     NormalizeChannel(channel),
		Destination: destination,
		EndTime:     endTime,
	}, true
}
