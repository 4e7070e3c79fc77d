package log

import (
	"errors"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// Events are exported as a plain CBOR sequence: one record per event, the
// integer map keys declared on Event, canonical key order so identical
// events encode identically, and RFC3339 nanosecond timestamps.
var (
	eventEncMode = mustEncMode()
	eventDecMode = mustDecMode()
)

func mustEncMode() cbor.EncMode {
	mode, err := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
	}.EncMode()
	if err != nil {
		panic("log: building CBOR encoder mode: " + err.Error())
	}
	return mode
}

func mustDecMode() cbor.DecMode {
	mode, err := cbor.DecOptions{
		DupMapKey: cbor.DupMapKeyQuiet,
	}.DecMode()
	if err != nil {
		panic("log: building CBOR decoder mode: " + err.Error())
	}
	return mode
}

// EncodeEvent encodes one event as a CBOR record.
func EncodeEvent(event Event) ([]byte, error) {
	return eventEncMode.Marshal(event)
}

// DecodeEvent decodes one CBOR record back into an event.
func DecodeEvent(data []byte) (Event, error) {
	var event Event
	if err := eventDecMode.Unmarshal(data, &event); err != nil {
		return Event{}, err
	}
	return event, nil
}

// ReadEvents decodes a whole event stream, as written by FileLogger, until
// EOF. Events decoded before an error are returned alongside it.
func ReadEvents(r io.Reader) ([]Event, error) {
	dec := eventDecMode.NewDecoder(r)

	var events []Event
	for {
		var event Event
		if err := dec.Decode(&event); err != nil {
			if errors.Is(err, io.EOF) {
				return events, nil
			}
			return events, err
		}
		events = append(events, event)
	}
}
