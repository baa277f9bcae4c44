package transducer

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/soniclab/transientbvd/pkg/bvd"
	"github.com/soniclab/transientbvd/pkg/util"
)

// Transducer couples a measured BVD parameter set with descriptive metadata.
// The resonance frequency is computed once at construction.
type Transducer struct {
	Name         string
	Manufacturer string
	Params       bvd.Params
	Frequency    float64 // series resonance (Hz)
}

// FromParameters builds a Transducer and computes its resonance frequency.
func FromParameters(name, manufacturer string, params bvd.Params) (Transducer, error) {
	freq, err := params.ResonanceFrequency()
	if err != nil {
		return Transducer{}, fmt.Errorf("transducer %q: %w", name, err)
	}
	return Transducer{
		Name:         name,
		Manufacturer: manufacturer,
		Params:       params,
		Frequency:    freq,
	}, nil
}

func (t Transducer) String() string {
	manufacturer := t.Manufacturer
	if manufacturer == "" {
		manufacturer = "unknown"
	}
	return fmt.Sprintf("%s (%s): %s, fr=%s",
		t.Name, manufacturer, t.Params, util.FormatFrequency(t.Frequency))
}

type record struct {
	Rs           float64  `json:"rs"`
	Ls           float64  `json:"ls"`
	Cs           float64  `json:"cs"`
	C0           float64  `json:"c0"`
	Rp           *float64 `json:"rp,omitempty"`
	Manufacturer string   `json:"manufacturer,omitempty"`
}

// Load reads a JSON catalog of transducer records keyed by name. Each record
// carries the four circuit parameters and an optional parallel resistance.
// The numeric fields are validated; metadata is passed through as-is.
func Load(r io.Reader) (map[string]Transducer, error) {
	var records map[string]record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decoding transducer catalog: %w", err)
	}

	transducers := make(map[string]Transducer, len(records))
	for name, rec := range records {
		params := bvd.New(rec.Rs, rec.Ls, rec.Cs, rec.C0)
		if rec.Rp != nil {
			params = params.WithRp(*rec.Rp)
		}
		if err := params.Validate(); err != nil {
			return nil, fmt.Errorf("transducer %q: %w", name, err)
		}

		td, err := FromParameters(name, rec.Manufacturer, params)
		if err != nil {
			return nil, err
		}
		transducers[name] = td
	}
	return transducers, nil
}
