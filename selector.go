package objpack

import "fmt"

// Trial is the measured artifact size of one candidate format.
type Trial struct {
	Format Format
	Size   int64
}

// Selection is the outcome of Select.
type Selection struct {
	// Format is the smallest candidate. Ties go to the earliest candidate.
	Format Format
	// Size is the winner's artifact size, tag byte included.
	Size int64
	// Trials holds every candidate's size in candidate order.
	Trials []Trial
}

// Select encodes raw with each candidate into a byte counter and returns the
// candidate producing the smallest artifact. Nothing is retained from the
// trials except their sizes, and raw is only read.
//
// Trials run one after another. Select does not write the winning artifact;
// callers encode raw once more with the chosen format.
func Select(raw []byte, candidates []Format, opts ...ChainOption) (Selection, error) {
	if len(candidates) == 0 {
		return Selection{}, ErrNoCandidates
	}
	for _, f := range candidates {
		if !f.IsRegistered() {
			return Selection{}, fmt.Errorf("%w: %s", ErrUnregisteredFormat, f)
		}
	}

	sel := Selection{Trials: make([]Trial, 0, len(candidates))}
	for i, f := range candidates {
		size, err := measure(raw, f, opts)
		if err != nil {
			return Selection{}, err
		}
		sel.Trials = append(sel.Trials, Trial{Format: f, Size: size})
		if i == 0 || size < sel.Size {
			sel.Format = f
			sel.Size = size
		}
	}
	return sel, nil
}

// measure returns the size of raw's artifact under f.
func measure(raw []byte, f Format, opts []ChainOption) (int64, error) {
	probe := &sizeProbe{}
	enc, err := NewEncoder(probe, f, opts...)
	if err != nil {
		return 0, err
	}
	if _, err := enc.Write(raw); err != nil {
		enc.Close()
		return 0, err
	}
	if err := enc.Close(); err != nil {
		return 0, err
	}
	return probe.Count(), nil
}
