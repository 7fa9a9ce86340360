package source

import (
	_ "embed"
	"fmt"
	"io"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"adtables/internal/model"
	"adtables/internal/util"
)

//go:embed sample.yaml
var sampleYAML []byte

// Sample returns the built-in demo data set.
func Sample() (Source, error) {
	ds, err := ParseYAML(sampleYAML)
	if err != nil {
		return nil, fmt.Errorf("failed to parse sample data: %w", err)
	}
	return FromDataset(ds), nil
}

// SampleDataset returns the built-in demo data set as a value.
func SampleDataset() (model.Dataset, error) {
	return ParseYAML(sampleYAML)
}

// OpenYAML reads a data set file.
func OpenYAML(path string) (Source, error) {
	ds, err := ReadYAML(path)
	if err != nil {
		return nil, err
	}
	return FromDataset(ds), nil
}

// ReadYAML reads and validates a data set file.
func ReadYAML(path string) (model.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to open data set: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to read data set: %w", err)
	}
	ds, err := ParseYAML(data)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// ParseYAML decodes and validates a data set document.
func ParseYAML(data []byte) (model.Dataset, error) {
	var ds model.Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return model.Dataset{}, fmt.Errorf("failed to decode data set: %w", err)
	}
	if err := Validate(ds); err != nil {
		return model.Dataset{}, err
	}
	return ds, nil
}

// WriteYAML encodes a data set document.
func WriteYAML(w io.Writer, ds model.Dataset) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(ds); err != nil {
		return fmt.Errorf("failed to encode data set: %w", err)
	}
	return enc.Close()
}

// Validate rejects data sets with empty or duplicate identifiers. Records
// that point at a missing parent are kept; they are logged because no
// drill-down can reach them.
func Validate(ds model.Dataset) error {
	accounts := make(map[string]bool, len(ds.Accounts))
	for _, a := range ds.Accounts {
		if err := checkID("account", a.ID, accounts); err != nil {
			return err
		}
		if a.CreationDate != "" && util.ValidateDate(a.CreationDate) != nil {
			log.Printf("[SOURCE] account %s has non-ISO creation date %q", a.ID, a.CreationDate)
		}
	}
	profiles := make(map[string]bool, len(ds.Profiles))
	for _, p := range ds.Profiles {
		if err := checkID("profile", p.ID, profiles); err != nil {
			return err
		}
		if !accounts[p.AccountID] {
			log.Printf("[SOURCE] profile %s references unknown account %q", p.ID, p.AccountID)
		}
	}
	campaigns := make(map[string]bool, len(ds.Campaigns))
	for _, c := range ds.Campaigns {
		if err := checkID("campaign", c.ID, campaigns); err != nil {
			return err
		}
		if !profiles[c.ProfileID] {
			log.Printf("[SOURCE] campaign %s references unknown profile %q", c.ID, c.ProfileID)
		}
	}
	return nil
}

func checkID(kind, id string, seen map[string]bool) error {
	if id == "" {
		return fmt.Errorf("%s with empty id", kind)
	}
	if seen[id] {
		return fmt.Errorf("duplicate %s id %q", kind, id)
	}
	seen[id] = true
	return nil
}
