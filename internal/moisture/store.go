package moisture

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
)

// Source records where the active calibration came from.
type Source string

const (
	SourceFile     Source = "file"
	SourceDefaults Source = "defaults"
)

// calibrationJSON is the on-disk format. Keep the field names stable:
// existing moisture_config.json files must stay readable across upgrades.
type calibrationJSON struct {
	DryFreq float64 `json:"dry_freq"`
	WetFreq float64 `json:"wet_freq"`
}

// Store persists the calibration to a small JSON file.
type Store struct {
	Path string
}

// NewStore creates a store for the given file path.
func NewStore(path string) *Store {
	return &Store{Path: path}
}

// Load reads the calibration from disk. A missing, corrupt, or inverted file
// is not an error: the defaults are substituted and written back so the next
// start reads a clean file. The returned Source says which happened.
func (s *Store) Load() (Calibration, Source, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("calibration: no file at %s, writing defaults", s.Path)
			return s.resetToDefaults()
		}
		return Calibration{}, "", fmt.Errorf("read calibration file: %w", err)
	}

	var raw calibrationJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Printf("calibration: %s is corrupt (%v), writing defaults", s.Path, err)
		return s.resetToDefaults()
	}

	cal := Calibration{DryFreq: raw.DryFreq, WetFreq: raw.WetFreq}
	if err := cal.Validate(); err != nil {
		// Hand-edited or damaged values. Operating on an inverted pair would
		// silently produce nonsense, so treat it like corruption.
		log.Printf("calibration: %s holds invalid values (%v), writing defaults", s.Path, err)
		return s.resetToDefaults()
	}

	return cal, SourceFile, nil
}

// Save writes the calibration to disk. Callers are expected to Validate
// before saving; Save refuses an inverted pair so a bad calibration run can
// never overwrite good values.
func (s *Store) Save(cal Calibration) error {
	if err := cal.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(calibrationJSON{DryFreq: cal.DryFreq, WetFreq: cal.WetFreq})
	if err != nil {
		return fmt.Errorf("marshal calibration: %w", err)
	}

	if err := os.WriteFile(s.Path, data, 0644); err != nil {
		return fmt.Errorf("write calibration file: %w", err)
	}
	return nil
}

func (s *Store) resetToDefaults() (Calibration, Source, error) {
	cal := DefaultCalibration()
	if err := s.Save(cal); err != nil {
		// Could not rewrite the file (read-only filesystem?). The defaults
		// are still usable in memory.
		return cal, SourceDefaults, fmt.Errorf("write default calibration: %w", err)
	}
	return cal, SourceDefaults, nil
}
