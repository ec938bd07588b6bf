package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ConvenienceStore represents a supported convenience-store chain. The numeric
// values are the gateway's Pay_zg channel codes and must not be renumbered.
type ConvenienceStore int

const (
	ConvenienceStoreSevenEleven ConvenienceStore = 4
	ConvenienceStoreFamilyMart  ConvenienceStore = 6
)

func (s ConvenienceStore) String() string {
	switch s {
	case ConvenienceStoreSevenEleven:
		return "SevenEleven"
	case ConvenienceStoreFamilyMart:
		return "FamilyMart"
	}
	return "Unknown"
}

// PayZg returns the gateway channel code for the store.
func (s ConvenienceStore) PayZg() int {
	return int(s)
}

// ParseConvenienceStore maps the wire name to a ConvenienceStore.
func ParseConvenienceStore(str string) (ConvenienceStore, bool) {
	switch str {
	case "SevenEleven":
		return ConvenienceStoreSevenEleven, true
	case "FamilyMart":
		return ConvenienceStoreFamilyMart, true
	}
	return 0, false
}

func (s ConvenienceStore) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *ConvenienceStore) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = ConvenienceStore(i)
		return nil
	}
	if parsed, ok := ParseConvenienceStore(str); ok {
		*s = parsed
	}
	return nil
}

func (s ConvenienceStore) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *ConvenienceStore) Scan(value interface{}) error {
	if value == nil {
		*s = 0
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = ConvenienceStore(v)
	case int:
		*s = ConvenienceStore(v)
	}
	return nil
}
