package trip

import "fmt"

// VehicleClass is the fare tier requested for a trip.
type VehicleClass string

const (
	ClassStandard VehicleClass = "standard"
	ClassLarge    VehicleClass = "large"
)

// IsValid returns true if the vehicle class is recognized.
func (v VehicleClass) IsValid() bool {
	switch v {
	case ClassStandard, ClassLarge:
		return true
	}
	return false
}

// String returns the string representation of the vehicle class.
func (v VehicleClass) String() string {
	return string(v)
}

// ParseVehicleClass converts a string to a VehicleClass, returning an error
// if invalid.
func ParseVehicleClass(s string) (VehicleClass, error) {
	class := VehicleClass(s)
	if !class.IsValid() {
		return "", fmt.Errorf("invalid vehicle class: %s", s)
	}
	return class, nil
}
