package domain

// DeviceModel identifies a supported appliance model
type DeviceModel string

const (
	DeviceTM5 DeviceModel = "TM5"
	DeviceTM6 DeviceModel = "TM6"
	DeviceTM7 DeviceModel = "TM7"
)

// DeviceProfile holds the hardware limits of one appliance model
type DeviceProfile struct {
	Model              DeviceModel `json:"model" yaml:"model"`
	MaxTemperatureC    float64     `json:"maxTemperatureC" yaml:"max_temperature_c"`
	MaxSpeed           int         `json:"maxSpeed" yaml:"max_speed"`
	MaxDurationSeconds int         `json:"maxDurationSeconds" yaml:"max_duration_seconds"`
	BowlCapacityMl     float64     `json:"bowlCapacityMl" yaml:"bowl_capacity_ml"`
}
