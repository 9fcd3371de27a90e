package sensors

import (
	models "stokercloud_gateway"
)

// Units and kinds attached to projected values.
const (
	UnitCelsius      = "°C"
	UnitPercent      = "%"
	UnitKilowatt     = "kW"
	UnitKilogram     = "kg"
	UnitGram         = "g"
	UnitMetersPerSec = "m/s"

	KindTemperature = "temperature"
	KindPower       = "power"
	KindWeight      = "weight"
	KindWindSpeed   = "wind_speed"
)

// Spec declares one display sensor: identity, unit/kind metadata and a pure
// extraction function over the controller snapshot. The table is data-driven
// so new fields can be added without touching fetch or poll logic.
type Spec struct {
	Key   string
	Name  string
	Unit  string
	Kind  string
	Value func(models.ControllerSnapshot) any
}

// Table lists every projected sensor, grouped the way the vendor UI lays
// them out.
var Table = []Spec{
	// Weather (top-left panel)
	{
		Key: "weather_city", Name: "Weather city",
		Value: func(d models.ControllerSnapshot) any { return listValue(d, "weatherdata", "weather-city") },
	},
	{
		Key: "outdoor_temperature", Name: "Outdoor temperature",
		Unit: UnitCelsius, Kind: KindTemperature,
		Value: func(d models.ControllerSnapshot) any { return asFloat(listValue(d, "weatherdata", "1")) },
	},
	{
		Key: "wind_speed", Name: "Wind speed",
		Unit: UnitMetersPerSec, Kind: KindWindSpeed,
		Value: func(d models.ControllerSnapshot) any { return asFloat(listValue(d, "weatherdata", "2")) },
	},
	{
		Key: "wind_direction", Name: "Wind direction",
		Value: func(d models.ControllerSnapshot) any { return listValue(d, "weatherdata", "3") },
	},
	{
		Key: "clouds", Name: "Clouds", Unit: UnitPercent,
		Value: func(d models.ControllerSnapshot) any { return asFloat(listValue(d, "weatherdata", "9")) },
	},
	// Boiler (bottom-left panel)
	{
		Key: "chimney_smoke_temperature", Name: "Chimney/smoke temperature",
		Unit: UnitCelsius, Kind: KindTemperature,
		Value: func(d models.ControllerSnapshot) any { return asFloat(listValue(d, "boilerdata", "3")) },
	},
	{
		Key: "power_output", Name: "Power output",
		Unit: UnitKilowatt, Kind: KindPower,
		Value: func(d models.ControllerSnapshot) any { return asFloat(listValue(d, "boilerdata", "5")) },
	},
	{
		Key: "power_percentage", Name: "Power (%)", Unit: UnitPercent,
		Value: func(d models.ControllerSnapshot) any { return asFloat(listValue(d, "boilerdata", "4")) },
	},
	{
		Key: "photo_sensor_light", Name: "Photo sensor (light)", Unit: UnitPercent,
		Value: func(d models.ControllerSnapshot) any { return asFloat(listValue(d, "boilerdata", "6")) },
	},
	{
		Key: "oxygen", Name: "Oxygen (%)", Unit: UnitPercent,
		Value: func(d models.ControllerSnapshot) any { return asFloat(listValue(d, "boilerdata", "12")) },
	},
	{
		Key: "oxygen_reference", Name: "Oxygen reference", Unit: UnitPercent,
		Value: func(d models.ControllerSnapshot) any { return asFloat(frontValue(d, "refoxygen")) },
	},
	{
		Key: "o2_low_regulation", Name: "O2 low regulation (%)", Unit: UnitPercent,
		Value: func(d models.ControllerSnapshot) any { return asFloat(listValue(d, "boilerdata", "14")) },
	},
	{
		Key: "o2_mid_regulation", Name: "O2 mid regulation (%)", Unit: UnitPercent,
		Value: func(d models.ControllerSnapshot) any { return asFloat(listValue(d, "boilerdata", "15")) },
	},
	{
		Key: "o2_high_regulation", Name: "O2 high regulation (%)", Unit: UnitPercent,
		Value: func(d models.ControllerSnapshot) any { return asFloat(listValue(d, "boilerdata", "16")) },
	},
	{
		Key: "online_time", Name: "Online time", Unit: UnitPercent,
		Value: func(d models.ControllerSnapshot) any { return asFloat(listValue(d, "boilerdata", "9")) },
	},
	// Front readout (boiler temp and setpoint)
	{
		Key: "boiler_temperature", Name: "Boiler temperature",
		Unit: UnitCelsius, Kind: KindTemperature,
		Value: func(d models.ControllerSnapshot) any { return asFloat(frontValue(d, "boilertemp")) },
	},
	{
		Key: "wanted_boiler_temperature", Name: "Wanted boiler temperature",
		Unit: UnitCelsius, Kind: KindTemperature,
		Value: func(d models.ControllerSnapshot) any { return asFloat(frontValue(d, "-wantedboilertemp")) },
	},
	// Outputs (icons on the left side)
	{
		Key: "pump_output", Name: "Pump output",
		Value: func(d models.ControllerSnapshot) any { return leftOutputValue(d, "output-2") },
	},
	{
		Key: "compressor", Name: "Compressor",
		Value: func(d models.ControllerSnapshot) any { return asFloat(leftOutputValue(d, "output-7")) },
	},
	// Hopper (center-right panel)
	{
		Key: "hopper_content", Name: "Hopper content",
		Unit: UnitKilogram, Kind: KindWeight,
		Value: func(d models.ControllerSnapshot) any { return asFloat(frontValue(d, "hoppercontent")) },
	},
	{
		Key: "auger_capacity", Name: "Auger capacity",
		Unit: UnitGram, Kind: KindWeight,
		Value: func(d models.ControllerSnapshot) any { return asFloat(listValue(d, "hopperdata", "2")) },
	},
	{
		Key: "consumption_last_24h", Name: "Consumption last 24 h",
		Unit: UnitKilogram, Kind: KindWeight,
		Value: func(d models.ControllerSnapshot) any { return asFloat(listValue(d, "hopperdata", "3")) },
	},
	{
		Key: "consumption_total", Name: "Consumption total",
		Unit: UnitKilogram, Kind: KindWeight,
		Value: func(d models.ControllerSnapshot) any { return asFloat(listValue(d, "hopperdata", "4")) },
	},
	{
		Key: "power_10pct", Name: "Power 10%",
		Unit: UnitKilowatt, Kind: KindPower,
		Value: func(d models.ControllerSnapshot) any { return asFloat(listValue(d, "hopperdata", "7")) },
	},
	{
		Key: "power_100pct", Name: "Power 100%",
		Unit: UnitKilowatt, Kind: KindPower,
		Value: func(d models.ControllerSnapshot) any { return asFloat(listValue(d, "hopperdata", "8")) },
	},
	// DHW (right panel)
	{
		Key: "dhw_temperature", Name: "DHW temperature",
		Unit: UnitCelsius, Kind: KindTemperature,
		Value: func(d models.ControllerSnapshot) any { return asFloat(frontValue(d, "dhw")) },
	},
	{
		Key: "wanted_dhw_temperature", Name: "Wanted DHW temperature",
		Unit: UnitCelsius, Kind: KindTemperature,
		Value: func(d models.ControllerSnapshot) any { return asFloat(frontValue(d, "dhwwanted")) },
	},
	{
		Key: "dhw_difference", Name: "DHW difference",
		Unit: UnitCelsius, Kind: KindTemperature,
		Value: func(d models.ControllerSnapshot) any { return asFloat(listValue(d, "dhwdata", "3")) },
	},
}

// Project maps a snapshot through the whole table.
func Project(data models.ControllerSnapshot) []models.SensorValue {
	values := make([]models.SensorValue, 0, len(Table))
	for _, spec := range Table {
		values = append(values, models.SensorValue{
			Key:   spec.Key,
			Name:  spec.Name,
			Unit:  spec.Unit,
			Kind:  spec.Kind,
			Value: spec.Value(data),
		})
	}
	return values
}

// defaultModel is reported when the snapshot does not name one.
const defaultModel = "pellet furnace"

// Identity derives the device identity from a snapshot: serial and alias
// together, either alone, or nothing.
func Identity(data models.ControllerSnapshot) (models.DeviceIdentity, bool) {
	serial := scalarString(data["serial"])
	alias := scalarString(data["alias"])
	if serial == "" && alias == "" {
		return models.DeviceIdentity{}, false
	}

	id := serial
	if id == "" {
		id = alias
	}
	name := id
	if serial != "" && alias != "" {
		name = serial + " / " + alias
	}
	model := scalarString(data["model"])
	if model == "" {
		model = defaultModel
	}
	return models.DeviceIdentity{ID: id, Name: name, Model: model}, true
}
