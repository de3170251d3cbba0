package env

import (
	"github.com/denisbrodbeck/machineid"
)

// AppID salts the machine ID so the raw ID is never exposed.
const AppID = "imu.go"

// MachineID retrieves an ID identifying the machine, protected by AppID.
func MachineID() (string, error) {
	return machineid.ProtectedID(AppID)
}

// DeviceName returns name if set, otherwise a short machine ID.
// The fallback is "imu" when the machine ID is unavailable.
func DeviceName(name string) string {
	if name != "" {
		return name
	}
	id, err := MachineID()
	if err != nil || id == "" {
		return "imu"
	}
	if len(id) > 12 {
		id = id[:12]
	}
	return "imu-" + id
}
