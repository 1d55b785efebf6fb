package domain

import "time"

type DeviceStatus string

const (
	DeviceOnline   DeviceStatus = "online"
	DeviceOffline  DeviceStatus = "offline"
	DeviceCharging DeviceStatus = "charging"
)

type GPSStatus string

const (
	GPSActive    GPSStatus = "active"
	GPSSearching GPSStatus = "searching"
	GPSInactive  GPSStatus = "inactive"
)

type DeviceHealth struct {
	Battery        int          `json:"battery"`
	SignalStrength int          `json:"signal_strength"`
	GPSStatus      GPSStatus    `json:"gps_status"`
	LastSeen       time.Time    `json:"last_seen"`
	Status         DeviceStatus `json:"status"`
}
